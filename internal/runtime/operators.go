package runtime

import (
	"math"

	"github.com/mkalinski/go-avm2/internal/types"
)

// ============================================================================
// Operator semantics
// ============================================================================
//
// The operators dispatch on the class tags of both operands. Result depends
// on both sides, with a dedicated path for XML values, so each operator is
// an ordered decision table rather than a method on one receiver.

// tagSetOfPair collects the class tags of the operands that reference
// objects. undefined/null contribute nothing.
func tagSetOfPair(a, b Any) types.ClassTagSet {
	var s types.ClassTagSet
	if o := a.Object(); o != nil {
		s = s.Add(o.Tag())
	}
	if o := b.Object(); o != nil {
		s = s.Add(o.Tag())
	}
	return s
}

// isNaNValue spots the one value that is never equal to itself.
func isNaNValue(a Any) bool {
	o := a.Object()
	return o != nil && types.NumericTags.Contains(o.Tag()) && math.IsNaN(o.NumberValue())
}

func isXMLValue(a Any) bool {
	o := a.Object()
	return o != nil && types.XMLTags.Contains(o.Tag())
}

// WeakEquals implements the AS3 == operator.
func WeakEquals(a, b Any) (bool, error) {
	if isXMLValue(a) || isXMLValue(b) {
		if h := currentXMLHelper(); h != nil {
			return h.WeakEquals(a, b)
		}
	}
	if a.IsUndefinedOrNull() || b.IsUndefinedOrNull() {
		// null == undefined holds weakly; anything else against them fails.
		return a.IsUndefinedOrNull() && b.IsUndefinedOrNull(), nil
	}
	if a.SameReference(b) {
		return !isNaNValue(a), nil
	}

	ao, bo := a.Object(), b.Object()
	tags := tagSetOfPair(a, b)
	switch {
	case tags.IsSubsetOf(types.NumericOrBoolTags):
		return ao.NumberValue() == bo.NumberValue(), nil
	case tags.IsSingle(types.TagString):
		return ao.StringValue() == bo.StringValue(), nil
	case tags.IsSingle(types.TagQName):
		qa, oka := QNameValue(ao)
		qb, okb := QNameValue(bo)
		return oka && okb && qa.Local == qb.Local && qa.NS.URI == qb.NS.URI, nil
	case tags.IsSingle(types.TagNamespace):
		na, oka := NamespaceValue(ao)
		nb, okb := NamespaceValue(bo)
		return oka && okb && na.URI == nb.URI, nil
	case tags.IsSingle(types.TagFunction):
		pa, pb := funcData(ao), funcData(bo)
		if pa != nil && pb != nil && pa.method != nil {
			return pa.method == pb.method && pa.boundRecv == pb.boundRecv, nil
		}
		return false, nil
	}

	// Mixed primitive comparisons coerce toward numbers; an object against
	// a primitive retries on its primitive form.
	aPrim := types.PrimitiveTags.Contains(ao.Tag())
	bPrim := types.PrimitiveTags.Contains(bo.Tag())
	switch {
	case aPrim && bPrim:
		fa, err := ToNumber(a)
		if err != nil {
			return false, err
		}
		fb, err := ToNumber(b)
		if err != nil {
			return false, err
		}
		return fa == fb, nil
	case aPrim:
		pb, err := ToPrimitive(b, HintNone)
		if err != nil {
			return false, err
		}
		return WeakEquals(a, pb)
	case bPrim:
		pa, err := ToPrimitive(a, HintNone)
		if err != nil {
			return false, err
		}
		return WeakEquals(pa, b)
	}
	return false, nil
}

// StrictEquals implements the AS3 === operator: the weak table minus the
// XML path and minus null==undefined, with no cross-type coercion.
func StrictEquals(a, b Any) bool {
	if a.IsUndefinedOrNull() || b.IsUndefinedOrNull() {
		return a.SameReference(b)
	}
	if a.SameReference(b) {
		return !isNaNValue(a)
	}

	ao, bo := a.Object(), b.Object()
	tags := tagSetOfPair(a, b)
	switch {
	case tags.IsSubsetOf(types.NumericOrBoolTags):
		return ao.NumberValue() == bo.NumberValue()
	case tags.IsSingle(types.TagString):
		return ao.StringValue() == bo.StringValue()
	case tags.IsSingle(types.TagQName):
		qa, oka := QNameValue(ao)
		qb, okb := QNameValue(bo)
		return oka && okb && qa.Local == qb.Local && qa.NS.URI == qb.NS.URI
	case tags.IsSingle(types.TagNamespace):
		na, oka := NamespaceValue(ao)
		nb, okb := NamespaceValue(bo)
		return oka && okb && na.URI == nb.URI
	case tags.IsSingle(types.TagFunction):
		pa, pb := funcData(ao), funcData(bo)
		if pa != nil && pb != nil && pa.method != nil {
			return pa.method == pb.method && pa.boundRecv == pb.boundRecv
		}
	}
	return false
}

// compareResult distinguishes the four relational outcomes.
type compareResult int8

const (
	compareLess compareResult = iota
	compareEqual
	compareGreater
	compareUnordered
)

func compareValues(a, b Any) (compareResult, error) {
	pa, err := ToPrimitive(a, HintNumber)
	if err != nil {
		return compareUnordered, err
	}
	pb, err := ToPrimitive(b, HintNumber)
	if err != nil {
		return compareUnordered, err
	}
	if pa.HasObject() && pb.HasObject() &&
		pa.Object().Tag() == types.TagString && pb.Object().Tag() == types.TagString {
		sa, sb := pa.Object().StringValue(), pb.Object().StringValue()
		switch {
		case sa < sb:
			return compareLess, nil
		case sa > sb:
			return compareGreater, nil
		default:
			return compareEqual, nil
		}
	}
	fa, err := ToNumber(pa)
	if err != nil {
		return compareUnordered, err
	}
	fb, err := ToNumber(pb)
	if err != nil {
		return compareUnordered, err
	}
	switch {
	case math.IsNaN(fa) || math.IsNaN(fb):
		return compareUnordered, nil
	case fa < fb:
		return compareLess, nil
	case fa > fb:
		return compareGreater, nil
	default:
		return compareEqual, nil
	}
}

// LessThan implements <. Comparisons involving NaN (and therefore
// undefined) yield false.
func LessThan(a, b Any) (bool, error) {
	r, err := compareValues(a, b)
	return r == compareLess, err
}

// LessEquals implements <=.
func LessEquals(a, b Any) (bool, error) {
	r, err := compareValues(a, b)
	return r == compareLess || r == compareEqual, err
}

// GreaterThan implements > as the mirror of <.
func GreaterThan(a, b Any) (bool, error) {
	return LessThan(b, a)
}

// GreaterEquals implements >= as the mirror of <=.
func GreaterEquals(a, b Any) (bool, error) {
	return LessEquals(b, a)
}

// Add implements the AS3 + operator.
func Add(a, b Any) (Any, error) {
	tags := tagSetOfPair(a, b)
	if tags.IsSubsetOf(types.NumericOrBoolTags) {
		fa, err := ToNumber(a)
		if err != nil {
			return Any{}, err
		}
		fb, err := ToNumber(b)
		if err != nil {
			return Any{}, err
		}
		return NumberAny(fa + fb), nil
	}
	if tags.ContainsAny(types.StringOrDateTags) {
		return addStrings(a, b)
	}
	if isXMLValue(a) && isXMLValue(b) {
		if h := currentXMLHelper(); h != nil {
			return h.Concatenate(a, b)
		}
	}
	pa, err := ToPrimitive(a, HintNone)
	if err != nil {
		return Any{}, err
	}
	pb, err := ToPrimitive(b, HintNone)
	if err != nil {
		return Any{}, err
	}
	if tagSetOfPair(pa, pb).ContainsAny(types.StringOrDateTags) {
		return addStrings(pa, pb)
	}
	fa, err := ToNumber(pa)
	if err != nil {
		return Any{}, err
	}
	fb, err := ToNumber(pb)
	if err != nil {
		return Any{}, err
	}
	return NumberAny(fa + fb), nil
}

func addStrings(a, b Any) (Any, error) {
	sa, err := ConvertString(a)
	if err != nil {
		return Any{}, err
	}
	sb, err := ConvertString(b)
	if err != nil {
		return Any{}, err
	}
	return StringAny(sa + sb), nil
}

// TypeOf implements the typeof operator. null is "object", like every
// non-primitive reference.
func TypeOf(a Any) string {
	if a.IsUndefined() {
		return "undefined"
	}
	if a.IsNull() {
		return "object"
	}
	switch a.Object().Tag() {
	case types.TagInt, types.TagUint, types.TagNumber:
		return "number"
	case types.TagBoolean:
		return "boolean"
	case types.TagString:
		return "string"
	case types.TagFunction:
		return "function"
	case types.TagXML, types.TagXMLList:
		return "xml"
	default:
		return "object"
	}
}

// InstanceOf implements the instanceof operator: a prototype-chain walk
// against the right-hand side's prototype object. Interfaces always yield
// false.
func InstanceOf(v Any, target Any) (bool, error) {
	var protoObj *Object
	if c, ok := ClassInfoOf(target); ok {
		if c.Interface {
			return false, nil
		}
		protoObj = c.Prototype
	} else if fo := target.Object(); fo != nil && fo.Tag() == types.TagFunction {
		protoObj = FunctionPrototype(fo)
	} else {
		return false, NewTypeErrorCode(ErrNotClass, "instanceof")
	}
	if protoObj == nil {
		return false, nil
	}
	o := v.Object()
	if o == nil {
		return false, nil
	}
	cur := o.Proto()
	for steps := 0; cur != nil && steps < protoWalkLimit; steps++ {
		if cur == protoObj {
			return true, nil
		}
		cur = cur.Proto()
	}
	return false, nil
}

// IsType implements the is operator: class membership including interfaces.
// For the numeric classes, membership means the value round-trips exactly
// through the target representation.
func IsType(v Any, target Any) (bool, error) {
	c, ok := ClassInfoOf(target)
	if !ok {
		return false, NewTypeErrorCode(ErrNotClass, "is")
	}
	if v.IsUndefinedOrNull() {
		return false, nil
	}
	o := v.Object()
	tag := o.Tag()

	switch c.Tag {
	case types.TagInt:
		if !types.NumericTags.Contains(tag) {
			return false, nil
		}
		f := o.NumberValue()
		return f == math.Trunc(f) && !math.IsInf(f, 0) && f >= math.MinInt32 && f <= math.MaxInt32, nil
	case types.TagUint:
		if !types.NumericTags.Contains(tag) {
			return false, nil
		}
		f := o.NumberValue()
		return f == math.Trunc(f) && !math.IsInf(f, 0) && f >= 0 && f <= math.MaxUint32, nil
	case types.TagNumber:
		return types.NumericTags.Contains(tag), nil
	case types.TagString:
		return tag == types.TagString, nil
	case types.TagBoolean:
		return tag == types.TagBoolean, nil
	}
	if c.Interface {
		return o.Class().Implements(c), nil
	}
	return o.Class().IsSubclassOf(c), nil
}

// AsType implements the as operator: the value when is holds, null
// otherwise.
func AsType(v Any, target Any) (Any, error) {
	ok, err := IsType(v, target)
	if err != nil {
		return Any{}, err
	}
	if ok {
		return v, nil
	}
	return Null(), nil
}

// ApplyType implements generic type application. Vector is the only generic
// class in this runtime; the single parameter is a class or the `*`
// sentinel (null).
func ApplyType(generic Any, params []Any) (Any, error) {
	c, ok := ClassInfoOf(generic)
	if !ok {
		return Any{}, NewTypeErrorCode(ErrNotClass, "applytype")
	}
	if c.Tag != types.TagVector || c.ElemClass != nil || c.ElemAny {
		return Any{}, NewTypeErrorCode(ErrNotClass, c.Name.String())
	}
	if len(params) != 1 {
		return Any{}, NewTypeErrorCode(ErrTypeParameterCount, 1, len(params))
	}
	if params[0].IsNull() {
		return FromObject(NewClassObject(VectorClassOf(nil))), nil
	}
	elem, ok := ClassInfoOf(params[0])
	if !ok {
		return Any{}, NewTypeErrorCode(ErrNotClass, "type parameter")
	}
	return FromObject(NewClassObject(VectorClassOf(elem))), nil
}

// CheckFilter validates the receiver of a filter expression. Only XML and
// XMLList support filtering.
func CheckFilter(v Any) (Any, error) {
	if isXMLValue(v) {
		return v, nil
	}
	name := "null"
	if o := v.Object(); o != nil {
		name = o.Class().Name.String()
	}
	return Any{}, NewTypeErrorCode(ErrFilterNonXML, name)
}
