package runtime

import (
	"math"
	"strconv"
	"strings"

	"github.com/mkalinski/go-avm2/internal/types"
	"github.com/mkalinski/go-avm2/pkg/qname"
)

// ============================================================================
// Value coercion
// ============================================================================
//
// The conversions here are the AS3/ECMA-262 rules, not the host ABI's:
// float→int reduces modulo 2^32, string→number understands hex prefixes and
// signed infinities, and object conversion routes through to_primitive.

// Hint directs to_primitive's method order.
type Hint uint8

const (
	HintNone Hint = iota
	HintNumber
	HintString
)

var (
	valueOfName  = qname.PublicName("valueOf")
	toStringName = qname.PublicName("toString")
)

// ToPrimitive converts an object value to a primitive. Number hint tries
// valueOf before toString; string hint the reverse. Dates default to the
// string hint, everything else to number. A value that is already primitive
// returns unchanged.
func ToPrimitive(a Any, hint Hint) (Any, error) {
	o := a.Object()
	if o == nil {
		return a, nil
	}
	tag := o.Tag()
	if types.PrimitiveTags.Contains(tag) {
		return a, nil
	}
	if hint == HintNone {
		if tag == types.TagDate {
			hint = HintString
		} else {
			hint = HintNumber
		}
	}
	order := [2]qname.QName{valueOfName, toStringName}
	if hint == HintString {
		order[0], order[1] = toStringName, valueOfName
	}
	for _, method := range order {
		v, st, err := o.CallPropertyQ(method, nil, types.BindGetDefault)
		if err != nil {
			return Any{}, err
		}
		if st != types.StatusSuccess {
			continue
		}
		if v.IsUndefinedOrNull() || types.PrimitiveTags.Contains(v.Tag()) {
			return v, nil
		}
	}
	return Any{}, NewTypeErrorCode(ErrConvertToPrimitive, tag.String())
}

// ToPrimitiveNumberHint is ToPrimitive with the number hint.
func ToPrimitiveNumberHint(a Any) (Any, error) {
	return ToPrimitive(a, HintNumber)
}

// ToPrimitiveStringHint is ToPrimitive with the string hint.
func ToPrimitiveStringHint(a Any) (Any, error) {
	return ToPrimitive(a, HintString)
}

// ToBoolean applies AS3 truthiness. Never fails.
func ToBoolean(a Any) bool {
	o := a.Object()
	if o == nil {
		return false
	}
	switch o.Tag() {
	case types.TagBoolean:
		return o.BoolValue()
	case types.TagInt:
		return o.IntValue() != 0
	case types.TagUint:
		return o.UintValue() != 0
	case types.TagNumber:
		f := o.NumberValue()
		return f != 0 && !math.IsNaN(f)
	case types.TagString:
		return o.StringValue() != ""
	}
	return true
}

// ToNumber converts a value to a Number. undefined is NaN, null is 0,
// objects route through to_primitive with the number hint.
func ToNumber(a Any) (float64, error) {
	if a.IsUndefined() {
		return math.NaN(), nil
	}
	if a.IsNull() {
		return 0, nil
	}
	o := a.Object()
	switch o.Tag() {
	case types.TagInt, types.TagUint, types.TagNumber, types.TagBoolean, types.TagDate:
		return o.NumberValue(), nil
	case types.TagString:
		return StringToNumber(o.StringValue()), nil
	}
	prim, err := ToPrimitiveNumberHint(a)
	if err != nil {
		return 0, err
	}
	return ToNumber(prim)
}

// ToInt32 converts a value with the ECMAScript ToInt32 reduction.
func ToInt32(a Any) (int32, error) {
	f, err := ToNumber(a)
	if err != nil {
		return 0, err
	}
	return Float64ToInt32(f), nil
}

// ToUint32 converts a value with the ECMAScript ToUint32 reduction.
func ToUint32(a Any) (uint32, error) {
	f, err := ToNumber(a)
	if err != nil {
		return 0, err
	}
	return Float64ToUint32(f), nil
}

// Float64ToInt32 is ECMAScript ToInt32: zero for NaN and infinities,
// otherwise truncate toward zero and reduce modulo 2^32 into signed range.
func Float64ToInt32(f float64) int32 {
	return int32(Float64ToUint32(f))
}

// Float64ToUint32 is ECMAScript ToUint32.
func Float64ToUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	const two32 = 4294967296.0
	f = math.Mod(f, two32)
	if f < 0 {
		f += two32
	}
	return uint32(f)
}

// ConvertString renders a value as a string the way string contexts do:
// null becomes "null" and undefined becomes "undefined". Objects route
// through to_primitive with the string hint.
func ConvertString(a Any) (string, error) {
	if a.IsUndefined() {
		return "undefined", nil
	}
	if a.IsNull() {
		return "null", nil
	}
	o := a.Object()
	switch o.Tag() {
	case types.TagString:
		return o.StringValue(), nil
	case types.TagInt:
		return strconv.FormatInt(int64(o.IntValue()), 10), nil
	case types.TagUint:
		return strconv.FormatUint(uint64(o.UintValue()), 10), nil
	case types.TagNumber:
		return FormatNumber(o.NumberValue()), nil
	case types.TagBoolean:
		if o.BoolValue() {
			return "true", nil
		}
		return "false", nil
	case types.TagQName:
		if q, ok := QNameValue(o); ok {
			return q.String(), nil
		}
	case types.TagNamespace:
		if ns, ok := NamespaceValue(o); ok {
			return ns.URI, nil
		}
	case types.TagError:
		return ErrorToString(o), nil
	}
	prim, err := ToPrimitiveStringHint(a)
	if err != nil {
		return "", err
	}
	if prim.HasObject() && prim.Object() == o {
		return o.Tag().String(), nil
	}
	return ConvertString(prim)
}

// StringToNumber parses a string the ECMAScript way: whitespace-only is 0,
// a 0x/0X prefix parses hexadecimal, otherwise decimal including scientific
// form and signed Infinity. Anything else is NaN.
func StringToNumber(s string) float64 {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0
	}
	neg := false
	body := t
	if body[0] == '+' || body[0] == '-' {
		neg = body[0] == '-'
		body = body[1:]
	}
	if len(body) > 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		u, err := strconv.ParseUint(body[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		f := float64(u)
		if neg {
			f = -f
		}
		return f
	}
	if body == "Infinity" {
		if neg {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	// ParseFloat is laxer than the language: it also accepts "inf", "nan",
	// and hex-float spellings that must read as NaN here.
	if strings.ContainsAny(body, "iInNxXpP") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// CoerceToClass applies the explicit coercion C(v), used when a class
// object is called as a function.
func CoerceToClass(v Any, c *ClassInfo) (Any, error) {
	switch c.Tag {
	case types.TagInt:
		i, err := ToInt32(v)
		if err != nil {
			return Any{}, err
		}
		return IntAny(i), nil
	case types.TagUint:
		u, err := ToUint32(v)
		if err != nil {
			return Any{}, err
		}
		return UintAny(u), nil
	case types.TagNumber:
		f, err := ToNumber(v)
		if err != nil {
			return Any{}, err
		}
		return NumberAny(f), nil
	case types.TagBoolean:
		return BoolAny(ToBoolean(v)), nil
	case types.TagString:
		if v.IsUndefinedOrNull() {
			return Null(), nil
		}
		s, err := ConvertString(v)
		if err != nil {
			return Any{}, err
		}
		return StringAny(s), nil
	}
	if v.IsUndefinedOrNull() {
		return Null(), nil
	}
	obj := v.Object()
	if obj.Class().IsSubclassOf(c) || obj.Class().Implements(c) {
		return v, nil
	}
	return Any{}, NewTypeErrorCode(ErrCoercionFailed, obj.Class().Name.String(), c.Name.String())
}
