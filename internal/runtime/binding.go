package runtime

import (
	"github.com/mkalinski/go-avm2/internal/types"
	"github.com/mkalinski/go-avm2/pkg/qname"
)

// protoWalkLimit bounds every prototype-chain walk. User code can assign
// proto and build cycles; past the bound a walk reports a miss.
const protoWalkLimit = 1024

// ============================================================================
// Binding core
// ============================================================================
//
// Every property verb resolves over (traits × dynamic × prototype) under a
// BindOptions flag set. The try forms below return a Status so the caller
// can stay off the exception path; the throwing layer lives on Any.
//
// The error return carries only thrown values from invoked trait or user
// code, never resolution misses.

// GetPropertyQ resolves a read by exact qualified name.
func (o *Object) GetPropertyQ(name qname.QName, opts types.BindOptions) (Any, types.Status, error) {
	o.ensure()
	if name.NS.IsAny() || opts.Has(types.BindAttribute) {
		return Any{}, types.StatusNotFound, nil
	}
	if opts.Has(types.BindSearchTraits) {
		st, tr := o.class.LookupTraitQ(name, false)
		switch st {
		case types.StatusSuccess:
			st2, v, err := tr.TryGet(o)
			return v, st2, err
		case types.StatusAmbiguous:
			return Any{}, st, nil
		}
	}
	if name.NS.IsPublic() && (name.Local != "" || opts.Has(types.BindRuntimeName)) {
		return o.getDynamic(name.Local, opts)
	}
	return Any{}, types.StatusNotFound, nil
}

// GetPropertyNS resolves a read by local name over a namespace set.
func (o *Object) GetPropertyNS(local string, set *qname.NamespaceSet, opts types.BindOptions) (Any, types.Status, error) {
	o.ensure()
	if opts.Has(types.BindAttribute) {
		return Any{}, types.StatusNotFound, nil
	}
	if opts.Has(types.BindSearchTraits) {
		st, tr := o.class.LookupTraitNS(local, set, false)
		switch st {
		case types.StatusSuccess:
			st2, v, err := tr.TryGet(o)
			return v, st2, err
		case types.StatusAmbiguous:
			return Any{}, st, nil
		}
	}
	if set.ContainsPublic() && (local != "" || opts.Has(types.BindRuntimeName)) {
		return o.getDynamic(local, opts)
	}
	return Any{}, types.StatusNotFound, nil
}

// getDynamic is the shared dynamic/prototype tail of the GET algorithm.
func (o *Object) getDynamic(key string, opts types.BindOptions) (Any, types.Status, error) {
	if opts.Has(types.BindSearchDynamic) && o.dynProps != nil {
		if opts.Has(types.BindSearchPrototype) {
			if v, ok := searchPrototypeChain(o, key); ok {
				return v, types.StatusSuccess, nil
			}
			return Any{}, types.StatusSoftSuccess, nil
		}
		if v, ok := o.dynProps.TryGetValue(key); ok {
			return v, types.StatusSuccess, nil
		}
		return Any{}, types.StatusSoftSuccess, nil
	}
	if opts.Has(types.BindSearchPrototype) {
		if o.proto != nil {
			if v, ok := searchPrototypeChain(o.proto, key); ok {
				return v, types.StatusSuccess, nil
			}
		}
		return Any{}, types.StatusNotFound, nil
	}
	return Any{}, types.StatusNotFound, nil
}

// SetPropertyQ resolves a write by exact qualified name. A miss with
// SEARCH_DYNAMIC set creates a dynamic property on the receiver, but only
// under a public namespace.
func (o *Object) SetPropertyQ(name qname.QName, value Any, opts types.BindOptions) (types.Status, error) {
	o.ensure()
	if name.NS.IsAny() || opts.Has(types.BindAttribute) {
		return types.StatusNotFound, nil
	}
	if opts.Has(types.BindSearchTraits) {
		st, tr := o.class.LookupTraitQ(name, false)
		switch st {
		case types.StatusSuccess:
			return tr.TrySet(o, value)
		case types.StatusAmbiguous:
			return st, nil
		}
	}
	if !opts.Has(types.BindSearchDynamic) {
		return types.StatusNotFound, nil
	}
	if name.NS.IsPublic() && (name.Local != "" || opts.Has(types.BindRuntimeName)) {
		if o.dynProps == nil {
			return types.StatusNotFound, nil
		}
		o.dynProps.Set(name.Local, value)
		return types.StatusSuccess, nil
	}
	return types.StatusFailedCreateDynamicNonPublic, nil
}

// SetPropertyNS resolves a write by local name over a namespace set.
func (o *Object) SetPropertyNS(local string, set *qname.NamespaceSet, value Any, opts types.BindOptions) (types.Status, error) {
	o.ensure()
	if opts.Has(types.BindAttribute) {
		return types.StatusNotFound, nil
	}
	if opts.Has(types.BindSearchTraits) {
		st, tr := o.class.LookupTraitNS(local, set, false)
		switch st {
		case types.StatusSuccess:
			return tr.TrySet(o, value)
		case types.StatusAmbiguous:
			return st, nil
		}
	}
	if !opts.Has(types.BindSearchDynamic) {
		return types.StatusNotFound, nil
	}
	if set.ContainsPublic() && (local != "" || opts.Has(types.BindRuntimeName)) {
		if o.dynProps == nil {
			return types.StatusNotFound, nil
		}
		o.dynProps.Set(local, value)
		return types.StatusSuccess, nil
	}
	return types.StatusFailedCreateDynamicNonPublic, nil
}

// HasPropertyQ reports whether a read would resolve. Trait getters do not
// run; presence of the trait suffices.
func (o *Object) HasPropertyQ(name qname.QName, opts types.BindOptions) bool {
	o.ensure()
	if name.NS.IsAny() || opts.Has(types.BindAttribute) {
		return false
	}
	if opts.Has(types.BindSearchTraits) {
		if st, _ := o.class.LookupTraitQ(name, false); st == types.StatusSuccess {
			return true
		}
	}
	if name.NS.IsPublic() && name.Local != "" {
		if opts.Has(types.BindSearchDynamic) && o.dynProps != nil {
			if o.dynProps.GetIndex(name.Local) >= 0 {
				return true
			}
		}
		if opts.Has(types.BindSearchPrototype) {
			start := o
			if o.dynProps == nil || !opts.Has(types.BindSearchDynamic) {
				start = o.proto
			}
			if start != nil {
				if _, ok := searchPrototypeChain(start, name.Local); ok {
					return true
				}
			}
		}
	}
	return false
}

// CallPropertyQ resolves a property by qualified name and invokes it. The
// receiver is the object itself unless NULL_RECEIVER is set.
func (o *Object) CallPropertyQ(name qname.QName, args []Any, opts types.BindOptions) (Any, types.Status, error) {
	o.ensure()
	if name.NS.IsAny() || opts.Has(types.BindAttribute) {
		return Any{}, types.StatusNotFound, nil
	}
	if opts.Has(types.BindSearchTraits) {
		st, tr := o.class.LookupTraitQ(name, false)
		switch st {
		case types.StatusSuccess:
			st2, v, err := tr.TryInvoke(o.callReceiver(opts), args)
			return v, st2, err
		case types.StatusAmbiguous:
			return Any{}, st, nil
		}
	}
	if name.NS.IsPublic() && (name.Local != "" || opts.Has(types.BindRuntimeName)) {
		v, st, err := o.getDynamic(name.Local, opts)
		if err != nil {
			return Any{}, st, err
		}
		if st != types.StatusSuccess {
			return Any{}, st, nil
		}
		return o.invokeResolved(v, args, opts)
	}
	return Any{}, types.StatusNotFound, nil
}

// CallPropertyNS resolves a property over a namespace set and invokes it.
func (o *Object) CallPropertyNS(local string, set *qname.NamespaceSet, args []Any, opts types.BindOptions) (Any, types.Status, error) {
	o.ensure()
	if opts.Has(types.BindAttribute) {
		return Any{}, types.StatusNotFound, nil
	}
	if opts.Has(types.BindSearchTraits) {
		st, tr := o.class.LookupTraitNS(local, set, false)
		switch st {
		case types.StatusSuccess:
			st2, v, err := tr.TryInvoke(o.callReceiver(opts), args)
			return v, st2, err
		case types.StatusAmbiguous:
			return Any{}, st, nil
		}
	}
	if set.ContainsPublic() && (local != "" || opts.Has(types.BindRuntimeName)) {
		v, st, err := o.getDynamic(local, opts)
		if err != nil {
			return Any{}, st, err
		}
		if st != types.StatusSuccess {
			return Any{}, st, nil
		}
		return o.invokeResolved(v, args, opts)
	}
	return Any{}, types.StatusNotFound, nil
}

func (o *Object) callReceiver(opts types.BindOptions) Any {
	if opts.Has(types.BindNullReceiver) {
		return Null()
	}
	return FromObject(o)
}

func (o *Object) invokeResolved(v Any, args []Any, opts types.BindOptions) (Any, types.Status, error) {
	if !IsCallable(v) {
		return Any{}, types.StatusFailedNotFunction, nil
	}
	res, err := CallValue(v, o.callReceiver(opts), args)
	return res, types.StatusSuccess, err
}

// ConstructPropertyQ resolves a property by qualified name and constructs
// through it.
func (o *Object) ConstructPropertyQ(name qname.QName, args []Any, opts types.BindOptions) (Any, types.Status, error) {
	o.ensure()
	if name.NS.IsAny() || opts.Has(types.BindAttribute) {
		return Any{}, types.StatusNotFound, nil
	}
	if opts.Has(types.BindSearchTraits) {
		st, tr := o.class.LookupTraitQ(name, false)
		switch st {
		case types.StatusSuccess:
			st2, v, err := tr.TryConstruct(o, args)
			return v, st2, err
		case types.StatusAmbiguous:
			return Any{}, st, nil
		}
	}
	if name.NS.IsPublic() && (name.Local != "" || opts.Has(types.BindRuntimeName)) {
		v, st, err := o.getDynamic(name.Local, opts)
		if err != nil {
			return Any{}, st, err
		}
		if st != types.StatusSuccess {
			return Any{}, st, nil
		}
		if !IsConstructible(v) {
			return Any{}, types.StatusFailedNotConstructor, nil
		}
		res, err := ConstructValue(v, args)
		return res, types.StatusSuccess, err
	}
	return Any{}, types.StatusNotFound, nil
}

// DeletePropertyQ removes a dynamic property. Traits cannot be deleted: a
// delete that lands on a trait reports false with Success, matching AS3's
// "delete on a fixed property yields false".
func (o *Object) DeletePropertyQ(name qname.QName, opts types.BindOptions) (bool, types.Status) {
	o.ensure()
	if name.NS.IsAny() || opts.Has(types.BindAttribute) {
		return false, types.StatusNotFound
	}
	if opts.Has(types.BindSearchTraits) {
		if st, _ := o.class.LookupTraitQ(name, false); st == types.StatusSuccess {
			return false, types.StatusSuccess
		}
	}
	if opts.Has(types.BindSearchDynamic) && o.dynProps != nil &&
		name.NS.IsPublic() && (name.Local != "" || opts.Has(types.BindRuntimeName)) {
		return o.dynProps.Delete(name.Local), types.StatusSuccess
	}
	return false, types.StatusNotFound
}

// DescendantsQ applies the ".." operator. Only the XML subsystem implements
// it; everything else reports FailedDescendantOp.
func (o *Object) DescendantsQ(name qname.QName, opts types.BindOptions) (Any, types.Status, error) {
	o.ensure()
	if types.XMLTags.Contains(o.class.Tag) {
		if h := currentXMLHelper(); h != nil {
			v, err := h.Descendants(FromObject(o), name)
			return v, types.StatusSuccess, err
		}
	}
	return Any{}, types.StatusFailedDescendantOp, nil
}

// ============================================================================
// Object-key overloads
// ============================================================================

// indexKey tries the class's index-property capability for a numeric
// key. It applies only when SEARCH_DYNAMIC is set and ATTRIBUTE is not.
func (o *Object) indexKey(key Any, opts types.BindOptions) (*Object, bool) {
	if !opts.Has(types.BindSearchDynamic) || opts.Has(types.BindAttribute) {
		return nil, false
	}
	if o.class.Specials == nil {
		return nil, false
	}
	k := key.Object()
	if k == nil {
		return nil, false
	}
	switch k.Tag() {
	case types.TagInt, types.TagUint, types.TagNumber:
		return k, true
	}
	return nil, false
}

// resolveKey turns an arbitrary key into a QName: QName objects unwrap,
// everything else coerces to a string in the public namespace.
func resolveKey(key Any) (qname.QName, error) {
	if o := key.Object(); o != nil && o.Tag() == types.TagQName {
		if q, ok := QNameValue(o); ok {
			return q, nil
		}
	}
	s, err := ConvertString(key)
	if err != nil {
		return qname.QName{}, err
	}
	return qname.PublicName(s), nil
}

// GetPropertyObj resolves a read addressed by an arbitrary key value.
func (o *Object) GetPropertyObj(key Any, opts types.BindOptions) (Any, types.Status, error) {
	o.ensure()
	if k, ok := o.indexKey(key, opts); ok {
		sp := o.class.Specials
		switch k.Tag() {
		case types.TagInt:
			if sp.GetInt != nil {
				return sp.GetInt(o, k.IntValue())
			}
		case types.TagUint:
			if sp.GetUint != nil {
				return sp.GetUint(o, k.UintValue())
			}
		case types.TagNumber:
			if sp.GetDouble != nil {
				return sp.GetDouble(o, k.NumberValue())
			}
		}
	}
	name, err := resolveKey(key)
	if err != nil {
		return Any{}, types.StatusNotFound, err
	}
	return o.GetPropertyQ(name, opts|types.BindRuntimeName)
}

// GetPropertyObjNS resolves a read addressed by a key value over a
// namespace set.
func (o *Object) GetPropertyObjNS(key Any, set *qname.NamespaceSet, opts types.BindOptions) (Any, types.Status, error) {
	o.ensure()
	if k, ok := o.indexKey(key, opts); ok {
		sp := o.class.Specials
		switch k.Tag() {
		case types.TagInt:
			if sp.GetInt != nil {
				return sp.GetInt(o, k.IntValue())
			}
		case types.TagUint:
			if sp.GetUint != nil {
				return sp.GetUint(o, k.UintValue())
			}
		case types.TagNumber:
			if sp.GetDouble != nil {
				return sp.GetDouble(o, k.NumberValue())
			}
		}
	}
	if obj := key.Object(); obj != nil && obj.Tag() == types.TagQName {
		if q, ok := QNameValue(obj); ok {
			return o.GetPropertyQ(q, opts|types.BindRuntimeName)
		}
	}
	s, err := ConvertString(key)
	if err != nil {
		return Any{}, types.StatusNotFound, err
	}
	return o.GetPropertyNS(s, set, opts|types.BindRuntimeName)
}

// SetPropertyObj resolves a write addressed by an arbitrary key value.
func (o *Object) SetPropertyObj(key Any, value Any, opts types.BindOptions) (types.Status, error) {
	o.ensure()
	if k, ok := o.indexKey(key, opts); ok {
		sp := o.class.Specials
		switch k.Tag() {
		case types.TagInt:
			if sp.SetInt != nil {
				return sp.SetInt(o, k.IntValue(), value)
			}
		case types.TagUint:
			if sp.SetUint != nil {
				return sp.SetUint(o, k.UintValue(), value)
			}
		case types.TagNumber:
			if sp.SetDouble != nil {
				return sp.SetDouble(o, k.NumberValue(), value)
			}
		}
	}
	name, err := resolveKey(key)
	if err != nil {
		return types.StatusNotFound, err
	}
	return o.SetPropertyQ(name, value, opts|types.BindRuntimeName)
}

// CallPropertyObj resolves a property by key and invokes it.
func (o *Object) CallPropertyObj(key Any, args []Any, opts types.BindOptions) (Any, types.Status, error) {
	o.ensure()
	if k, ok := o.indexKey(key, opts); ok {
		sp := o.class.Specials
		var v Any
		var st types.Status
		var err error
		switch k.Tag() {
		case types.TagInt:
			if sp.GetInt != nil {
				v, st, err = sp.GetInt(o, k.IntValue())
			}
		case types.TagUint:
			if sp.GetUint != nil {
				v, st, err = sp.GetUint(o, k.UintValue())
			}
		case types.TagNumber:
			if sp.GetDouble != nil {
				v, st, err = sp.GetDouble(o, k.NumberValue())
			}
		}
		if err != nil {
			return Any{}, st, err
		}
		if st == types.StatusSuccess {
			return o.invokeResolved(v, args, opts)
		}
	}
	name, err := resolveKey(key)
	if err != nil {
		return Any{}, types.StatusNotFound, err
	}
	return o.CallPropertyQ(name, args, opts|types.BindRuntimeName)
}

// DeletePropertyObj removes a dynamic property addressed by key.
func (o *Object) DeletePropertyObj(key Any, opts types.BindOptions) (bool, types.Status, error) {
	o.ensure()
	if k, ok := o.indexKey(key, opts); ok {
		sp := o.class.Specials
		if k.Tag() == types.TagInt && sp.DeleteInt != nil {
			deleted, st := sp.DeleteInt(o, k.IntValue())
			return deleted, st, nil
		}
	}
	name, err := resolveKey(key)
	if err != nil {
		return false, types.StatusNotFound, err
	}
	deleted, st := o.DeletePropertyQ(name, opts|types.BindRuntimeName)
	return deleted, st, nil
}

// ============================================================================
// Status → error mapping for the throwing layer
// ============================================================================

func statusError(verb, name string, st types.Status) error {
	switch st {
	case types.StatusSuccess, types.StatusSoftSuccess:
		return nil
	case types.StatusAmbiguous:
		return NewReferenceErrorCode(ErrAmbiguousReference, name)
	case types.StatusFailedNotFunction:
		return NewTypeErrorCode(ErrNotFunction, name)
	case types.StatusFailedNotConstructor:
		return NewTypeErrorCode(ErrNotConstructor, name)
	case types.StatusFailedCreateDynamicNonPublic:
		return NewTypeErrorCode(ErrCreateNonPublic, name)
	case types.StatusFailedDescendantOp:
		return NewTypeErrorCode(ErrDescendantsOp, name)
	default:
		if verb == "set" {
			return NewReferenceErrorCode(ErrWriteSealed, name)
		}
		return NewReferenceErrorCode(ErrPropertyNotFound, name)
	}
}
