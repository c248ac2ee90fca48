package runtime

import (
	"github.com/mkalinski/go-avm2/internal/types"
	"github.com/mkalinski/go-avm2/pkg/qname"
)

// Remaining namespace-set and object-key overloads of the verb set. Each
// shares the resolution tails of its QName sibling.

// HasPropertyNS reports whether a read over the namespace set would resolve.
func (o *Object) HasPropertyNS(local string, set *qname.NamespaceSet, opts types.BindOptions) bool {
	o.ensure()
	if opts.Has(types.BindAttribute) {
		return false
	}
	if opts.Has(types.BindSearchTraits) {
		if st, _ := o.class.LookupTraitNS(local, set, false); st == types.StatusSuccess {
			return true
		}
	}
	if set.ContainsPublic() {
		return o.HasPropertyQ(qname.PublicName(local), opts&^types.BindSearchTraits)
	}
	return false
}

// DeletePropertyNS removes a dynamic property addressed over a namespace
// set.
func (o *Object) DeletePropertyNS(local string, set *qname.NamespaceSet, opts types.BindOptions) (bool, types.Status) {
	o.ensure()
	if opts.Has(types.BindAttribute) {
		return false, types.StatusNotFound
	}
	if opts.Has(types.BindSearchTraits) {
		if st, _ := o.class.LookupTraitNS(local, set, false); st == types.StatusSuccess {
			return false, types.StatusSuccess
		}
	}
	if opts.Has(types.BindSearchDynamic) && o.dynProps != nil && set.ContainsPublic() {
		return o.dynProps.Delete(local), types.StatusSuccess
	}
	return false, types.StatusNotFound
}

// ConstructPropertyNS resolves over a namespace set and constructs through
// the result.
func (o *Object) ConstructPropertyNS(local string, set *qname.NamespaceSet, args []Any, opts types.BindOptions) (Any, types.Status, error) {
	o.ensure()
	if opts.Has(types.BindAttribute) {
		return Any{}, types.StatusNotFound, nil
	}
	if opts.Has(types.BindSearchTraits) {
		st, tr := o.class.LookupTraitNS(local, set, false)
		switch st {
		case types.StatusSuccess:
			st2, v, err := tr.TryConstruct(o, args)
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
		if !IsConstructible(v) {
			return Any{}, types.StatusFailedNotConstructor, nil
		}
		res, err := ConstructValue(v, args)
		return res, types.StatusSuccess, err
	}
	return Any{}, types.StatusNotFound, nil
}

// SetPropertyObjNS resolves a write by key value over a namespace set.
func (o *Object) SetPropertyObjNS(key Any, set *qname.NamespaceSet, value Any, opts types.BindOptions) (types.Status, error) {
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
	if obj := key.Object(); obj != nil && obj.Tag() == types.TagQName {
		if q, ok := QNameValue(obj); ok {
			return o.SetPropertyQ(q, value, opts|types.BindRuntimeName)
		}
	}
	s, err := ConvertString(key)
	if err != nil {
		return types.StatusNotFound, err
	}
	return o.SetPropertyNS(s, set, value, opts|types.BindRuntimeName)
}

// CallPropertyObjNS resolves a property by key value over a namespace set
// and invokes it.
func (o *Object) CallPropertyObjNS(key Any, set *qname.NamespaceSet, args []Any, opts types.BindOptions) (Any, types.Status, error) {
	o.ensure()
	if _, ok := o.indexKey(key, opts); ok {
		v, st, err := o.GetPropertyObj(key, opts)
		if err != nil {
			return Any{}, st, err
		}
		if st == types.StatusSuccess {
			return o.invokeResolved(v, args, opts)
		}
	}
	if obj := key.Object(); obj != nil && obj.Tag() == types.TagQName {
		if q, ok := QNameValue(obj); ok {
			return o.CallPropertyQ(q, args, opts|types.BindRuntimeName)
		}
	}
	s, err := ConvertString(key)
	if err != nil {
		return Any{}, types.StatusNotFound, err
	}
	return o.CallPropertyNS(s, set, args, opts|types.BindRuntimeName)
}
