package runtime

import (
	"github.com/mkalinski/go-avm2/internal/types"
	"github.com/mkalinski/go-avm2/pkg/qname"
)

// anyState distinguishes the three logical states of an Any.
type anyState uint8

const (
	stateUndefined anyState = iota
	stateNull
	stateObject
)

// Any is the tri-state value holder used in every slot, argument, and return:
// undefined, null, or a reference to an Object. The zero value is undefined,
// so uninitialized slots and array elements are undefined without explicit
// work.
type Any struct {
	obj   *Object
	state anyState
}

// Undefined returns the undefined value. Equivalent to the zero Any.
func Undefined() Any {
	return Any{}
}

// Null returns the null value.
func Null() Any {
	return Any{state: stateNull}
}

// FromObject wraps an object reference. A nil object becomes null.
func FromObject(o *Object) Any {
	if o == nil {
		return Null()
	}
	return Any{obj: o, state: stateObject}
}

// IntAny boxes an int and wraps it.
func IntAny(v int32) Any {
	return FromObject(BoxInt(v))
}

// UintAny boxes a uint and wraps it.
func UintAny(v uint32) Any {
	return FromObject(BoxUint(v))
}

// NumberAny boxes a Number and wraps it.
func NumberAny(v float64) Any {
	return FromObject(BoxNumber(v))
}

// StringAny boxes a String and wraps it.
func StringAny(s string) Any {
	return FromObject(BoxString(s))
}

// BoolAny wraps a Boolean singleton.
func BoolAny(b bool) Any {
	return FromObject(BoxBoolean(b))
}

// IsUndefined reports whether the value is undefined.
func (a Any) IsUndefined() bool {
	return a.state == stateUndefined
}

// IsNull reports whether the value is null.
func (a Any) IsNull() bool {
	return a.state == stateNull
}

// IsUndefinedOrNull reports whether the value is undefined or null.
func (a Any) IsUndefinedOrNull() bool {
	return a.state != stateObject
}

// HasObject reports whether the value references an object.
func (a Any) HasObject() bool {
	return a.state == stateObject
}

// Object returns the referenced object, or nil for undefined/null.
func (a Any) Object() *Object {
	if a.state != stateObject {
		return nil
	}
	return a.obj
}

// SameReference is reference equality: null==null, undefined==undefined,
// identical object pointers. undefined != null. Value equality lives in
// WeakEquals/StrictEquals.
func (a Any) SameReference(b Any) bool {
	if a.state != b.state {
		return false
	}
	if a.state != stateObject {
		return true
	}
	return a.obj == b.obj
}

// Tag returns the class tag of the referenced object. Undefined and null
// report TagObject; operator dispatch special-cases them before asking.
func (a Any) Tag() types.ClassTag {
	if a.state != stateObject {
		return types.TagObject
	}
	return a.obj.Tag()
}

// receiver guards shared by the binding forwards below.
func (a Any) receiver(name string) (*Object, error) {
	switch a.state {
	case stateUndefined:
		return nil, NewReferenceErrorCode(ErrUndefinedReference, name)
	case stateNull:
		return nil, NewTypeErrorCode(ErrNullReference, name)
	}
	return a.obj, nil
}

// ============================================================================
// Throwing binding verbs
// ============================================================================
//
// Each verb forwards to the object's try form and converts a negative Status
// into the appropriate ReferenceError/TypeError. Accessing any property of
// undefined or null fails up front.

// GetProperty resolves a property by QName and returns its value.
func (a Any) GetProperty(name qname.QName, opts types.BindOptions) (Any, error) {
	o, err := a.receiver(name.String())
	if err != nil {
		return Any{}, err
	}
	v, st, err := o.GetPropertyQ(name, opts)
	if err != nil {
		return Any{}, err
	}
	return v, statusError("get", name.String(), st)
}

// GetPropertyNS resolves a property by local name over a namespace set.
func (a Any) GetPropertyNS(local string, set *qname.NamespaceSet, opts types.BindOptions) (Any, error) {
	o, err := a.receiver(local)
	if err != nil {
		return Any{}, err
	}
	v, st, err := o.GetPropertyNS(local, set, opts)
	if err != nil {
		return Any{}, err
	}
	return v, statusError("get", local, st)
}

// GetPropertyObj resolves a property addressed by an arbitrary key value.
func (a Any) GetPropertyObj(key Any, opts types.BindOptions) (Any, error) {
	o, err := a.receiver("[]")
	if err != nil {
		return Any{}, err
	}
	v, st, err := o.GetPropertyObj(key, opts)
	if err != nil {
		return Any{}, err
	}
	return v, statusError("get", keyName(key), st)
}

// SetProperty assigns a property by QName.
func (a Any) SetProperty(name qname.QName, value Any, opts types.BindOptions) error {
	o, err := a.receiver(name.String())
	if err != nil {
		return err
	}
	st, err := o.SetPropertyQ(name, value, opts)
	if err != nil {
		return err
	}
	return statusError("set", name.String(), st)
}

// SetPropertyNS assigns a property by local name over a namespace set.
func (a Any) SetPropertyNS(local string, set *qname.NamespaceSet, value Any, opts types.BindOptions) error {
	o, err := a.receiver(local)
	if err != nil {
		return err
	}
	st, err := o.SetPropertyNS(local, set, value, opts)
	if err != nil {
		return err
	}
	return statusError("set", local, st)
}

// SetPropertyObj assigns a property addressed by an arbitrary key value.
func (a Any) SetPropertyObj(key Any, value Any, opts types.BindOptions) error {
	o, err := a.receiver("[]")
	if err != nil {
		return err
	}
	st, err := o.SetPropertyObj(key, value, opts)
	if err != nil {
		return err
	}
	return statusError("set", keyName(key), st)
}

// HasProperty reports whether the property resolves.
func (a Any) HasProperty(name qname.QName, opts types.BindOptions) (bool, error) {
	o, err := a.receiver(name.String())
	if err != nil {
		return false, err
	}
	return o.HasPropertyQ(name, opts), nil
}

// CallProperty resolves a property and invokes it.
func (a Any) CallProperty(name qname.QName, args []Any, opts types.BindOptions) (Any, error) {
	o, err := a.receiver(name.String())
	if err != nil {
		return Any{}, err
	}
	v, st, err := o.CallPropertyQ(name, args, opts)
	if err != nil {
		return Any{}, err
	}
	return v, statusError("call", name.String(), st)
}

// CallPropertyObj resolves a property by key and invokes it.
func (a Any) CallPropertyObj(key Any, args []Any, opts types.BindOptions) (Any, error) {
	o, err := a.receiver("[]")
	if err != nil {
		return Any{}, err
	}
	v, st, err := o.CallPropertyObj(key, args, opts)
	if err != nil {
		return Any{}, err
	}
	return v, statusError("call", keyName(key), st)
}

// ConstructProperty resolves a property and constructs through it.
func (a Any) ConstructProperty(name qname.QName, args []Any, opts types.BindOptions) (Any, error) {
	o, err := a.receiver(name.String())
	if err != nil {
		return Any{}, err
	}
	v, st, err := o.ConstructPropertyQ(name, args, opts)
	if err != nil {
		return Any{}, err
	}
	return v, statusError("construct", name.String(), st)
}

// DeleteProperty removes a dynamic property. Traits cannot be deleted.
func (a Any) DeleteProperty(name qname.QName, opts types.BindOptions) (bool, error) {
	o, err := a.receiver(name.String())
	if err != nil {
		return false, err
	}
	deleted, _ := o.DeletePropertyQ(name, opts)
	return deleted, nil
}

// Descendants applies the ".." operator.
func (a Any) Descendants(name qname.QName, opts types.BindOptions) (Any, error) {
	o, err := a.receiver(name.String())
	if err != nil {
		return Any{}, err
	}
	v, st, err := o.DescendantsQ(name, opts)
	if err != nil {
		return Any{}, err
	}
	return v, statusError("descendants", name.String(), st)
}

// keyName renders an object key for diagnostics without running user code.
func keyName(key Any) string {
	switch {
	case key.IsUndefined():
		return "undefined"
	case key.IsNull():
		return "null"
	}
	o := key.Object()
	switch o.Tag() {
	case types.TagString:
		return o.StringValue()
	case types.TagInt, types.TagUint, types.TagNumber:
		return FormatNumber(o.NumberValue())
	case types.TagQName:
		if q, ok := QNameValue(o); ok {
			return q.String()
		}
	}
	return o.Tag().String()
}
