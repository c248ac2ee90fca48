package runtime

import (
	"github.com/mkalinski/go-avm2/internal/types"
	"github.com/mkalinski/go-avm2/pkg/qname"
)

// NativeMethod is the Go implementation behind a method trait or a prototype
// function. recv is the resolved receiver (null when the call site requested
// a null receiver).
type NativeMethod func(recv Any, args []Any) (Any, error)

// Trait is a statically-declared class member: a slot, accessor, or method.
// Traits are shared by the class; per-instance state lives behind the
// receiver argument.
type Trait interface {
	// TryGet reads the trait's value on the receiver.
	TryGet(recv *Object) (types.Status, Any, error)
	// TrySet writes the trait's value on the receiver.
	TrySet(recv *Object, value Any) (types.Status, error)
	// TryInvoke calls the trait with the given receiver and arguments.
	TryInvoke(recv Any, args []Any) (types.Status, Any, error)
	// TryConstruct constructs through the trait's value.
	TryConstruct(recv *Object, args []Any) (types.Status, Any, error)
}

// SlotTrait is a variable or accessor trait backed by getter/setter hooks.
// A nil Setter makes the slot read-only; a nil Getter makes it write-only.
type SlotTrait struct {
	Getter func(recv *Object) (Any, error)
	Setter func(recv *Object, value Any) error
}

func (s *SlotTrait) TryGet(recv *Object) (types.Status, Any, error) {
	if s.Getter == nil {
		return types.StatusNotFound, Any{}, nil
	}
	v, err := s.Getter(recv)
	if err != nil {
		return types.StatusSuccess, Any{}, err
	}
	return types.StatusSuccess, v, nil
}

func (s *SlotTrait) TrySet(recv *Object, value Any) (types.Status, error) {
	if s.Setter == nil {
		return types.StatusNotFound, nil
	}
	return types.StatusSuccess, s.Setter(recv, value)
}

func (s *SlotTrait) TryInvoke(recv Any, args []Any) (types.Status, Any, error) {
	obj := recv.Object()
	if obj == nil {
		return types.StatusFailedNotFunction, Any{}, nil
	}
	st, v, err := s.TryGet(obj)
	if err != nil || st != types.StatusSuccess {
		return st, v, err
	}
	if !IsCallable(v) {
		return types.StatusFailedNotFunction, Any{}, nil
	}
	res, err := CallValue(v, recv, args)
	return types.StatusSuccess, res, err
}

func (s *SlotTrait) TryConstruct(recv *Object, args []Any) (types.Status, Any, error) {
	st, v, err := s.TryGet(recv)
	if err != nil || st != types.StatusSuccess {
		return st, v, err
	}
	if !IsConstructible(v) {
		return types.StatusFailedNotConstructor, Any{}, nil
	}
	res, err := ConstructValue(v, args)
	return types.StatusSuccess, res, err
}

// MethodTrait is a method trait backed by a native implementation. Reading a
// method trait produces a bound method closure; two closures over the same
// trait and receiver compare weakly equal.
type MethodTrait struct {
	MethodName string
	Fn         NativeMethod
}

func (m *MethodTrait) TryGet(recv *Object) (types.Status, Any, error) {
	return types.StatusSuccess, FromObject(NewBoundMethod(m, recv)), nil
}

func (m *MethodTrait) TrySet(recv *Object, value Any) (types.Status, error) {
	// Method traits are final bindings; assignment is a ReferenceError at
	// the throwing layer.
	return types.StatusNotFound, nil
}

func (m *MethodTrait) TryInvoke(recv Any, args []Any) (types.Status, Any, error) {
	res, err := m.Fn(recv, args)
	return types.StatusSuccess, res, err
}

func (m *MethodTrait) TryConstruct(recv *Object, args []Any) (types.Status, Any, error) {
	return types.StatusFailedNotConstructor, Any{}, nil
}

// traitEntry binds one namespace-qualified name to a trait.
type traitEntry struct {
	ns    qname.Namespace
	trait Trait
}

// EnumHooks lets a class override the for-in cursor. Array-like classes use
// this to iterate numeric indices.
type EnumHooks struct {
	NextIndex func(o *Object, from int32) int32
	NameAt    func(o *Object, i int32) Any
	ValueAt   func(o *Object, i int32) Any
}

// IndexPropertySet carries the index-property fast path for classes whose
// instances are addressed by numeric keys. Nil handlers fall through to the
// string-key path. Handlers own their bounds errors.
type IndexPropertySet struct {
	GetInt    func(o *Object, i int32) (Any, types.Status, error)
	SetInt    func(o *Object, i int32, v Any) (types.Status, error)
	DeleteInt func(o *Object, i int32) (bool, types.Status)

	GetUint func(o *Object, u uint32) (Any, types.Status, error)
	SetUint func(o *Object, u uint32, v Any) (types.Status, error)

	GetDouble func(o *Object, d float64) (Any, types.Status, error)
	SetDouble func(o *Object, d float64, v Any) (types.Status, error)
}

// ClassInfo is the static class descriptor. Descriptors are process-wide
// shared and effectively immutable after publication through the Registry;
// the vtable-style hooks (Specials, Enum, Constructor) give each class its
// polymorphic behavior without per-object function tables.
type ClassInfo struct {
	Name      qname.QName
	Tag       types.ClassTag
	Dynamic   bool
	Interface bool

	Parent     *ClassInfo
	Interfaces []*ClassInfo

	// Prototype is the object new instances chain to. Shared, outlives
	// every instance referencing it.
	Prototype *Object

	// Specials, Enum, and Constructor are the per-class verb overrides.
	Specials    *IndexPropertySet
	Enum        *EnumHooks
	Constructor func(args []Any) (Any, error)

	// ElemClass parameterizes Vector classes. Nil with ElemAny set means
	// Vector.<*>.
	ElemClass *ClassInfo
	ElemAny   bool

	traits map[string][]traitEntry
}

// NewClassInfo builds an unpublished class descriptor.
func NewClassInfo(name qname.QName, tag types.ClassTag, dynamic bool) *ClassInfo {
	return &ClassInfo{
		Name:    name,
		Tag:     tag,
		Dynamic: dynamic,
		traits:  make(map[string][]traitEntry),
	}
}

// AddTrait registers a trait under a qualified name. Later registrations in
// the same namespace shadow earlier ones, matching loader override order.
func (c *ClassInfo) AddTrait(name qname.QName, t Trait) {
	entries := c.traits[name.Local]
	for i, e := range entries {
		if e.ns.Equals(name.NS) {
			entries[i].trait = t
			return
		}
	}
	c.traits[name.Local] = append(entries, traitEntry{ns: name.NS, trait: t})
}

// AddMethod registers a public method trait.
func (c *ClassInfo) AddMethod(local string, fn NativeMethod) {
	c.AddTrait(qname.PublicName(local), &MethodTrait{MethodName: local, Fn: fn})
}

// AddAccessor registers a public accessor slot.
func (c *ClassInfo) AddAccessor(local string, getter func(recv *Object) (Any, error), setter func(recv *Object, value Any) error) {
	c.AddTrait(qname.PublicName(local), &SlotTrait{Getter: getter, Setter: setter})
}

// LookupTraitQ resolves a trait by exact qualified name. The wildcard
// namespace and attribute names never match traits.
func (c *ClassInfo) LookupTraitQ(name qname.QName, attribute bool) (types.Status, Trait) {
	if attribute || name.NS.IsAny() {
		return types.StatusNotFound, nil
	}
	for cur := c; cur != nil; cur = cur.Parent {
		for _, e := range cur.traits[name.Local] {
			if e.ns.Equals(name.NS) {
				return types.StatusSuccess, e.trait
			}
		}
	}
	return types.StatusNotFound, nil
}

// LookupTraitNS resolves a trait by local name over a namespace set. If the
// local name resolves to two or more distinct traits across the set the
// result is Ambiguous and binding must propagate it; the VM raises a
// reference error at the call site.
func (c *ClassInfo) LookupTraitNS(local string, set *qname.NamespaceSet, attribute bool) (types.Status, Trait) {
	if attribute || set.Len() == 0 {
		return types.StatusNotFound, nil
	}
	var found Trait
	for cur := c; cur != nil; cur = cur.Parent {
		for _, e := range cur.traits[local] {
			if e.ns.IsAny() {
				continue
			}
			if !set.Contains(e.ns) {
				continue
			}
			if found == nil {
				found = e.trait
			} else if found != e.trait {
				return types.StatusAmbiguous, nil
			}
		}
		if found != nil {
			// A subclass match shadows parents; do not let an inherited
			// trait of the same name read as ambiguity.
			break
		}
	}
	if found == nil {
		return types.StatusNotFound, nil
	}
	return types.StatusSuccess, found
}

// IsSubclassOf walks the parent chain.
func (c *ClassInfo) IsSubclassOf(target *ClassInfo) bool {
	for cur := c; cur != nil; cur = cur.Parent {
		if cur == target {
			return true
		}
	}
	return false
}

// Implements reports whether the class or any ancestor declares the
// interface.
func (c *ClassInfo) Implements(iface *ClassInfo) bool {
	for cur := c; cur != nil; cur = cur.Parent {
		for _, have := range cur.Interfaces {
			if have == iface || have.Implements(iface) {
				return true
			}
		}
	}
	return false
}
