package runtime

import "github.com/mkalinski/go-avm2/internal/types"

// funcPayload backs Function objects: plain functions, bound method
// closures, and constructor functions.
type funcPayload struct {
	call      func(recv Any, args []Any) (Any, error)
	construct func(args []Any) (Any, error)

	// method and boundRecv identify a bound method closure. Two closures
	// over the same method trait and receiver compare weakly equal.
	method    *MethodTrait
	boundRecv *Object

	// prototype is the function's prototype property, consulted by
	// instanceof.
	prototype *Object
}

// NewFunctionObject wraps a native call hook as a Function instance.
func NewFunctionObject(call func(recv Any, args []Any) (Any, error)) *Object {
	o := NewObject(FunctionClass())
	o.data = &funcPayload{call: call}
	return o
}

// NewConstructorFunction wraps call and construct hooks as a Function
// instance with its own prototype object.
func NewConstructorFunction(call func(recv Any, args []Any) (Any, error), construct func(args []Any) (Any, error)) *Object {
	o := NewObject(FunctionClass())
	o.data = &funcPayload{call: call, construct: construct, prototype: NewPlainObject()}
	return o
}

// NewBoundMethod builds the closure produced by reading a method trait.
func NewBoundMethod(m *MethodTrait, recv *Object) *Object {
	o := NewObject(FunctionClass())
	o.data = &funcPayload{
		call: func(_ Any, args []Any) (Any, error) {
			// The stored receiver wins over the call-site receiver.
			return m.Fn(FromObject(recv), args)
		},
		method:    m,
		boundRecv: recv,
	}
	return o
}

func funcData(o *Object) *funcPayload {
	p, _ := o.data.(*funcPayload)
	return p
}

// FunctionPrototype returns the function's prototype property, or nil.
func FunctionPrototype(o *Object) *Object {
	if p := funcData(o); p != nil {
		return p.prototype
	}
	return nil
}

// ============================================================================
// Class objects
// ============================================================================

// NewClassObject wraps a class descriptor as a runtime Class value, the
// thing `new`, `is`, `as`, and applyType dispatch on.
func NewClassObject(c *ClassInfo) *Object {
	o := NewObject(ClassClass())
	o.data = c
	return o
}

// ClassInfoOf unwraps a Class value.
func ClassInfoOf(a Any) (*ClassInfo, bool) {
	o := a.Object()
	if o == nil {
		return nil, false
	}
	c, ok := o.data.(*ClassInfo)
	if !ok || o.Tag() != types.TagClass {
		return nil, false
	}
	return c, true
}

// ============================================================================
// Invocation helpers
// ============================================================================

// IsCallable reports whether the value can be invoked.
func IsCallable(a Any) bool {
	o := a.Object()
	if o == nil {
		return false
	}
	switch o.Tag() {
	case types.TagFunction:
		p := funcData(o)
		return p != nil && p.call != nil
	case types.TagClass:
		// Calling a class applies its coercion; every class is callable.
		return true
	}
	return false
}

// IsConstructible reports whether the value supports `new`.
func IsConstructible(a Any) bool {
	o := a.Object()
	if o == nil {
		return false
	}
	switch o.Tag() {
	case types.TagFunction:
		p := funcData(o)
		return p != nil && p.construct != nil
	case types.TagClass:
		c, ok := o.data.(*ClassInfo)
		return ok && !c.Interface && c.Constructor != nil
	}
	return false
}

// CallValue invokes a callable value with an explicit receiver.
func CallValue(fn Any, recv Any, args []Any) (Any, error) {
	o := fn.Object()
	if o == nil {
		return Any{}, NewTypeErrorCode(ErrNotFunction, "value")
	}
	switch o.Tag() {
	case types.TagFunction:
		p := funcData(o)
		if p == nil || p.call == nil {
			return Any{}, NewTypeErrorCode(ErrNotFunction, "value")
		}
		return p.call(recv, args)
	case types.TagClass:
		// Class call is the explicit coercion C(v).
		c := o.data.(*ClassInfo)
		if len(args) == 0 {
			return Undefined(), nil
		}
		return CoerceToClass(args[0], c)
	}
	return Any{}, NewTypeErrorCode(ErrNotFunction, "value")
}

// ConstructValue applies `new` to a constructible value.
func ConstructValue(fn Any, args []Any) (Any, error) {
	o := fn.Object()
	if o == nil {
		return Any{}, NewTypeErrorCode(ErrNotConstructor, "value")
	}
	switch o.Tag() {
	case types.TagFunction:
		p := funcData(o)
		if p == nil || p.construct == nil {
			return Any{}, NewTypeErrorCode(ErrNotConstructor, "value")
		}
		return p.construct(args)
	case types.TagClass:
		c := o.data.(*ClassInfo)
		if c.Interface || c.Constructor == nil {
			return Any{}, NewTypeErrorCode(ErrNotConstructor, c.Name.String())
		}
		return c.Constructor(args)
	}
	return Any{}, NewTypeErrorCode(ErrNotConstructor, "value")
}
