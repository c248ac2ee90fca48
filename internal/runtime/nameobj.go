package runtime

import "github.com/mkalinski/go-avm2/pkg/qname"

// NewQNameObject wraps a qualified name as a runtime QName value.
func NewQNameObject(q qname.QName) *Object {
	o := NewObject(QNameClass())
	o.data = q
	return o
}

// QNameValue unwraps a QName object.
func QNameValue(o *Object) (qname.QName, bool) {
	q, ok := o.data.(qname.QName)
	return q, ok
}

// NewNamespaceObject wraps a namespace as a runtime Namespace value.
func NewNamespaceObject(ns qname.Namespace) *Object {
	o := NewObject(NamespaceClass())
	o.data = ns
	return o
}

// NamespaceValue unwraps a Namespace object.
func NamespaceValue(o *Object) (qname.Namespace, bool) {
	ns, ok := o.data.(qname.Namespace)
	return ns, ok
}

// NewDateObject wraps a millisecond timestamp as a Date value. Only the
// numeric payload and the string to-primitive hint matter to this layer;
// the calendar surface lives with the host library.
func NewDateObject(millis float64) *Object {
	o := NewObject(DateClass())
	o.fval = millis
	return o
}
