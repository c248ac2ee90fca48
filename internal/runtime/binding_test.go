package runtime

import (
	"testing"

	"github.com/mkalinski/go-avm2/internal/types"
	"github.com/mkalinski/go-avm2/pkg/qname"
)

// ============================================================================
// Binding core
// ============================================================================

func TestDynamicPropertyRoundTrip(t *testing.T) {
	o := NewPlainObject()
	foo := qname.PublicName("foo")

	st, err := o.SetPropertyQ(foo, IntAny(42), types.BindSetDefault)
	if err != nil || st != types.StatusSuccess {
		t.Fatalf("Set failed: %v %v", st, err)
	}

	v, st, err := o.GetPropertyQ(foo, types.BindGetDefault)
	if err != nil || st != types.StatusSuccess {
		t.Fatalf("Get failed: %v %v", st, err)
	}
	if !StrictEquals(v, IntAny(42)) {
		t.Errorf("Expected 42, got %v", v)
	}

	if o.HasPropertyQ(qname.PublicName("bar"), types.BindGetDefault) {
		t.Error("has of a missing key should be false")
	}

	deleted, _ := o.DeletePropertyQ(foo, types.BindSetDefault)
	if !deleted {
		t.Fatal("Delete of an existing dynamic property should report true")
	}

	v, st, err = o.GetPropertyQ(foo, types.BindGetDefault)
	if err != nil {
		t.Fatalf("Get after delete errored: %v", err)
	}
	if st != types.StatusSoftSuccess {
		t.Errorf("Get after delete should be SoftSuccess, got %v", st)
	}
	if !v.IsUndefined() {
		t.Error("Get after delete should read undefined")
	}
}

func TestPrototypeFallthrough(t *testing.T) {
	p := NewPlainObject()
	p.DynProps().Set("x", StringAny("hello"))

	o := NewPlainObject()
	o.SetProto(p)

	v, st, err := o.GetPropertyQ(qname.PublicName("x"), types.BindGetDefault)
	if err != nil || st != types.StatusSuccess {
		t.Fatalf("Prototype get failed: %v %v", st, err)
	}
	if s, _ := ConvertString(v); s != "hello" {
		t.Errorf("Expected hello, got %s", s)
	}

	// Without SEARCH_PROTOTYPE the local table decides.
	v, st, _ = o.GetPropertyQ(qname.PublicName("x"), types.BindSearchTraits|types.BindSearchDynamic)
	if st != types.StatusSoftSuccess || !v.IsUndefined() {
		t.Errorf("Local-only get should be SoftSuccess/undefined, got %v", st)
	}
}

func TestSetNeverWritesThroughPrototype(t *testing.T) {
	p := NewPlainObject()
	p.DynProps().Set("x", IntAny(1))
	o := NewPlainObject()
	o.SetProto(p)

	if st, _ := o.SetPropertyQ(qname.PublicName("x"), IntAny(2), types.BindSetDefault); st != types.StatusSuccess {
		t.Fatalf("Set failed: %v", st)
	}

	pv, _, _ := p.GetPropertyQ(qname.PublicName("x"), types.BindGetDefault)
	if !StrictEquals(pv, IntAny(1)) {
		t.Error("Set on the receiver must not touch the prototype")
	}
	ov, _, _ := o.GetPropertyQ(qname.PublicName("x"), types.BindGetDefault)
	if !StrictEquals(ov, IntAny(2)) {
		t.Error("The receiver's own property must shadow the prototype")
	}
}

func TestSetNonPublicNamespaceFails(t *testing.T) {
	o := NewPlainObject()
	private := qname.New(qname.Namespace{Kind: qname.KindPrivate, URI: "C"}, "secret")

	st, err := o.SetPropertyQ(private, IntAny(1), types.BindSetDefault)
	if err != nil {
		t.Fatalf("Set errored: %v", err)
	}
	if st != types.StatusFailedCreateDynamicNonPublic {
		t.Errorf("Expected FailedCreateDynamicNonPublic, got %v", st)
	}
}

func TestAnyNamespaceNeverResolves(t *testing.T) {
	o := NewPlainObject()
	o.DynProps().Set("x", IntAny(1))

	name := qname.New(qname.Any(), "x")
	_, st, _ := o.GetPropertyQ(name, types.BindGetDefault)
	if st != types.StatusNotFound {
		t.Errorf("Wildcard namespace should be NotFound, got %v", st)
	}
}

func TestAttributeFlagSkipsEverything(t *testing.T) {
	o := NewPlainObject()
	o.DynProps().Set("x", IntAny(1))

	_, st, _ := o.GetPropertyQ(qname.PublicName("x"), types.BindGetDefault|types.BindAttribute)
	if st != types.StatusNotFound {
		t.Errorf("Attribute lookups bypass traits and dynamic, got %v", st)
	}
}

func TestAmbiguousNamespaceSet(t *testing.T) {
	ns1 := qname.Namespace{Kind: qname.KindExplicit, URI: "urn:one"}
	ns2 := qname.Namespace{Kind: qname.KindExplicit, URI: "urn:two"}

	c := NewClassInfo(qname.PublicName("Doubled"), types.TagObject, true)
	c.Parent = ObjectClass()
	c.Prototype = ObjectClass().Prototype
	c.AddTrait(qname.New(ns1, "value"), &MethodTrait{MethodName: "value", Fn: func(recv Any, args []Any) (Any, error) {
		return IntAny(1), nil
	}})
	c.AddTrait(qname.New(ns2, "value"), &MethodTrait{MethodName: "value", Fn: func(recv Any, args []Any) (Any, error) {
		return IntAny(2), nil
	}})

	o := NewObject(c)
	set := qname.NewNamespaceSet(ns1, ns2)

	_, st, _ := o.GetPropertyNS("value", set, types.BindGetDefault)
	if st != types.StatusAmbiguous {
		t.Errorf("Two distinct traits across the set must be Ambiguous, got %v", st)
	}

	// A single-namespace set is unambiguous.
	_, st, err := o.GetPropertyNS("value", qname.NewNamespaceSet(ns1), types.BindGetDefault)
	if err != nil || st != types.StatusSuccess {
		t.Errorf("Single-namespace lookup should succeed, got %v %v", st, err)
	}
}

func TestCallVerbStatuses(t *testing.T) {
	o := NewPlainObject()
	o.DynProps().Set("num", IntAny(42))
	o.DynProps().Set("fn", FromObject(NewFunctionObject(func(recv Any, args []Any) (Any, error) {
		return StringAny("called"), nil
	})))

	_, st, _ := o.CallPropertyQ(qname.PublicName("num"), nil, types.BindGetDefault)
	if st != types.StatusFailedNotFunction {
		t.Errorf("Calling a non-function should be FailedNotFunction, got %v", st)
	}

	v, st, err := o.CallPropertyQ(qname.PublicName("fn"), nil, types.BindGetDefault)
	if err != nil || st != types.StatusSuccess {
		t.Fatalf("Call failed: %v %v", st, err)
	}
	if s, _ := ConvertString(v); s != "called" {
		t.Errorf("Unexpected call result %s", s)
	}
}

func TestCallReceiverBinding(t *testing.T) {
	o := NewPlainObject()
	var seen Any
	o.DynProps().Set("probe", FromObject(NewFunctionObject(func(recv Any, args []Any) (Any, error) {
		seen = recv
		return Undefined(), nil
	})))

	if _, _, err := o.CallPropertyQ(qname.PublicName("probe"), nil, types.BindGetDefault); err != nil {
		t.Fatal(err)
	}
	if seen.Object() != o {
		t.Error("Default call receiver should be the resolving object")
	}

	if _, _, err := o.CallPropertyQ(qname.PublicName("probe"), nil, types.BindGetDefault|types.BindNullReceiver); err != nil {
		t.Fatal(err)
	}
	if !seen.IsNull() {
		t.Error("NULL_RECEIVER should pass null")
	}
}

func TestConstructVerb(t *testing.T) {
	o := NewPlainObject()
	o.DynProps().Set("Err", FromObject(NewClassObject(ErrorClass())))
	o.DynProps().Set("notCtor", IntAny(3))

	v, st, err := o.ConstructPropertyQ(qname.PublicName("Err"), []Any{StringAny("boom")}, types.BindGetDefault)
	if err != nil || st != types.StatusSuccess {
		t.Fatalf("Construct failed: %v %v", st, err)
	}
	if ErrorMessage(v.Object()) != "boom" {
		t.Error("Construct should run the class constructor")
	}

	_, st, _ = o.ConstructPropertyQ(qname.PublicName("notCtor"), nil, types.BindGetDefault)
	if st != types.StatusFailedNotConstructor {
		t.Errorf("Expected FailedNotConstructor, got %v", st)
	}
}

func TestDeleteCannotRemoveTraits(t *testing.T) {
	e := NewErrorObject("Error", "m", 0)
	deleted, st := e.DeletePropertyQ(qname.PublicName("message"), types.BindSetDefault)
	if deleted {
		t.Error("Traits cannot be deleted")
	}
	if st != types.StatusSuccess {
		t.Errorf("Delete landing on a trait reports Success/false, got %v", st)
	}
}

func TestObjectKeyForms(t *testing.T) {
	o := NewPlainObject()
	o.DynProps().Set("7", StringAny("seven"))

	// A numeric key on a class without index capability coerces to string.
	v, st, err := o.GetPropertyObj(IntAny(7), types.BindGetDefault)
	if err != nil || st != types.StatusSuccess {
		t.Fatalf("Keyed get failed: %v %v", st, err)
	}
	if s, _ := ConvertString(v); s != "seven" {
		t.Errorf("Expected seven, got %s", s)
	}

	// A QName key unwraps instead of stringifying.
	o.DynProps().Set("direct", IntAny(9))
	key := FromObject(NewQNameObject(qname.PublicName("direct")))
	v, st, err = o.GetPropertyObj(key, types.BindGetDefault)
	if err != nil || st != types.StatusSuccess {
		t.Fatalf("QName-keyed get failed: %v %v", st, err)
	}
	if !StrictEquals(v, IntAny(9)) {
		t.Error("QName key should resolve the named property")
	}
}

func TestArrayIndexFastPath(t *testing.T) {
	arr := NewArrayObject([]Any{StringAny("a"), StringAny("b")})

	v, st, err := arr.GetPropertyObj(IntAny(1), types.BindGetDefault)
	if err != nil || st != types.StatusSuccess {
		t.Fatalf("Index get failed: %v %v", st, err)
	}
	if s, _ := ConvertString(v); s != "b" {
		t.Errorf("Expected b, got %s", s)
	}

	if st, err := arr.SetPropertyObj(IntAny(4), StringAny("e"), types.BindSetDefault); err != nil || st != types.StatusSuccess {
		t.Fatalf("Index set failed: %v %v", st, err)
	}
	if ArrayLength(arr) != 5 {
		t.Errorf("Index write should grow the array, length %d", ArrayLength(arr))
	}
	if !ArrayElements(arr)[3].IsUndefined() {
		t.Error("Growth holes read undefined")
	}

	// The fast path only applies with SEARCH_DYNAMIC set.
	_, st, _ = arr.GetPropertyObj(IntAny(0), types.BindSearchTraits)
	if st == types.StatusSuccess {
		t.Error("Index fast path requires SEARCH_DYNAMIC")
	}
}

func TestDescendantsDefaultFails(t *testing.T) {
	o := NewPlainObject()
	_, st, _ := o.DescendantsQ(qname.PublicName("child"), types.BindGetDefault)
	if st != types.StatusFailedDescendantOp {
		t.Errorf("Non-XML descendants should fail, got %v", st)
	}
}

func TestThrowingLayerOnUndefinedAndNull(t *testing.T) {
	name := qname.PublicName("x")

	_, err := Undefined().GetProperty(name, types.BindGetDefault)
	if ThrownErrorID(err) != int32(ErrUndefinedReference) {
		t.Errorf("Undefined access should throw #1010, got %v", err)
	}

	_, err = Null().GetProperty(name, types.BindGetDefault)
	if ThrownErrorID(err) != int32(ErrNullReference) {
		t.Errorf("Null access should throw #1009, got %v", err)
	}

	v, err := FromObject(NewPlainObject()).GetProperty(name, types.BindGetDefault)
	if err != nil || !v.IsUndefined() {
		t.Error("SoftSuccess should not throw")
	}
}

// ============================================================================
// for-in enumeration
// ============================================================================

func TestForInOverDynamicAndPrototype(t *testing.T) {
	p := NewPlainObject()
	p.DynProps().Set("c", IntAny(3))

	o := NewPlainObject()
	o.DynProps().Set("a", IntAny(1))
	o.DynProps().Set("b", IntAny(2))
	o.SetProto(p)

	obj := FromObject(o)
	idx := int32(0)

	var names []string
	for HasNext2(&obj, &idx) {
		name, _ := ConvertString(obj.Object().NameAt(idx))
		names = append(names, name)
	}
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("Expected a,b,c in order, got %v", names)
	}
	if !obj.IsNull() || idx != 0 {
		t.Error("Exhausted enumeration should leave (null, 0)")
	}
}

func TestForInArrayIteratesIndices(t *testing.T) {
	arr := NewArrayObject([]Any{StringAny("x"), StringAny("y")})
	arr.DynProps().Set("extra", IntAny(1))

	obj := FromObject(arr)
	idx := int32(0)

	var names []string
	var values []string
	for HasNext2(&obj, &idx) && len(names) < 8 {
		cur := obj.Object()
		n, _ := ConvertString(cur.NameAt(idx))
		v, _ := ConvertString(cur.ValueAt(idx))
		names = append(names, n)
		values = append(values, v)
		if cur != arr {
			break
		}
	}
	if len(names) < 3 || names[0] != "0" || names[1] != "1" || names[2] != "extra" {
		t.Errorf("Array should enumerate indices then dynamic keys, got %v", names)
	}
	if values[0] != "x" || values[1] != "y" {
		t.Errorf("Index values should follow element order, got %v", values)
	}
}
