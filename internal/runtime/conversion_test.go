package runtime

import (
	"math"
	"testing"
)

// ============================================================================
// Coercion
// ============================================================================

func TestToBooleanFalsiness(t *testing.T) {
	falsy := []Any{Undefined(), Null(), IntAny(0), UintAny(0), NumberAny(0), NumberAny(math.NaN()), StringAny("")}
	for _, v := range falsy {
		if ToBoolean(v) {
			t.Errorf("Expected falsy: %v", v)
		}
	}
	truthy := []Any{IntAny(1), NumberAny(-0.5), StringAny("0"), StringAny("false"), BoolAny(true), FromObject(NewPlainObject())}
	for _, v := range truthy {
		if !ToBoolean(v) {
			t.Errorf("Expected truthy: %v", v)
		}
	}
}

func TestToNumberBasics(t *testing.T) {
	f, err := ToNumber(Undefined())
	if err != nil || !math.IsNaN(f) {
		t.Error("undefined converts to NaN")
	}
	f, _ = ToNumber(Null())
	if f != 0 {
		t.Error("null converts to 0")
	}
	f, _ = ToNumber(BoolAny(true))
	if f != 1 {
		t.Error("true converts to 1")
	}
	f, _ = ToNumber(StringAny("12.5"))
	if f != 12.5 {
		t.Errorf("Expected 12.5, got %v", f)
	}
}

func TestStringToNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   \t\n ", 0},
		{"42", 42},
		{"  42  ", 42},
		{"-7.5", -7.5},
		{"0x10", 16},
		{"0XFF", 255},
		{"-0x10", -16},
		{"1e3", 1000},
		{"2.5e-2", 0.025},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"+3", 3},
	}
	for _, c := range cases {
		if got := StringToNumber(c.in); got != c.want {
			t.Errorf("StringToNumber(%q) = %v, want %v", c.in, got, c.want)
		}
	}
	for _, bad := range []string{"abc", "1px", "0x", "12.5.5", "Infinity2"} {
		if got := StringToNumber(bad); !math.IsNaN(got) {
			t.Errorf("StringToNumber(%q) should be NaN, got %v", bad, got)
		}
	}
}

func TestFloat64ToInt32Reduction(t *testing.T) {
	cases := []struct {
		in   float64
		want int32
	}{
		{0, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
		{3.9, 3},
		{-3.9, -3},
		{4294967296, 0},
		{4294967297, 1},
		{2147483648, -2147483648},
		{-2147483649, 2147483647},
	}
	for _, c := range cases {
		if got := Float64ToInt32(c.in); got != c.want {
			t.Errorf("Float64ToInt32(%v) = %d, want %d", c.in, got, c.want)
		}
	}
	if Float64ToUint32(-1) != 4294967295 {
		t.Error("ToUint32(-1) wraps to 2^32-1")
	}
	if Float64ToUint32(4294967296) != 0 {
		t.Error("ToUint32 reduces modulo 2^32")
	}
}

func TestConvertStringNullAndUndefined(t *testing.T) {
	s, _ := ConvertString(Null())
	if s != "null" {
		t.Errorf(`null renders as "null", got %q`, s)
	}
	s, _ = ConvertString(Undefined())
	if s != "undefined" {
		t.Errorf(`undefined renders as "undefined", got %q`, s)
	}
	s, _ = ConvertString(NumberAny(0.5))
	if s != "0.5" {
		t.Errorf("Expected 0.5, got %q", s)
	}
}

func TestToPrimitiveHints(t *testing.T) {
	// Dates default to the string hint.
	d := FromObject(NewDateObject(0))
	prim, err := ToPrimitive(d, HintNone)
	if err != nil {
		t.Fatal(err)
	}
	if prim.Object() == nil || prim.Object().Tag() != StringClass().Tag {
		t.Error("Date to_primitive without hint should produce a string")
	}

	// The number hint forces valueOf first.
	prim, err = ToPrimitiveNumberHint(d)
	if err != nil {
		t.Fatal(err)
	}
	f, _ := ToNumber(prim)
	if f != 0 {
		t.Errorf("valueOf path should yield the millisecond value, got %v", f)
	}

	// Plain objects default to the number hint but fall through to
	// toString because valueOf returns the object itself.
	prim, err = ToPrimitive(FromObject(NewPlainObject()), HintNone)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := ConvertString(prim)
	if s != "[object Object]" {
		t.Errorf("Expected [object Object], got %q", s)
	}

	// Primitives pass through untouched.
	v, err := ToPrimitive(IntAny(5), HintString)
	if err != nil || !StrictEquals(v, IntAny(5)) {
		t.Error("Primitive values pass through to_primitive")
	}
}

func TestCoerceToClassNumeric(t *testing.T) {
	v, err := CoerceToClass(StringAny("3.9"), IntClass())
	if err != nil || !StrictEquals(v, IntAny(3)) {
		t.Error("int coercion truncates")
	}
	v, err = CoerceToClass(IntAny(-1), UintClass())
	if err != nil || !StrictEquals(v, UintAny(4294967295)) {
		t.Error("uint coercion wraps")
	}
	v, err = CoerceToClass(Undefined(), StringClass())
	if err != nil || !v.IsNull() {
		t.Error("String(undefined) coerces to null")
	}
}
