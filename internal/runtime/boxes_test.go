package runtime

import "testing"

// ============================================================================
// Box caching
// ============================================================================

func TestIntBoxIdentity(t *testing.T) {
	if BoxInt(5) != BoxInt(5) {
		t.Error("Cached int boxes must be the same reference")
	}
	if BoxInt(-128) != BoxInt(-128) || BoxInt(128) != BoxInt(128) {
		t.Error("Cache range boundaries should be cached")
	}
	if BoxInt(129) == BoxInt(129) {
		t.Error("Values past the cache range allocate fresh boxes")
	}
	if BoxInt(10000000) == BoxInt(10000000) {
		t.Error("Large ints need not share a reference")
	}
}

func TestUintBoxIdentity(t *testing.T) {
	if BoxUint(0) != BoxUint(0) || BoxUint(256) != BoxUint(256) {
		t.Error("Cached uint boxes must be the same reference")
	}
	if BoxUint(257) == BoxUint(257) {
		t.Error("Values past the cache range allocate fresh boxes")
	}
}

func TestBooleanSingletons(t *testing.T) {
	if BoxBoolean(true) != BoxBoolean(true) {
		t.Error("true is a singleton")
	}
	if BoxBoolean(false) != BoxBoolean(false) {
		t.Error("false is a singleton")
	}
	if BoxBoolean(true) == BoxBoolean(false) {
		t.Error("true and false must differ")
	}
}

func TestStringCaching(t *testing.T) {
	if BoxString("") != BoxString("") {
		t.Error("The empty string is a singleton")
	}
	if BoxString("a") != BoxString("a") {
		t.Error("One-character ASCII strings are cached")
	}
	if BoxString("ab") == BoxString("ab") {
		t.Error("Longer strings allocate fresh boxes")
	}
	if BoxString("é") == BoxString("é") {
		t.Error("Non-ASCII single characters are not cached")
	}
}

func TestBoxedValuesReadBack(t *testing.T) {
	if BoxInt(-42).IntValue() != -42 {
		t.Error("int payload mismatch")
	}
	if BoxUint(4294967295).UintValue() != 4294967295 {
		t.Error("uint payload mismatch")
	}
	if BoxString("hello").StringValue() != "hello" {
		t.Error("string payload mismatch")
	}
	if !BoxBoolean(true).BoolValue() {
		t.Error("bool payload mismatch")
	}
}

func TestFromBoxed(t *testing.T) {
	if !FromBoxed(nil).IsNull() {
		t.Error("nil marshals to null")
	}
	if !StrictEquals(FromBoxed(42), IntAny(42)) {
		t.Error("int marshals through the int box")
	}
	if !StrictEquals(FromBoxed(uint32(7)), UintAny(7)) {
		t.Error("uint32 marshals through the uint box")
	}
	if !StrictEquals(FromBoxed(1.5), NumberAny(1.5)) {
		t.Error("float64 marshals through the Number box")
	}
	if !StrictEquals(FromBoxed("s"), StringAny("s")) {
		t.Error("string marshals through the String box")
	}
	if !StrictEquals(FromBoxed(true), BoolAny(true)) {
		t.Error("bool marshals to a Boolean singleton")
	}
	o := NewPlainObject()
	if FromBoxed(o).Object() != o {
		t.Error("*Object passes through")
	}
	if !FromBoxed(struct{}{}).IsUndefined() {
		t.Error("Unknown host types marshal to undefined")
	}
}

func TestTriStateExclusivity(t *testing.T) {
	for _, v := range []Any{Undefined(), Null(), IntAny(1)} {
		states := 0
		if v.IsUndefined() {
			states++
		}
		if v.IsNull() {
			states++
		}
		if v.HasObject() {
			states++
		}
		if states != 1 {
			t.Errorf("Exactly one state must hold, got %d", states)
		}
	}
	var zero Any
	if !zero.IsUndefined() {
		t.Error("The zero Any is undefined")
	}
}
