package types

import "testing"

func TestTagSetContains(t *testing.T) {
	s := TagSetOf(TagInt, TagString)
	if !s.Contains(TagInt) || !s.Contains(TagString) {
		t.Error("TagSetOf members should be contained")
	}
	if s.Contains(TagNumber) {
		t.Error("Non-member should not be contained")
	}
}

func TestTagSetSubset(t *testing.T) {
	if !TagSetOf(TagInt, TagUint).IsSubsetOf(NumericTags) {
		t.Error("{int, uint} should be a subset of the numeric set")
	}
	if TagSetOf(TagInt, TagString).IsSubsetOf(NumericTags) {
		t.Error("A set containing String is not numeric")
	}
	if !ClassTagSet(0).IsSubsetOf(NumericTags) {
		t.Error("The empty set is a subset of everything")
	}
}

func TestTagSetSingle(t *testing.T) {
	if !TagSetOf(TagString).IsSingle(TagString) {
		t.Error("IsSingle should hold for a one-element set")
	}
	if TagSetOf(TagString, TagInt).IsSingle(TagString) {
		t.Error("IsSingle must reject larger sets")
	}
}

func TestPredefinedSets(t *testing.T) {
	if !IntegerTags.Contains(TagInt) || !IntegerTags.Contains(TagUint) || IntegerTags.Contains(TagNumber) {
		t.Error("IntegerTags should hold exactly int and uint")
	}
	if !NumericOrBoolTags.ContainsAll(NumericTags) {
		t.Error("NumericOrBoolTags should include all numeric tags")
	}
	if !XMLTags.ContainsAny(TagSetOf(TagXMLList)) {
		t.Error("XMLTags should include XMLList")
	}
	if !StringOrDateTags.Contains(TagDate) {
		t.Error("StringOrDateTags should include Date")
	}
}

func TestStatusFound(t *testing.T) {
	if !StatusSuccess.Found() || !StatusSoftSuccess.Found() {
		t.Error("Success and SoftSuccess both carry usable values")
	}
	for _, st := range []Status{StatusNotFound, StatusAmbiguous, StatusFailedNotFunction,
		StatusFailedNotConstructor, StatusFailedCreateDynamicNonPublic, StatusFailedDescendantOp} {
		if st.Found() {
			t.Errorf("Status %s should not report Found", st)
		}
	}
}

func TestBindOptionDefaults(t *testing.T) {
	if !BindGetDefault.Has(BindSearchTraits | BindSearchPrototype | BindSearchDynamic) {
		t.Error("Get defaults should search traits, prototype, and dynamic")
	}
	if BindSetDefault.Has(BindSearchPrototype) {
		t.Error("Set must never write through the prototype chain")
	}
	if !BindSetDefault.Has(BindSearchTraits | BindSearchDynamic) {
		t.Error("Set defaults should search traits and dynamic")
	}
}
