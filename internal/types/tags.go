// Package types defines the static type-system vocabulary shared by the class
// layer and the runtime: class tags, tag sets, binding options, and the
// status codes produced by trait lookup and property binding.
package types

// ClassTag identifies one of the built-in class families. Operator dispatch
// and the index fast-path key off the tag rather than the class pointer.
type ClassTag uint8

const (
	TagObject ClassTag = iota
	TagInt
	TagUint
	TagNumber
	TagString
	TagBoolean
	TagFunction
	TagClass
	TagArray
	TagVector
	TagRegExp
	TagQName
	TagNamespace
	TagXML
	TagXMLList
	TagDate
	TagError

	tagCount
)

// String returns the AS3-facing class name for the tag.
func (t ClassTag) String() string {
	switch t {
	case TagObject:
		return "Object"
	case TagInt:
		return "int"
	case TagUint:
		return "uint"
	case TagNumber:
		return "Number"
	case TagString:
		return "String"
	case TagBoolean:
		return "Boolean"
	case TagFunction:
		return "Function"
	case TagClass:
		return "Class"
	case TagArray:
		return "Array"
	case TagVector:
		return "Vector"
	case TagRegExp:
		return "RegExp"
	case TagQName:
		return "QName"
	case TagNamespace:
		return "Namespace"
	case TagXML:
		return "XML"
	case TagXMLList:
		return "XMLList"
	case TagDate:
		return "Date"
	case TagError:
		return "Error"
	}
	return "Object"
}

// ClassTagSet is a bit set over class tags. Tag tests run on every operator
// dispatch, so membership is a single mask probe.
type ClassTagSet uint32

// TagSetOf builds a set from the given tags.
func TagSetOf(tags ...ClassTag) ClassTagSet {
	var s ClassTagSet
	for _, t := range tags {
		s |= 1 << t
	}
	return s
}

// Add returns the set with t included.
func (s ClassTagSet) Add(t ClassTag) ClassTagSet {
	return s | 1<<t
}

// Contains reports whether t is in the set.
func (s ClassTagSet) Contains(t ClassTag) bool {
	return s&(1<<t) != 0
}

// ContainsAny reports whether the sets intersect.
func (s ClassTagSet) ContainsAny(other ClassTagSet) bool {
	return s&other != 0
}

// ContainsAll reports whether every member of other is in s.
func (s ClassTagSet) ContainsAll(other ClassTagSet) bool {
	return s&other == other
}

// IsSubsetOf reports whether every member of s is in other.
func (s ClassTagSet) IsSubsetOf(other ClassTagSet) bool {
	return s&^other == 0
}

// IsSingle reports whether the set holds exactly t and nothing else.
func (s ClassTagSet) IsSingle(t ClassTag) bool {
	return s == 1<<t
}

// Predefined tag sets used by operator dispatch.
var (
	// NumericTags holds int, uint, and Number.
	NumericTags = TagSetOf(TagInt, TagUint, TagNumber)

	// NumericOrBoolTags additionally admits Boolean.
	NumericOrBoolTags = NumericTags.Add(TagBoolean)

	// PrimitiveTags holds every primitive box tag.
	PrimitiveTags = TagSetOf(TagInt, TagUint, TagNumber, TagString, TagBoolean)

	// StringOrDateTags routes addition to string concatenation.
	StringOrDateTags = TagSetOf(TagString, TagDate)

	// XMLTags holds the two XML tags.
	XMLTags = TagSetOf(TagXML, TagXMLList)

	// ArrayLikeTags holds the classes with numeric-index iteration.
	ArrayLikeTags = TagSetOf(TagArray, TagVector)

	// IntegerTags holds int and uint.
	IntegerTags = TagSetOf(TagInt, TagUint)
)
