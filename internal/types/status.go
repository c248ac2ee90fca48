package types

// Status is the outcome of a trait lookup or property-binding operation.
// The try-form binding verbs return a Status so call sites can avoid the
// exception path; the throwing layer maps negative statuses onto
// ReferenceError/TypeError.
type Status uint8

const (
	// StatusNotFound means the name resolved nowhere.
	StatusNotFound Status = iota

	// StatusSuccess means the operation resolved and completed.
	StatusSuccess

	// StatusSoftSuccess means the lookup legally resolved to undefined: the
	// dynamic table was searchable but did not hold the key. No error.
	StatusSoftSuccess

	// StatusAmbiguous means the local name resolved to different traits in
	// two or more namespaces of the set.
	StatusAmbiguous

	// StatusFailedNotFunction means a call resolved to a non-callable value.
	StatusFailedNotFunction

	// StatusFailedNotConstructor means a construct resolved to a value with
	// no construct capability.
	StatusFailedNotConstructor

	// StatusFailedCreateDynamicNonPublic means a set tried to create a
	// dynamic property under a non-public namespace.
	StatusFailedCreateDynamicNonPublic

	// StatusFailedDescendantOp means the receiver does not support the
	// descendants operator.
	StatusFailedDescendantOp
)

// Found reports whether the operation produced a usable value
// (Success or SoftSuccess).
func (s Status) Found() bool {
	return s == StatusSuccess || s == StatusSoftSuccess
}

// String returns the status name for diagnostics.
func (s Status) String() string {
	switch s {
	case StatusNotFound:
		return "NotFound"
	case StatusSuccess:
		return "Success"
	case StatusSoftSuccess:
		return "SoftSuccess"
	case StatusAmbiguous:
		return "Ambiguous"
	case StatusFailedNotFunction:
		return "FailedNotFunction"
	case StatusFailedNotConstructor:
		return "FailedNotConstructor"
	case StatusFailedCreateDynamicNonPublic:
		return "FailedCreateDynamicNonPublic"
	case StatusFailedDescendantOp:
		return "FailedDescendantOp"
	}
	return "Unknown"
}
