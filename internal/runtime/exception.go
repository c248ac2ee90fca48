package runtime

import "errors"

// AVMError is the single vehicle for propagating a thrown AS3 value (an
// Error instance or any other value) out of runtime code. Every fallible
// verb reports misses through Status; only genuinely thrown values travel
// as an AVMError.
type AVMError struct {
	Value Any
}

// Error implements the Go error interface with the AS3 rendering of the
// carried value.
func (e *AVMError) Error() string {
	if o := e.Value.Object(); o != nil {
		if errData(o) != nil {
			return ErrorToString(o)
		}
		if s, err := ConvertString(e.Value); err == nil {
			return s
		}
	}
	if e.Value.IsNull() {
		return "null"
	}
	return "undefined"
}

// Throw wraps an arbitrary AS3 value for propagation.
func Throw(v Any) *AVMError {
	return &AVMError{Value: v}
}

// IsAVMError reports whether err carries a thrown AS3 value.
func IsAVMError(err error) bool {
	var avm *AVMError
	return errors.As(err, &avm)
}

// ThrownValue extracts the carried value from a thrown error.
func ThrownValue(err error) (Any, bool) {
	var avm *AVMError
	if errors.As(err, &avm) {
		return avm.Value, true
	}
	return Any{}, false
}

// ThrownErrorID returns the errorID of the thrown Error instance, or 0 when
// the thrown value is not an Error.
func ThrownErrorID(err error) int32 {
	v, ok := ThrownValue(err)
	if !ok {
		return 0
	}
	o := v.Object()
	if o == nil {
		return 0
	}
	return ErrorID(o)
}
