package runtime

import (
	"fmt"
	goruntime "runtime"
	"strings"
	"sync"

	"github.com/mkalinski/go-avm2/internal/types"
)

// ============================================================================
// AS3 Error hierarchy
// ============================================================================
//
// Error codes are a stable integer enumeration; user-visible messages always
// include the code number. Subclasses differ only in their name and the
// class they instantiate.

// ErrorCode is a stable AS3 error identifier.
type ErrorCode int32

const (
	ErrNotFunction        ErrorCode = 1006
	ErrNotConstructor     ErrorCode = 1007
	ErrNullReference      ErrorCode = 1009
	ErrUndefinedReference ErrorCode = 1010
	ErrCoercionFailed     ErrorCode = 1034
	ErrNotClass           ErrorCode = 1041
	ErrConvertToPrimitive ErrorCode = 1050
	ErrCreateNonPublic    ErrorCode = 1056
	ErrAmbiguousReference ErrorCode = 1065
	ErrPropertyNotFound   ErrorCode = 1069
	ErrWriteSealed        ErrorCode = 1074
	ErrDescendantsOp      ErrorCode = 1080
	ErrFilterNonXML       ErrorCode = 1123
	ErrVectorIndexRange   ErrorCode = 1125
	ErrVectorFixed        ErrorCode = 1126
	ErrTypeParameterCount ErrorCode = 1127
	ErrInvalidPrecision   ErrorCode = 2004
	ErrInvalidRadix       ErrorCode = 2008
)

// errorMessages maps each code to its message template. The %s/%d verbs are
// filled from the arguments handed to the typed constructors.
var errorMessages = map[ErrorCode]string{
	ErrNotFunction:        "value is not a function: %s",
	ErrNotConstructor:     "instantiation attempted on a non-constructor: %s",
	ErrNullReference:      "cannot access a property or method of a null object reference: %s",
	ErrUndefinedReference: "a term is undefined and has no properties: %s",
	ErrCoercionFailed:     "type coercion failed: cannot convert %s to %s",
	ErrNotClass:           "the right-hand side of operator must be a class or function: %s",
	ErrConvertToPrimitive: "cannot convert %s to primitive",
	ErrCreateNonPublic:    "cannot create property %s (namespace is not public)",
	ErrAmbiguousReference: "ambiguous reference to %s",
	ErrPropertyNotFound:   "property %s not found and there is no default value",
	ErrWriteSealed:        "cannot create property %s on a sealed object",
	ErrDescendantsOp:      "the descendants operator (..) is not supported by %s",
	ErrFilterNonXML:       "filter operator is allowed only on XML and XMLList: %s",
	ErrVectorIndexRange:   "the index %s is out of range",
	ErrVectorFixed:        "cannot change the length of a fixed Vector",
	ErrTypeParameterCount: "type application expected %s type parameter, got %s",
	ErrInvalidPrecision:   "invalid precision argument: %s",
	ErrInvalidRadix:       "invalid radix argument: must be between 2 and 36, got %s",
}

// FormatErrorMessage renders "Error #<code>: <message>".
func FormatErrorMessage(code ErrorCode, args ...any) string {
	tmpl, ok := errorMessages[code]
	if !ok {
		tmpl = "unknown error"
	}
	strArgs := make([]any, len(args))
	for i, a := range args {
		strArgs[i] = fmt.Sprint(a)
	}
	msg := tmpl
	if len(strArgs) > 0 {
		msg = fmt.Sprintf(tmpl, strArgs...)
	}
	return fmt.Sprintf("Error #%d: %s", int32(code), msg)
}

// errPayload is the Error object's data: immutable after construction except
// for the once-computed stack trace string.
type errPayload struct {
	name    string
	message string
	id      int32

	pcs       []uintptr
	traceOnce sync.Once
	trace     string
}

// NewErrorObject builds an Error (or subclass) instance with a stack
// snapshot captured at the construction site.
func NewErrorObject(className, message string, id int32) *Object {
	cls, ok := GlobalRegistry().LookupLocal(className)
	if !ok || cls.Tag != types.TagError {
		cls = ErrorClass()
	}
	p := &errPayload{name: className, message: message, id: id}
	p.pcs = make([]uintptr, 64)
	p.pcs = p.pcs[:goruntime.Callers(3, p.pcs)]
	o := NewObject(cls)
	o.data = p
	return o
}

func errData(o *Object) *errPayload {
	p, _ := o.data.(*errPayload)
	return p
}

// ErrorName returns the error's name ("TypeError", ...).
func ErrorName(o *Object) string {
	if p := errData(o); p != nil {
		return p.name
	}
	return "Error"
}

// ErrorMessage returns the error's message.
func ErrorMessage(o *Object) string {
	if p := errData(o); p != nil {
		return p.message
	}
	return ""
}

// ErrorID returns the error's stable numeric identifier.
func ErrorID(o *Object) int32 {
	if p := errData(o); p != nil {
		return p.id
	}
	return 0
}

// SetErrorName and SetErrorMessage back the name/message accessor traits.
func SetErrorName(o *Object, name string) {
	if p := errData(o); p != nil {
		p.name = name
	}
}

func SetErrorMessage(o *Object, message string) {
	if p := errData(o); p != nil {
		p.message = message
	}
}

// ErrorToString renders the error per AS3: the name alone when the message
// is empty, otherwise "name: message".
func ErrorToString(o *Object) string {
	p := errData(o)
	if p == nil {
		return "Error"
	}
	if p.message == "" {
		return p.name
	}
	return p.name + ": " + p.message
}

// ErrorStackTrace formats the construction-time snapshot. The formatting
// runs at most once per error; later calls return the cached string.
func ErrorStackTrace(o *Object) string {
	p := errData(o)
	if p == nil {
		return ""
	}
	p.traceOnce.Do(func() {
		var sb strings.Builder
		sb.WriteString(ErrorToString(o))
		frames := goruntime.CallersFrames(p.pcs)
		for {
			frame, more := frames.Next()
			if frame.Function != "" {
				sb.WriteString("\n\tat ")
				sb.WriteString(frame.Function)
				sb.WriteString("()")
			}
			if !more {
				break
			}
		}
		p.trace = sb.String()
	})
	return p.trace
}

// ============================================================================
// Typed constructors used throughout the core
// ============================================================================

func newThrownError(className string, code ErrorCode, args ...any) *AVMError {
	obj := NewErrorObject(className, FormatErrorMessage(code, args...), int32(code))
	return &AVMError{Value: FromObject(obj)}
}

// NewTypeErrorCode builds a thrown TypeError.
func NewTypeErrorCode(code ErrorCode, args ...any) *AVMError {
	return newThrownError("TypeError", code, args...)
}

// NewReferenceErrorCode builds a thrown ReferenceError.
func NewReferenceErrorCode(code ErrorCode, args ...any) *AVMError {
	return newThrownError("ReferenceError", code, args...)
}

// NewRangeErrorCode builds a thrown RangeError.
func NewRangeErrorCode(code ErrorCode, args ...any) *AVMError {
	return newThrownError("RangeError", code, args...)
}

// NewSyntaxErrorMessage builds a thrown SyntaxError with a literal message.
func NewSyntaxErrorMessage(message string) *AVMError {
	obj := NewErrorObject("SyntaxError", message, 0)
	return &AVMError{Value: FromObject(obj)}
}
