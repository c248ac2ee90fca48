package cmd

import (
	"math"
	"strings"

	"github.com/mkalinski/go-avm2/internal/runtime"
)

// parseLiteral reads a command-line argument as an AS3 value: the keywords
// null/undefined/true/false/NaN, quoted strings, numbers, and anything else
// as a bare string.
func parseLiteral(s string) runtime.Any {
	switch s {
	case "null":
		return runtime.Null()
	case "undefined":
		return runtime.Undefined()
	case "true":
		return runtime.BoolAny(true)
	case "false":
		return runtime.BoolAny(false)
	case "NaN":
		return runtime.NumberAny(math.NaN())
	}
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return runtime.StringAny(s[1 : len(s)-1])
	}
	f := runtime.StringToNumber(s)
	if math.IsNaN(f) {
		return runtime.StringAny(s)
	}
	if f == math.Trunc(f) && f >= math.MinInt32 && f <= math.MaxInt32 && !strings.ContainsAny(s, ".eE") {
		return runtime.IntAny(int32(f))
	}
	return runtime.NumberAny(f)
}

// renderValue formats a value with its runtime type for display.
func renderValue(v runtime.Any) string {
	s, err := runtime.ConvertString(v)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	if o := v.Object(); o != nil && o.Tag() == runtime.StringClass().Tag {
		return "\"" + s + "\""
	}
	return s
}
