package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkalinski/go-avm2/internal/types"
	"github.com/mkalinski/go-avm2/pkg/qname"
)

// callString invokes a String method through the binding core, the way the
// interpreter reaches it.
func callString(t *testing.T, recv string, method string, args ...Any) Any {
	t.Helper()
	box := FromObject(BoxString(recv))
	v, st, err := box.Object().CallPropertyQ(qname.PublicName(method), args, types.BindGetDefault)
	require.NoError(t, err)
	require.Equal(t, types.StatusSuccess, st)
	return v
}

func asString(t *testing.T, v Any) string {
	t.Helper()
	s, err := ConvertString(v)
	require.NoError(t, err)
	return s
}

func asNumber(t *testing.T, v Any) float64 {
	t.Helper()
	f, err := ToNumber(v)
	require.NoError(t, err)
	return f
}

func TestStringLengthTrait(t *testing.T) {
	box := FromObject(BoxString("héllo"))
	v, err := box.GetProperty(qname.PublicName("length"), types.BindGetDefault)
	require.NoError(t, err)
	assert.Equal(t, float64(5), asNumber(t, v))
}

func TestCharAtAndCharCodeAt(t *testing.T) {
	assert.Equal(t, "b", asString(t, callString(t, "abc", "charAt", IntAny(1))))
	assert.Equal(t, "a", asString(t, callString(t, "abc", "charAt")), "default position is 0")
	assert.Equal(t, "", asString(t, callString(t, "abc", "charAt", IntAny(5))))

	assert.Equal(t, float64('b'), asNumber(t, callString(t, "abc", "charCodeAt", IntAny(1))))
	nan := asNumber(t, callString(t, "abc", "charCodeAt", IntAny(-1)))
	assert.NotEqual(t, nan, nan, "out of range reads NaN")
}

func TestIndexOfStartSemantics(t *testing.T) {
	assert.Equal(t, float64(1), asNumber(t, callString(t, "abcabc", "indexOf", StringAny("b"))))
	assert.Equal(t, float64(4), asNumber(t, callString(t, "abcabc", "indexOf", StringAny("b"), IntAny(2))))
	assert.Equal(t, float64(-1), asNumber(t, callString(t, "abcabc", "indexOf", StringAny("z"))))
	// NaN start reads as 0 for indexOf.
	assert.Equal(t, float64(1), asNumber(t, callString(t, "abcabc", "indexOf", StringAny("b"), NumberAny(asNumber(t, callString(t, "x", "charCodeAt", IntAny(9)))))))
	// Negative start clamps to 0.
	assert.Equal(t, float64(0), asNumber(t, callString(t, "abc", "indexOf", StringAny("a"), IntAny(-5))))
	// An empty search string matches at the clamped start.
	assert.Equal(t, float64(3), asNumber(t, callString(t, "abc", "indexOf", StringAny(""), IntAny(9))))
}

func TestLastIndexOfStartSemantics(t *testing.T) {
	assert.Equal(t, float64(4), asNumber(t, callString(t, "abcabc", "lastIndexOf", StringAny("b"))))
	assert.Equal(t, float64(1), asNumber(t, callString(t, "abcabc", "lastIndexOf", StringAny("b"), IntAny(3))))
	// NaN start reads as +Infinity for lastIndexOf.
	assert.Equal(t, float64(4), asNumber(t, callString(t, "abcabc", "lastIndexOf", StringAny("b"), StringAny("x"))))
	assert.Equal(t, float64(-1), asNumber(t, callString(t, "abcabc", "lastIndexOf", StringAny("b"), IntAny(0))))
}

func TestSliceSubstrSubstring(t *testing.T) {
	assert.Equal(t, "cd", asString(t, callString(t, "abcdef", "slice", IntAny(2), IntAny(4))))
	assert.Equal(t, "ef", asString(t, callString(t, "abcdef", "slice", IntAny(-2))))
	assert.Equal(t, "", asString(t, callString(t, "abcdef", "slice", IntAny(4), IntAny(2))))

	assert.Equal(t, "cde", asString(t, callString(t, "abcdef", "substr", IntAny(2), IntAny(3))))
	assert.Equal(t, "ef", asString(t, callString(t, "abcdef", "substr", IntAny(-2))))

	// substring swaps reversed bounds instead of returning empty.
	assert.Equal(t, "cd", asString(t, callString(t, "abcdef", "substring", IntAny(4), IntAny(2))))
	assert.Equal(t, "ab", asString(t, callString(t, "abcdef", "substring", IntAny(-3), IntAny(2))))
}

func TestCaseConversion(t *testing.T) {
	assert.Equal(t, "ABC", asString(t, callString(t, "aBc", "toUpperCase")))
	assert.Equal(t, "abc", asString(t, callString(t, "aBc", "toLowerCase")))
}

func TestConcat(t *testing.T) {
	got := callString(t, "a", "concat", StringAny("b"), IntAny(1), Null())
	assert.Equal(t, "ab1null", asString(t, got))
}

func TestReplaceNumericGroups(t *testing.T) {
	re := MustRegExp(`(a)(b)c`, FlagGlobal)
	got := callString(t, "abcabc", "replace", FromObject(re), StringAny("$1[$2]"))
	assert.Equal(t, "a[b]a[b]", asString(t, got))
}

func TestReplaceNamedGroups(t *testing.T) {
	re := MustRegExp(`(?<x>a)(?<y>b)c`, FlagGlobal)
	got := callString(t, "abcabc", "replace", FromObject(re), StringAny("$<x>[$<y>]"))
	assert.Equal(t, "a[b]a[b]", asString(t, got))
}

func TestReplacePlaceholders(t *testing.T) {
	re := MustRegExp(`b`, 0)
	assert.Equal(t, "a$c", asString(t, callString(t, "abc", "replace", FromObject(re), StringAny("$$"))))
	assert.Equal(t, "a[b]c", asString(t, callString(t, "abc", "replace", FromObject(re), StringAny("[$&]"))))
	assert.Equal(t, "a<a>c", asString(t, callString(t, "abc", "replace", FromObject(re), StringAny("<$`>"))))
	assert.Equal(t, "a<c>c", asString(t, callString(t, "abc", "replace", FromObject(re), StringAny("<$'>"))))
	// An out-of-range group reference stays literal.
	assert.Equal(t, "a$9c", asString(t, callString(t, "abc", "replace", FromObject(re), StringAny("$9"))))
}

func TestReplaceNonGlobalReplacesFirstOnly(t *testing.T) {
	re := MustRegExp(`b`, 0)
	got := callString(t, "abab", "replace", FromObject(re), StringAny("X"))
	assert.Equal(t, "aXab", asString(t, got))
}

func TestReplaceWithFunction(t *testing.T) {
	re := MustRegExp(`(\d+)`, FlagGlobal)
	var seenIndexes []float64
	fn := FromObject(NewFunctionObject(func(recv Any, args []Any) (Any, error) {
		// (match, group1, index, input)
		if len(args) != 4 {
			t.Errorf("Expected 4 callback args, got %d", len(args))
		}
		seenIndexes = append(seenIndexes, args[2].Object().NumberValue())
		g1, _ := ConvertString(args[1])
		return StringAny("<" + g1 + ">"), nil
	}))
	got := callString(t, "a1b22", "replace", FromObject(re), fn)
	assert.Equal(t, "a<1>b<22>", asString(t, got))
	assert.Equal(t, []float64{1, 3}, seenIndexes)
}

func TestReplaceStringPattern(t *testing.T) {
	got := callString(t, "a-b-c", "replace", StringAny("-"), StringAny("+"))
	assert.Equal(t, "a+b-c", asString(t, got), "string patterns replace the first occurrence only")
}

func TestSplitEmptyMatchGuard(t *testing.T) {
	re := MustRegExp(`(?=b)`, 0)
	res := callString(t, "abc", "split", FromObject(re))
	arr := res.Object()
	require.Equal(t, int32(2), ArrayLength(arr))
	assert.Equal(t, "a", asString(t, ArrayElements(arr)[0]))
	assert.Equal(t, "bc", asString(t, ArrayElements(arr)[1]))
}

func TestSplitWithCaptures(t *testing.T) {
	re := MustRegExp(`(-)`, 0)
	res := callString(t, "a-b", "split", FromObject(re))
	arr := res.Object()
	require.Equal(t, int32(3), ArrayLength(arr))
	assert.Equal(t, "a", asString(t, ArrayElements(arr)[0]))
	assert.Equal(t, "-", asString(t, ArrayElements(arr)[1]))
	assert.Equal(t, "b", asString(t, ArrayElements(arr)[2]))
}

func TestSplitStringSeparator(t *testing.T) {
	res := callString(t, "a,b,c", "split", StringAny(","))
	arr := res.Object()
	require.Equal(t, int32(3), ArrayLength(arr))

	res = callString(t, "ab", "split", StringAny(""))
	arr = res.Object()
	require.Equal(t, int32(2), ArrayLength(arr))

	res = callString(t, "a,b,c", "split", StringAny(","), IntAny(2))
	arr = res.Object()
	require.Equal(t, int32(2), ArrayLength(arr), "limit truncates")

	res = callString(t, "abc", "split")
	arr = res.Object()
	require.Equal(t, int32(1), ArrayLength(arr), "no separator keeps the whole string")
}

func TestMatchGlobalAndSearch(t *testing.T) {
	re := MustRegExp(`\d+`, FlagGlobal)
	res := callString(t, "a1b22c", "match", FromObject(re))
	arr := res.Object()
	require.Equal(t, int32(2), ArrayLength(arr))
	assert.Equal(t, "1", asString(t, ArrayElements(arr)[0]))
	assert.Equal(t, "22", asString(t, ArrayElements(arr)[1]))
	assert.Equal(t, int32(0), RegExpLastIndex(re), "match resets lastIndex")

	missing := callString(t, "xyz", "match", FromObject(re))
	assert.True(t, missing.IsNull())

	idx := callString(t, "a1b", "search", StringAny(`\d`))
	assert.Equal(t, float64(1), asNumber(t, idx))
	idx = callString(t, "abc", "search", StringAny(`\d`))
	assert.Equal(t, float64(-1), asNumber(t, idx))
}

func TestLocaleCompare(t *testing.T) {
	assert.Equal(t, float64(0), asNumber(t, callString(t, "abc", "localeCompare", StringAny("abc"))))
	assert.Equal(t, float64(-1), asNumber(t, callString(t, "abc", "localeCompare", StringAny("abd"))))
	assert.Equal(t, float64(1), asNumber(t, callString(t, "abd", "localeCompare", StringAny("abc"))))
}
