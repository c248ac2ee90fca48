package runtime

import (
	"math"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/mkalinski/go-avm2/internal/types"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ============================================================================
// String method surface
// ============================================================================
//
// Positions are rune indices throughout, matching the regex engine's view
// of the input. Start indices follow the ECMA-262 interpretation: clamped
// into range, with NaN reading as 0 for indexOf and +Infinity for
// lastIndexOf.

func recvString(recv Any) (string, error) {
	return ConvertString(recv)
}

// ecmaToInteger is ToInteger: NaN reads as 0, everything else truncates.
func ecmaToInteger(a Any) (float64, error) {
	f, err := ToNumber(a)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) {
		return 0, nil
	}
	return math.Trunc(f), nil
}

func clampPosition(pos float64, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > float64(length) {
		return length
	}
	return int(pos)
}

func stringCharAt(recv Any, args []Any) (Any, error) {
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	pos, err := ecmaToInteger(argAt(args, 0))
	if err != nil {
		return Any{}, err
	}
	rs := []rune(s)
	if pos < 0 || pos >= float64(len(rs)) {
		return StringAny(""), nil
	}
	return StringAny(string(rs[int(pos)])), nil
}

func stringCharCodeAt(recv Any, args []Any) (Any, error) {
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	pos, err := ecmaToInteger(argAt(args, 0))
	if err != nil {
		return Any{}, err
	}
	rs := []rune(s)
	if pos < 0 || pos >= float64(len(rs)) {
		return NumberAny(math.NaN()), nil
	}
	return NumberAny(float64(rs[int(pos)])), nil
}

func stringConcat(recv Any, args []Any) (Any, error) {
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	var sb strings.Builder
	sb.WriteString(s)
	for _, a := range args {
		part, err := ConvertString(a)
		if err != nil {
			return Any{}, err
		}
		sb.WriteString(part)
	}
	return StringAny(sb.String()), nil
}

// runeIndexOf finds the first occurrence of needle at or after start.
func runeIndexOf(hay, needle []rune, start int) int {
	for i := start; i+len(needle) <= len(hay); i++ {
		if runesEqualAt(hay, needle, i) {
			return i
		}
	}
	return -1
}

func runesEqualAt(hay, needle []rune, at int) bool {
	for j := range needle {
		if hay[at+j] != needle[j] {
			return false
		}
	}
	return true
}

func stringIndexOf(recv Any, args []Any) (Any, error) {
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	search, err := ConvertString(argAt(args, 0))
	if err != nil {
		return Any{}, err
	}
	pos, err := ecmaToInteger(argAt(args, 1))
	if err != nil {
		return Any{}, err
	}
	hay := []rune(s)
	start := clampPosition(pos, len(hay))
	return IntAny(int32(runeIndexOf(hay, []rune(search), start))), nil
}

func stringLastIndexOf(recv Any, args []Any) (Any, error) {
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	search, err := ConvertString(argAt(args, 0))
	if err != nil {
		return Any{}, err
	}
	pos := math.Inf(1)
	if !argAt(args, 1).IsUndefined() {
		f, err := ToNumber(args[1])
		if err != nil {
			return Any{}, err
		}
		if !math.IsNaN(f) {
			pos = math.Trunc(f)
		}
	}
	hay := []rune(s)
	needle := []rune(search)
	start := clampPosition(pos, len(hay))
	best := -1
	for i := 0; i+len(needle) <= len(hay) && i <= start; i++ {
		if runesEqualAt(hay, needle, i) {
			best = i
		}
	}
	return IntAny(int32(best)), nil
}

func stringLocaleCompare(recv Any, args []Any) (Any, error) {
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	other, err := ConvertString(argAt(args, 0))
	if err != nil {
		return Any{}, err
	}
	c := collate.New(language.Und)
	return IntAny(int32(c.CompareString(s, other))), nil
}

func stringSlice(recv Any, args []Any) (Any, error) {
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	rs := []rune(s)
	n := len(rs)
	start, err := relativeIndex(argAt(args, 0), 0, n)
	if err != nil {
		return Any{}, err
	}
	end, err := relativeIndex(argAt(args, 1), n, n)
	if err != nil {
		return Any{}, err
	}
	if start >= end {
		return StringAny(""), nil
	}
	return StringAny(string(rs[start:end])), nil
}

// relativeIndex resolves a slice-style index: negatives count from the end,
// the default applies when the argument is undefined.
func relativeIndex(a Any, def, n int) (int, error) {
	if a.IsUndefined() {
		return def, nil
	}
	f, err := ecmaToInteger(a)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		f += float64(n)
	}
	return clampPosition(f, n), nil
}

func stringSubstring(recv Any, args []Any) (Any, error) {
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	rs := []rune(s)
	n := len(rs)
	start, err := ecmaToInteger(argAt(args, 0))
	if err != nil {
		return Any{}, err
	}
	end := float64(n)
	if !argAt(args, 1).IsUndefined() {
		end, err = ecmaToInteger(args[1])
		if err != nil {
			return Any{}, err
		}
	}
	a := clampPosition(start, n)
	b := clampPosition(end, n)
	if a > b {
		a, b = b, a
	}
	return StringAny(string(rs[a:b])), nil
}

func stringSubstr(recv Any, args []Any) (Any, error) {
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	rs := []rune(s)
	n := len(rs)
	start, err := ecmaToInteger(argAt(args, 0))
	if err != nil {
		return Any{}, err
	}
	if start < 0 {
		start = math.Max(float64(n)+start, 0)
	}
	length := math.Inf(1)
	if !argAt(args, 1).IsUndefined() {
		length, err = ecmaToInteger(args[1])
		if err != nil {
			return Any{}, err
		}
	}
	a := clampPosition(start, n)
	if length < 0 {
		length = 0
	}
	b := a + clampPosition(length, n-a)
	return StringAny(string(rs[a:b])), nil
}

func stringToLowerCase(recv Any, args []Any) (Any, error) {
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	return StringAny(strings.ToLower(s)), nil
}

func stringToUpperCase(recv Any, args []Any) (Any, error) {
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	return StringAny(strings.ToUpper(s)), nil
}

func stringValueOf(recv Any, args []Any) (Any, error) {
	if o := recv.Object(); o != nil && o.Tag() == types.TagString {
		return recv, nil
	}
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	return StringAny(s), nil
}

// ============================================================================
// Regex-backed methods: match, replace, search, split
// ============================================================================

// patternRegExp resolves a pattern argument: RegExp objects pass through,
// everything else compiles its string form with no flags.
func patternRegExp(a Any) (*Object, error) {
	if o := a.Object(); o != nil && o.Tag() == types.TagRegExp {
		return o, nil
	}
	src, err := ConvertString(a)
	if err != nil {
		return nil, err
	}
	return NewRegExpObject(src, 0)
}

func stringMatch(recv Any, args []Any) (Any, error) {
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	re, err := patternRegExp(argAt(args, 0))
	if err != nil {
		return Any{}, err
	}
	p := regexpData(re)
	if p.flags&FlagGlobal == 0 {
		m, err := p.findMatch([]rune(s), 0)
		if err != nil {
			return Any{}, err
		}
		if m == nil {
			return Null(), nil
		}
		return FromObject(buildExecResult(p, m, s)), nil
	}
	matches, err := regexpMatchAll(re, s)
	if err != nil {
		return Any{}, err
	}
	p.lastIndex = 0
	if len(matches) == 0 {
		return Null(), nil
	}
	elems := make([]Any, len(matches))
	for i, m := range matches {
		elems[i] = StringAny(m.String())
	}
	return FromObject(NewArrayObject(elems)), nil
}

func stringSearch(recv Any, args []Any) (Any, error) {
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	re, err := patternRegExp(argAt(args, 0))
	if err != nil {
		return Any{}, err
	}
	m, err := regexpData(re).findMatch([]rune(s), 0)
	if err != nil {
		return Any{}, err
	}
	if m == nil {
		return IntAny(-1), nil
	}
	return IntAny(int32(m.Index)), nil
}

func stringReplace(recv Any, args []Any) (Any, error) {
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	pattern := argAt(args, 0)
	repl := argAt(args, 1)
	if o := pattern.Object(); o != nil && o.Tag() == types.TagRegExp {
		return replaceRegExp(s, o, repl)
	}
	return replaceString(s, pattern, repl)
}

func replaceRegExp(s string, re *Object, repl Any) (Any, error) {
	p := regexpData(re)
	rs := []rune(s)
	var matches []*regexp2.Match
	if p.flags&FlagGlobal != 0 {
		var err error
		matches, err = regexpMatchAll(re, s)
		if err != nil {
			return Any{}, err
		}
	} else {
		m, err := p.findMatch(rs, 0)
		if err != nil {
			return Any{}, err
		}
		if m != nil {
			matches = []*regexp2.Match{m}
		}
	}
	var sb strings.Builder
	pos := 0
	for _, m := range matches {
		sb.WriteString(string(rs[pos:m.Index]))
		part, err := replacementFor(m, p, s, repl)
		if err != nil {
			return Any{}, err
		}
		sb.WriteString(part)
		pos = m.Index + m.Length
	}
	sb.WriteString(string(rs[pos:]))
	return StringAny(sb.String()), nil
}

// replacementFor computes one match's replacement: calling the function
// form with (match, group1..groupN, index, input), or expanding the
// placeholder syntax of the string form.
func replacementFor(m *regexp2.Match, p *regexpPayload, input string, repl Any) (string, error) {
	if IsCallable(repl) {
		callArgs := make([]Any, 0, p.groupCount+3)
		callArgs = append(callArgs, StringAny(m.String()))
		for i := 1; i <= p.groupCount; i++ {
			if g := m.GroupByNumber(i); g != nil && len(g.Captures) > 0 {
				callArgs = append(callArgs, StringAny(g.String()))
			} else {
				callArgs = append(callArgs, Undefined())
			}
		}
		callArgs = append(callArgs, IntAny(int32(m.Index)), StringAny(input))
		res, err := CallValue(repl, Null(), callArgs)
		if err != nil {
			return "", err
		}
		return ConvertString(res)
	}
	tmpl, err := ConvertString(repl)
	if err != nil {
		return "", err
	}
	rs := []rune(input)
	prefix := string(rs[:m.Index])
	suffix := string(rs[m.Index+m.Length:])
	group := func(i int) (string, bool) {
		if i < 1 || i > p.groupCount {
			return "", false
		}
		if g := m.GroupByNumber(i); g != nil && len(g.Captures) > 0 {
			return g.String(), true
		}
		return "", true
	}
	named := func(name string) (string, bool) {
		g := m.GroupByName(name)
		if g == nil {
			return "", false
		}
		if len(g.Captures) == 0 {
			return "", true
		}
		return g.String(), true
	}
	return expandReplacement(tmpl, m.String(), prefix, suffix, p.groupCount, group, named), nil
}

// expandReplacement applies the ECMA replacement placeholders: $$ is a
// literal dollar, $& and $0 the whole match, $` the prefix, $' the suffix,
// $1..$99 numbered groups (two digits when the group count allows it), and
// $<name> a named group.
func expandReplacement(tmpl, whole, prefix, suffix string, groupCount int,
	group func(int) (string, bool), named func(string) (string, bool)) string {
	var sb strings.Builder
	t := []rune(tmpl)
	for i := 0; i < len(t); i++ {
		if t[i] != '$' || i+1 >= len(t) {
			sb.WriteRune(t[i])
			continue
		}
		next := t[i+1]
		switch {
		case next == '$':
			sb.WriteByte('$')
			i++
		case next == '&':
			sb.WriteString(whole)
			i++
		case next == '`':
			sb.WriteString(prefix)
			i++
		case next == '\'':
			sb.WriteString(suffix)
			i++
		case next == '<':
			end := -1
			for j := i + 2; j < len(t); j++ {
				if t[j] == '>' {
					end = j
					break
				}
			}
			if end < 0 {
				sb.WriteRune(t[i])
				continue
			}
			if val, ok := named(string(t[i+2 : end])); ok {
				sb.WriteString(val)
				i = end
			} else {
				sb.WriteRune(t[i])
			}
		case next >= '0' && next <= '9':
			num := int(next - '0')
			width := 1
			if i+2 < len(t) && t[i+2] >= '0' && t[i+2] <= '9' {
				two := num*10 + int(t[i+2]-'0')
				if two >= 1 && two <= groupCount {
					num = two
					width = 2
				}
			}
			if num == 0 {
				sb.WriteString(whole)
				i += width
				continue
			}
			if val, ok := group(num); ok {
				sb.WriteString(val)
				i += width
			} else {
				sb.WriteRune(t[i])
			}
		default:
			sb.WriteRune(t[i])
		}
	}
	return sb.String()
}

// replaceString handles a plain-string pattern: first occurrence only.
func replaceString(s string, pattern, repl Any) (Any, error) {
	search, err := ConvertString(pattern)
	if err != nil {
		return Any{}, err
	}
	hay := []rune(s)
	needle := []rune(search)
	at := runeIndexOf(hay, needle, 0)
	if at < 0 {
		return StringAny(s), nil
	}
	prefix := string(hay[:at])
	suffix := string(hay[at+len(needle):])
	var part string
	if IsCallable(repl) {
		res, err := CallValue(repl, Null(), []Any{StringAny(search), IntAny(int32(at)), StringAny(s)})
		if err != nil {
			return Any{}, err
		}
		part, err = ConvertString(res)
		if err != nil {
			return Any{}, err
		}
	} else {
		tmpl, err := ConvertString(repl)
		if err != nil {
			return Any{}, err
		}
		part = expandReplacement(tmpl, search, prefix, suffix, 0,
			func(int) (string, bool) { return "", false },
			func(string) (string, bool) { return "", false })
	}
	return StringAny(prefix + part + suffix), nil
}

func stringSplit(recv Any, args []Any) (Any, error) {
	s, err := recvString(recv)
	if err != nil {
		return Any{}, err
	}
	sep := argAt(args, 0)
	limit := uint32(0xFFFFFFFF)
	if !argAt(args, 1).IsUndefined() {
		limit, err = ToUint32(args[1])
		if err != nil {
			return Any{}, err
		}
	}
	if limit == 0 {
		return FromObject(NewArrayObject(nil)), nil
	}
	if sep.IsUndefined() {
		return FromObject(NewArrayObject([]Any{StringAny(s)})), nil
	}
	if o := sep.Object(); o != nil && o.Tag() == types.TagRegExp {
		return splitRegExp(s, o, limit)
	}
	sepStr, err := ConvertString(sep)
	if err != nil {
		return Any{}, err
	}
	return splitString(s, sepStr, limit), nil
}

// splitRegExp is the ECMA split algorithm. A match that is empty at the
// current split point does not emit an empty slice; capture groups splice
// into the result between slices.
func splitRegExp(s string, re *Object, limit uint32) (Any, error) {
	p := regexpData(re)
	rs := []rune(s)
	var out []Any
	push := func(v Any) bool {
		out = append(out, v)
		return uint32(len(out)) < limit
	}
	if len(rs) == 0 {
		m, err := p.findMatch(rs, 0)
		if err != nil {
			return Any{}, err
		}
		if m == nil {
			push(StringAny(s))
		}
		return FromObject(NewArrayObject(out)), nil
	}
	pos := 0
	q := 0
	for q < len(rs) {
		m, err := p.findMatch(rs, q)
		if err != nil {
			return Any{}, err
		}
		if m == nil {
			break
		}
		end := m.Index + m.Length
		if end == pos {
			q = m.Index + 1
			continue
		}
		if !push(StringAny(string(rs[pos:m.Index]))) {
			return FromObject(NewArrayObject(out)), nil
		}
		for i := 1; i <= p.groupCount; i++ {
			captured := Undefined()
			if g := m.GroupByNumber(i); g != nil && len(g.Captures) > 0 {
				captured = StringAny(g.String())
			}
			if !push(captured) {
				return FromObject(NewArrayObject(out)), nil
			}
		}
		pos = end
		q = pos
	}
	push(StringAny(string(rs[pos:])))
	return FromObject(NewArrayObject(out)), nil
}

func splitString(s, sep string, limit uint32) Any {
	var parts []string
	if sep == "" {
		for _, r := range s {
			parts = append(parts, string(r))
		}
	} else {
		parts = strings.Split(s, sep)
	}
	out := make([]Any, 0, len(parts))
	for _, part := range parts {
		if uint32(len(out)) >= limit {
			break
		}
		out = append(out, StringAny(part))
	}
	return FromObject(NewArrayObject(out))
}

// installStringMethods registers the String surface on the class.
func installStringMethods(c *ClassInfo) {
	c.AddAccessor("length",
		func(recv *Object) (Any, error) {
			return IntAny(int32(len([]rune(recv.StringValue())))), nil
		}, nil)
	c.AddMethod("charAt", stringCharAt)
	c.AddMethod("charCodeAt", stringCharCodeAt)
	c.AddMethod("concat", stringConcat)
	c.AddMethod("indexOf", stringIndexOf)
	c.AddMethod("lastIndexOf", stringLastIndexOf)
	c.AddMethod("localeCompare", stringLocaleCompare)
	c.AddMethod("match", stringMatch)
	c.AddMethod("replace", stringReplace)
	c.AddMethod("search", stringSearch)
	c.AddMethod("slice", stringSlice)
	c.AddMethod("split", stringSplit)
	c.AddMethod("substr", stringSubstr)
	c.AddMethod("substring", stringSubstring)
	c.AddMethod("toLocaleLowerCase", stringToLowerCase)
	c.AddMethod("toLocaleUpperCase", stringToUpperCase)
	c.AddMethod("toLowerCase", stringToLowerCase)
	c.AddMethod("toUpperCase", stringToUpperCase)
	c.AddMethod("toString", stringValueOf)
	c.AddMethod("valueOf", stringValueOf)
}
