package runtime

import (
	"strconv"

	"github.com/dlclark/regexp2"
)

// RegExpFlags is the flag bit set of a RegExp object.
type RegExpFlags uint8

const (
	FlagGlobal RegExpFlags = 1 << iota
	FlagIgnoreCase
	FlagMultiline
	FlagDotAll
	FlagExtended
)

// ParseRegExpFlags parses an AS3 flags string ("gimsx"). Unknown letters
// raise SyntaxError.
func ParseRegExpFlags(s string) (RegExpFlags, error) {
	var f RegExpFlags
	for _, c := range s {
		switch c {
		case 'g':
			f |= FlagGlobal
		case 'i':
			f |= FlagIgnoreCase
		case 'm':
			f |= FlagMultiline
		case 's':
			f |= FlagDotAll
		case 'x':
			f |= FlagExtended
		default:
			return 0, NewSyntaxErrorMessage("invalid regular expression flag: " + string(c))
		}
	}
	return f, nil
}

// String renders the flags in canonical order.
func (f RegExpFlags) String() string {
	var b []byte
	if f&FlagGlobal != 0 {
		b = append(b, 'g')
	}
	if f&FlagIgnoreCase != 0 {
		b = append(b, 'i')
	}
	if f&FlagMultiline != 0 {
		b = append(b, 'm')
	}
	if f&FlagDotAll != 0 {
		b = append(b, 's')
	}
	if f&FlagExtended != 0 {
		b = append(b, 'x')
	}
	return string(b)
}

// PatternTranspiler converts an AS3 pattern into the host engine's syntax
// and reports its capture-group structure. MULTILINE, DOTALL, and EXTENDED
// are compile-time inputs to the transpiler.
type PatternTranspiler func(pattern string, multiline, dotall, extended bool) (transpiled string, groupNames []string, groupCount int, err error)

var patternTranspiler PatternTranspiler

func init() {
	patternTranspiler = defaultTranspile
}

// SetPatternTranspiler replaces the pattern transpiler. Intended for hosts
// whose regex engine needs source-level rewriting; the default maps the
// flags onto engine options and passes the pattern through.
func SetPatternTranspiler(t PatternTranspiler) {
	if t != nil {
		patternTranspiler = t
	}
}

// defaultTranspile keeps the pattern text and probes the engine for the
// group structure.
func defaultTranspile(pattern string, multiline, dotall, extended bool) (string, []string, int, error) {
	re, err := regexp2.Compile(pattern, regexpOptions(multiline, dotall, extended, false))
	if err != nil {
		return "", nil, 0, NewSyntaxErrorMessage("invalid regular expression: " + err.Error())
	}
	nums := re.GetGroupNumbers()
	count := len(nums) - 1 // group 0 is the whole match
	var names []string
	for _, name := range re.GetGroupNames() {
		if _, err := strconv.Atoi(name); err != nil {
			names = append(names, name)
		}
	}
	return pattern, names, count, nil
}

func regexpOptions(multiline, dotall, extended, ignoreCase bool) regexp2.RegexOptions {
	var opts regexp2.RegexOptions
	if multiline {
		opts |= regexp2.Multiline
	}
	if dotall {
		opts |= regexp2.Singleline
	}
	if extended {
		opts |= regexp2.IgnorePatternWhitespace
	}
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}
	return opts
}

// regexpPayload is the RegExp object's state: the immutable compiled
// pattern and the mutable lastIndex cursor.
type regexpPayload struct {
	source     string
	flags      RegExpFlags
	engine     *regexp2.Regexp
	groupNames []string
	groupCount int
	lastIndex  int32
}

// NewRegExpObject compiles a pattern with its flags into a RegExp instance.
func NewRegExpObject(pattern string, flags RegExpFlags) (*Object, error) {
	transpiled, names, count, err := patternTranspiler(pattern,
		flags&FlagMultiline != 0, flags&FlagDotAll != 0, flags&FlagExtended != 0)
	if err != nil {
		return nil, err
	}
	engine, cerr := regexp2.Compile(transpiled, regexpOptions(
		flags&FlagMultiline != 0, flags&FlagDotAll != 0, flags&FlagExtended != 0,
		flags&FlagIgnoreCase != 0))
	if cerr != nil {
		return nil, NewSyntaxErrorMessage("invalid regular expression: " + cerr.Error())
	}
	o := NewObject(RegExpClass())
	o.data = &regexpPayload{
		source:     pattern,
		flags:      flags,
		engine:     engine,
		groupNames: names,
		groupCount: count,
	}
	return o, nil
}

// MustRegExp compiles or panics; for tests and internal tables.
func MustRegExp(pattern string, flags RegExpFlags) *Object {
	o, err := NewRegExpObject(pattern, flags)
	if err != nil {
		panic(err)
	}
	return o
}

func regexpData(o *Object) *regexpPayload {
	p, _ := o.data.(*regexpPayload)
	return p
}

// RegExpSource returns the pattern source text.
func RegExpSource(o *Object) string {
	if p := regexpData(o); p != nil {
		return p.source
	}
	return ""
}

// RegExpFlagsOf returns the flag set.
func RegExpFlagsOf(o *Object) RegExpFlags {
	if p := regexpData(o); p != nil {
		return p.flags
	}
	return 0
}

// RegExpLastIndex reads the lastIndex cursor.
func RegExpLastIndex(o *Object) int32 {
	if p := regexpData(o); p != nil {
		return p.lastIndex
	}
	return 0
}

// RegExpSetLastIndex writes the lastIndex cursor.
func RegExpSetLastIndex(o *Object, i int32) {
	if p := regexpData(o); p != nil {
		p.lastIndex = i
	}
}

// RegExpGroupCount returns the number of capturing groups.
func RegExpGroupCount(o *Object) int {
	if p := regexpData(o); p != nil {
		return p.groupCount
	}
	return 0
}

// findMatch runs one engine match. Positions are rune indices.
func (p *regexpPayload) findMatch(input []rune, start int) (*regexp2.Match, error) {
	if start > len(input) {
		return nil, nil
	}
	m, err := p.engine.FindRunesMatchStartingAt(input, start)
	if err != nil {
		return nil, NewSyntaxErrorMessage("regular expression execution failed: " + err.Error())
	}
	return m, nil
}

// RegExpExec implements exec. A global regex consumes lastIndex: it matches
// from there, advances it past the match on success, and resets it to 0 on
// failure or when the cursor has run off the string. A non-global regex
// neither reads nor writes lastIndex.
func RegExpExec(o *Object, input string) (Any, error) {
	p := regexpData(o)
	if p == nil {
		return Null(), nil
	}
	runes := []rune(input)
	start := 0
	global := p.flags&FlagGlobal != 0
	if global {
		start = int(p.lastIndex)
		if start >= len(runes) && !(start == 0 && len(runes) == 0) {
			p.lastIndex = 0
			return Null(), nil
		}
	}
	m, err := p.findMatch(runes, start)
	if err != nil {
		return Any{}, err
	}
	if m == nil {
		if global {
			p.lastIndex = 0
		}
		return Null(), nil
	}
	if global {
		p.lastIndex = int32(m.Index + m.Length)
	}
	return FromObject(buildExecResult(p, m, input)), nil
}

// RegExpTest implements test with the same lastIndex behavior as exec.
func RegExpTest(o *Object, input string) (bool, error) {
	res, err := RegExpExec(o, input)
	if err != nil {
		return false, err
	}
	return !res.IsNull(), nil
}

// buildExecResult assembles the exec result array: element 0 is the whole
// match, 1..N the capture groups (undefined for non-participating ones),
// and the dynamic properties carry index, input, and the named groups.
func buildExecResult(p *regexpPayload, m *regexp2.Match, input string) *Object {
	elems := make([]Any, p.groupCount+1)
	elems[0] = StringAny(m.String())
	for i := 1; i <= p.groupCount; i++ {
		elems[i] = Undefined()
		// Group numbering survives named groups; positional iteration
		// would not.
		if g := m.GroupByNumber(i); g != nil && len(g.Captures) > 0 {
			elems[i] = StringAny(g.String())
		}
	}
	arr := NewArrayObject(elems)
	dyn := arr.DynProps()
	dyn.Set("index", IntAny(int32(m.Index)))
	dyn.Set("input", StringAny(input))
	for _, name := range p.groupNames {
		g := m.GroupByName(name)
		if g != nil && len(g.Captures) > 0 {
			dyn.Set(name, StringAny(g.String()))
		} else {
			dyn.Set(name, Undefined())
		}
	}
	return arr
}

// regexpMatchAll collects every match of a regex from the start of the input
// for String.match and String.replace. It neither reads nor writes lastIndex.
func regexpMatchAll(o *Object, input string) ([]*regexp2.Match, error) {
	p := regexpData(o)
	if p == nil {
		return nil, nil
	}
	runes := []rune(input)
	var out []*regexp2.Match
	start := 0
	for start <= len(runes) {
		m, err := p.findMatch(runes, start)
		if err != nil {
			return nil, err
		}
		if m == nil {
			break
		}
		out = append(out, m)
		if m.Length == 0 {
			start = m.Index + 1
		} else {
			start = m.Index + m.Length
		}
	}
	return out, nil
}
