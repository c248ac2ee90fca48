package runtime

// ============================================================================
// Primitive boxing
// ============================================================================
//
// Every primitive has an object form. Boxes for hot values are precomputed
// once at startup and shared process-wide; after that the caches are
// read-only, so lookups are lock-free. From the binding core's viewpoint a
// cached box is indistinguishable from a fresh one — the classes are
// non-dynamic, so shared instances never grow per-instance state.

const (
	intCacheMin  = -128
	intCacheMax  = 128
	uintCacheMax = 256
	charCacheMax = 128
)

var (
	intCache    [intCacheMax - intCacheMin + 1]*Object
	uintCache   [uintCacheMax + 1]*Object
	charCache   [charCacheMax]*Object
	trueObject  *Object
	falseObject *Object
	emptyString *Object
)

// populateBoxCaches runs once from the builtin bootstrap, before any lookup.
func populateBoxCaches() {
	for i := range intCache {
		o := NewObject(intClass)
		o.ival = int64(intCacheMin + i)
		intCache[i] = o
	}
	for u := range uintCache {
		o := NewObject(uintClass)
		o.ival = int64(u)
		uintCache[u] = o
	}
	for c := range charCache {
		o := NewObject(stringClass)
		o.sval = string(rune(c))
		charCache[c] = o
	}
	trueObject = NewObject(booleanClass)
	trueObject.ival = 1
	falseObject = NewObject(booleanClass)
	emptyString = NewObject(stringClass)
}

// BoxInt boxes an int, serving hot values from the shared cache.
func BoxInt(v int32) *Object {
	bootstrapBuiltins()
	if v >= intCacheMin && v <= intCacheMax {
		return intCache[v-intCacheMin]
	}
	o := NewObject(intClass)
	o.ival = int64(v)
	return o
}

// BoxUint boxes a uint.
func BoxUint(v uint32) *Object {
	bootstrapBuiltins()
	if v <= uintCacheMax {
		return uintCache[v]
	}
	o := NewObject(uintClass)
	o.ival = int64(v)
	return o
}

// BoxNumber boxes a Number.
func BoxNumber(v float64) *Object {
	bootstrapBuiltins()
	o := NewObject(numberClass)
	o.fval = v
	return o
}

// BoxString boxes a String. The empty string and one-character ASCII
// strings are shared singletons.
func BoxString(s string) *Object {
	bootstrapBuiltins()
	if s == "" {
		return emptyString
	}
	if len(s) == 1 && s[0] < charCacheMax {
		return charCache[s[0]]
	}
	o := NewObject(stringClass)
	o.sval = s
	return o
}

// BoxBoolean returns one of the two Boolean singletons.
func BoxBoolean(b bool) *Object {
	bootstrapBuiltins()
	if b {
		return trueObject
	}
	return falseObject
}

// FromBoxed is the reverse-marshalling entry point: foreign code hands the
// runtime a host value and gets the AS3 view of it.
func FromBoxed(v any) Any {
	switch x := v.(type) {
	case nil:
		return Null()
	case Any:
		return x
	case *Object:
		return FromObject(x)
	case bool:
		return BoolAny(x)
	case int:
		return IntAny(int32(x))
	case int32:
		return IntAny(x)
	case int64:
		return NumberAny(float64(x))
	case uint32:
		return UintAny(x)
	case uint64:
		return NumberAny(float64(x))
	case float32:
		return NumberAny(float64(x))
	case float64:
		return NumberAny(x)
	case string:
		return StringAny(x)
	}
	return Undefined()
}
