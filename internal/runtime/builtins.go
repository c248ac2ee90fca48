package runtime

import (
	"math"
	"strings"
	"time"

	"github.com/mkalinski/go-avm2/internal/types"
	"github.com/mkalinski/go-avm2/pkg/qname"
)

// ============================================================================
// Builtin class bootstrap
// ============================================================================
//
// The builtin classes, their prototypes, and the box caches are assembled
// once at package init, before any runtime value circulates, and are
// read-only afterwards.

var (
	objectClass    *ClassInfo
	intClass       *ClassInfo
	uintClass      *ClassInfo
	numberClass    *ClassInfo
	stringClass    *ClassInfo
	booleanClass   *ClassInfo
	functionClass  *ClassInfo
	classClass     *ClassInfo
	arrayClass     *ClassInfo
	vectorClass    *ClassInfo
	regexpClass    *ClassInfo
	qnameClass     *ClassInfo
	namespaceClass *ClassInfo
	dateClass      *ClassInfo
	errorClass     *ClassInfo

	errorSubclasses map[string]*ClassInfo

	mathObject *Object

	builtinsReady bool
)

func init() {
	bootstrapBuiltins()
}

func bootstrapBuiltins() {
	if builtinsReady {
		return
	}
	builtinsReady = true
	buildBuiltins()
}

// Public accessors. Package init guarantees the vars are live before any
// external caller can reach them.

func ObjectClass() *ClassInfo   { bootstrapBuiltins(); return objectClass }
func IntClass() *ClassInfo      { bootstrapBuiltins(); return intClass }
func UintClass() *ClassInfo     { bootstrapBuiltins(); return uintClass }
func NumberClass() *ClassInfo   { bootstrapBuiltins(); return numberClass }
func StringClass() *ClassInfo   { bootstrapBuiltins(); return stringClass }
func BooleanClass() *ClassInfo  { bootstrapBuiltins(); return booleanClass }
func FunctionClass() *ClassInfo { bootstrapBuiltins(); return functionClass }
func ClassClass() *ClassInfo    { bootstrapBuiltins(); return classClass }
func ArrayClass() *ClassInfo    { bootstrapBuiltins(); return arrayClass }
func VectorBaseClass() *ClassInfo {
	bootstrapBuiltins()
	return vectorClass
}
func RegExpClass() *ClassInfo    { bootstrapBuiltins(); return regexpClass }
func QNameClass() *ClassInfo     { bootstrapBuiltins(); return qnameClass }
func NamespaceClass() *ClassInfo { bootstrapBuiltins(); return namespaceClass }
func DateClass() *ClassInfo      { bootstrapBuiltins(); return dateClass }
func ErrorClass() *ClassInfo     { bootstrapBuiltins(); return errorClass }

// MathObject returns the Math singleton.
func MathObject() *Object { bootstrapBuiltins(); return mathObject }

func newBuiltinClass(local string, tag types.ClassTag, dynamic bool) *ClassInfo {
	return NewClassInfo(qname.PublicName(local), tag, dynamic)
}

// rawFunction builds a Function object without touching the box caches; the
// bootstrap uses it for the Object.prototype methods.
func rawFunction(fn NativeMethod) *Object {
	o := NewObject(functionClass)
	o.data = &funcPayload{call: fn}
	return o
}

// rawString builds a String box bypassing the cache.
func rawString(s string) Any {
	o := NewObject(stringClass)
	o.sval = s
	return FromObject(o)
}

func buildBuiltins() {
	// Phase 1: descriptors.
	objectClass = newBuiltinClass("Object", types.TagObject, true)
	intClass = newBuiltinClass("int", types.TagInt, false)
	uintClass = newBuiltinClass("uint", types.TagUint, false)
	numberClass = newBuiltinClass("Number", types.TagNumber, false)
	stringClass = newBuiltinClass("String", types.TagString, false)
	booleanClass = newBuiltinClass("Boolean", types.TagBoolean, false)
	functionClass = newBuiltinClass("Function", types.TagFunction, true)
	classClass = newBuiltinClass("Class", types.TagClass, false)
	arrayClass = newBuiltinClass("Array", types.TagArray, true)
	vectorClass = newBuiltinClass("Vector", types.TagVector, false)
	regexpClass = newBuiltinClass("RegExp", types.TagRegExp, true)
	qnameClass = newBuiltinClass("QName", types.TagQName, false)
	namespaceClass = newBuiltinClass("Namespace", types.TagNamespace, false)
	dateClass = newBuiltinClass("Date", types.TagDate, true)
	errorClass = newBuiltinClass("Error", types.TagError, true)

	for _, c := range []*ClassInfo{
		intClass, uintClass, numberClass, stringClass, booleanClass,
		functionClass, classClass, arrayClass, vectorClass, regexpClass,
		qnameClass, namespaceClass, dateClass, errorClass,
	} {
		c.Parent = objectClass
	}

	// Phase 2: box caches, so trait installation below may box freely.
	populateBoxCaches()

	// Phase 3: prototype objects. Object.prototype initializes before it is
	// published on its class so its own proto link stays nil.
	objectProto := NewObject(objectClass)
	objectProto.ensure()
	objectClass.Prototype = objectProto

	numberProto := NewObject(objectClass)
	stringProto := NewObject(objectClass)
	booleanProto := NewObject(objectClass)
	functionProto := NewObject(objectClass)
	arrayProto := NewObject(objectClass)
	vectorProto := NewObject(objectClass)
	regexpProto := NewObject(objectClass)
	qnameProto := NewObject(objectClass)
	namespaceProto := NewObject(objectClass)
	dateProto := NewObject(objectClass)
	errorProto := NewObject(objectClass)

	numberClass.Prototype = numberProto
	// Integer boxes share the Number prototype.
	intClass.Prototype = numberProto
	uintClass.Prototype = numberProto
	stringClass.Prototype = stringProto
	booleanClass.Prototype = booleanProto
	functionClass.Prototype = functionProto
	classClass.Prototype = objectProto
	arrayClass.Prototype = arrayProto
	vectorClass.Prototype = vectorProto
	regexpClass.Prototype = regexpProto
	qnameClass.Prototype = qnameProto
	namespaceClass.Prototype = namespaceProto
	dateClass.Prototype = dateProto
	errorClass.Prototype = errorProto

	// Phase 4: traits.
	installObjectPrototype(objectProto)
	installNumberMethods(numberClass)
	installNumberMethods(intClass)
	installNumberMethods(uintClass)
	installStringMethods(stringClass)
	installBooleanMethods(booleanClass)
	installFunctionMethods(functionClass)
	installArrayClass(arrayClass)
	installRegExpMethods(regexpClass)
	installQNameMethods(qnameClass)
	installNamespaceMethods(namespaceClass)
	installDateMethods(dateClass)
	installErrorClass(errorClass)

	installConstructors()

	// Phase 5: error subclasses.
	errorSubclasses = make(map[string]*ClassInfo)
	for _, name := range []string{
		"EvalError", "RangeError", "ReferenceError", "SecurityError",
		"SyntaxError", "TypeError", "URIError", "ArgumentError", "VerifyError",
	} {
		sub := newBuiltinClass(name, types.TagError, true)
		sub.Parent = errorClass
		proto := NewObject(objectClass)
		proto.ensure()
		proto.proto = errorProto
		sub.Prototype = proto
		subName := name
		sub.Constructor = func(args []Any) (Any, error) {
			return newErrorFromArgs(subName, args)
		}
		errorSubclasses[name] = sub
	}

	// Phase 6: the Math singleton.
	mathObject = buildMathObject()

	// Phase 7: publication.
	reg := GlobalRegistry()
	for _, c := range []*ClassInfo{
		objectClass, intClass, uintClass, numberClass, stringClass,
		booleanClass, functionClass, classClass, arrayClass, vectorClass,
		regexpClass, qnameClass, namespaceClass, dateClass, errorClass,
	} {
		reg.Register(c)
	}
	for _, c := range errorSubclasses {
		reg.Register(c)
	}
}

// installObjectPrototype publishes the Object.prototype methods as
// non-enumerable dynamic properties, the way AVM2 exposes them.
func installObjectPrototype(proto *Object) {
	dyn := proto.DynProps()
	add := func(name string, fn NativeMethod) {
		dyn.SetWithEnumerable(name, FromObject(rawFunction(fn)), false)
	}
	add("toString", func(recv Any, args []Any) (Any, error) {
		o := recv.Object()
		if o == nil {
			return rawString("[object Object]"), nil
		}
		return rawString("[object " + o.Class().Name.Local + "]"), nil
	})
	add("valueOf", func(recv Any, args []Any) (Any, error) {
		return recv, nil
	})
	add("hasOwnProperty", func(recv Any, args []Any) (Any, error) {
		o := recv.Object()
		if o == nil {
			return BoolAny(false), nil
		}
		key, err := ConvertString(argAt(args, 0))
		if err != nil {
			return Any{}, err
		}
		if dynTable := o.DynProps(); dynTable != nil && dynTable.GetIndex(key) >= 0 {
			return BoolAny(true), nil
		}
		st, _ := o.Class().LookupTraitQ(qname.PublicName(key), false)
		return BoolAny(st == types.StatusSuccess), nil
	})
	add("isPrototypeOf", func(recv Any, args []Any) (Any, error) {
		self := recv.Object()
		target := argAt(args, 0).Object()
		if self == nil || target == nil {
			return BoolAny(false), nil
		}
		cur := target.Proto()
		for steps := 0; cur != nil && steps < protoWalkLimit; steps++ {
			if cur == self {
				return BoolAny(true), nil
			}
			cur = cur.Proto()
		}
		return BoolAny(false), nil
	})
	add("propertyIsEnumerable", func(recv Any, args []Any) (Any, error) {
		o := recv.Object()
		if o == nil {
			return BoolAny(false), nil
		}
		key, err := ConvertString(argAt(args, 0))
		if err != nil {
			return Any{}, err
		}
		dynTable := o.DynProps()
		return BoolAny(dynTable != nil && dynTable.IsEnumerable(key)), nil
	})
	add("setPropertyIsEnumerable", func(recv Any, args []Any) (Any, error) {
		o := recv.Object()
		if o == nil {
			return Undefined(), nil
		}
		key, err := ConvertString(argAt(args, 0))
		if err != nil {
			return Any{}, err
		}
		if dynTable := o.DynProps(); dynTable != nil {
			dynTable.SetEnumerable(key, ToBoolean(argAt(args, 1)))
		}
		return Undefined(), nil
	})
}

func installBooleanMethods(c *ClassInfo) {
	c.AddMethod("toString", func(recv Any, args []Any) (Any, error) {
		return StringAny(map[bool]string{true: "true", false: "false"}[ToBoolean(recv)]), nil
	})
	c.AddMethod("valueOf", func(recv Any, args []Any) (Any, error) {
		return BoolAny(ToBoolean(recv)), nil
	})
}

func installFunctionMethods(c *ClassInfo) {
	c.AddMethod("call", func(recv Any, args []Any) (Any, error) {
		thisArg := argAt(args, 0)
		rest := args
		if len(rest) > 0 {
			rest = rest[1:]
		}
		return CallValue(recv, thisArg, rest)
	})
	c.AddMethod("apply", func(recv Any, args []Any) (Any, error) {
		thisArg := argAt(args, 0)
		var rest []Any
		if arr := argAt(args, 1).Object(); arr != nil && arr.Tag() == types.TagArray {
			rest = append(rest, ArrayElements(arr)...)
		}
		return CallValue(recv, thisArg, rest)
	})
}

func installArrayClass(c *ClassInfo) {
	c.Specials = arraySpecials()
	c.Enum = arrayEnumHooks(ArrayLength)
	c.AddAccessor("length",
		func(recv *Object) (Any, error) {
			return UintAny(uint32(ArrayLength(recv))), nil
		},
		func(recv *Object, value Any) error {
			n, err := ToUint32(value)
			if err != nil {
				return err
			}
			p := arrayData(recv)
			if p == nil {
				return nil
			}
			for uint32(len(p.elems)) < n {
				p.elems = append(p.elems, Undefined())
			}
			p.elems = p.elems[:n]
			return nil
		})
	join := func(recv Any, args []Any) (Any, error) {
		o := recv.Object()
		if o == nil {
			return StringAny(""), nil
		}
		sep := ","
		if !argAt(args, 0).IsUndefined() {
			var err error
			sep, err = ConvertString(args[0])
			if err != nil {
				return Any{}, err
			}
		}
		parts := make([]string, 0, ArrayLength(o))
		for _, e := range ArrayElements(o) {
			if e.IsUndefinedOrNull() {
				parts = append(parts, "")
				continue
			}
			s, err := ConvertString(e)
			if err != nil {
				return Any{}, err
			}
			parts = append(parts, s)
		}
		return StringAny(strings.Join(parts, sep)), nil
	}
	c.AddMethod("join", join)
	c.AddMethod("toString", func(recv Any, args []Any) (Any, error) {
		return join(recv, nil)
	})
	c.AddMethod("push", func(recv Any, args []Any) (Any, error) {
		o := recv.Object()
		p := arrayData(o)
		if p != nil {
			p.elems = append(p.elems, args...)
		}
		return UintAny(uint32(ArrayLength(o))), nil
	})
	c.AddMethod("pop", func(recv Any, args []Any) (Any, error) {
		p := arrayData(recv.Object())
		if p == nil || len(p.elems) == 0 {
			return Undefined(), nil
		}
		last := p.elems[len(p.elems)-1]
		p.elems = p.elems[:len(p.elems)-1]
		return last, nil
	})
}

func installRegExpMethods(c *ClassInfo) {
	flagAccessor := func(flag RegExpFlags) func(recv *Object) (Any, error) {
		return func(recv *Object) (Any, error) {
			return BoolAny(RegExpFlagsOf(recv)&flag != 0), nil
		}
	}
	c.AddAccessor("source", func(recv *Object) (Any, error) {
		return StringAny(RegExpSource(recv)), nil
	}, nil)
	c.AddAccessor("global", flagAccessor(FlagGlobal), nil)
	c.AddAccessor("ignoreCase", flagAccessor(FlagIgnoreCase), nil)
	c.AddAccessor("multiline", flagAccessor(FlagMultiline), nil)
	c.AddAccessor("dotall", flagAccessor(FlagDotAll), nil)
	c.AddAccessor("extended", flagAccessor(FlagExtended), nil)
	c.AddAccessor("lastIndex",
		func(recv *Object) (Any, error) {
			return IntAny(RegExpLastIndex(recv)), nil
		},
		func(recv *Object, value Any) error {
			i, err := ToInt32(value)
			if err != nil {
				return err
			}
			RegExpSetLastIndex(recv, i)
			return nil
		})
	c.AddMethod("test", func(recv Any, args []Any) (Any, error) {
		input, err := ConvertString(argAt(args, 0))
		if err != nil {
			return Any{}, err
		}
		ok, err := RegExpTest(recv.Object(), input)
		if err != nil {
			return Any{}, err
		}
		return BoolAny(ok), nil
	})
	c.AddMethod("exec", func(recv Any, args []Any) (Any, error) {
		input, err := ConvertString(argAt(args, 0))
		if err != nil {
			return Any{}, err
		}
		return RegExpExec(recv.Object(), input)
	})
	c.AddMethod("toString", func(recv Any, args []Any) (Any, error) {
		o := recv.Object()
		return StringAny("/" + RegExpSource(o) + "/" + RegExpFlagsOf(o).String()), nil
	})
}

func installQNameMethods(c *ClassInfo) {
	c.AddAccessor("localName", func(recv *Object) (Any, error) {
		q, _ := QNameValue(recv)
		return StringAny(q.Local), nil
	}, nil)
	c.AddAccessor("uri", func(recv *Object) (Any, error) {
		q, _ := QNameValue(recv)
		return StringAny(q.NS.URI), nil
	}, nil)
	c.AddMethod("toString", func(recv Any, args []Any) (Any, error) {
		q, _ := QNameValue(recv.Object())
		return StringAny(q.String()), nil
	})
}

func installNamespaceMethods(c *ClassInfo) {
	c.AddAccessor("uri", func(recv *Object) (Any, error) {
		ns, _ := NamespaceValue(recv)
		return StringAny(ns.URI), nil
	}, nil)
	c.AddMethod("toString", func(recv Any, args []Any) (Any, error) {
		ns, _ := NamespaceValue(recv.Object())
		return StringAny(ns.URI), nil
	})
}

func installDateMethods(c *ClassInfo) {
	c.AddMethod("valueOf", func(recv Any, args []Any) (Any, error) {
		o := recv.Object()
		if o == nil {
			return NumberAny(math.NaN()), nil
		}
		return NumberAny(o.fval), nil
	})
	c.AddMethod("toString", func(recv Any, args []Any) (Any, error) {
		o := recv.Object()
		if o == nil || math.IsNaN(o.fval) {
			return StringAny("Invalid Date"), nil
		}
		t := time.UnixMilli(int64(o.fval)).UTC()
		return StringAny(t.Format("Mon Jan 2 15:04:05 GMT-0700 2006")), nil
	})
	c.AddMethod("getTime", func(recv Any, args []Any) (Any, error) {
		o := recv.Object()
		if o == nil {
			return NumberAny(math.NaN()), nil
		}
		return NumberAny(o.fval), nil
	})
}

func installErrorClass(c *ClassInfo) {
	c.AddAccessor("name",
		func(recv *Object) (Any, error) {
			return StringAny(ErrorName(recv)), nil
		},
		func(recv *Object, value Any) error {
			s, err := ConvertString(value)
			if err != nil {
				return err
			}
			SetErrorName(recv, s)
			return nil
		})
	c.AddAccessor("message",
		func(recv *Object) (Any, error) {
			return StringAny(ErrorMessage(recv)), nil
		},
		func(recv *Object, value Any) error {
			s, err := ConvertString(value)
			if err != nil {
				return err
			}
			SetErrorMessage(recv, s)
			return nil
		})
	c.AddAccessor("errorID", func(recv *Object) (Any, error) {
		return IntAny(ErrorID(recv)), nil
	}, nil)
	c.AddMethod("getStackTrace", func(recv Any, args []Any) (Any, error) {
		o := recv.Object()
		if o == nil {
			return Null(), nil
		}
		return StringAny(ErrorStackTrace(o)), nil
	})
	c.AddMethod("toString", func(recv Any, args []Any) (Any, error) {
		o := recv.Object()
		if o == nil {
			return StringAny("Error"), nil
		}
		return StringAny(ErrorToString(o)), nil
	})
}

func newErrorFromArgs(className string, args []Any) (Any, error) {
	message := ""
	if len(args) > 0 && !args[0].IsUndefined() {
		var err error
		message, err = ConvertString(args[0])
		if err != nil {
			return Any{}, err
		}
	}
	id := int32(0)
	if len(args) > 1 {
		var err error
		id, err = ToInt32(args[1])
		if err != nil {
			return Any{}, err
		}
	}
	return FromObject(NewErrorObject(className, message, id)), nil
}

func installConstructors() {
	objectClass.Constructor = func(args []Any) (Any, error) {
		if len(args) > 0 && args[0].HasObject() {
			return args[0], nil
		}
		return FromObject(NewPlainObject()), nil
	}
	for _, c := range []*ClassInfo{intClass, uintClass, numberClass, booleanClass, stringClass} {
		target := c
		c.Constructor = func(args []Any) (Any, error) {
			if len(args) == 0 {
				return CoerceToClass(Undefined(), target)
			}
			return CoerceToClass(args[0], target)
		}
	}
	arrayClass.Constructor = func(args []Any) (Any, error) {
		if len(args) == 1 {
			if o := args[0].Object(); o != nil && types.NumericTags.Contains(o.Tag()) {
				n, err := ToUint32(args[0])
				if err != nil {
					return Any{}, err
				}
				return FromObject(NewArrayObject(make([]Any, n))), nil
			}
		}
		elems := make([]Any, len(args))
		copy(elems, args)
		return FromObject(NewArrayObject(elems)), nil
	}
	regexpClass.Constructor = func(args []Any) (Any, error) {
		pattern := ""
		if len(args) > 0 && !args[0].IsUndefined() {
			var err error
			pattern, err = ConvertString(args[0])
			if err != nil {
				return Any{}, err
			}
		}
		var flags RegExpFlags
		if len(args) > 1 && !args[1].IsUndefined() {
			fs, err := ConvertString(args[1])
			if err != nil {
				return Any{}, err
			}
			flags, err = ParseRegExpFlags(fs)
			if err != nil {
				return Any{}, err
			}
		}
		o, err := NewRegExpObject(pattern, flags)
		if err != nil {
			return Any{}, err
		}
		return FromObject(o), nil
	}
	qnameClass.Constructor = func(args []Any) (Any, error) {
		switch len(args) {
		case 0:
			return FromObject(NewQNameObject(qname.PublicName(""))), nil
		case 1:
			local, err := ConvertString(args[0])
			if err != nil {
				return Any{}, err
			}
			return FromObject(NewQNameObject(qname.PublicName(local))), nil
		default:
			uri, err := ConvertString(args[0])
			if err != nil {
				return Any{}, err
			}
			local, err := ConvertString(args[1])
			if err != nil {
				return Any{}, err
			}
			kind := qname.KindPublic
			if uri != "" {
				kind = qname.KindExplicit
			}
			return FromObject(NewQNameObject(qname.New(qname.Namespace{Kind: kind, URI: uri}, local))), nil
		}
	}
	namespaceClass.Constructor = func(args []Any) (Any, error) {
		uri := ""
		if len(args) > 0 {
			var err error
			uri, err = ConvertString(args[0])
			if err != nil {
				return Any{}, err
			}
		}
		kind := qname.KindPublic
		if uri != "" {
			kind = qname.KindExplicit
		}
		return FromObject(NewNamespaceObject(qname.Namespace{Kind: kind, URI: uri})), nil
	}
	dateClass.Constructor = func(args []Any) (Any, error) {
		if len(args) > 0 {
			ms, err := ToNumber(args[0])
			if err != nil {
				return Any{}, err
			}
			return FromObject(NewDateObject(ms)), nil
		}
		return FromObject(NewDateObject(float64(time.Now().UnixMilli()))), nil
	}
	errorClass.Constructor = func(args []Any) (Any, error) {
		return newErrorFromArgs("Error", args)
	}
	vectorClass.Constructor = func(args []Any) (Any, error) {
		// The bare Vector class instantiates as Vector.<*>.
		cls := VectorClassOf(nil)
		return cls.Constructor(args)
	}
}

func numArg(args []Any, i int) (float64, error) {
	return ToNumber(argAt(args, i))
}

func buildMathObject() *Object {
	mathClass := newBuiltinClass("Math", types.TagObject, false)
	mathClass.Parent = objectClass
	mathClass.Prototype = objectClass.Prototype

	unary := func(name string, fn func(float64) float64) {
		mathClass.AddMethod(name, func(recv Any, args []Any) (Any, error) {
			x, err := numArg(args, 0)
			if err != nil {
				return Any{}, err
			}
			return NumberAny(fn(x)), nil
		})
	}
	unary("abs", math.Abs)
	unary("ceil", math.Ceil)
	unary("floor", math.Floor)
	unary("round", MathRound)
	unary("sqrt", math.Sqrt)
	unary("exp", math.Exp)
	unary("log", math.Log)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("asin", math.Asin)
	unary("acos", math.Acos)
	unary("atan", math.Atan)

	mathClass.AddMethod("atan2", func(recv Any, args []Any) (Any, error) {
		y, err := numArg(args, 0)
		if err != nil {
			return Any{}, err
		}
		x, err := numArg(args, 1)
		if err != nil {
			return Any{}, err
		}
		return NumberAny(math.Atan2(y, x)), nil
	})
	mathClass.AddMethod("pow", func(recv Any, args []Any) (Any, error) {
		x, err := numArg(args, 0)
		if err != nil {
			return Any{}, err
		}
		y, err := numArg(args, 1)
		if err != nil {
			return Any{}, err
		}
		return NumberAny(MathPow(x, y)), nil
	})
	variadic := func(name string, fn func(...float64) float64) {
		mathClass.AddMethod(name, func(recv Any, args []Any) (Any, error) {
			values := make([]float64, len(args))
			for i, a := range args {
				f, err := ToNumber(a)
				if err != nil {
					return Any{}, err
				}
				values[i] = f
			}
			return NumberAny(fn(values...)), nil
		})
	}
	variadic("min", MathMin)
	variadic("max", MathMax)
	mathClass.AddMethod("random", func(recv Any, args []Any) (Any, error) {
		return NumberAny(MathRandom()), nil
	})

	constant := func(name string, v float64) {
		mathClass.AddAccessor(name, func(recv *Object) (Any, error) {
			return NumberAny(v), nil
		}, nil)
	}
	constant("PI", math.Pi)
	constant("E", math.E)
	constant("LN10", math.Ln10)
	constant("LN2", math.Ln2)
	constant("LOG10E", math.Log10E)
	constant("LOG2E", math.Log2E)
	constant("SQRT1_2", math.Sqrt2/2)
	constant("SQRT2", math.Sqrt2)

	return NewObject(mathClass)
}

// ErrorSubclass returns one of the typed error classes by name, or the base
// Error class when the name is unknown.
func ErrorSubclass(name string) *ClassInfo {
	bootstrapBuiltins()
	if c, ok := errorSubclasses[name]; ok {
		return c
	}
	return errorClass
}
