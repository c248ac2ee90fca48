package runtime

import (
	"fmt"
	"sync"

	"github.com/mkalinski/go-avm2/internal/types"
	"github.com/mkalinski/go-avm2/pkg/qname"
)

// vectorPayload backs Vector.<T> instances.
type vectorPayload struct {
	elems []Any
	fixed bool
}

// NewVectorObject builds a Vector instance of the given parameterized class
// with length initial elements.
func NewVectorObject(class *ClassInfo, length int, fixed bool) *Object {
	o := NewObject(class)
	p := &vectorPayload{fixed: fixed, elems: make([]Any, length)}
	for i := range p.elems {
		p.elems[i] = vectorDefault(class)
	}
	o.data = p
	return o
}

func vectorData(o *Object) *vectorPayload {
	p, _ := o.data.(*vectorPayload)
	return p
}

// vectorDefault is the hole value for a vector's element class: 0 for the
// numeric classes, false for Boolean, null otherwise.
func vectorDefault(class *ClassInfo) Any {
	if class == nil || class.ElemClass == nil {
		return Null()
	}
	switch class.ElemClass.Tag {
	case types.TagInt:
		return IntAny(0)
	case types.TagUint:
		return UintAny(0)
	case types.TagNumber:
		return NumberAny(0)
	case types.TagBoolean:
		return BoolAny(false)
	}
	return Null()
}

// VectorLength returns the element count.
func VectorLength(o *Object) int32 {
	if p := vectorData(o); p != nil {
		return int32(len(p.elems))
	}
	return 0
}

// VectorSetLength resizes the vector. Fixed-length vectors refuse; new
// slots fill with the element default.
func VectorSetLength(o *Object, n int32) error {
	p := vectorData(o)
	if p == nil {
		return nil
	}
	if p.fixed {
		return NewRangeErrorCode(ErrVectorFixed)
	}
	if n < 0 {
		return NewRangeErrorCode(ErrVectorIndexRange, n)
	}
	for int32(len(p.elems)) < n {
		p.elems = append(p.elems, vectorDefault(o.Class()))
	}
	p.elems = p.elems[:n]
	return nil
}

// coerceVectorElement applies the element class's coercion on store.
func coerceVectorElement(class *ClassInfo, v Any) (Any, error) {
	if class == nil || class.ElemClass == nil {
		return v, nil
	}
	return CoerceToClass(v, class.ElemClass)
}

// vectorSpecials is the index fast-path for every Vector class. Out-of-range
// access throws RangeError; appending one past the end is legal on a
// non-fixed vector.
func vectorSpecials() *IndexPropertySet {
	get := func(o *Object, i int32) (Any, types.Status, error) {
		p := vectorData(o)
		if p == nil || i < 0 || int(i) >= len(p.elems) {
			return Any{}, types.StatusSuccess, NewRangeErrorCode(ErrVectorIndexRange, i)
		}
		return p.elems[i], types.StatusSuccess, nil
	}
	set := func(o *Object, i int32, v Any) (types.Status, error) {
		p := vectorData(o)
		if p == nil || i < 0 {
			return types.StatusSuccess, NewRangeErrorCode(ErrVectorIndexRange, i)
		}
		coerced, err := coerceVectorElement(o.Class(), v)
		if err != nil {
			return types.StatusSuccess, err
		}
		switch {
		case int(i) < len(p.elems):
			p.elems[i] = coerced
		case int(i) == len(p.elems) && !p.fixed:
			p.elems = append(p.elems, coerced)
		default:
			return types.StatusSuccess, NewRangeErrorCode(ErrVectorIndexRange, i)
		}
		return types.StatusSuccess, nil
	}
	return &IndexPropertySet{
		GetInt: get,
		SetInt: set,
		GetUint: func(o *Object, u uint32) (Any, types.Status, error) {
			return get(o, int32(u))
		},
		SetUint: func(o *Object, u uint32, v Any) (types.Status, error) {
			return set(o, int32(u), v)
		},
		GetDouble: func(o *Object, d float64) (Any, types.Status, error) {
			i := int32(d)
			if float64(i) != d {
				return Any{}, types.StatusSuccess, NewRangeErrorCode(ErrVectorIndexRange, FormatNumber(d))
			}
			return get(o, i)
		},
		SetDouble: func(o *Object, d float64, v Any) (types.Status, error) {
			i := int32(d)
			if float64(i) != d {
				return types.StatusSuccess, NewRangeErrorCode(ErrVectorIndexRange, FormatNumber(d))
			}
			return set(o, i, v)
		},
	}
}

// vectorClassCache maps element classes to their parameterized Vector class
// so applyType returns the same class object for the same parameter.
var (
	vectorClassMu    sync.Mutex
	vectorClassCache = map[*ClassInfo]*ClassInfo{}
	vectorAnyClass   *ClassInfo
)

// VectorClassOf returns the Vector.<elem> class, building and caching it on
// first use. A nil element class means Vector.<*>.
func VectorClassOf(elem *ClassInfo) *ClassInfo {
	bootstrapBuiltins()
	vectorClassMu.Lock()
	defer vectorClassMu.Unlock()
	if elem == nil {
		if vectorAnyClass == nil {
			vectorAnyClass = newVectorClass(nil)
		}
		return vectorAnyClass
	}
	if c, ok := vectorClassCache[elem]; ok {
		return c
	}
	c := newVectorClass(elem)
	vectorClassCache[elem] = c
	return c
}

// newVectorClass assembles one parameterized Vector class. Callers hold
// vectorClassMu.
func newVectorClass(elem *ClassInfo) *ClassInfo {
	local := "Vector.<*>"
	if elem != nil {
		local = fmt.Sprintf("Vector.<%s>", elem.Name.String())
	}
	c := NewClassInfo(qname.New(qname.Namespace{Kind: qname.KindPublic, URI: "__AS3__.vec"}, local), types.TagVector, false)
	c.Parent = objectClass
	c.ElemClass = elem
	c.ElemAny = elem == nil
	c.Prototype = vectorClass.Prototype
	c.Specials = vectorSpecials()
	c.Enum = arrayEnumHooks(VectorLength)
	c.Constructor = func(args []Any) (Any, error) {
		length := 0
		fixed := false
		if len(args) > 0 {
			n, err := ToUint32(args[0])
			if err != nil {
				return Any{}, err
			}
			length = int(n)
		}
		if len(args) > 1 {
			fixed = ToBoolean(args[1])
		}
		return FromObject(NewVectorObject(c, length, fixed)), nil
	}
	c.AddAccessor("length",
		func(recv *Object) (Any, error) {
			return UintAny(uint32(VectorLength(recv))), nil
		},
		func(recv *Object, value Any) error {
			n, err := ToInt32(value)
			if err != nil {
				return err
			}
			return VectorSetLength(recv, n)
		})
	c.AddAccessor("fixed",
		func(recv *Object) (Any, error) {
			p := vectorData(recv)
			return BoolAny(p != nil && p.fixed), nil
		},
		func(recv *Object, value Any) error {
			if p := vectorData(recv); p != nil {
				p.fixed = ToBoolean(value)
			}
			return nil
		})
	return c
}
