package runtime

import (
	"github.com/mkalinski/go-avm2/internal/types"
	"github.com/mkalinski/go-avm2/pkg/qname"
)

// arrayPayload backs Array instances: a dense element store next to the
// inherited dynamic property table.
type arrayPayload struct {
	elems []Any
}

// NewArrayObject builds an Array instance over the given elements. The
// slice is owned by the array afterwards.
func NewArrayObject(elems []Any) *Object {
	o := NewObject(ArrayClass())
	o.data = &arrayPayload{elems: elems}
	return o
}

func arrayData(o *Object) *arrayPayload {
	p, _ := o.data.(*arrayPayload)
	return p
}

// ArrayLength returns the dense element count.
func ArrayLength(o *Object) int32 {
	if p := arrayData(o); p != nil {
		return int32(len(p.elems))
	}
	return 0
}

// ArrayElements returns the dense element slice. Callers must not hold it
// across mutations.
func ArrayElements(o *Object) []Any {
	if p := arrayData(o); p != nil {
		return p.elems
	}
	return nil
}

// arraySpecials is the index fast-path for Array. Reads past the dense
// region fall through as soft misses; writes grow the region with
// undefined holes.
func arraySpecials() *IndexPropertySet {
	return &IndexPropertySet{
		GetInt: func(o *Object, i int32) (Any, types.Status, error) {
			p := arrayData(o)
			if p == nil || i < 0 || int(i) >= len(p.elems) {
				return Any{}, types.StatusSoftSuccess, nil
			}
			return p.elems[i], types.StatusSuccess, nil
		},
		SetInt: func(o *Object, i int32, v Any) (types.Status, error) {
			p := arrayData(o)
			if p == nil || i < 0 {
				return types.StatusNotFound, nil
			}
			for int(i) >= len(p.elems) {
				p.elems = append(p.elems, Undefined())
			}
			p.elems[i] = v
			return types.StatusSuccess, nil
		},
		DeleteInt: func(o *Object, i int32) (bool, types.Status) {
			p := arrayData(o)
			if p == nil || i < 0 || int(i) >= len(p.elems) {
				return false, types.StatusSuccess
			}
			p.elems[i] = Undefined()
			return true, types.StatusSuccess
		},
		GetUint: func(o *Object, u uint32) (Any, types.Status, error) {
			return arraySpecialGetByNumber(o, float64(u))
		},
		SetUint: func(o *Object, u uint32, v Any) (types.Status, error) {
			return arraySpecialSetByNumber(o, float64(u), v)
		},
		GetDouble: func(o *Object, d float64) (Any, types.Status, error) {
			return arraySpecialGetByNumber(o, d)
		},
		SetDouble: func(o *Object, d float64, v Any) (types.Status, error) {
			return arraySpecialSetByNumber(o, d, v)
		},
	}
}

func arraySpecialGetByNumber(o *Object, d float64) (Any, types.Status, error) {
	i := int32(d)
	if float64(i) != d || i < 0 {
		// Non-integral keys live in the dynamic table.
		return o.GetPropertyQ(qname.PublicName(FormatNumber(d)), types.BindGetDefault)
	}
	p := arrayData(o)
	if p == nil || int(i) >= len(p.elems) {
		return Any{}, types.StatusSoftSuccess, nil
	}
	return p.elems[i], types.StatusSuccess, nil
}

func arraySpecialSetByNumber(o *Object, d float64, v Any) (types.Status, error) {
	i := int32(d)
	if float64(i) != d || i < 0 {
		return o.SetPropertyQ(qname.PublicName(FormatNumber(d)), v, types.BindSetDefault)
	}
	p := arrayData(o)
	if p == nil {
		return types.StatusNotFound, nil
	}
	for int(i) >= len(p.elems) {
		p.elems = append(p.elems, Undefined())
	}
	p.elems[i] = v
	return types.StatusSuccess, nil
}
