package runtime

import "github.com/mkalinski/go-avm2/internal/types"

// ============================================================================
// for-in enumeration
// ============================================================================
//
// Objects expose a one-based cursor: NextIndex advances it (0 is terminal),
// NameAt/ValueAt read the entry under it. HasNext2 is the ABI-level
// composite that restarts the cursor on the prototype when the current
// object is exhausted.

// NextIndex returns the next one-based cursor position after from, or 0 when
// the object has no further enumerable properties. Array-like classes
// override this through their EnumHooks to iterate numeric indices.
func (o *Object) NextIndex(from int32) int32 {
	o.ensure()
	if o.class.Enum != nil && o.class.Enum.NextIndex != nil {
		return o.class.Enum.NextIndex(o, from)
	}
	if o.dynProps == nil {
		return 0
	}
	next := o.dynProps.NextEnumerableIndexAfter(from - 1)
	if next < 0 {
		return 0
	}
	return next + 1
}

// NameAt returns the property name under cursor position i.
func (o *Object) NameAt(i int32) Any {
	o.ensure()
	if o.class.Enum != nil && o.class.Enum.NameAt != nil {
		return o.class.Enum.NameAt(o, i)
	}
	if o.dynProps == nil || i <= 0 {
		return Undefined()
	}
	name := o.dynProps.NameAt(i - 1)
	if name == "" {
		return Undefined()
	}
	return StringAny(name)
}

// ValueAt returns the property value under cursor position i.
func (o *Object) ValueAt(i int32) Any {
	o.ensure()
	if o.class.Enum != nil && o.class.Enum.ValueAt != nil {
		return o.class.Enum.ValueAt(o, i)
	}
	if o.dynProps == nil || i <= 0 {
		return Undefined()
	}
	return o.dynProps.ValueAt(i - 1)
}

// HasNext2 advances the enumeration cursor, hopping to the prototype chain
// when the current object is exhausted. obj and index are in-out: on true,
// they address the next property; on false, obj is null and index 0. The
// walk is bounded so proto cycles terminate.
func HasNext2(obj *Any, index *int32) bool {
	for steps := 0; steps < protoWalkLimit; steps++ {
		cur := obj.Object()
		if cur == nil {
			*obj = Null()
			*index = 0
			return false
		}
		next := cur.NextIndex(*index)
		if next > 0 {
			*index = next
			return true
		}
		*obj = FromObject(cur.Proto())
		*index = 0
	}
	*obj = Null()
	*index = 0
	return false
}

// arrayEnumHooks builds EnumHooks that iterate numeric indices first and the
// dynamic table afterwards. length reads the live element count.
func arrayEnumHooks(length func(o *Object) int32) *EnumHooks {
	return &EnumHooks{
		NextIndex: func(o *Object, from int32) int32 {
			n := length(o)
			if from < n {
				return from + 1
			}
			if o.dynProps == nil {
				return 0
			}
			next := o.dynProps.NextEnumerableIndexAfter(from - n - 1)
			if next < 0 {
				return 0
			}
			return n + next + 1
		},
		NameAt: func(o *Object, i int32) Any {
			n := length(o)
			if i <= 0 {
				return Undefined()
			}
			if i <= n {
				return IntAny(i - 1)
			}
			if o.dynProps == nil {
				return Undefined()
			}
			name := o.dynProps.NameAt(i - n - 1)
			if name == "" {
				return Undefined()
			}
			return StringAny(name)
		},
		ValueAt: func(o *Object, i int32) Any {
			n := length(o)
			if i <= 0 {
				return Undefined()
			}
			if i <= n {
				v, st, _ := o.GetPropertyObj(IntAny(i-1), types.BindGetDefault)
				if st.Found() {
					return v
				}
				return Undefined()
			}
			if o.dynProps == nil {
				return Undefined()
			}
			return o.dynProps.ValueAt(i - n - 1)
		},
	}
}
