package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkalinski/go-avm2/internal/types"
	"github.com/mkalinski/go-avm2/pkg/qname"
)

// ============================================================================
// Vector
// ============================================================================

func TestVectorElementAccess(t *testing.T) {
	cls := VectorClassOf(IntClass())
	v := NewVectorObject(cls, 2, false)

	// New slots fill with the element default.
	got, st, err := v.GetPropertyObj(IntAny(0), types.BindGetDefault)
	require.NoError(t, err)
	require.Equal(t, types.StatusSuccess, st)
	assert.True(t, StrictEquals(got, IntAny(0)))

	st, err = v.SetPropertyObj(IntAny(1), NumberAny(7.9), types.BindSetDefault)
	require.NoError(t, err)
	require.Equal(t, types.StatusSuccess, st)

	got, _, err = v.GetPropertyObj(IntAny(1), types.BindGetDefault)
	require.NoError(t, err)
	assert.True(t, StrictEquals(got, IntAny(7)), "stores coerce through the element class")
}

func TestVectorIndexOutOfRange(t *testing.T) {
	v := NewVectorObject(VectorClassOf(IntClass()), 2, false)

	_, _, err := v.GetPropertyObj(IntAny(5), types.BindGetDefault)
	assert.Equal(t, int32(ErrVectorIndexRange), ThrownErrorID(err))

	_, _, err = v.GetPropertyObj(IntAny(-1), types.BindGetDefault)
	assert.Equal(t, int32(ErrVectorIndexRange), ThrownErrorID(err))

	// Appending one past the end is the one legal out-of-range write.
	st, err := v.SetPropertyObj(IntAny(2), IntAny(9), types.BindSetDefault)
	require.NoError(t, err)
	require.Equal(t, types.StatusSuccess, st)
	assert.Equal(t, int32(3), VectorLength(v))

	_, err = v.SetPropertyObj(IntAny(5), IntAny(9), types.BindSetDefault)
	assert.Equal(t, int32(ErrVectorIndexRange), ThrownErrorID(err))
}

func TestVectorFixedLength(t *testing.T) {
	v := NewVectorObject(VectorClassOf(IntClass()), 2, true)

	_, err := v.SetPropertyObj(IntAny(2), IntAny(1), types.BindSetDefault)
	assert.Equal(t, int32(ErrVectorIndexRange), ThrownErrorID(err), "no append on a fixed vector")

	err = VectorSetLength(v, 5)
	assert.Equal(t, int32(ErrVectorFixed), ThrownErrorID(err))
}

func TestVectorLengthTrait(t *testing.T) {
	v := FromObject(NewVectorObject(VectorClassOf(nil), 3, false))

	length, err := v.GetProperty(qname.PublicName("length"), types.BindGetDefault)
	require.NoError(t, err)
	f, _ := ToNumber(length)
	assert.Equal(t, float64(3), f)

	require.NoError(t, v.SetProperty(qname.PublicName("length"), IntAny(1), types.BindSetDefault))
	assert.Equal(t, int32(1), VectorLength(v.Object()))

	err = v.SetProperty(qname.PublicName("length"), IntAny(-1), types.BindSetDefault)
	assert.Equal(t, int32(ErrVectorIndexRange), ThrownErrorID(err))
}

func TestVectorDefaultsByElementClass(t *testing.T) {
	num := NewVectorObject(VectorClassOf(NumberClass()), 1, false)
	got, _, _ := num.GetPropertyObj(IntAny(0), types.BindGetDefault)
	assert.True(t, StrictEquals(got, NumberAny(0)))

	str := NewVectorObject(VectorClassOf(StringClass()), 1, false)
	got, _, _ = str.GetPropertyObj(IntAny(0), types.BindGetDefault)
	assert.True(t, got.IsNull(), "reference element classes default to null")

	boolean := NewVectorObject(VectorClassOf(BooleanClass()), 1, false)
	got, _, _ = boolean.GetPropertyObj(IntAny(0), types.BindGetDefault)
	assert.True(t, StrictEquals(got, BoolAny(false)))
}

func TestVectorConstructorThroughClassObject(t *testing.T) {
	cls := FromObject(NewClassObject(VectorClassOf(IntClass())))
	v, err := ConstructValue(cls, []Any{IntAny(4), BoolAny(true)})
	require.NoError(t, err)
	obj := v.Object()
	assert.Equal(t, int32(4), VectorLength(obj))

	fixed, err := FromObject(obj).GetProperty(qname.PublicName("fixed"), types.BindGetDefault)
	require.NoError(t, err)
	assert.True(t, ToBoolean(fixed))
}

func TestVectorForInIteratesIndices(t *testing.T) {
	v := NewVectorObject(VectorClassOf(IntClass()), 2, false)

	obj := FromObject(v)
	idx := int32(0)
	count := 0
	for HasNext2(&obj, &idx) && count < 10 {
		if obj.Object() != v {
			break
		}
		count++
	}
	assert.Equal(t, 2, count)
}
