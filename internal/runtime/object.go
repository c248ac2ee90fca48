package runtime

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/mkalinski/go-avm2/internal/types"
)

// Object is the runtime representation of every AS3 value. One flat struct
// carries the payload variants; the class descriptor carries the behavior.
//
// The class, proto, and dynProps fields start nil and are resolved together
// on first access under a striped lock, so a freshly boxed value costs
// nothing until the binding core actually touches it.
type Object struct {
	class    *ClassInfo
	proto    *Object
	dynProps *DynProps
	initDone atomic.Uint32

	// seed is the descriptor the object adopts on first touch. It stands
	// in for the host type hierarchy walk: every constructor knows which
	// class its concrete value belongs to.
	seed *ClassInfo

	// Payload variants; the class tag says which one is live.
	ival int64   // int, uint, Boolean
	fval float64 // Number, Date
	sval string  // String
	data any     // Function, Class, Array, Vector, RegExp, Error, QName, Namespace
}

// NewObject creates an instance of the given class. The class may be nil;
// lazy initialization then falls back to the builtin Object class.
func NewObject(class *ClassInfo) *Object {
	return &Object{seed: class}
}

// NewPlainObject creates a plain dynamic Object instance.
func NewPlainObject() *Object {
	return NewObject(ObjectClass())
}

// ============================================================================
// Lazy initialization
// ============================================================================

// initStripeCount fixes the size of the striped-lock array guarding lazy
// initialization. Striping keeps the per-object footprint at O(1) while
// bounding contention.
const initStripeCount = 13

var initStripes [initStripeCount]sync.Mutex

func stripeFor(o *Object) *sync.Mutex {
	p := reflect.ValueOf(o).Pointer()
	return &initStripes[(p>>4)%initStripeCount]
}

// ensure resolves class, proto, and dynProps exactly once. The first
// initializer under the stripe wins; later observers see fully-initialized
// fields through the acquire load of initDone.
func (o *Object) ensure() {
	if o.initDone.Load() == 1 {
		return
	}
	lk := stripeFor(o)
	lk.Lock()
	defer lk.Unlock()
	if o.initDone.Load() == 1 {
		return
	}

	c := o.seed
	if c == nil {
		c = ObjectClass()
	}
	o.class = c
	if o.proto == nil {
		o.proto = c.Prototype
	}
	if c.Dynamic && o.dynProps == nil {
		o.dynProps = NewDynProps()
	}
	o.initDone.Store(1)
}

// Class returns the object's class descriptor, initializing lazily.
func (o *Object) Class() *ClassInfo {
	o.ensure()
	return o.class
}

// Tag returns the class tag.
func (o *Object) Tag() types.ClassTag {
	o.ensure()
	return o.class.Tag
}

// Proto returns the next object in the prototype chain, which may be nil.
func (o *Object) Proto() *Object {
	o.ensure()
	return o.proto
}

// SetProto replaces the prototype link. User code may build cycles this way;
// the chain walks are bounded so a cycle degrades to a miss, never a hang.
func (o *Object) SetProto(p *Object) {
	o.ensure()
	o.proto = p
}

// DynProps returns the dynamic property table, or nil when the class is not
// dynamic.
func (o *Object) DynProps() *DynProps {
	o.ensure()
	return o.dynProps
}

// ============================================================================
// Payload accessors
// ============================================================================

// IntValue returns the int payload.
func (o *Object) IntValue() int32 {
	return int32(o.ival)
}

// UintValue returns the uint payload.
func (o *Object) UintValue() uint32 {
	return uint32(o.ival)
}

// BoolValue returns the Boolean payload.
func (o *Object) BoolValue() bool {
	return o.ival != 0
}

// StringValue returns the String payload.
func (o *Object) StringValue() string {
	return o.sval
}

// NumberValue returns the numeric value of any numeric box: int and uint
// widen exactly, Boolean maps to 0/1, Number and Date read their float
// payload directly.
func (o *Object) NumberValue() float64 {
	switch o.Tag() {
	case types.TagInt:
		return float64(int32(o.ival))
	case types.TagUint:
		return float64(uint32(o.ival))
	case types.TagBoolean:
		if o.ival != 0 {
			return 1
		}
		return 0
	default:
		return o.fval
	}
}

// searchPrototypeChain walks proto links from start looking for a live
// dynamic property named key. The walk is bounded so user-created proto
// cycles terminate as a miss.
func searchPrototypeChain(start *Object, key string) (Any, bool) {
	cur := start
	for steps := 0; cur != nil && steps < protoWalkLimit; steps++ {
		cur.ensure()
		if cur.dynProps != nil {
			if v, ok := cur.dynProps.TryGetValue(key); ok {
				return v, true
			}
		}
		cur = cur.proto
	}
	return Any{}, false
}
