package types

// BindOptions is the flag set shaping a property operation: which stores are
// searched, whether the name is an attribute, whether the name was computed
// at runtime, and whether calls pass null as the receiver.
type BindOptions uint8

const (
	// BindSearchTraits searches the class trait table.
	BindSearchTraits BindOptions = 1 << iota
	// BindSearchPrototype walks the prototype chain on dynamic lookups.
	BindSearchPrototype
	// BindSearchDynamic searches (and for sets, creates in) the receiver's
	// dynamic property table.
	BindSearchDynamic
	// BindAttribute marks an attribute name. Attribute lookups never match
	// traits or dynamic properties; only XML overrides resolve them.
	BindAttribute
	// BindRuntimeName marks a name that was computed at runtime.
	BindRuntimeName
	// BindNullReceiver makes resolved calls receive null instead of the
	// object the name was resolved on.
	BindNullReceiver
)

// Default flag sets per verb.
const (
	// BindGetDefault applies to has/get/call/construct/descendants.
	BindGetDefault = BindSearchTraits | BindSearchPrototype | BindSearchDynamic

	// BindSetDefault applies to set/delete: the prototype chain is never
	// written through.
	BindSetDefault = BindSearchTraits | BindSearchDynamic
)

// Has reports whether every flag in mask is set.
func (o BindOptions) Has(mask BindOptions) bool {
	return o&mask == mask
}
