// Package runtime implements the AVM2 core object model: the tri-state Any
// value, the base Object with its trait and dynamic property systems, the
// binding core that resolves property operations over (traits × dynamic ×
// prototype), operator semantics, value coercion and primitive boxing, the
// primitive box classes, RegExp, the Error hierarchy, and the Math surface.
//
// The bytecode interpreter and JIT sit above this package and reach it only
// through the binding verbs on Any/Object and the static operator helpers.
// The class loader sits below it and supplies ClassInfo descriptors and
// Trait implementations.
package runtime
