package umbral

import "github.com/umbral-go/umbral-pre/internal/curve"

// paramU is the second generator, independent of G, shared by all
// implementations for interop (spec.md §4: "a compile-time domain
// generator U, defined as hash_to_curve(\"U\")"). Go's package-level
// variable initialization already gives this init-once semantics with no
// explicit synchronization needed.
var paramU = curve.HashToPoint([]byte("U"))

// ParamU returns the shared second generator U used by kfrag commitments
// and cfrag proofs.
func ParamU() curve.Point {
	return paramU
}
