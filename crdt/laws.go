package crdt

import (
	"fmt"
	"reflect"
)

// Structs

// LawViolation describes a counterexample to one of the
// algebraic laws a Semilattice implementation has to obey.
type LawViolation struct {
	Law    string
	Values []interface{}
}

// EqualFunc decides whether two payload values are
// behaviorally the same.
type EqualFunc[T any] func(a, b T) bool

// Functions

// Error fulfills the error interface.
func (v *LawViolation) Error() string {
	return fmt.Sprintf("semilattice law '%s' violated for %v", v.Law, v.Values)
}

// DeepEqual is the default EqualFunc.
func DeepEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}

// CheckReflexive verifies x ≤ x.
func CheckReflexive[T Semilattice[T]](x T) error {

	if !x.Compare(x) {
		return &LawViolation{"reflexivity", []interface{}{x}}
	}

	return nil
}

// CheckIdempotent verifies merge(x, x) = x.
func CheckIdempotent[T Semilattice[T]](x T, eq EqualFunc[T]) error {

	if !eq(x.Merge(x), x) {
		return &LawViolation{"idempotence", []interface{}{x}}
	}

	return nil
}

// CheckCommutative verifies merge(x, y) = merge(y, x).
func CheckCommutative[T Semilattice[T]](x, y T, eq EqualFunc[T]) error {

	if !eq(x.Merge(y), y.Merge(x)) {
		return &LawViolation{"commutativity", []interface{}{x, y}}
	}

	return nil
}

// CheckAssociative verifies
// merge(merge(x, y), z) = merge(x, merge(y, z)).
func CheckAssociative[T Semilattice[T]](x, y, z T, eq EqualFunc[T]) error {

	if !eq(x.Merge(y).Merge(z), x.Merge(y.Merge(z))) {
		return &LawViolation{"associativity", []interface{}{x, y, z}}
	}

	return nil
}

// CheckCompareConsistent verifies that compare(x, y)
// holds exactly when merge(x, y) = y.
func CheckCompareConsistent[T Semilattice[T]](x, y T, eq EqualFunc[T]) error {

	if x.Compare(y) != eq(x.Merge(y), y) {
		return &LawViolation{"compare/merge consistency", []interface{}{x, y}}
	}

	return nil
}

// CheckMonotone verifies that merge(x, y) is an upper
// bound of both x and y.
func CheckMonotone[T Semilattice[T]](x, y T) error {

	m := x.Merge(y)
	if !x.Compare(m) || !y.Compare(m) {
		return &LawViolation{"monotonicity", []interface{}{x, y}}
	}

	return nil
}

// CheckLaws runs all checks above over every combination
// of the supplied samples and returns the first violation.
// If eq is nil, DeepEqual is used.
func CheckLaws[T Semilattice[T]](samples []T, eq EqualFunc[T]) error {

	if eq == nil {
		eq = DeepEqual[T]
	}

	for _, x := range samples {

		if err := CheckReflexive(x); err != nil {
			return err
		}

		if err := CheckIdempotent(x, eq); err != nil {
			return err
		}

		for _, y := range samples {

			if err := CheckCommutative(x, y, eq); err != nil {
				return err
			}

			if err := CheckCompareConsistent(x, y, eq); err != nil {
				return err
			}

			if err := CheckMonotone(x, y); err != nil {
				return err
			}

			for _, z := range samples {

				if err := CheckAssociative(x, y, z, eq); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
