// Package attest synthesizes assertion methods from arbitrary callables.
//
// Given a predicate such as a length check or an equality check, attest
// generates a bound method that performs the equivalent of
// "assert f(...)": the callable's signature is introspected, augmented
// with the reserved control parameters (invert, exception, post_process,
// message), rendered back into a call expression, wrapped in a
// forwarding closure, and documented automatically from the source
// callable's own signature and description.
//
// The usual entry points are Bind, which installs a generated method on
// a MethodSet (shared by every Asserter created from it) or on a single
// Asserter instance, and the package-level Assertion singleton, which
// comes pre-populated with a catalog of comparison, containment, and
// filesystem predicates:
//
//	if err := attest.Assertion.Call("len_eq", []int{1, 2}, 2); err != nil {
//		log.Fatal(err)
//	}
//
// Custom predicates bind the same way:
//
//	func IsPositive(n int) bool { return n > 0 }
//
//	attest.MustBind(attest.DefaultMethodSet, IsPositive, "is_positive")
//	err := attest.Assertion.Call("is_positive", -3, attest.Invert())
//
// Binding happens once, at setup time. Method tables are not locked;
// callers that bind concurrently against the same set get last-writer-
// wins semantics for colliding names.
package attest
