// Package validate turns untrusted external input into branded values
// guaranteed to satisfy domain constraints before they reach business
// logic.
//
// Each branded type (Email, Username, ...) wraps its raw primitive in a
// struct with an unexported value field, so the only way to obtain one is
// through the matching validator. Validation never transforms content: a
// value read back through String() is byte-identical to the input that
// passed.
//
// The bounds, patterns, and allow-lists live in Rules, injected at
// construction. Deployments may override any bound without altering
// validator control flow.
package validate
