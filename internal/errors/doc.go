// Package apperrors defines the structured error taxonomy shared by every
// component of the client: a closed set of error kinds, a single Error type
// carrying the fields each kind requires, factory functions that construct
// well-formed members of the taxonomy, and a normalizer that converts any
// raw failure (backend responses, network faults, panics, plain strings)
// into exactly one taxonomy member.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions. Error implements
// the Unwrap() method so errors.Is() and errors.As() can traverse the
// underlying cause chain.
package apperrors
