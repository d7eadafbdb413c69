// Package kernel provides the primitives shared by every aggregate of the
// laundry domain.
//
// The package includes:
//   - ID: the numeric storage identity of aggregates and entities
//   - Mobile: a phone number normalized to digits, used as the customer lookup key
//   - Actor and Role: the authenticated principal behind a command
package kernel
