// Package errs is the error taxonomy of the laundry service.
//
// Every kind has a sentinel for errors.Is checks and a struct that carries
// the details and unwraps to the sentinel:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: bad
//     input, grouped by IsValidation
//   - ObjectNotFoundError: an order, item or customer that does not exist
//   - UnauthorizedError: missing or unusable credentials
//   - ForbiddenError: the actor lacks the role or does not own the order
//   - IllegalTransitionError: a status move the lifecycle rejects
//   - ConflictError: a uniqueness clash that retries could not resolve
//   - PersistenceError: a storage failure during the write phase
//
// Messages never contain line breaks, so they are safe to log and to return
// to clients as-is.
package errs
