// Package apperr defines the error taxonomy reported to newsdesk callers.
//
// Every failed engine operation returns an *Error whose Kind is one of:
//
//   - KindAuthorization: role mismatch or missing registry entry
//   - KindCapacity: the reporter registry is full
//   - KindState: invalid workflow transition (e.g. publish before approve)
//   - KindFunds: insufficient or zero balance
//   - KindNotFound: missing reporter, item, vault, pool or registry
//   - KindInvalidAmount: zero or overflowing amount
//   - KindConflict: an entity with the same key already exists
//   - KindInvalid: a malformed argument such as an unknown role
//
// None of these is retryable and none leaves partial state behind.
//
//	if errors.Is(err, apperr.ErrFunds) {
//	    // handle insufficient balance
//	}
package apperr
