// Package engine runs every newsdesk operation as one atomic unit.
//
// An operation acquires the entity-class locks it needs in a fixed order,
// reads the clock once, and then runs authorization, workflow and ledger
// steps inside a single store transaction. Nothing is written unless every
// check passes, so a failed operation leaves balances and states untouched.
//
// Errors returned by Engine methods are *apperr.Error values; use
// apperr.KindOf or errors.Is against the apperr sentinels to classify them.
package engine
