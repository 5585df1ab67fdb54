// Package ledger holds the escrow balances of the platform.
//
// A Pool is the platform-wide escrow funded by the owner; a Vault is the
// per-author or per-campaign sub-balance. Both are plain values: every
// operation checks first and only mutates once all checks pass, so a failed
// call leaves the receiver unchanged.
//
// Balances models the transfer host, the set of accounts real value moves
// between. Pool and campaign vault balances mirror their escrow accounts in
// Balances; content vault credits are obligations that PayoutJunior settles
// out of the pool.
package ledger
