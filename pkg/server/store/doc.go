// Package store provides storage abstractions for the newsdesk engine.
//
// Every persisted entity is addressed by a Key built from a seed kind, an
// optional item id and an owning principal. All reads and writes happen
// inside Store.Atomic: the callback receives a Tx whose writes become
// visible only if the callback returns nil.
//
// # Implementations
//
//   - memory: staged in-process maps, used by tests and the default server
//   - gorm: PostgreSQL tables accessed through raw SQL in a gorm transaction
//
// # Usage
//
//	err := s.Atomic(ctx, func(tx store.Tx) error {
//	    pool, err := tx.Pool(owner)
//	    if err != nil {
//	        return err
//	    }
//	    pool.Balance += amount
//	    return tx.PutPool(pool)
//	})
package store
