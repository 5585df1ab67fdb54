// Package gorm provides the PostgreSQL implementation of the store
// interfaces defined in the parent store package.
//
// Each Atomic call runs inside a gorm transaction. Rows are read with
// SELECT ... FOR UPDATE so concurrent transactions touching the same entity
// serialize in the database as well as in the engine.
package gorm
