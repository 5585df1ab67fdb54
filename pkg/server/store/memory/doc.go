// Package memory provides an in-process implementation of store.Store.
//
// Writes made inside Atomic are staged in a per-transaction overlay and
// applied to the shared maps in one step when the callback succeeds. The
// store serializes individual reads and the commit; callers that need
// read-modify-write isolation across transactions must hold their own locks.
package memory
