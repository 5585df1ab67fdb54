// Package registry implements the bounded identity registry that every
// authorization decision routes through.
//
// The registry is an ordered list of (principal, role) entries with a fixed
// capacity (MaxReporterCount by default). Positions [0, Count()) are always
// occupied; deleting an entry shifts the later ones left. Add, Edit and Delete
// return the new count so callers never track it themselves.
//
// Roles keep their stored numeric values: RoleSenior is 1, RoleAdmin is 2.
package registry
