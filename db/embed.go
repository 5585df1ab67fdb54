// Package db holds the SQL migrations embedded into release builds.
package db

import "embed"

// Migrations contains the migrations directory.
//
//go:embed migrations/*.sql
var Migrations embed.FS
