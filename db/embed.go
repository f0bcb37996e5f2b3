// Package db provides the embedded database schema and default catalog seed.
package db

import _ "embed"

// Schema contains the DDL statements for the seed tables.
//
//go:embed migrations/001_schema.sql
var Schema string

// Catalog is the default catalog seed document.
//
//go:embed seed/catalog.json
var Catalog []byte
