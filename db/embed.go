// Package db embeds the SQL schema applied at startup.
package db

import _ "embed"

// Schema is the full DDL for the garage backend database.
//
//go:embed schema.sql
var Schema string
