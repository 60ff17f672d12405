package schema

import _ "embed"

// DDL creates the statistics tables. Every statement is idempotent.
//
//go:embed schema.sql
var DDL string
