// Package schemas embeds the JSON Schemas of the documents the tracker persists.
package schemas

import _ "embed"

// Semesters is the schema of the persisted semester history.
//
//go:embed semesters.schema.json
var Semesters string

// Settings is the schema of the persisted application settings.
//
//go:embed settings.schema.json
var Settings string
