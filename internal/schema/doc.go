// Package schema defines the typed content records that page content is
// authored in: tiles, side panels, tile templates, the category tree, tool
// groups and the legacy button tree. Documents are YAML; mapping order is
// significant and is preserved through Map.
package schema
