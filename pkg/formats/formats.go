// Package formats provides parsers for block definition documents.
package formats

// Note: model JSON (parent chains, elements, faces) is parsed in model.go
// Note: blockstate JSON (variants, multipart conditions) is parsed in blockstate.go
// Note: the legacy block-config YAML table is parsed in blockconfig.go
