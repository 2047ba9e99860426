package db

import (
	"errors"
	"strconv"
	"strings"
)

// FieldType enumerates supported mapping field types.
type FieldType string

const (
	// FieldText is an analyzed full-text field.
	FieldText FieldType = "text"
	// FieldKeyword is an exact-value field used for term filters.
	FieldKeyword FieldType = "keyword"
	// FieldDate is a date field.
	FieldDate FieldType = "date"
	// FieldInteger is a 32-bit integer field.
	FieldInteger FieldType = "integer"
	// FieldFloat is a 32-bit float field.
	FieldFloat FieldType = "float"
	// FieldBoolean is a boolean field.
	FieldBoolean FieldType = "boolean"
)

// IndexField describes a single mapped field.
type IndexField struct {
	Name     string
	Type     FieldType
	Analyzer string // text fields only
}

// IndexDefinition is a complete index definition used by indices.create.
type IndexDefinition struct {
	Name     string
	Shards   int
	Replicas int
	Fields   []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIndexName(idx.Name) {
		return errors.New("index name " + strconv.Quote(idx.Name) + " is not a valid index name")
	}
	if idx.Shards < 1 {
		return errors.New("shards must be positive")
	}
	if idx.Replicas < 0 {
		return errors.New("replicas must be non-negative")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		if seen[f.Name] {
			return errors.New("duplicate field name: " + f.Name)
		}
		seen[f.Name] = true

		if f.Analyzer != "" && f.Type != FieldText {
			return errors.New("analyzer is only valid on text fields: " + f.Name)
		}
	}

	return nil
}

// Body renders the indices.create request body.
func (idx *IndexDefinition) Body() map[string]any {
	props := make(map[string]any, len(idx.Fields))
	for i := range idx.Fields {
		f := &idx.Fields[i]
		m := map[string]any{"type": string(f.Type)}
		if f.Analyzer != "" {
			m["analyzer"] = f.Analyzer
		}
		props[f.Name] = m
	}
	return map[string]any{
		"settings": map[string]any{
			"number_of_shards":   idx.Shards,
			"number_of_replicas": idx.Replicas,
		},
		"mappings": map[string]any{
			"properties": props,
		},
	}
}

// IsValidIndexName applies the Elasticsearch index naming rules:
// lowercase, at most 255 bytes, no reserved characters, no leading '-', '_' or '+'.
func IsValidIndexName(s string) bool {
	if s == "" || s == "." || s == ".." || len(s) > 255 {
		return false
	}
	if strings.ContainsAny(s[:1], "-_+") {
		return false
	}
	if strings.ContainsAny(s, `\/*?"<>| ,#:`) {
		return false
	}
	return strings.ToLower(s) == s
}
