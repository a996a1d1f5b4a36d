package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/littlebeepers/internal/pet"
)

// marshalCollection renders records as an indented JSON array. HTML escaping
// is disabled so names containing & or < stay readable on disk.
func marshalCollection(records []pet.Record) ([]byte, error) {
	if records == nil {
		records = []pet.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("marshal collection: %w", err)
	}
	return buf.Bytes(), nil
}

// unmarshalCollection parses a stored document. Empty input and a JSON null
// both decode to an empty collection.
func unmarshalCollection(data []byte) ([]pet.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []pet.Record{}, nil
	}

	var records []pet.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal collection: %w", err)
	}
	if records == nil {
		records = []pet.Record{}
	}
	return records, nil
}
