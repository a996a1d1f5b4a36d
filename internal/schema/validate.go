// Package schema checks a persisted pet collection before anything trusts
// it: the CUE schema covers field names and types, and a second pass checks
// what CUE cannot see (identity collisions, half-migrated vocabularies,
// unreadable timestamps).
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/littlebeepers/internal/pet"
)

//go:embed pets.cue
var schemaSource string

// DocumentName is the file name CUE positions are reported against.
const DocumentName = "pets.json"

// Validation error codes (E200-E299)
const (
	ErrCodeSyntax            = "E200" // not a parseable document
	ErrCodeSchema            = "E201" // field missing, unknown, or of the wrong type
	ErrCodeDuplicateIdentity = "E202" // two pets share (name, spawn_date)
	ErrCodeBothVocabularies  = "E203" // legacy word and words both present
	ErrCodeTimestamp         = "E204" // timestamp cannot be read back
	ErrCodeNoVocabulary      = "E205" // neither word nor words present
	ErrCodeEventShape        = "E206" // playdate without partners, or partners on a visit
)

// ErrInvalid is returned by Check when the document has problems.
var ErrInvalid = errors.New("invalid pet collection")

// ValidationError is one problem found in the document.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate returns every problem in raw. An empty document (no store yet)
// is valid.
func Validate(raw []byte) []ValidationError {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("pets.cue"))
	if err := schema.Err(); err != nil {
		return []ValidationError{{Field: "schema", Message: err.Error(), Code: ErrCodeSyntax}}
	}

	doc := ctx.CompileBytes(raw, cue.Filename(DocumentName))
	if err := doc.Err(); err != nil {
		return fromCUE(err, ErrCodeSyntax)
	}

	unified := schema.LookupPath(cue.ParsePath("#Collection")).Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fromCUE(err, ErrCodeSchema)
	}

	return checkRecords(raw)
}

// Check is Validate folded into a single error wrapping ErrInvalid.
func Check(raw []byte) error {
	errs := Validate(raw)
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// fromCUE flattens a CUE error list, keeping the document line when one
// of the positions points into it.
func fromCUE(err error, code string) []ValidationError {
	var out []ValidationError
	for _, e := range cueerrors.Errors(err) {
		ve := ValidationError{
			Field:   strings.Join(e.Path(), "."),
			Message: e.Error(),
			Code:    code,
		}
		if ve.Field == "" {
			ve.Field = "document"
		}
		for _, pos := range cueerrors.Positions(e) {
			if pos.Filename() == DocumentName {
				ve.Line = pos.Line()
				break
			}
		}
		out = append(out, ve)
	}
	if len(out) == 0 {
		out = append(out, ValidationError{Field: "document", Message: err.Error(), Code: code})
	}
	return out
}

type rawPet struct {
	Name      string          `json:"name"`
	SpawnDate string          `json:"spawn_date"`
	History   []pet.Event     `json:"history"`
	Word      json.RawMessage `json:"word"`
	Words     json.RawMessage `json:"words"`
}

func checkRecords(raw []byte) []ValidationError {
	var pets []rawPet
	if err := json.Unmarshal(raw, &pets); err != nil {
		return []ValidationError{{Field: "document", Message: err.Error(), Code: ErrCodeSyntax}}
	}

	var errs []ValidationError
	seen := make(map[pet.Identity]int, len(pets))
	for i, p := range pets {
		field := fmt.Sprintf("%d", i)

		id := pet.Identity{Name: p.Name, SpawnDate: p.SpawnDate}
		if prev, ok := seen[id]; ok {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s repeats the identity of position %d", id, prev),
				Code:    ErrCodeDuplicateIdentity,
			})
		} else {
			seen[id] = i
		}

		switch {
		case p.Word != nil && p.Words != nil:
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "both word and words present; word will be folded into words on next write",
				Code:    ErrCodeBothVocabularies,
			})
		case p.Word == nil && p.Words == nil:
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "no vocabulary",
				Code:    ErrCodeNoVocabulary,
			})
		}

		if _, err := pet.ParseTimestamp(p.SpawnDate); err != nil {
			errs = append(errs, ValidationError{Field: field + ".spawn_date", Message: err.Error(), Code: ErrCodeTimestamp})
		}
		for j, ev := range p.History {
			evField := fmt.Sprintf("%d.history.%d", i, j)
			if _, err := pet.ParseTimestamp(ev.Timestamp); err != nil {
				errs = append(errs, ValidationError{Field: evField + ".timestamp", Message: err.Error(), Code: ErrCodeTimestamp})
			}
			switch {
			case ev.IsPlaydate() && ev.Partners == nil:
				errs = append(errs, ValidationError{Field: evField, Message: "playdate without partners", Code: ErrCodeEventShape})
			case !ev.IsPlaydate() && ev.Partners != nil:
				errs = append(errs, ValidationError{Field: evField, Message: "partners on a visit event", Code: ErrCodeEventShape})
			}
		}
	}
	return errs
}
