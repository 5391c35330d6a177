// Package corpus reads card corpus documents: JSON files holding every set
// and every card with its printings, as consumed by catalog.Build.
//
// Decoding and schema validation are separate steps. Decode accepts any
// document encoding/json can map onto catalog.RawCorpus; Validate checks a
// document against the embedded CUE schema and reports every violation
// with its position.
package corpus

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/roach88/cardsearch/internal/catalog"
)

//go:embed schema.cue
var schemaSource string

// Decode reads one corpus document from r.
func Decode(r io.Reader) (catalog.RawCorpus, error) {
	var raw catalog.RawCorpus
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return catalog.RawCorpus{}, fmt.Errorf("decode corpus: %w", err)
	}
	return raw, nil
}

// ReadFile reads and decodes the corpus at path. With validate set the
// document must also satisfy the schema.
func ReadFile(path string, validate bool) (catalog.RawCorpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.RawCorpus{}, fmt.Errorf("read corpus: %w", err)
	}
	if validate {
		if err := ValidateFile(path, data); err != nil {
			return catalog.RawCorpus{}, err
		}
	}
	raw, err := Decode(bytes.NewReader(data))
	if err != nil {
		return catalog.RawCorpus{}, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}
