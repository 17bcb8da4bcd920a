package chunk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSONL writes the chunks to w as JSON Lines, one object per
// line, the format embedding pipelines commonly ingest.
func WriteJSONL(w io.Writer, chunks []*Chunk) error {
	enc := json.NewEncoder(w)
	for i, ch := range chunks {
		if err := enc.Encode(ch); err != nil {
			return fmt.Errorf("encoding chunk %d: %w", i, err)
		}
	}
	return nil
}

// ToJSON renders the chunks as an indented JSON array.
func ToJSON(chunks []*Chunk) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(chunks); err != nil {
		return "", err
	}
	return buf.String(), nil
}
