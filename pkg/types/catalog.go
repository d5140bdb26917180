package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Model is one entry of the remote model catalog. Only the id and the
// architecture are kept; every other catalog field is ignored.
type Model struct {
	// Catalog identifier, free-tier variants carry a ":free" suffix.
	// example: meta-llama/llama-3.3-70b-instruct:free
	ID string `json:"id" example:"meta-llama/llama-3.3-70b-instruct:free"`
	// Raw architecture mapping, left undecoded until InstructType is asked for.
	// example: {"instruct_type":"llama3","modality":"text->text"}
	Architecture json.RawMessage `json:"architecture,omitempty"`
}

// InstructType returns architecture.instruct_type. A missing or null
// architecture or instruct_type yields "". Non-string values are rendered as
// their JSON text. An architecture that is not an object is an error.
func (m Model) InstructType() (string, error) {
	raw := bytes.TrimSpace(m.Architecture)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] != '{' {
		return "", fmt.Errorf("architecture of %q is not an object", m.ID)
	}
	var arch map[string]json.RawMessage
	if err := json.Unmarshal(raw, &arch); err != nil {
		return "", fmt.Errorf("architecture of %q: %w", m.ID, err)
	}
	it := bytes.TrimSpace(arch["instruct_type"])
	if len(it) == 0 || bytes.Equal(it, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(it, &s); err == nil {
		return s, nil
	}
	return string(it), nil
}

// ModelsResponse is the body returned by GET /api/v1/models.
type ModelsResponse struct {
	Data []Model `json:"data"`
}
