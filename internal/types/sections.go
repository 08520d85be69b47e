// Package types defines the shared data structures exchanged between the
// tailoring pipeline stages.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BlockMap is an insertion-ordered mapping from a sub-block key (skill
// category, experience entry, project) to its raw LaTeX content. Setting an
// existing key replaces the content but keeps the key's original position.
type BlockMap struct {
	keys   []string
	blocks map[string]string
}

// NewBlockMap creates an empty BlockMap.
func NewBlockMap() *BlockMap {
	return &BlockMap{blocks: make(map[string]string)}
}

// Set stores content under key, appending the key if it is new.
func (m *BlockMap) Set(key, content string) {
	if m.blocks == nil {
		m.blocks = make(map[string]string)
	}
	if _, exists := m.blocks[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.blocks[key] = content
}

// Get returns the content stored under key.
func (m *BlockMap) Get(key string) (string, bool) {
	if m == nil || m.blocks == nil {
		return "", false
	}
	content, ok := m.blocks[key]
	return content, ok
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *BlockMap) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of sub-blocks.
func (m *BlockMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// MarshalJSON encodes the map as a JSON object with keys in insertion order.
func (m *BlockMap) MarshalJSON() ([]byte, error) {
	if m == nil || len(m.keys) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		valueJSON, err := json.Marshal(m.blocks[key])
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order.
func (m *BlockMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object for BlockMap, got %v", tok)
	}

	m.keys = nil
	m.blocks = make(map[string]string)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key in BlockMap, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		m.Set(key, value)
	}
	return nil
}

// ResumeSections holds the marker-delimited regions parsed from a .tex
// resume. Skills, Experience and Projects preserve the order in which the
// sub-blocks appear in the document; the ranker relies on that order for its
// stable tie-breaks.
type ResumeSections struct {
	Summary    string    `json:"summary"`
	Skills     *BlockMap `json:"skills"`
	Experience *BlockMap `json:"experience"`
	Projects   *BlockMap `json:"projects"`
}

// NewResumeSections returns a ResumeSections with empty (non-nil) maps.
func NewResumeSections() *ResumeSections {
	return &ResumeSections{
		Skills:     NewBlockMap(),
		Experience: NewBlockMap(),
		Projects:   NewBlockMap(),
	}
}
