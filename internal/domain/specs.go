package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Spec struct {
	Name  string
	Value string
}

// Specs is an ordered attribute list. It encodes as a JSON object whose key
// order follows the slice, and decodes keeping the document order.
type Specs []Spec

// Get returns the value for name.
func (s Specs) Get(name string) (string, bool) {
	for _, sp := range s {
		if sp.Name == name {
			return sp.Value, true
		}
	}
	return "", false
}

func (s Specs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sp := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(sp.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(sp.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Specs) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("specifications: expected object, got %v", tok)
	}
	out := Specs{}
	seen := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("specifications: bad key %v", tok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("specifications[%s]: %w", name, err)
		}
		// duplicate keys: last value wins, first position kept
		if i, dup := seen[name]; dup {
			out[i].Value = value
			continue
		}
		seen[name] = len(out)
		out = append(out, Spec{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}
