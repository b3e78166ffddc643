package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/aidant/internal/constants"
)

type envelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	Data          json.RawMessage `json:"data"`
}

// Collection persists one typed value under a backend key.
type Collection[T any] struct {
	backend Backend
	key     string
}

func NewCollection[T any](backend Backend, key string) *Collection[T] {
	return &Collection[T]{backend: backend, key: key}
}

func (c *Collection[T]) Key() string {
	return c.key
}

// LoadRaw returns the stored payload with its envelope removed.
// found is false when nothing was ever saved under the key.
func (c *Collection[T]) LoadRaw() (raw json.RawMessage, found bool, err error) {
	data, err := c.backend.Get(c.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", c.key, err)
	}
	return Unwrap(data), true, nil
}

// Load decodes the stored value into a fresh T.
func (c *Collection[T]) Load() (T, bool, error) {
	var v T
	raw, found, err := c.LoadRaw()
	if err != nil || !found {
		return v, found, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, true, fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	return v, true, nil
}

// Save serializes v inside a versioned envelope and writes it synchronously.
func (c *Collection[T]) Save(v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	wrapped, err := json.Marshal(envelope{SchemaVersion: constants.SchemaVersion, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.backend.Put(c.key, wrapped); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}
	return nil
}

// Clear removes the stored value.
func (c *Collection[T]) Clear() error {
	return c.backend.Delete(c.key)
}

// Unwrap strips the {schemaVersion, data} envelope. Anything else is treated
// as a bare legacy value and returned unchanged.
func Unwrap(data []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return trimmed
	}
	_, hasVersion := fields["schemaVersion"]
	body, hasData := fields["data"]
	if !hasVersion || !hasData || len(fields) != 2 {
		return trimmed
	}
	return body
}

// DecodeRecord decodes raw on top of template: fields absent from raw keep the
// template's value. The template is never modified.
func DecodeRecord[T any](raw json.RawMessage, template T) (T, error) {
	base, err := json.Marshal(template)
	if err != nil {
		return template, err
	}
	var v T
	if err := json.Unmarshal(base, &v); err != nil {
		return template, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return template, err
	}
	return v, nil
}

// RecordError is one array element that could not be decoded.
type RecordError struct {
	Index int
	Err   error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

// RecordErrors lists the elements DecodeRecords skipped.
type RecordErrors []RecordError

func (e RecordErrors) Error() string {
	parts := make([]string, len(e))
	for i, re := range e {
		parts[i] = re.Error()
	}
	return fmt.Sprintf("%d malformed record(s): %s", len(e), strings.Join(parts, "; "))
}

// DecodeRecords decodes a JSON array, merging each element onto its own copy of template.
// Elements that fail to decode are skipped: the others are returned together
// with a RecordErrors describing what was left out.
func DecodeRecords[T any](raw json.RawMessage, template T) ([]T, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}
	base, err := json.Marshal(template)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(elems))
	var skipped RecordErrors
	for i, elem := range elems {
		var v T
		if err := json.Unmarshal(base, &v); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(elem, &v); err != nil {
			skipped = append(skipped, RecordError{Index: i, Err: err})
			continue
		}
		out = append(out, v)
	}
	if len(skipped) > 0 {
		return out, skipped
	}
	return out, nil
}
