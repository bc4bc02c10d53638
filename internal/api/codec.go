package api

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Encode(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// Decode reads a single JSON value from r into v, rejecting unknown fields.
func Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("dec.Decode: %w", err)
	}

	return nil
}

// DecodeLenient reads a JSON value from r and ignores unknown fields, for
// responses of upstream services.
func DecodeLenient(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("dec.Decode: %w", err)
	}
	return nil
}
