// README: Strict decoding of classified completion text into order records.
package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMalformed means the text was classified as structured but does not
	// decode into a valid record (truncated output, missing fields, ...).
	ErrMalformed = errors.New("malformed completion")
	// ErrUnstructured is returned when asked to parse free text.
	ErrUnstructured = errors.New("unstructured completion")
	// ErrBadRequest flags caller-supplied orders that fail validation.
	ErrBadRequest = errors.New("bad request")
)

var validate = validator.New()

// Parse decodes text according to its classification.
func Parse(text string, c Classification) (Parsed, error) {
	body := cleanJSONString(text)
	switch c {
	case ClassComplete:
		var o Order
		if err := json.Unmarshal([]byte(body), &o); err != nil {
			return Parsed{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if err := Validate(&o); err != nil {
			return Parsed{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return Parsed{Order: &o}, nil
	case ClassAddressOnly:
		a, err := parseAddressOnly(body)
		if err != nil {
			return Parsed{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return Parsed{Address: a}, nil
	default:
		return Parsed{}, ErrUnstructured
	}
}

// Validate trims the order's text fields and checks that every required
// field is present.
func Validate(o *Order) error {
	o.normalize()
	return validate.Struct(o)
}

// ValidateDirect does the same for form-submitted orders.
func ValidateDirect(d *DirectOrder) error {
	d.normalize()
	return validate.Struct(d)
}

func parseAddressOnly(body string) (*AddressOnly, error) {
	var fields map[string]string
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, err
	}
	if len(fields) != 1 {
		return nil, fmt.Errorf("expected a single address field, got %d fields", len(fields))
	}
	for _, k := range addressKeys {
		if v, ok := fields[k]; ok && strings.TrimSpace(v) != "" {
			return &AddressOnly{Address: strings.TrimSpace(v)}, nil
		}
	}
	return nil, errors.New("address field missing")
}
