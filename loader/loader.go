package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sig-0/kycreport/exchange"
)

var (
	ErrInputNotFound   = errors.New("input not found")
	ErrInputUnreadable = errors.New("input unreadable")
	ErrParse           = errors.New("unable to parse input")
)

// exchangesKey is the top-level key holding the exchange records
const exchangesKey = "exchanges"

// Load reads the exchange records from the JSON document at the given path
func Load(path string) ([]*exchange.Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}

		return nil, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode decodes the exchange records from the given JSON document
func Decode(r io.Reader) ([]*exchange.Raw, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	raw, ok := doc[exchangesKey]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q key", ErrParse, exchangesKey)
	}

	var records []*exchange.Raw
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	for i, record := range records {
		if record == nil {
			return nil, fmt.Errorf("%w: null record at index %d", ErrParse, i)
		}
	}

	return records, nil
}
