package render

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/sig-0/kycreport/exchange"
)

// fingerprintSeparator joins the per-exchange digests
var fingerprintSeparator = []byte("1337")

// Fingerprint computes the report content fingerprint: a digest over the
// per-exchange digests, in the given order. Nothing verifies it yet,
// it is only compared when inspecting an existing report
func Fingerprint(exchanges []*exchange.Exchange) (string, error) {
	joined := make([]byte, 0, len(exchanges)*(2*blake2b.Size256+len(fingerprintSeparator)))

	for i, e := range exchanges {
		digest, err := entryDigest(e)
		if err != nil {
			return "", err
		}

		if i > 0 {
			joined = append(joined, fingerprintSeparator...)
		}

		joined = append(joined, digest...)
	}

	sum := blake2b.Sum256(joined)

	return hex.EncodeToString(sum[:]), nil
}

// entryDigest returns the hex digest of a single exchange's fields
func entryDigest(e *exchange.Exchange) ([]byte, error) {
	encoded, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("unable to encode exchange %q, %w", e.Name, err)
	}

	sum := blake2b.Sum256(encoded)
	out := make([]byte, hex.EncodedLen(len(sum)))

	hex.Encode(out, sum[:])

	return out, nil
}
