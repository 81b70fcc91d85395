package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/kycreport/exchange"
)

const validDocument = `{
	"exchanges": [
		{
			"name": "Bisq",
			"long-description": "Decentralized.<br>More text",
			"score": 8.2,
			"kyc-check": true,
			"kyc-type": 0,
			"cash": true,
			"p2p": true,
			"custodial": false,
			"url": "https://bisq.network",
			"tor-onion": "false"
		},
		{
			"name": "Boltz",
			"long-description": "Swaps",
			"score": 7,
			"kyc-check": true,
			"kyc-type": 1,
			"cash": false,
			"p2p": false,
			"custodial": "semi",
			"url": ["https://boltz.exchange", "https://boltz.example"],
			"tor-onion": "http://boltz.onion"
		}
	]
}`

func TestLoader_Decode(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		records, err := Decode(strings.NewReader(validDocument))
		require.NoError(t, err)
		require.Len(t, records, 2)

		bisq, err := records[0].Listing()
		require.NoError(t, err)

		assert.Equal(t, "Bisq", records[0].Name)
		assert.Equal(t, 8.2, bisq.Score)
		assert.Equal(t, exchange.CustodyNone, bisq.Custodial)
		assert.True(t, bisq.Cash)
		assert.True(t, bisq.URL.Matches("https://bisq.network"))
		assert.Empty(t, bisq.Onion)

		boltz, err := records[1].Listing()
		require.NoError(t, err)

		assert.Equal(t, exchange.CustodySemi, boltz.Custodial)
		assert.Equal(t, "https://boltz.exchange", boltz.URL.First())
		assert.Equal(t, exchange.Onion("http://boltz.onion"), boltz.Onion)

		kycType, ok := records[1].Field(exchange.FieldKYCType)
		require.True(t, ok)
		assert.Equal(t, exchange.NumberValue(1), kycType)
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()

		records, err := Decode(strings.NewReader(`{"exchanges": []}`))
		require.NoError(t, err)

		assert.Empty(t, records)
	})

	t.Run("malformed document", func(t *testing.T) {
		t.Parallel()

		_, err := Decode(strings.NewReader(`{"exchanges": [`))

		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("missing exchanges key", func(t *testing.T) {
		t.Parallel()

		_, err := Decode(strings.NewReader(`{"services": []}`))

		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("exchanges not a list", func(t *testing.T) {
		t.Parallel()

		_, err := Decode(strings.NewReader(`{"exchanges": {"name": "Bisq"}}`))

		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("null record", func(t *testing.T) {
		t.Parallel()

		_, err := Decode(strings.NewReader(`{"exchanges": [null]}`))

		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("unknown custody value left to listing", func(t *testing.T) {
		t.Parallel()

		records, err := Decode(strings.NewReader(`{"exchanges": [
			{"name": "X", "custodial": "partial", "url": "https://x.example"}
		]}`))
		require.NoError(t, err)
		require.Len(t, records, 1)

		_, err = records[0].Listing()

		assert.ErrorIs(t, err, exchange.ErrInvalidCustody)
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()

		_, err := Decode(strings.NewReader(`{"exchanges": [{"custodial": true}]}`))

		assert.ErrorIs(t, err, ErrParse)
	})
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "exchanges.json"))

		assert.ErrorIs(t, err, ErrInputNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, err := Load(t.TempDir())

		assert.ErrorIs(t, err, ErrInputUnreadable)
	})

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "exchanges.json")
		require.NoError(t, os.WriteFile(path, []byte(validDocument), 0o600))

		records, err := Load(path)
		require.NoError(t, err)

		assert.Len(t, records, 2)
	})
}
