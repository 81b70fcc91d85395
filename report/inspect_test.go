package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	t.Parallel()

	t.Run("names and fingerprint", func(t *testing.T) {
		t.Parallel()

		snapshot, err := Inspect(strings.NewReader(strings.Join([]string{
			`<!-- header note -->`,
			`<h1 id="fiat">Fiat</h1>`,
			`<h2 style="display: inline;" id="Bisq">Bisq</h2><br>`,
			`<h1 id="crypto">Crypto</h1>`,
			`<h2 style="display: inline;" id="Boltz">Boltz</h2><br>`,
			`<h2>Untitled</h2>`,
			`<!--abc123-->`,
		}, "\n")))
		require.NoError(t, err)

		assert.Equal(t, []string{"Bisq", "Boltz"}, snapshot.Names)
		assert.Equal(t, "abc123", snapshot.Fingerprint)
	})

	t.Run("no fingerprint", func(t *testing.T) {
		t.Parallel()

		snapshot, err := Inspect(strings.NewReader(`<h2 id="Bisq">Bisq</h2>`))
		require.NoError(t, err)

		assert.Equal(t, []string{"Bisq"}, snapshot.Names)
		assert.Empty(t, snapshot.Fingerprint)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		snapshot, err := Inspect(strings.NewReader(""))
		require.NoError(t, err)

		assert.Empty(t, snapshot.Names)
		assert.Empty(t, snapshot.Fingerprint)
	})
}

func TestDiff(t *testing.T) {
	t.Parallel()

	t.Run("identical", func(t *testing.T) {
		t.Parallel()

		s := &Snapshot{Names: []string{"A", "B"}, Fingerprint: "f"}

		assert.True(t, Diff(s, s).Empty())
	})

	t.Run("added and removed", func(t *testing.T) {
		t.Parallel()

		changes := Diff(
			&Snapshot{Names: []string{"A", "B", "C"}, Fingerprint: "f1"},
			&Snapshot{Names: []string{"C", "D", "A"}, Fingerprint: "f2"},
		)

		assert.Equal(t, []string{"D"}, changes.Added)
		assert.Equal(t, []string{"B"}, changes.Removed)
		assert.True(t, changes.FingerprintChanged)
		assert.False(t, changes.Empty())
	})

	t.Run("reordered only", func(t *testing.T) {
		t.Parallel()

		changes := Diff(
			&Snapshot{Names: []string{"A", "B"}, Fingerprint: "f1"},
			&Snapshot{Names: []string{"B", "A"}, Fingerprint: "f2"},
		)

		assert.Empty(t, changes.Added)
		assert.Empty(t, changes.Removed)
		assert.True(t, changes.FingerprintChanged)
	})
}
