package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewParses(t *testing.T) {
	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(" " + id.String() + " ")
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestNewAt_SortsByTime(t *testing.T) {
	a := idx.NewAt(time.Unix(1_700_000_000, 0))
	b := idx.NewAt(time.Unix(1_700_000_001, 0))
	require.Less(t, a.String(), b.String())

	// Same millisecond stays monotonic.
	at := time.Unix(1_700_000_002, 0)
	c, d := idx.NewAt(at), idx.NewAt(at)
	require.Less(t, c.String(), d.String())
}

func TestTime(t *testing.T) {
	tm := time.UnixMilli(1_700_000_000_123).UTC()
	require.Equal(t, tm, idx.NewAt(tm).Time().UTC())
	require.True(t, idx.ID("nope").Time().IsZero())
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, s)
	}
	require.Panics(t, func() { idx.MustParse("bad") })
}
