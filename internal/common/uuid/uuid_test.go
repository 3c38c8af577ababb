package uuid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsV7(t *testing.T) {
	u := New()
	assert.True(t, IsUUIDv7(u))
}

func TestParseRoundTrip(t *testing.T) {
	u := New()
	parsed, err := Parse(u.String())
	require.NoError(t, err)
	assert.Equal(t, u, parsed)

	_, err = Parse("not-a-uuid")
	assert.Error(t, err)
}

func TestTimestampIsRecent(t *testing.T) {
	before := time.Now().Add(-time.Second)
	u := New()
	after := time.Now().Add(time.Second)

	ts := Timestamp(u)
	assert.True(t, ts.After(before), "timestamp %v should be after %v", ts, before)
	assert.True(t, ts.Before(after), "timestamp %v should be before %v", ts, after)
}

func TestOrdering(t *testing.T) {
	a := New()
	time.Sleep(2 * time.Millisecond)
	b := New()
	assert.Less(t, a.String(), b.String(), "v7 UUIDs should sort by creation time")
}
