package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDList_ValueNilIsEmptyArray(t *testing.T) {
	var l IDList
	v, err := l.Value()
	require.NoError(t, err)

	var s string
	switch x := v.(type) {
	case []byte:
		s = string(x)
	case string:
		s = x
	}
	assert.Equal(t, "[]", s)
}

func TestIDList_ScanRoundTrip(t *testing.T) {
	var l IDList
	require.NoError(t, l.Scan([]byte(`["a","b","c"]`)))
	assert.Equal(t, IDList{"a", "b", "c"}, l)

	var fromString IDList
	require.NoError(t, fromString.Scan(`["x"]`))
	assert.Equal(t, IDList{"x"}, fromString)

	var fromNull IDList
	require.NoError(t, fromNull.Scan(nil))
	assert.Equal(t, IDList{}, fromNull)
}

func TestIDList_ContainsAndWithout(t *testing.T) {
	l := IDList{"alice", "bob", "alice", "carol"}

	assert.True(t, l.Contains("bob"))
	assert.False(t, l.Contains("dave"))

	out := l.Without("alice")
	assert.Equal(t, IDList{"bob", "carol"}, out)
	assert.Equal(t, IDList{"alice", "bob", "alice", "carol"}, l, "Without must not mutate the receiver")
}

func TestTrackStatus_Order(t *testing.T) {
	assert.True(t, TrackDraft.Precedes(TrackRecording))
	assert.True(t, TrackDraft.Precedes(TrackCompleted))
	assert.False(t, TrackMixing.Precedes(TrackRecording))
	assert.False(t, TrackMixing.Precedes(TrackMixing))
	assert.False(t, TrackStatus("Mastering").Valid())
	assert.False(t, TrackDraft.Precedes(TrackStatus("Mastering")))
}

func TestPrice_JSON(t *testing.T) {
	var p Price
	require.NoError(t, json.Unmarshal([]byte(`"1.123456789012345678"`), &p))
	assert.True(t, p.Valid)
	assert.Equal(t, "1.123456789012345678", p.Decimal.String())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `"1.123456789012345678"`, string(out))

	out, err = json.Marshal(Price{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
