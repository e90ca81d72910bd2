package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTagKey(t *testing.T) {
	key, err := ParseTagKey("1152921504606846976")
	require.NoError(t, err)
	assert.Equal(t, TagKey(1152921504606846976), key)

	key, err = ParseTagKey("  42  ")
	require.NoError(t, err)
	assert.Equal(t, TagKey(42), key)

	_, err = ParseTagKey("not-a-number")
	assert.Error(t, err)

	_, err = ParseTagKey("")
	assert.Error(t, err)

	_, err = ParseTagKey("0xFF")
	assert.Error(t, err)
}

func TestTagKeyJSONRoundTrip(t *testing.T) {
	tag := Tag{ID: TagKey(9007199254740993), Status: TagStatusFree}

	// Ключ уходит по проводу строкой: int64 не влезает в JSON number
	// без потери точности.
	data, err := json.Marshal(tag)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tag_id":"9007199254740993"`)

	var decoded Tag
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, tag.ID, decoded.ID)
	assert.Equal(t, tag.Status, decoded.Status)
}

func TestTagKeyUnmarshalRejectsNumbers(t *testing.T) {
	var tag Tag
	err := json.Unmarshal([]byte(`{"tag_id":123,"status":"free"}`), &tag)
	assert.Error(t, err)
}

func TestParseTagStatus(t *testing.T) {
	status, err := ParseTagStatus("TAKEN")
	require.NoError(t, err)
	assert.Equal(t, TagStatusTaken, status)

	status, err = ParseTagStatus(" free ")
	require.NoError(t, err)
	assert.Equal(t, TagStatusFree, status)

	_, err = ParseTagStatus("reserved")
	assert.Error(t, err)
}

func TestParseEventStatus(t *testing.T) {
	status, err := ParseEventStatus("Active")
	require.NoError(t, err)
	assert.Equal(t, EventStatusActive, status)

	status, err = ParseEventStatus("inactive")
	require.NoError(t, err)
	assert.Equal(t, EventStatusInactive, status)

	_, err = ParseEventStatus("paused")
	assert.Error(t, err)
}
