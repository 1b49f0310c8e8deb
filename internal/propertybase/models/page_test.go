package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{"defaults", PageRequest{}, PageRequest{Page: 1, Limit: 20}},
		{"clamped", PageRequest{Page: 3, Limit: 500}, PageRequest{Page: 3, Limit: 100}},
		{"negative", PageRequest{Page: -1, Limit: -5}, PageRequest{Page: 1, Limit: 20}},
		{"kept", PageRequest{Page: 2, Limit: 10}, PageRequest{Page: 2, Limit: 10}},
		{"huge page", PageRequest{Page: math.MaxInt, Limit: 500}, PageRequest{Page: MaxPage, Limit: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
	assert.Equal(t, 20, PageRequest{Page: 3, Limit: 10}.Offset())

	offset := PageRequest{Page: math.MaxInt, Limit: math.MaxInt}.Normalize().Offset()
	assert.Positive(t, offset)
	assert.LessOrEqual(t, offset, math.MaxInt32)
}

func TestNewPageEmptyContent(t *testing.T) {
	page := NewPage[Company](nil, 0, PageRequest{Page: 1, Limit: 20})
	raw, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":[],"_meta":{"totalRecords":0,"page":1,"limit":20,"count":0}}`, string(raw))
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, QuantitySquareMeter.Valid())
	assert.False(t, QuantityType("LITRE").Valid())
	assert.True(t, StatusMaintenance.Valid())
	assert.False(t, ComponentStatus("BROKEN").Valid())
	assert.True(t, ConditionFair.Valid())
	assert.False(t, ComponentCondition("").Valid())
	assert.True(t, SpaceRoom.Valid())
	assert.False(t, SpaceType("GARAGE").Valid())
}
