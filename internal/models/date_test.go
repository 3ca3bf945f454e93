package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-15", d.String())

	_, err = ParseDate("15/08/2026")
	assert.Error(t, err)

	_, err = ParseDate("2026-13-01")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Deadline Date `json:"deadline"`
	}

	d := NewDate(2026, time.September, 1)
	out, err := json.Marshal(payload{Deadline: d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"deadline":"2026-09-01"}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"deadline":"2026-09-01"}`), &in))
	assert.Equal(t, d.String(), in.Deadline.String())

	// null leaves the zero value untouched
	var withNull payload
	require.NoError(t, json.Unmarshal([]byte(`{"deadline":null}`), &withNull))
	assert.True(t, withNull.Deadline.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"deadline":"not-a-date"}`), &in))
}

func TestDate_Value(t *testing.T) {
	d := NewDate(2026, time.September, 1)

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", v)
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name          string
		value         any
		expected      string
		expectedError bool
		zero          bool
	}{
		{name: "time.Time from parseTime driver", value: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), expected: "2026-09-01"},
		{name: "byte slice", value: []byte("2026-09-01"), expected: "2026-09-01"},
		{name: "string", value: "2026-09-01", expected: "2026-09-01"},
		{name: "nil leaves zero value", value: nil, zero: true},
		{name: "malformed bytes", value: []byte("garbage"), expectedError: true},
		{name: "unsupported type", value: 42, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.Scan(tt.value)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.zero {
				assert.True(t, d.IsZero())
			} else {
				assert.Equal(t, tt.expected, d.String())
			}
		})
	}
}
