package jsonutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlexibleString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"string", `"hello"`, "hello"},
		{"integer", `42`, "42"},
		{"float", `0.75`, "0.75"},
		{"bool", `true`, "true"},
		{"null", `null`, ""},
		{"empty", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlexibleString(json.RawMessage(tt.raw)))
		})
	}
}

func TestFlexibleFloat(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   float64
		wantOK bool
	}{
		{"number", `0.8`, 0.8, true},
		{"integer", `1`, 1.0, true},
		{"numeric string", `"0.75"`, 0.75, true},
		{"percent string", `"85%"`, 0.85, true},
		{"padded string", `" 0.5 "`, 0.5, true},
		{"NaN string", `"NaN"`, 0, false},
		{"text", `"high"`, 0, false},
		{"null", `null`, 0, false},
		{"empty", ``, 0, false},
		{"object", `{"v":1}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FlexibleFloat(json.RawMessage(tt.raw))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestFlexibleStringSlice(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, FlexibleStringSlice(json.RawMessage(`["a","b"]`)))
	assert.Equal(t, []string{"a", "b"}, FlexibleStringSlice(json.RawMessage(`"a, b"`)))
	assert.Equal(t, []string{"1", "2"}, FlexibleStringSlice(json.RawMessage(`[1, 2]`)))
	assert.Equal(t, []string{}, FlexibleStringSlice(json.RawMessage(`null`)))
	assert.Equal(t, []string{}, FlexibleStringSlice(nil))
	assert.NotNil(t, FlexibleStringSlice(json.RawMessage(`[]`)))
}
