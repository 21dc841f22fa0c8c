package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatScore(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected string
	}{
		{"whole number drops the decimal point", 42, "42"},
		{"zero", 0, "0"},
		{"fractional value keeps its digits", 42.5, "42.5"},
		{"negative fractional", -3.25, "-3.25"},
		{"no trailing zeros", 10.10, "10.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatScore(tt.score))
		})
	}
}

func TestFormatSignedScore(t *testing.T) {
	tests := []struct {
		name     string
		delta    float64
		expected string
	}{
		{"positive gets a plus sign", 3, "+3"},
		{"zero counts as positive", 0, "+0"},
		{"negative keeps its minus sign", -2.5, "-2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSignedScore(tt.delta))
		})
	}
}
