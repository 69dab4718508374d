package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"", 0},
		{"18m", 18},
		{"24.5°C", 24.5},
		{"약 15m", 15},
		{"1.2.3", 1.2},
		{".", 0},
		{".5", 0.5},
		{"12.", 12},
		{"-3", 3},
		{"N/A", 0},
		{"10-15m", 1015},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParseNumeric(tt.input), 1e-9)
		})
	}
}

func TestComputeStats(t *testing.T) {
	logs := []DiveLog{
		{MaxDepth: "30m", AvgDepth: "18m", WaterTemp: "24C"},
		{MaxDepth: "22m", AvgDepth: "12m", WaterTemp: "26C"},
		{MaxDepth: "", AvgDepth: "", WaterTemp: ""},
	}

	stats := ComputeStats(logs)

	assert.Equal(t, 3, stats.TotalDives)
	assert.InDelta(t, 10.0, stats.AvgDepth, 1e-9)
	assert.InDelta(t, 30.0, stats.MaxDepth, 1e-9)
	assert.InDelta(t, 50.0/3.0, stats.AvgTemp, 1e-9)
}

func TestComputeStats_Empty(t *testing.T) {
	assert.Equal(t, DiveStats{}, ComputeStats(nil))
}

func TestComputeStats_MaxDepthFloorsAtZero(t *testing.T) {
	stats := ComputeStats([]DiveLog{{MaxDepth: "unknown"}})
	assert.Equal(t, 0.0, stats.MaxDepth)
}
