package model

import (
	"strconv"
	"strings"
)

// DiveStats holds the aggregates shown above the dive cards for one date
type DiveStats struct {
	TotalDives int     `json:"totalDives"`
	AvgDepth   float64 `json:"avgDepth"`
	MaxDepth   float64 `json:"maxDepth"`
	AvgTemp    float64 `json:"avgTemp"`
}

// ComputeStats aggregates numeric-suffixed fields. Missing or unparsable
// values count as 0, and means over an empty set are 0.
func ComputeStats(logs []DiveLog) DiveStats {
	stats := DiveStats{TotalDives: len(logs)}
	if len(logs) == 0 {
		return stats
	}

	var depthSum, tempSum float64
	for _, l := range logs {
		depthSum += ParseNumeric(l.AvgDepth)
		tempSum += ParseNumeric(l.WaterTemp)
		if d := ParseNumeric(l.MaxDepth); d > stats.MaxDepth {
			stats.MaxDepth = d
		}
	}

	n := float64(len(logs))
	stats.AvgDepth = depthSum / n
	stats.AvgTemp = tempSum / n
	return stats
}

// ParseNumeric extracts a number from a cell such as "18m" or "24.5°C".
// All characters except digits and '.' are dropped, then the longest
// leading decimal is parsed, so "1.2.3" yields 1.2 and "" yields 0.
func ParseNumeric(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	end := 0
	seenDot := false
	seenDigit := false
	for end < len(cleaned) {
		c := cleaned[end]
		if c == '.' {
			if seenDot {
				break
			}
			seenDot = true
		} else {
			seenDigit = true
		}
		end++
	}
	if !seenDigit {
		return 0
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(cleaned[:end], "."), 64)
	if err != nil {
		return 0
	}
	return v
}
