package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayWidthCountsWideRunes(t *testing.T) {
	assert.Equal(t, 5, GetDisplayWidth("hello"))
	assert.Equal(t, 4, GetDisplayWidth("다이"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("anything", 0))
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Blue …", Truncate("Blue Corner Wall", 6))
}

func TestPadding(t *testing.T) {
	assert.Equal(t, "ab  ", PadRight("ab", 4))
	assert.Equal(t, "  ab", PadLeft("ab", 4))
	assert.Equal(t, " ab ", CenterText("ab", 4))
	assert.Equal(t, 3, GetDisplayWidth(CenterText("abcdef", 3)))
}

func TestColorize(t *testing.T) {
	out := Colorize(ColorYellow, "x")
	assert.Equal(t, ColorYellow+"x"+ColorReset, out)
}

func TestFingerprintSeparatesParts(t *testing.T) {
	assert.NotEqual(t, Fingerprint("ab", "c"), Fingerprint("a", "bc"))
	assert.Equal(t, Fingerprint("a", "b"), Fingerprint("a", "b"))
	assert.Len(t, Fingerprint("x"), 8)
}
