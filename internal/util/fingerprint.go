package util

import (
	"fmt"
	"hash/crc32"
)

// Fingerprint returns a CRC32 over the given parts, separated so that
// ("ab","c") and ("a","bc") hash differently
func Fingerprint(parts ...string) string {
	h := crc32.NewIEEE()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0x1f})
	}
	return fmt.Sprintf("%08x", h.Sum32())
}
