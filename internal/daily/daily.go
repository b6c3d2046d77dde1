// Package daily assigns one deterministic secret per calendar day.
//
// The index is HMAC-SHA256(salt, "YYYY-MM-DD") reduced modulo the number of
// allowed words, so every server with the same salt and dictionary agrees
// on the day's word without storing it.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns the index in [0, n) assigned to date. It is 0 when n <= 0.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(date)))
	sum := mac.Sum(nil)
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}
