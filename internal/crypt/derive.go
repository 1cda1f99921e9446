package crypt

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the length of every derived key.
	KeySize = 16
	// Iterations is the PBKDF2 work factor.
	Iterations = 100000

	saltSize        = 16
	fingerprintSize = 16
)

// DeriveKey stretches userKey into a KeySize-byte key salted with the first
// bytes of host. When userKey is empty the base material is an ambient
// fingerprint of host and the current hour, so keyless round-trips only work
// within the same hour and on an unchanged host.
func DeriveKey(host, userKey string, now time.Time) []byte {
	base := userKey
	if base == "" {
		base = Fingerprint(host, now)
	}
	salt := []byte(host)
	if len(salt) > saltSize {
		salt = salt[:saltSize]
	}
	return pbkdf2.Key([]byte(base), salt, Iterations, KeySize, sha256.New)
}

// Fingerprint returns the first 16 hex characters of SHA-256(host + hour bucket).
func Fingerprint(host string, now time.Time) string {
	sum := sha256.Sum256([]byte(host + strconv.FormatInt(HourBucket(now), 10)))
	return hex.EncodeToString(sum[:])[:fingerprintSize]
}

// HourBucket is the number of whole hours since the Unix epoch.
func HourBucket(now time.Time) int64 {
	return now.Unix() / 3600
}
