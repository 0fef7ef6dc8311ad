// Package fingerprint computes the content-addressed dedup hash for a recognition
// ingress: a deterministic SHA-256 over the snapshot content (or its locator),
// the resolved employee code, the device id, and a quantized time bucket
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// DefaultWindowSeconds is W, the dedup time-bucket width
const DefaultWindowSeconds = 300

// UnknownEmployeeCode is substituted when no employee candidate resolves
const UnknownEmployeeCode = "unknown"

// Hash is a 256-bit content fingerprint
type Hash [32]byte

// Hex returns the lowercase 64-char hex encoding
func (h Hash) Hex() string { return hex.EncodeToString(h[:]) }

// IsZero reports whether h is the zero hash
func (h Hash) IsZero() bool { return h == Hash{} }

// FromHex parses a 64-char hex string back into a Hash
func FromHex(s string) (Hash, error) {
	var h Hash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, err
	}
	if len(b) != len(h) {
		return h, hex.ErrLength
	}
	copy(h[:], b)
	return h, nil
}

// Compute produces the dedup fingerprint.
//
//   - seed is the content bytes of the snapshot (from SnapshotReader), or the
//     locator string verbatim when the snapshot cannot be read locally; an
//     absent/empty locator contributes no bytes at all (not a literal "null")
//   - employeeCode is the resolved employee code, or UnknownEmployeeCode
//   - deviceID is the device identifier, or empty when the device did not resolve
//   - capturedAt is quantized into a window of windowSeconds width
//
// Each component is appended verbatim with no separators: this mirrors the
// reference behavior where absence means zero bytes contributed, never a
// placeholder string
func Compute(seed []byte, employeeCode, deviceID string, capturedAt time.Time, windowSeconds int) Hash {
	if windowSeconds <= 0 {
		windowSeconds = DefaultWindowSeconds
	}
	h := sha256.New()
	h.Write(seed)
	h.Write([]byte(employeeCode))
	h.Write([]byte(deviceID))
	bucket := capturedAt.Unix() / int64(windowSeconds)
	h.Write([]byte(strconv.FormatInt(bucket, 10)))
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// WithinDedupWindow reports whether a and b fall within W seconds of each other
func WithinDedupWindow(a, b time.Time, windowSeconds int) bool {
	if windowSeconds <= 0 {
		windowSeconds = DefaultWindowSeconds
	}
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= time.Duration(windowSeconds)*time.Second
}
