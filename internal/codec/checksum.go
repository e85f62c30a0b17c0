package codec

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// ComputeChecksum returns the hex SHA-256 of the values encoded as little-endian float64 bits.
func ComputeChecksum(values []float64) string {
	h := sha256.New()
	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ValidateChecksum compares the checksum of values against stored.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(values []float64, stored string) error {
	if ComputeChecksum(values) != stored {
		return ErrChecksumMismatch
	}
	return nil
}
