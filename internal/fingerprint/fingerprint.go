package fingerprint

import (
	"fmt"
	"image"
	"log/slog"
	"strconv"

	"github.com/corona10/goimagehash"
)

// Length is the number of hex characters in a fingerprint
const Length = 16

// Compute returns the 64-bit DCT perceptual hash of img as 16 hex characters
func Compute(img image.Image) string {
	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		// only possible for a nil image, which a successful decode never yields
		slog.Error("Failed to compute perceptual hash", "err", err)
		return ""
	}
	return format(hash.GetHash())
}

// Distance returns the Hamming distance between two fingerprints
func Distance(a, b string) (int, error) {
	ha, err := parse(a)
	if err != nil {
		return 0, err
	}
	hb, err := parse(b)
	if err != nil {
		return 0, err
	}
	return ha.Distance(hb)
}

func format(v uint64) string {
	return fmt.Sprintf("%016x", v)
}

func parse(s string) (*goimagehash.ImageHash, error) {
	if len(s) != Length {
		return nil, fmt.Errorf("invalid fingerprint %q: want %d hex characters", s, Length)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid fingerprint %q: %w", s, err)
	}
	return goimagehash.NewImageHash(v, goimagehash.PHash), nil
}
