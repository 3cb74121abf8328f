package tool

import (
	"crypto/rand"

	"github.com/google/uuid"
)

func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// referral codes avoid ambiguous characters (0/O, 1/I/L)
const referralAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// NewReferralCode returns an 8-character shareable code.
func NewReferralCode() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return GenerateUUIDV7()[:8]
	}
	for i, b := range buf {
		buf[i] = referralAlphabet[int(b)%len(referralAlphabet)]
	}
	return string(buf)
}
