package rewards

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

var ErrInvalidSignature = errors.New("invalid reward signature")

// Signer authenticates reward postbacks with an HMAC over the immutable
// fields of the credit: user, transaction and point amount.
type Signer struct {
	secret []byte
}

// NewSigner builds a Signer over the secret shared with the reward network.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign computes the hex-encoded signature for a reward credit.
func (s *Signer) Sign(userID, txID string, points int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%s:%d", userID, txID, points)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks the postback signature in constant time.
func (s *Signer) Verify(userID, txID string, points int64, signature string) error {
	expected := s.Sign(userID, txID, points)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
