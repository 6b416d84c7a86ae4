package rewards

import (
	"errors"
	"testing"

	"github.com/rewardhub/rewardhub/internal/test"
)

func TestSigner_SignAndVerify(t *testing.T) {
	signer := NewSigner("secret")
	sig := signer.Sign("user-1", "tx-9", 500)
	if sig == "" {
		t.Fatal("expected non-empty signature")
	}
	if err := signer.Verify("user-1", "tx-9", 500, sig); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestSigner_VerifyTampered(t *testing.T) {
	signer := NewSigner("secret")
	sig := signer.Sign("user-1", "tx-9", 500)

	cases := []struct {
		name   string
		userID string
		txID   string
		points int64
		sig    string
	}{
		{"wrong user", "user-2", "tx-9", 500, sig},
		{"wrong tx", "user-1", "tx-8", 500, sig},
		{"wrong points", "user-1", "tx-9", 501, sig},
		{"garbage signature", "user-1", "tx-9", 500, "deadbeef"},
		{"empty signature", "user-1", "tx-9", 500, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := signer.Verify(tc.userID, tc.txID, tc.points, tc.sig); !errors.Is(err, ErrInvalidSignature) {
				t.Fatalf("expected ErrInvalidSignature, got %v", err)
			}
		})
	}
}

func TestSigner_SecretMatters(t *testing.T) {
	sig := NewSigner("one").Sign("user-1", "tx-9", 500)
	if err := NewSigner("two").Verify("user-1", "tx-9", 500, sig); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestSigner_RoundTripRandomInputs(t *testing.T) {
	for i := 0; i < 20; i++ {
		secret := test.RandomASCIIString(8, 32)
		userID := test.RandomASCIIString(4, 16)
		txID := test.RandomASCIIString(4, 16)
		signer := NewSigner(secret)

		sig := signer.Sign(userID, txID, int64(i*37+1))
		if err := signer.Verify(userID, txID, int64(i*37+1), sig); err != nil {
			t.Fatalf("verify round trip: %v", err)
		}
	}
}
