package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid identity token")

// Claims carried by tokens minted by the identity provider. The subject is
// the user ID; the custom fields mirror what the provider embeds.
type Claims struct {
	Email string `json:"email,omitempty"`
	Admin bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the verified caller extracted from a bearer token.
type Identity struct {
	UserID string
	Email  string
	Admin  bool
}

// Verifier validates HS256 tokens issued by the external identity provider.
type Verifier struct {
	secret []byte
}

// NewVerifier builds a Verifier over the shared signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates the token, returning the caller's identity.
func (v *Verifier) Verify(token string) (*Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Admin:  claims.Admin,
	}, nil
}

// Issue mints a signed token for the given identity. Callers outside the
// identity provider use it to seed local environments and tests.
func (v *Verifier) Issue(id Identity, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	claims := Claims{
		Email: id.Email,
		Admin: id.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
