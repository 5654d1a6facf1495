package auth

import (
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// leeway absorbs clock drift between the issuing and the verifying process.
const leeway = time.Minute

// Claims carry the user id and the role names the user held at sign in.
type Claims struct {
	UID   string   `json:"uid"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) HasRole(role string) bool { return slices.Contains(c.Roles, role) }

type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Issue signs an HS256 token for uid that expires after TTL.
func (j *JWTer) Issue(uid string, roles []string) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UID:   uid,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    j.Issuer,
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	})
	s, err := tok.SignedString(j.Secret)
	return s, errors.Wrap(err, "sign token")
}

// Parse verifies signature, issuer and expiry. Every failure is marked
// ErrInvalidToken.
func (j *JWTer) Parse(raw string) (*Claims, error) {
	var c Claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) { return j.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	)
	if err != nil {
		return nil, errors.Mark(err, ErrInvalidToken)
	}
	return &c, nil
}

// BearerToken extracts the token of an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, tok, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || tok == "" {
		return "", false
	}
	return strings.TrimSpace(tok), true
}
