package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSigningMethod = errors.New("unexpected signing method")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidClaims        = errors.New("invalid claims")
)

// Claims is the identity payload embedded in an access token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// TokenSigner issues and verifies signed access tokens.
type TokenSigner interface {
	Issue(claims Claims) (string, error)
	Verify(token string) (*Claims, error)
}

type jwtSigner struct {
	secret []byte
	expiry time.Duration
}

// NewJWTSigner returns an HS256 TokenSigner. Tokens expire after
// the given duration.
func NewJWTSigner(secret string, expiry time.Duration) TokenSigner {
	return &jwtSigner{
		secret: []byte(secret),
		expiry: expiry,
	}
}

func (s *jwtSigner) Issue(claims Claims) (string, error) {
	now := time.Now()

	mapClaims := jwt.MapClaims{
		"sub":   claims.UserID,
		"email": claims.Email,
		"role":  claims.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString(s.secret)
}

func (s *jwtSigner) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}

	// expiry must be present, jwt.Parse only rejects expired ones
	if exp, err := mapClaims.GetExpirationTime(); err != nil || exp == nil {
		return nil, ErrInvalidClaims
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidClaims
	}

	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)

	return &Claims{
		UserID: sub,
		Email:  email,
		Role:   role,
	}, nil
}
