package jwt

import (
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"time"
)

type JWT struct {
	key []byte
}

// Session is one unlocked administrator mode.
type Session struct {
	ID      string // jti, used for revocation
	Expires int64  // Unix second
}

func New(key string) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	return &JWT{key: []byte(key)}, nil
}

// Key is the HS256 signing key, handed to the echo-jwt middleware.
func (j *JWT) Key() []byte {
	return j.key
}

// NewSession starts a session that lasts ttl.
func NewSession(ttl time.Duration) *Session {
	return &Session{
		ID:      uuid.NewString(),
		Expires: time.Now().Add(ttl).Unix(),
	}
}

func (j *JWT) ParseSession(tokenString string) (*Session, error) {
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return SessionFromClaims(claims)
}

// SessionFromClaims reads a session out of already verified claims.
func SessionFromClaims(claims jwt.MapClaims) (*Session, error) {
	if adm, _ := claims["adm"].(bool); !adm {
		return nil, fmt.Errorf("not an admin token")
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil, fmt.Errorf("token has no id")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("token has no expiry")
	}

	return &Session{
		ID:      jti,
		Expires: exp.Unix(),
	}, nil
}

func (j *JWT) SignToken(s *Session) (string, error) {
	claims := jwt.MapClaims{
		"jti": s.ID,
		"adm": true,
		"exp": s.Expires,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(j.key)
}
