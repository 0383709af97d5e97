package security

import (
	"errors"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidJWT = errors.New("invalid or missing JWT")

// JWTVerifier resolves the caller's user id from an Authorization header.
// Tokens are HS256 with the user id in the "user_id" claim (the shape the
// users service issues) or, failing that, in the subject.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) ExtractUserID(authorizationHeader string) (int64, error) {
	raw, err := bearerToken(authorizationHeader)
	if err != nil {
		return 0, err
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidJWT
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidJWT
	}

	switch id := claims["user_id"].(type) {
	case float64:
		return int64(id), nil
	case string:
		if id != "" {
			parsed, err := strconv.ParseInt(id, 10, 64)
			if err != nil {
				return 0, ErrInvalidJWT
			}
			return parsed, nil
		}
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, ErrInvalidJWT
	}
	parsed, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, ErrInvalidJWT
	}
	return parsed, nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrInvalidJWT
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", ErrInvalidJWT
	}
	return strings.TrimPrefix(header, "Bearer "), nil
}
