package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrMalformedToken is returned by Parse for anything that is not three
// dot-separated parts with a numeric card id. Callers surface it as
// not-found/unauthorized, never as a server error.
var ErrMalformedToken = errors.New("malformed card token")

// CardTokenService mints and verifies the opaque card bearer tokens used
// by the payment flow. Wire format: "{cardId}.{tokenId}.{signature}" with
// the signature being base64url (no padding) of
// HMAC-SHA256(secret, "{cardId}:{userId}:{tokenId}").
type CardTokenService struct {
	secret []byte
}

// NewCardTokenService fails when the secret is empty so a misconfigured
// process dies at startup rather than on the first payment.
func NewCardTokenService(secret string) (*CardTokenService, error) {
	if secret == "" {
		return nil, errors.New("card token secret is not configured")
	}
	return &CardTokenService{secret: []byte(secret)}, nil
}

type GeneratedToken struct {
	Token     string
	TokenID   string
	Signature string
}

type TokenComponents struct {
	CardID    int64
	TokenID   string
	Signature string
}

func (s *CardTokenService) Generate(cardID, userID int64) GeneratedToken {
	tokenID := uuid.NewString()
	signature := s.sign(payload(cardID, userID, tokenID))
	return GeneratedToken{
		Token:     fmt.Sprintf("%d.%s.%s", cardID, tokenID, signature),
		TokenID:   tokenID,
		Signature: signature,
	}
}

func (s *CardTokenService) Parse(token string) (TokenComponents, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return TokenComponents{}, ErrMalformedToken
	}
	cardID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return TokenComponents{}, ErrMalformedToken
	}
	return TokenComponents{CardID: cardID, TokenID: parts[1], Signature: parts[2]}, nil
}

// IsValid recomputes the signature for the stored (cardID, userID,
// tokenID) triple and compares it to the provided one in constant time.
// A length mismatch is simply invalid.
func (s *CardTokenService) IsValid(cardID, userID int64, tokenID, providedSignature string) bool {
	expected := s.sign(payload(cardID, userID, tokenID))
	return hmac.Equal([]byte(expected), []byte(providedSignature))
}

func (s *CardTokenService) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func payload(cardID, userID int64, tokenID string) string {
	return fmt.Sprintf("%d:%d:%s", cardID, userID, tokenID)
}
