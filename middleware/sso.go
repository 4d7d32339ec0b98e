package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoVerificationKey is returned when a token is signed with an algorithm
// the server has no key for.
var ErrNoVerificationKey = errors.New("no key configured for token algorithm")

// FetchPublicKey fetches the PEM encoded RSA key published by the identity
// provider. The response is a JSON object with a "key" field.
func FetchPublicKey(client *http.Client, url string) (*rsa.PublicKey, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch public key: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	keyResponse := struct {
		Key string `json:"key"`
	}{}
	if err := json.Unmarshal(body, &keyResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal public key response: %w", err)
	}

	block, _ := pem.Decode([]byte(keyResponse.Key))
	if block == nil || block.Type != "PUBLIC KEY" {
		return nil, fmt.Errorf("failed to decode PEM block containing public key")
	}

	pubKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaPubKey, ok := pubKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA public key")
	}
	return rsaPubKey, nil
}

// TokenVerifier checks access tokens of the identity provider. HS256 tokens
// are verified with the shared secret, RS256 tokens with the provider's
// public key which is cached for keyTTL.
type TokenVerifier struct {
	secret       []byte
	publicKeyURL string
	client       *http.Client
	keyTTL       time.Duration

	mu        sync.Mutex
	key       *rsa.PublicKey
	fetchedAt time.Time
}

func NewTokenVerifier(secret, publicKeyURL string) *TokenVerifier {
	return &TokenVerifier{
		secret:       []byte(secret),
		publicKeyURL: strings.TrimSpace(publicKeyURL),
		client:       &http.Client{Timeout: 10 * time.Second},
		keyTTL:       time.Hour,
	}
}

// VerifyJWT parses and validates tokenString and returns its claims.
func (v *TokenVerifier) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, v.keyFor, jwt.WithValidMethods([]string{"HS256", "RS256"}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}

func (v *TokenVerifier) keyFor(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if len(v.secret) == 0 {
			return nil, ErrNoVerificationKey
		}
		return v.secret, nil
	case *jwt.SigningMethodRSA:
		if v.publicKeyURL == "" {
			return nil, ErrNoVerificationKey
		}
		return v.publicKey()
	default:
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
}

func (v *TokenVerifier) publicKey() (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.key != nil && time.Since(v.fetchedAt) < v.keyTTL {
		return v.key, nil
	}
	key, err := FetchPublicKey(v.client, v.publicKeyURL)
	if err != nil {
		if v.key != nil {
			// keep serving the last good key while the provider is unreachable
			return v.key, nil
		}
		return nil, err
	}
	v.key = key
	v.fetchedAt = time.Now()
	return key, nil
}
