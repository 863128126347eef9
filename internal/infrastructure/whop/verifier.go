package whop

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
)

const (
	DefaultTokenHeader = "x-whop-user-token"
	tokenIssuer        = "urn:whopcom:exp-proxy"
)

var errNoVerificationKey = errors.New("no token verification key configured")

// TokenVerifier checks the ES256 user token Whop attaches to requests made
// through its app proxy. It implements ports.TokenVerifier.
type TokenVerifier struct {
	header string
	appID  string
	key    *ecdsa.PublicKey
}

// NewTokenVerifier parses publicKeyPEM. An empty key yields a verifier that
// rejects every token. appID, when set, is enforced as the audience.
func NewTokenVerifier(header, publicKeyPEM, appID string) (*TokenVerifier, error) {
	if header == "" {
		header = DefaultTokenHeader
	}
	v := &TokenVerifier{header: header, appID: appID}

	pem := strings.TrimSpace(strings.ReplaceAll(publicKeyPEM, `\n`, "\n"))
	if pem == "" {
		return v, nil
	}
	key, err := jwt.ParseECPublicKeyFromPEM([]byte(pem))
	if err != nil {
		return nil, fmt.Errorf("parse whop token key: %w", err)
	}
	v.key = key
	return v, nil
}

// Header returns the request header the token is read from.
func (v *TokenVerifier) Header() string { return v.header }

// Verify returns the token subject, the Whop user id.
func (v *TokenVerifier) Verify(_ context.Context, headers http.Header) (string, error) {
	raw := strings.TrimSpace(headers.Get(v.header))
	if raw == "" {
		return "", fmt.Errorf("%w: missing %s header", domain.ErrUnauthorized, v.header)
	}
	if v.key == nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, errNoVerificationKey)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	}
	if v.appID != "" {
		opts = append(opts, jwt.WithAudience(v.appID))
	}

	var claims jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return v.key, nil
	}, opts...)
	if err != nil || !tkn.Valid {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", domain.ErrUnauthorized)
	}

	return claims.Subject, nil
}
