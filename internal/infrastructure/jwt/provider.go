package jwtinfra

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yurtapp/account-api/internal/config"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrWrongTokenType = errors.New("wrong token type")

// Claims holds the JWT payload fields. DeviceUUID is the denormalized device
// identity: refresh operations recover which device a token belongs to from
// the claim itself, without a lookup keyed by token value.
type Claims struct {
	UserID     string `json:"user_id"`
	DeviceUUID string `json:"device_uuid,omitempty"`
	TokenType  string `json:"token_type"`
	jwt.RegisteredClaims
}

// Provider signs and verifies RS256 JWTs.
type Provider struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	privBytes, err := os.ReadFile(cfg.JWTPrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privBytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	pubBytes, err := os.ReadFile(cfg.JWTPublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return &Provider{
		privateKey: privKey,
		publicKey:  pubKey,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}, nil
}

// SignAccess mints a short-lived access token. deviceUUID may be empty when
// the client did not bind the session to a device identity.
func (p *Provider) SignAccess(userID, deviceUUID string) (string, error) {
	return p.sign(userID, deviceUUID, TokenTypeAccess, p.accessTTL)
}

// SignRefresh mints a long-lived refresh token carrying the same claims.
func (p *Provider) SignRefresh(userID, deviceUUID string) (string, error) {
	return p.sign(userID, deviceUUID, TokenTypeRefresh, p.refreshTTL)
}

func (p *Provider) sign(userID, deviceUUID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:     userID,
		DeviceUUID: deviceUUID,
		TokenType:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(p.privateKey)
}

// Verify parses the token, checking signature and expiry.
func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.publicKey, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyAccess verifies the token and requires it to be an access token.
func (p *Provider) VerifyAccess(tokenStr string) (*Claims, error) {
	return p.verifyType(tokenStr, TokenTypeAccess)
}

// VerifyRefresh verifies the token and requires it to be a refresh token, so
// an access token can never be replayed through the refresh endpoint.
func (p *Provider) VerifyRefresh(tokenStr string) (*Claims, error) {
	return p.verifyType(tokenStr, TokenTypeRefresh)
}

func (p *Provider) verifyType(tokenStr, tokenType string) (*Claims, error) {
	claims, err := p.Verify(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
