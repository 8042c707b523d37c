package jwtinfra

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yurtapp/account-api/internal/config"
)

// newTestProvider generates a fresh RSA key pair, writes it to temp files,
// and returns a Provider with short TTLs.
func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privKey)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0600))

	pubBytes, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0600))

	cfg := &config.Config{
		JWTPrivateKeyPath: privPath,
		JWTPublicKeyPath:  pubPath,
		AccessTokenTTL:    time.Hour,
		RefreshTokenTTL:   24 * time.Hour,
	}
	p, err := NewProvider(cfg)
	require.NoError(t, err)
	return p
}

func TestSignAccess_RoundTrip(t *testing.T) {
	p := newTestProvider(t)

	signed, err := p.SignAccess("u1", "dev-uuid-1")
	require.NoError(t, err)

	claims, err := p.VerifyAccess(signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "dev-uuid-1", claims.DeviceUUID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestSignRefresh_CarriesDeviceClaim(t *testing.T) {
	p := newTestProvider(t)

	signed, err := p.SignRefresh("u1", "dev-uuid-1")
	require.NoError(t, err)

	claims, err := p.VerifyRefresh(signed)
	require.NoError(t, err)
	assert.Equal(t, "dev-uuid-1", claims.DeviceUUID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestVerifyRefresh_RejectsAccessToken(t *testing.T) {
	p := newTestProvider(t)

	signed, err := p.SignAccess("u1", "")
	require.NoError(t, err)

	_, err = p.VerifyRefresh(signed)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestVerifyAccess_RejectsRefreshToken(t *testing.T) {
	p := newTestProvider(t)

	signed, err := p.SignRefresh("u1", "")
	require.NoError(t, err)

	_, err = p.VerifyAccess(signed)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestVerify_RejectsForeignSignature(t *testing.T) {
	p1 := newTestProvider(t)
	p2 := newTestProvider(t)

	signed, err := p1.SignAccess("u1", "")
	require.NoError(t, err)

	_, err = p2.Verify(signed)
	assert.Error(t, err)
}

func TestSign_EmptyDeviceUUIDOmitted(t *testing.T) {
	p := newTestProvider(t)

	signed, err := p.SignAccess("u1", "")
	require.NoError(t, err)

	claims, err := p.VerifyAccess(signed)
	require.NoError(t, err)
	assert.Empty(t, claims.DeviceUUID)
}
