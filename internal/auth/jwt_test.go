package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("ALGORITHM", "")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")

	if err := InitJWT(); err != nil {
		t.Fatalf("init jwt: %v", err)
	}
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	initTestJWT(t)

	token, err := GenerateToken("alice@example.com")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	subject, ok := VerifyToken(token)

	if !ok {
		t.Fatal("freshly issued token rejected")
	}

	if subject != "alice@example.com" {
		t.Errorf("subject = %q, want alice@example.com", subject)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	initTestJWT(t)

	token, err := GenerateTokenWithTTL("alice@example.com", -time.Minute)

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, ok := VerifyToken(token); ok {
		t.Error("expired token accepted")
	}

	token, err = GenerateTokenWithTTL("alice@example.com", 0)

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, ok := VerifyToken(token); ok {
		t.Error("zero-ttl token accepted")
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	initTestJWT(t)

	token, err := GenerateToken("alice@example.com")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parts := strings.Split(token, ".")

	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}

	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, ok := VerifyToken(tampered); ok {
		t.Error("tampered token accepted")
	}
}

func TestVerifyMalformedInput(t *testing.T) {
	initTestJWT(t)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, ok := VerifyToken(raw); ok {
			t.Errorf("malformed token %q accepted", raw)
		}
	}
}

func TestVerifyRejectsNonHMACToken(t *testing.T) {
	initTestJWT(t)

	claims := jwt.RegisteredClaims{
		Subject:   "alice@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)

	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, ok := VerifyToken(unsigned); ok {
		t.Error("unsigned token accepted")
	}
}

func TestInitJWTConfiguredTTL(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("ALGORITHM", "HS512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "45")

	if err := InitJWT(); err != nil {
		t.Fatalf("init jwt: %v", err)
	}

	if got := AccessTokenTTL(); got != 45*time.Minute {
		t.Errorf("ttl = %v, want 45m", got)
	}
}

func TestInitJWTRejectsBadConfig(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("ALGORITHM", "RS256")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")

	if err := InitJWT(); err == nil {
		t.Error("non-HMAC algorithm accepted")
	}

	t.Setenv("ALGORITHM", "HS256")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "zero")

	if err := InitJWT(); err == nil {
		t.Error("non-numeric expiry accepted")
	}
}
