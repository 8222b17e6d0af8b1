package auth

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is used when a caller does not supply an expiry.
const DefaultTokenTTL = 15 * time.Minute

var (
	jwtSecret     string
	signingMethod jwt.SigningMethod
	accessTTL     time.Duration
)

// InitJWT reads SECRET_KEY, ALGORITHM and ACCESS_TOKEN_EXPIRE_MINUTES from
// the environment. Missing values fall back to development defaults.
func InitJWT() error {
	jwtSecret = os.Getenv("SECRET_KEY")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
		log.Println("SECRET_KEY not set, using insecure development default")
	}

	alg := os.Getenv("ALGORITHM")
	if alg == "" {
		alg = "HS256"
	}

	signingMethod = jwt.GetSigningMethod(alg)
	if signingMethod == nil {
		return fmt.Errorf("unknown signing algorithm %q", alg)
	}
	if _, ok := signingMethod.(*jwt.SigningMethodHMAC); !ok {
		return fmt.Errorf("signing algorithm %q is not an HMAC method", alg)
	}

	accessTTL = 30 * time.Minute
	if raw := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES %q", raw)
		}
		accessTTL = time.Duration(minutes) * time.Minute
	}

	return nil
}

// AccessTokenTTL is the configured lifetime for login-issued tokens.
func AccessTokenTTL() time.Duration {
	return accessTTL
}

// GenerateToken issues a token for the given subject with the default TTL.
func GenerateToken(subject string) (string, error) {
	return GenerateTokenWithTTL(subject, DefaultTokenTTL)
}

// GenerateTokenWithTTL issues a signed token expiring after exactly ttl.
func GenerateTokenWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(signingMethod, claims)
	return token.SignedString([]byte(jwtSecret))
}

// VerifyToken checks signature and expiry and returns the subject. It never
// returns an error: malformed, tampered or expired tokens all yield ok=false.
func VerifyToken(tokenString string) (string, bool) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid || claims.Subject == "" {
		return "", false
	}

	return claims.Subject, true
}
