package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "segredo-de-teste"

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken(testSecret, 7, "ana@example.com", "user")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UID != 7 || claims.Email != "ana@example.com" || claims.Role != "user" {
		t.Errorf("Unexpected claims: %+v", claims)
	}
	if claims.IsAdmin() {
		t.Error("Regular user must not be admin")
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < TokenTTL-time.Minute || remaining > TokenTTL {
		t.Errorf("Unexpected expiry window: %v", remaining)
	}
}

func TestParseTokenRejections(t *testing.T) {
	valid, _ := IssueToken(testSecret, 1, "adm@example.com", "admin")

	expired := func() string {
		claims := Claims{
			UID: 1, Email: "adm@example.com", Role: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		return s
	}()

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{"wrong secret", "outro-segredo", valid},
		{"garbage", testSecret, "nao.e.um.token"},
		{"empty", testSecret, ""},
		{"expired", testSecret, expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.secret, tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("senha-segura")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPassword(hash, "senha-segura") {
		t.Error("Correct password rejected")
	}
	if CheckPassword(hash, "senha-errada") {
		t.Error("Wrong password accepted")
	}
}

func TestHashPasswordTooShort(t *testing.T) {
	if _, err := HashPassword("curta"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("Expected ErrWeakPassword, got %v", err)
	}
}
