package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSignKey = []byte("0123456789abcdef0123456789abcdef")

func TestGenerateJWTToken_Success(t *testing.T) {
	now := time.Now()
	token, err := GenerateJWTToken("myself", "inst-1", now, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}
	if token.Subject != "inst-1" || token.InstallationID != "inst-1" {
		t.Errorf("expected subject inst-1, got %q", token.Subject)
	}
	if token.Issuer != "myself" {
		t.Errorf("expected issuer myself, got %s", token.Issuer)
	}
	if token.ID == "" {
		t.Error("expected a jti claim")
	}
	if token.String() != token.SignedString {
		t.Error("String must return the compact token")
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		subject  string
		duration time.Duration
		key      []byte
	}{
		{"empty issuer", "", "s", time.Hour, testSignKey},
		{"empty subject", "iss", "", time.Hour, testSignKey},
		{"zero duration", "iss", "s", 0, testSignKey},
		{"empty key", "iss", "s", time.Hour, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.subject, time.Now(), tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestGenerateJWTToken_DistinctTokens(t *testing.T) {
	now := time.Now()
	a, err := GenerateJWTToken("myself", "inst", now, time.Hour, testSignKey)
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateJWTToken("myself", "inst", now, time.Hour, testSignKey)
	if err != nil {
		t.Fatal(err)
	}
	if a.SignedString == b.SignedString {
		t.Error("tokens issued at the same instant must differ")
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	issued, err := GenerateJWTToken("myself", "inst-9", time.Now(), time.Hour, testSignKey)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := ValidateAndParseJWTToken(issued.SignedString, testSignKey, "myself")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.InstallationID != "inst-9" {
		t.Errorf("expected inst-9, got %s", parsed.InstallationID)
	}
	if parsed.SignedString != issued.SignedString {
		t.Error("signed string not preserved")
	}
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	valid, _ := GenerateJWTToken("myself", "inst", time.Now(), time.Hour, testSignKey)
	expired, _ := GenerateJWTToken("myself", "inst", time.Now().Add(-2*time.Hour), time.Hour, testSignKey)

	tests := []struct {
		name   string
		token  string
		key    []byte
		issuer string
	}{
		{"wrong key", valid.SignedString, []byte("another-key-another-key-another!!"), "myself"},
		{"wrong issuer", valid.SignedString, testSignKey, "someone"},
		{"garbage", "not.a.jwt", testSignKey, "myself"},
		{"expired", expired.SignedString, testSignKey, "myself"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	_, err := ValidateAndParseJWTToken(expired.SignedString, testSignKey, "myself")
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}
