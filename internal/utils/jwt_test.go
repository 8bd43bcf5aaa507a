package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testIssuer  = "user-service-test"
	testSignKey = "test-sign-key"
	testSubject = "a@x.com"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testSubject, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if token.SignedString == "" {
		t.Error("expected non-empty signed string")
	}
	if token.Subject != testSubject {
		t.Errorf("expected subject %q, got %q", testSubject, token.Subject)
	}
	if parts := strings.Split(token.SignedString, "."); len(parts) != 3 {
		t.Errorf("expected compact JWS with 3 segments, got %d", len(parts))
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name    string
		issuer  string
		subject string
		ttl     time.Duration
		signKey string
	}{
		{"empty issuer", "", testSubject, time.Hour, testSignKey},
		{"empty subject", testIssuer, "", time.Hour, testSignKey},
		{"zero ttl", testIssuer, testSubject, 0, testSignKey},
		{"empty sign key", testIssuer, testSubject, time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.subject, tt.ttl, tt.signKey)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	issued, err := GenerateJWTToken(testIssuer, testSubject, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := ValidateAndParseJWTToken(issued.SignedString, testSignKey, testIssuer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Subject != testSubject {
		t.Errorf("expected subject %q, got %q", testSubject, parsed.Subject)
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   testSubject,
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = ValidateAndParseJWTToken(signed, testSignKey, testIssuer)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected jwt.ErrTokenExpired in chain, got %v", err)
	}
}

func TestValidateAndParseJWTToken_TamperedSignature(t *testing.T) {
	issued, err := GenerateJWTToken(testIssuer, testSubject, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// flip the first byte of the signature segment
	tampered := []byte(issued.SignedString)
	sigStart := strings.LastIndexByte(issued.SignedString, '.') + 1
	if tampered[sigStart] == 'A' {
		tampered[sigStart] = 'B'
	} else {
		tampered[sigStart] = 'A'
	}

	_, err = ValidateAndParseJWTToken(string(tampered), testSignKey, testIssuer)
	if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		t.Fatalf("expected jwt.ErrTokenSignatureInvalid in chain, got %v", err)
	}
}

func TestValidateAndParseJWTToken_WrongKey(t *testing.T) {
	issued, err := GenerateJWTToken(testIssuer, testSubject, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = ValidateAndParseJWTToken(issued.SignedString, "another-key", testIssuer)
	if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		t.Fatalf("expected jwt.ErrTokenSignatureInvalid in chain, got %v", err)
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	issued, err := GenerateJWTToken("other-service", testSubject, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = ValidateAndParseJWTToken(issued.SignedString, testSignKey, testIssuer)
	if err == nil {
		t.Fatal("expected issuer mismatch error, got nil")
	}
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not-a-jwt", testSignKey, testIssuer)
	if !errors.Is(err, jwt.ErrTokenMalformed) {
		t.Fatalf("expected jwt.ErrTokenMalformed in chain, got %v", err)
	}
}

func TestValidateAndParseJWTToken_MissingSubject(t *testing.T) {
	claims := &jwt.RegisteredClaims{
		Issuer:    testIssuer,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = ValidateAndParseJWTToken(signed, testSignKey, testIssuer)
	if !errors.Is(err, ErrEmptySubject) {
		t.Fatalf("expected ErrEmptySubject, got %v", err)
	}
}
