// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// testCost keeps bcrypt fast in tests while staying in the valid range.
const testCost = bcrypt.MinCost

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("pw123456", testCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !VerifyPassword("pw123456", hash) {
		t.Error("expected verify(s, hash(s)) to be true")
	}
}

func TestHashPassword_DifferentSecretsDoNotVerify(t *testing.T) {
	hash, err := HashPassword("secret-one", testCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if VerifyPassword("secret-two", hash) {
		t.Error("expected verify(s1, hash(s2)) to be false for s1 != s2")
	}
}

func TestHashPassword_SaltRandomization(t *testing.T) {
	first, err := HashPassword("same-secret", testCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := HashPassword("same-secret", testCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Error("hashing the same secret twice must yield different credentials")
	}

	// both still verify
	if !VerifyPassword("same-secret", first) || !VerifyPassword("same-secret", second) {
		t.Error("both hashes of the same secret must verify")
	}
}

func TestHashPassword_SelfDescribingFormat(t *testing.T) {
	hash, err := HashPassword("pw123456", testCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// bcrypt strings embed the algorithm identifier and cost factor
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected bcrypt-formatted credential, got %q", hash)
	}
}

func TestHashPassword_EmptyPassword(t *testing.T) {
	_, err := HashPassword("", testCost)
	if !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestHashPassword_CostOutOfRangeUsesDefault(t *testing.T) {
	hash, err := HashPassword("pw123456", 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("unexpected error reading cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Errorf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}

func TestVerifyPassword_MalformedCredential(t *testing.T) {
	if VerifyPassword("pw123456", "not-a-bcrypt-hash") {
		t.Error("expected verify to return false on malformed credential")
	}
	if VerifyPassword("pw123456", "") {
		t.Error("expected verify to return false on empty credential")
	}
}
