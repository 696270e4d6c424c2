package utils

import (
	"testing"
)

func TestGenerateAndValidateTokenPair(t *testing.T) {
	pair, err := GenerateTokenPair(42, "alice@campus.edu", "buyer", "test-secret")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens must differ")
	}

	claims, err := ValidateToken(pair.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "alice@campus.edu" || claims.Role != "buyer" {
		t.Errorf("claims = (%d, %q, %q)", claims.UserID, claims.Email, claims.Role)
	}
	if claims.Type != string(AccessToken) {
		t.Errorf("token type = %q, want access", claims.Type)
	}

	refreshClaims, err := ValidateToken(pair.RefreshToken, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken on refresh failed: %v", err)
	}
	if refreshClaims.Type != string(RefreshToken) {
		t.Errorf("token type = %q, want refresh", refreshClaims.Type)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	pair, err := GenerateTokenPair(42, "alice@campus.edu", "buyer", "test-secret")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	if _, err := ValidateToken(pair.AccessToken, "other-secret"); err == nil {
		t.Error("expected validation to fail with the wrong secret")
	}
	if _, err := ValidateToken("not-a-token", "test-secret"); err == nil {
		t.Error("expected validation to fail on garbage input")
	}
}

func TestTokensAreUnique(t *testing.T) {
	// Tokens minted back to back within the same second must still differ,
	// refresh tokens live under a unique index.
	first, err := GenerateTokenPair(42, "alice@campus.edu", "buyer", "test-secret")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	second, err := GenerateTokenPair(42, "alice@campus.edu", "buyer", "test-secret")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	if first.RefreshToken == second.RefreshToken {
		t.Error("refresh tokens must be unique across mints")
	}
}

func TestGenerateRandomString(t *testing.T) {
	a, err := GenerateRandomString(16)
	if err != nil {
		t.Fatalf("GenerateRandomString failed: %v", err)
	}
	b, err := GenerateRandomString(16)
	if err != nil {
		t.Fatalf("GenerateRandomString failed: %v", err)
	}
	if len(a) != 32 {
		t.Errorf("hex length = %d, want 32", len(a))
	}
	if a == b {
		t.Error("expected distinct random strings")
	}
}
