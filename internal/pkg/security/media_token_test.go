package security

import (
	"testing"
	"time"
)

func TestMediaTokenSignVerify(t *testing.T) {
	signer := NewMediaTokenSigner("test-secret")

	token, err := signer.Sign("video-101", "10.0.0.8", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.ResourceID != "video-101" {
		t.Errorf("ResourceID = %q, want %q", claims.ResourceID, "video-101")
	}
	if claims.IPAddress != "10.0.0.8" {
		t.Errorf("IPAddress = %q, want %q", claims.IPAddress, "10.0.0.8")
	}
	if claims.Nonce == "" {
		t.Error("Nonce is empty, want random value")
	}
}

func TestMediaTokenNonceUnique(t *testing.T) {
	signer := NewMediaTokenSigner("test-secret")
	exp := time.Now().Add(time.Hour)

	t1, err := signer.Sign("video-101", "", exp)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	t2, err := signer.Sign("video-101", "", exp)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if t1 == t2 {
		t.Error("two tokens for the same resource are identical, want unique nonces")
	}
}

func TestMediaTokenExpired(t *testing.T) {
	signer := NewMediaTokenSigner("test-secret")

	token, err := signer.Sign("video-101", "", time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	if _, err := signer.Verify(token); err == nil {
		t.Error("Verify() of expired token succeeded, want error")
	}
}

func TestMediaTokenWrongSecret(t *testing.T) {
	signer := NewMediaTokenSigner("secret-a")
	other := NewMediaTokenSigner("secret-b")

	token, err := signer.Sign("video-101", "", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Error("Verify() with wrong secret succeeded, want error")
	}
}
