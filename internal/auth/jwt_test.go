package auth

import (
	"testing"

	"stockgyan-backend/internal/config"
	"stockgyan-backend/internal/models"
)

func jwtConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.Issuer = "test"
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := NewJWTManager(jwtConfig("secret-1"))
	user := &models.User{ID: 7, Mobile: "9876543210", FullName: "Ravi Kumar"}

	token, err := m.GenerateToken(user, "sess-abc")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 || claims.Mobile != "9876543210" || claims.SessionID != "sess-abc" {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m1 := NewJWTManager(jwtConfig("secret-1"))
	m2 := NewJWTManager(jwtConfig("secret-2"))

	token, err := m1.GenerateToken(&models.User{ID: 1, Mobile: "9876543210"}, "sess-abc")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m2.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret should not validate")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	m := NewJWTManager(jwtConfig("secret-1"))
	if _, err := m.ValidateToken("not.a.jwt"); err == nil {
		t.Error("garbage should not validate")
	}
}

func TestValidateTokenRequiresSessionID(t *testing.T) {
	m := NewJWTManager(jwtConfig("secret-1"))
	token, err := m.GenerateToken(&models.User{ID: 1, Mobile: "9876543210"}, "")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m.ValidateToken(token); err == nil {
		t.Error("token without a session ID should not validate")
	}
}

func TestOTPHashRoundTrip(t *testing.T) {
	hash, err := HashOTP("482913")
	if err != nil {
		t.Fatalf("HashOTP: %v", err)
	}
	if hash == "482913" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyOTP(hash, "482913") {
		t.Error("correct code rejected")
	}
	if VerifyOTP(hash, "482914") {
		t.Error("wrong code accepted")
	}
}
