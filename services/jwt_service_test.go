package services

import (
	"testing"

	"retreat-booking-server/config"
	"retreat-booking-server/models"
)

func TestJWTServicePasswordHashing(t *testing.T) {
	js := NewJWTService()

	hash, err := js.HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "Sup3rSecret" {
		t.Fatal("HashPassword returned the plaintext")
	}

	if !js.CheckPasswordHash("Sup3rSecret", hash) {
		t.Error("CheckPasswordHash rejected the correct password")
	}
	if js.CheckPasswordHash("wrong-password", hash) {
		t.Error("CheckPasswordHash accepted a wrong password")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	config.Load()
	js := NewJWTService()

	user := &models.User{ID: 7, Role: models.RoleAdmin}
	token, expiresIn, err := js.generateAccessToken(user)
	if err != nil {
		t.Fatalf("generateAccessToken returned error: %v", err)
	}
	if expiresIn <= 0 {
		t.Errorf("expiresIn = %d, want > 0", expiresIn)
	}

	userID, err := js.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken returned error: %v", err)
	}
	if userID != 7 {
		t.Errorf("userID = %d, want 7", userID)
	}

	if _, err := js.ValidateAccessToken(token + "tampered"); err == nil {
		t.Error("ValidateAccessToken accepted a tampered token")
	}
}
