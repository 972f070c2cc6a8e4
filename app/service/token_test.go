package service_test

import (
	"strings"
	"testing"

	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/service"
	"github.com/haneul-labs/daily-record/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:              "test-secret",
		AccessTokenExpireMins:  120,
		RefreshTokenExpireDays: 14,
		InviteCodeMaxAttempts:  10,
	}
}

func TestTokenCodec_SignAndParse(t *testing.T) {
	codec := service.NewTokenCodec(testConfig())

	token, err := codec.SignAccessToken("hana", entity.AuthorityAdmin)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	claims, err := codec.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Subject != "hana" {
		t.Fatalf("expected subject hana, got %q", claims.Subject)
	}
	if claims.Authority != "ADMIN" {
		t.Fatalf("expected authority ADMIN, got %q", claims.Authority)
	}
}

func TestTokenCodec_ParseRejectsWrongSecret(t *testing.T) {
	codec := service.NewTokenCodec(testConfig())
	token, err := codec.SignAccessToken("hana", entity.AuthorityUser)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	other := service.NewTokenCodec(&config.Config{
		JWTSecret:             "different-secret",
		AccessTokenExpireMins: 120,
	})
	if _, err := other.ParseAccessToken(token); err == nil {
		t.Fatal("expected parse to fail with wrong secret")
	}
}

func TestTokenCodec_MaxAges(t *testing.T) {
	codec := service.NewTokenCodec(testConfig())

	if got := codec.AccessTokenMaxAgeSeconds(); got != 120*60 {
		t.Fatalf("expected access max-age %d, got %d", 120*60, got)
	}
	if got := codec.RefreshTokenMaxAgeSeconds(); got != 14*24*60*60 {
		t.Fatalf("expected refresh max-age %d, got %d", 14*24*60*60, got)
	}
}

func TestNewRefreshTokenString(t *testing.T) {
	token := service.NewRefreshTokenString()
	if len(token) != 32 {
		t.Fatalf("expected 32 characters, got %d", len(token))
	}
	if strings.Contains(token, "-") {
		t.Fatalf("expected no dashes, got %q", token)
	}
	if token == service.NewRefreshTokenString() {
		t.Fatal("expected distinct tokens")
	}
}

func TestHashToken(t *testing.T) {
	first := service.HashToken("raw-token")
	second := service.HashToken("raw-token")
	if first != second {
		t.Fatal("expected hashing to be deterministic")
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(first))
	}
	if first == service.HashToken("other-token") {
		t.Fatal("expected different inputs to hash differently")
	}
}
