package auth

import (
	"testing"
	"time"
)

func TestTeacherJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateTeacherJWT("mrs.smith", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, status, detail := parseBearer("Bearer " + token)
	if detail != "" {
		t.Fatalf("parse rejected valid token: %d %s", status, detail)
	}
	if claims["sub"] != "mrs.smith" {
		t.Fatalf("unexpected subject: %v", claims["sub"])
	}
	if claims["role"] != "teacher" {
		t.Fatalf("unexpected role: %v", claims["role"])
	}
}

func TestParseBearerRejectsBadInput(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cases := map[string]string{
		"empty header":  "",
		"no scheme":     "abc.def.ghi",
		"wrong scheme":  "Basic abc",
		"garbage token": "Bearer not-a-jwt",
	}
	for name, header := range cases {
		if _, status, detail := parseBearer(header); detail == "" || status != 401 {
			t.Fatalf("%s: expected 401 rejection, got %d %q", name, status, detail)
		}
	}
}

func TestParseBearerRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateTeacherJWT("mrs.smith", -time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, status, detail := parseBearer("Bearer " + token); detail == "" || status != 401 {
		t.Fatal("expired token must be rejected")
	}
}

func TestParseBearerRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateTeacherJWT("mrs.smith", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	t.Setenv("JWT_SECRET", "other-secret")
	if _, _, detail := parseBearer("Bearer " + token); detail == "" {
		t.Fatal("token signed with a different secret must be rejected")
	}
}

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hashed == "pw123" {
		t.Fatal("password stored in the clear")
	}
}
