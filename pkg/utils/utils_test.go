package utils

import "testing"

func TestCryptAndVerify(t *testing.T) {
	hashed, err := Crypt("s3cret")
	if err != nil {
		t.Fatalf("Crypt: %v", err)
	}
	if hashed == "s3cret" {
		t.Fatal("password stored in clear")
	}
	if !VerifyPassword("s3cret", hashed) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong", hashed) {
		t.Error("wrong password accepted")
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"alice@example.com", true},
		{"a.b+tag@mail.example.org", true},
		{"alice", false},
		{"alice@", false},
		{"@example.com", false},
		{"alice@example", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestAnyBlank(t *testing.T) {
	if AnyBlank("a", "b") {
		t.Error("no blank fields expected")
	}
	if !AnyBlank("a", "   ") {
		t.Error("whitespace-only field is blank")
	}
	if NormalizeUsername("  Alice ") != "alice" {
		t.Error("username not normalized")
	}
}
