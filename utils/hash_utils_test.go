package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("password not hashed")
	}
	if !CheckPasswordHash("s3cret-password", hash) {
		t.Fatal("hash does not verify against its password")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Fatal("hash verified against a different password")
	}
}

func TestNewResetTokenUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := NewResetToken()
		if token == "" {
			t.Fatal("empty token")
		}
		if seen[token] {
			t.Fatalf("duplicate token after %d draws", i)
		}
		seen[token] = true
	}
}
