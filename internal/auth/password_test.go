package auth

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")

	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if hash == "correct horse battery staple" {
		t.Fatal("digest equals plaintext")
	}

	if !CheckPassword(hash, "correct horse battery staple") {
		t.Error("correct password rejected")
	}

	if CheckPassword(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same input")

	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	second, err := HashPassword("same input")

	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password are identical, salt missing")
	}
}

func TestCheckPasswordMalformedDigest(t *testing.T) {
	if CheckPassword("not-a-bcrypt-digest", "anything") {
		t.Error("malformed digest verified")
	}

	if CheckPassword("", "anything") {
		t.Error("empty digest verified")
	}
}
