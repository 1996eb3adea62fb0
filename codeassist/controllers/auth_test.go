package controllers

import (
	"context"
	"errors"
	"testing"
)

func TestRegister_IssuesUniqueAPIKeys(t *testing.T) {
	env := newTestEnv(t)

	_, key1 := env.registerUser(t, "alice")
	_, key2 := env.registerUser(t, "bob")

	if len(key1) != 32 {
		t.Errorf("expected 32-char hex key, got %q", key1)
	}
	if key1 == key2 {
		t.Errorf("expected distinct keys per registration")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	env.registerUser(t, "alice")
	_, err := env.auth.Register(context.Background(), "alice")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLogin_ExactPairOnly(t *testing.T) {
	env := newTestEnv(t)
	_, apiKey := env.registerUser(t, "alice")

	res, err := env.auth.Login(context.Background(), "alice", apiKey)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res["username"] != "alice" {
		t.Errorf("unexpected login payload: %+v", res)
	}

	// Any single-character mutation of either half must fail.
	mutated := apiKey[:len(apiKey)-1] + flip(apiKey[len(apiKey)-1])
	if _, err := env.auth.Login(context.Background(), "alice", mutated); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("mutated key: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := env.auth.Login(context.Background(), "alicf", apiKey); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("mutated username: expected ErrInvalidCredentials, got %v", err)
	}
}

func flip(b byte) string {
	if b == 'a' {
		return "b"
	}
	return "a"
}
