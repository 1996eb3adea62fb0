package controllers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateSession_DefaultName(t *testing.T) {
	env := newTestEnv(t)
	userID, _ := env.registerUser(t, "alice")

	res, err := env.sessions.Create(context.Background(), userID, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	name := res["name"].(string)
	if !strings.HasPrefix(name, "Session ") {
		t.Errorf("expected timestamp-derived default name, got %q", name)
	}
}

func TestSessionOwnership_HiddenAsNotFound(t *testing.T) {
	env := newTestEnv(t)
	aliceID, _ := env.registerUser(t, "alice")
	bobID, _ := env.registerUser(t, "bob")
	sessionID := env.createSession(t, aliceID, "alice's")

	// Bob probing Alice's session sees not-found everywhere, never a
	// permission error.
	if _, err := env.sessions.Messages(context.Background(), bobID, sessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("messages: expected ErrSessionNotFound, got %v", err)
	}
	if err := env.sessions.Delete(context.Background(), bobID, sessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("delete: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := env.files.List(context.Background(), bobID, sessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("files: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := env.files.Upload(context.Background(), bobID, sessionID, "x.txt", strings.NewReader("x")); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("upload: expected ErrSessionNotFound, got %v", err)
	}
}

func TestDeleteSession_RemovesUploadDirectory(t *testing.T) {
	env := newTestEnv(t)
	userID, _ := env.registerUser(t, "alice")
	sessionID := env.createSession(t, userID, "s")

	if _, err := env.files.Upload(context.Background(), userID, sessionID, "a.txt", strings.NewReader("a")); err != nil {
		t.Fatalf("upload: %v", err)
	}
	dir := filepath.Join(env.store.Root(), sessionID)
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("upload dir missing before delete: %v", err)
	}

	if err := env.sessions.Delete(context.Background(), userID, sessionID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("upload dir still present after delete")
	}
	if _, err := env.sessions.Messages(context.Background(), userID, sessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected session gone, got %v", err)
	}
}

func TestMessages_EmptySessionIsEmptyList(t *testing.T) {
	env := newTestEnv(t)
	userID, _ := env.registerUser(t, "alice")
	sessionID := env.createSession(t, userID, "s")

	messages, err := env.sessions.Messages(context.Background(), userID, sessionID)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if messages == nil || len(messages) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", messages)
	}
}
