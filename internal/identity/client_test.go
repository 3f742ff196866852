package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExchange_Success(t *testing.T) {
	var gotSessionID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSessionID = r.Header.Get("X-Session-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"ext-1","email":"ada@example.com","name":"Ada","picture":"p","session_token":"tok"}`))
	}))
	defer srv.Close()

	profile, err := NewClient(srv.URL).Exchange(context.Background(), "sess-123")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if gotSessionID != "sess-123" {
		t.Fatalf("session id header not forwarded: %q", gotSessionID)
	}
	if profile.Email != "ada@example.com" || profile.SessionToken != "tok" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestExchange_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid session", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Exchange(context.Background(), "bad")
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
}

func TestExchange_IncompleteProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"ext-1"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Exchange(context.Background(), "sess")
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected for incomplete profile, got %v", err)
	}
}
