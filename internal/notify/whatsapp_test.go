package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestWhatsAppSender_Notify(t *testing.T) {
	var gotPath, gotFrom, gotTo, gotBody string
	var gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotFrom = r.PostForm.Get("From")
		gotTo = r.PostForm.Get("To")
		gotBody = r.PostForm.Get("Body")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM123"}`))
	}))
	defer srv.Close()

	sender := NewWhatsAppSenderWithBaseURL(srv.URL, "AC123", "secret", "+14155238886", "+15550001111")
	err := sender.Notify(context.Background(), ContactMessage{
		Name:         "Grace",
		Email:        "grace@example.com",
		Organization: "Hopper Labs",
		Message:      "Interested in a pilot.",
		SubmittedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}

	if gotPath != "/2010-04-01/Accounts/AC123/Messages.json" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotUser != "AC123" || gotPass != "secret" {
		t.Fatalf("basic auth not set")
	}
	if gotFrom != "whatsapp:+14155238886" || gotTo != "whatsapp:+15550001111" {
		t.Fatalf("numbers not whatsapp-prefixed: %q -> %q", gotFrom, gotTo)
	}
	for _, want := range []string{"Grace", "grace@example.com", "Hopper Labs", "Interested in a pilot."} {
		if !strings.Contains(gotBody, want) {
			t.Fatalf("body missing %q: %q", want, gotBody)
		}
	}
}

func TestWhatsAppSender_NotifyUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":20003}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := NewWhatsAppSenderWithBaseURL(srv.URL, "AC123", "wrong", "+1", "+2")
	if err := sender.Notify(context.Background(), ContactMessage{Name: "x"}); err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
}
