package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"atmosaether/internal/bootstrap"
	"atmosaether/internal/config"
	"atmosaether/internal/model"
)

func setupTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.ContactSubmission{},
		&model.User{},
		&model.Session{},
		&model.ChatTurn{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	identitySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Session-ID") == "" {
			http.Error(w, "missing session id", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"ext-1","email":"ada@example.com","name":"Ada","picture":"https://example.com/a.png","session_token":"tok-ext-1"}`))
	}))
	t.Cleanup(identitySrv.Close)

	llmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"content":"The harvester ionizes airborne particulates."}}]}`)
	}))
	t.Cleanup(llmSrv.Close)

	cfg := &config.Config{
		App: config.AppConfig{
			Name:    "AtmosAether API",
			Env:     "test",
			GinMode: gin.TestMode,
		},
		Auth: config.AuthConfig{ExchangeBaseURL: identitySrv.URL},
		LLM: config.LLMConfig{
			BaseURL:         llmSrv.URL,
			APIKey:          "test-key",
			Model:           "gpt-4o",
			Temperature:     0.7,
			MaxTokens:       256,
			MaxContextTurns: 10,
		},
	}

	app := &bootstrap.App{
		Config:    cfg,
		MySQL:     db,
		StartedAt: time.Now(),
	}
	return NewRouter(app), db
}

func doJSON(router *gin.Engine, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestHealth(t *testing.T) {
	router, _ := setupTestApp(t)

	w := doJSON(router, http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "healthy" || body["service"] != "AtmosAether API" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestContact_InvalidEmailNotPersisted(t *testing.T) {
	router, db := setupTestApp(t)

	w := doJSON(router, http.MethodPost, "/api/contact",
		`{"name":"Grace","email":"not-an-email","message":"hi"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var count int64
	if err := db.Model(&model.ContactSubmission{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("invalid submission must not persist, got %d rows", count)
	}
}

func TestContact_SuccessWithoutNotifier(t *testing.T) {
	router, db := setupTestApp(t)

	w := doJSON(router, http.MethodPost, "/api/contact",
		`{"name":"Grace","email":"grace@example.com","organization":"Hopper Labs","message":"Pilot inquiry"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Fatalf("expected success, got %v", body)
	}
	if body["whatsapp_notification"] != "not_configured" {
		t.Fatalf("expected not_configured, got %v", body["whatsapp_notification"])
	}

	var stored model.ContactSubmission
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load submission: %v", err)
	}
	if stored.Email != "grace@example.com" || stored.SubmittedAt.IsZero() {
		t.Fatalf("unexpected stored submission: %+v", stored)
	}
}

func TestAuthMe_NoCredentials(t *testing.T) {
	router, _ := setupTestApp(t)

	w := doJSON(router, http.MethodGet, "/api/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != false || body["message"] != "Not authenticated" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestSuggestedQuestions(t *testing.T) {
	router, _ := setupTestApp(t)

	w := doJSON(router, http.MethodGet, "/api/suggested-questions", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	suggestions, ok := body["suggestions"].([]interface{})
	if !ok || len(suggestions) == 0 {
		t.Fatalf("expected non-empty suggestions, got %v", body)
	}
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_token" {
			return c
		}
	}
	t.Fatalf("session_token cookie not set: %v", w.Header())
	return nil
}

func TestSessionFlow(t *testing.T) {
	router, db := setupTestApp(t)

	// Exchange the external session id for a cookie.
	w := doJSON(router, http.MethodPost, "/api/auth/session", `{"session_id":"ext-sess-1"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("exchange: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	cookie := sessionCookie(t, w)
	if !cookie.HttpOnly || !cookie.Secure {
		t.Fatalf("cookie must be httpOnly and secure: %+v", cookie)
	}
	if cookie.SameSite != http.SameSiteNoneMode {
		t.Fatalf("cookie must be SameSite=None: %v", cookie.SameSite)
	}
	if cookie.Domain != "" {
		t.Fatalf("cookie must not pin a domain, got %q", cookie.Domain)
	}

	body := decodeBody(t, w)
	user, ok := body["user"].(map[string]interface{})
	if !ok || user["email"] != "ada@example.com" {
		t.Fatalf("unexpected user payload: %v", body)
	}

	// Cookie authenticates /me.
	w = doJSON(router, http.MethodGet, "/api/auth/me", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("me with cookie: expected 200, got %d", w.Code)
	}

	// Bearer fallback authenticates too.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+cookie.Value)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me with bearer: expected 200, got %d", rec.Code)
	}

	// Chat round trip.
	w = doJSON(router, http.MethodPost, "/api/chat", `{"message":"How does it work?"}`, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("chat: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	if body["model"] != "gpt-4o" {
		t.Fatalf("expected default model, got %v", body["model"])
	}

	w = doJSON(router, http.MethodGet, "/api/chat/history", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", w.Code)
	}
	body = decodeBody(t, w)
	history, ok := body["history"].([]interface{})
	if !ok || len(history) != 1 {
		t.Fatalf("expected one history turn, got %v", body)
	}

	w = doJSON(router, http.MethodDelete, "/api/chat/history", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("clear history: expected 200, got %d", w.Code)
	}
	var turns int64
	if err := db.Model(&model.ChatTurn{}).Count(&turns).Error; err != nil {
		t.Fatalf("count turns: %v", err)
	}
	if turns != 0 {
		t.Fatalf("history not cleared, %d rows left", turns)
	}

	// Logout deletes the session; the old cookie stops working.
	w = doJSON(router, http.MethodPost, "/api/auth/logout", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}
	w = doJSON(router, http.MethodGet, "/api/auth/me", "", cookie)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", w.Code)
	}
}

func TestChat_Unauthenticated(t *testing.T) {
	router, _ := setupTestApp(t)

	w := doJSON(router, http.MethodPost, "/api/chat", `{"message":"hi"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
