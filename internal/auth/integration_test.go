package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/userauth/internal/config"
)

func setupApp(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()

	service, _ := setupService(t)
	cfg := config.Auth{
		CookieName:    "session_id",
		ExcludedPaths: []string{"/", "/users", "/sessions", "/profile", "/reset_password"},
		SecureCookies: false,
	}
	strategy := NewBase(cfg.CookieName)

	router := gin.New()
	router.Use(NewMiddleware(service, strategy, cfg).Handler())
	NewController(service, strategy, nil, cfg).RegisterRoutes(router)

	return router, service
}

func postForm(router *gin.Engine, method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body %q: %v", rr.Body.String(), err)
	}
	return body
}

func sessionCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestEndToEndFlow(t *testing.T) {
	router, _ := setupApp(t)

	// Landing page is public
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rr.Code)
	}
	if body := decodeBody(t, rr); body["message"] != "Welcome" {
		t.Errorf("GET / message = %q, want Welcome", body["message"])
	}

	creds := url.Values{"email": {"bob@example.com"}, "password": {"secret"}}

	// Register
	rr = postForm(router, http.MethodPost, "/users", creds, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("POST /users = %d, want 200", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["email"] != "bob@example.com" || body["message"] != "user created" {
		t.Errorf("POST /users body = %v", body)
	}

	// Duplicate registration
	rr = postForm(router, http.MethodPost, "/users", creds, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("duplicate POST /users = %d, want 400", rr.Code)
	}
	if body := decodeBody(t, rr); body["message"] != "email already registered" {
		t.Errorf("duplicate POST /users message = %q", body["message"])
	}

	// Wrong password
	rr = postForm(router, http.MethodPost, "/sessions",
		url.Values{"email": {"bob@example.com"}, "password": {"wrong"}}, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("bad login = %d, want 401", rr.Code)
	}

	// Login
	rr = postForm(router, http.MethodPost, "/sessions", creds, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("POST /sessions = %d, want 200", rr.Code)
	}
	body = decodeBody(t, rr)
	if body["email"] != "bob@example.com" || body["message"] != "logged in" {
		t.Errorf("POST /sessions body = %v", body)
	}
	cookie := sessionCookie(rr, "session_id")
	if cookie == nil || cookie.Value == "" {
		t.Fatal("Expected login to set the session cookie")
	}

	// Profile with the session
	req = httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /profile = %d, want 200", rr.Code)
	}
	if body := decodeBody(t, rr); body["email"] != "bob@example.com" {
		t.Errorf("GET /profile email = %q", body["email"])
	}

	// Profile without a session
	req = httptest.NewRequest(http.MethodGet, "/profile", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("GET /profile without session = %d, want 403", rr.Code)
	}

	// Logout
	req = httptest.NewRequest(http.MethodDelete, "/sessions", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusFound {
		t.Fatalf("DELETE /sessions = %d, want 302", rr.Code)
	}
	if location := rr.Header().Get("Location"); location != "/" {
		t.Errorf("logout redirect = %q, want /", location)
	}

	// Session is gone
	req = httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("GET /profile after logout = %d, want 403", rr.Code)
	}
}

func TestLogout_WithoutSession(t *testing.T) {
	router, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodDelete, "/sessions", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("DELETE /sessions without session = %d, want 403", rr.Code)
	}
}

func TestResetPasswordFlow_HTTP(t *testing.T) {
	router, _ := setupApp(t)

	creds := url.Values{"email": {"bob@example.com"}, "password": {"old-password"}}
	if rr := postForm(router, http.MethodPost, "/users", creds, nil); rr.Code != http.StatusOK {
		t.Fatalf("POST /users = %d, want 200", rr.Code)
	}

	// Token for an unknown email is refused
	rr := postForm(router, http.MethodPost, "/reset_password",
		url.Values{"email": {"ghost@example.com"}}, nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("reset for unknown email = %d, want 403", rr.Code)
	}

	// Request a token
	rr = postForm(router, http.MethodPost, "/reset_password",
		url.Values{"email": {"bob@example.com"}}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("POST /reset_password = %d, want 200", rr.Code)
	}
	body := decodeBody(t, rr)
	token := body["reset_token"]
	if body["email"] != "bob@example.com" || token == "" {
		t.Fatalf("POST /reset_password body = %v", body)
	}

	// Update the password
	rr = postForm(router, http.MethodPut, "/reset_password", url.Values{
		"email":        {"bob@example.com"},
		"reset_token":  {token},
		"new_password": {"new-password"},
	}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("PUT /reset_password = %d, want 200", rr.Code)
	}
	if body := decodeBody(t, rr); body["message"] != "Password updated" {
		t.Errorf("PUT /reset_password message = %q", body["message"])
	}

	// The token is spent
	rr = postForm(router, http.MethodPut, "/reset_password", url.Values{
		"email":        {"bob@example.com"},
		"reset_token":  {token},
		"new_password": {"yet-another"},
	}, nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("reuse of spent token = %d, want 403", rr.Code)
	}

	// Only the new password logs in
	rr = postForm(router, http.MethodPost, "/sessions",
		url.Values{"email": {"bob@example.com"}, "password": {"old-password"}}, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("login with old password = %d, want 401", rr.Code)
	}
	rr = postForm(router, http.MethodPost, "/sessions",
		url.Values{"email": {"bob@example.com"}, "password": {"new-password"}}, nil)
	if rr.Code != http.StatusOK {
		t.Errorf("login with new password = %d, want 200", rr.Code)
	}
}

func TestLoginWithSessionStrategy(t *testing.T) {
	service, repo := setupService(t)
	cfg := config.Auth{
		CookieName:    "session_id",
		ExcludedPaths: []string{"/", "/users", "/sessions", "/profile", "/reset_password"},
	}
	strategy := NewBareSession(cfg.CookieName, repo)

	router := gin.New()
	router.Use(NewMiddleware(service, strategy, cfg).Handler())
	NewController(service, strategy, nil, cfg).RegisterRoutes(router)

	creds := url.Values{"email": {"bob@example.com"}, "password": {"secret"}}
	if rr := postForm(router, http.MethodPost, "/users", creds, nil); rr.Code != http.StatusOK {
		t.Fatalf("POST /users = %d, want 200", rr.Code)
	}

	rr := postForm(router, http.MethodPost, "/sessions", creds, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("POST /sessions = %d, want 200", rr.Code)
	}
	cookie := sessionCookie(rr, "session_id")
	if cookie == nil {
		t.Fatal("Expected login to set the session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /profile = %d, want 200", w.Code)
	}
	if body := decodeBody(t, w); body["email"] != "bob@example.com" {
		t.Errorf("GET /profile email = %q", body["email"])
	}
}
