package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func csrfRouter() *gin.Engine {
	secret := []byte("32-byte-long-auth-key-for-tests!")

	router := gin.New()
	router.Use(CSRFMiddleware(secret, false))
	router.GET("/form", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"token": GetCSRFToken(c)})
	})
	router.POST("/submit", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestCSRFMiddleware_SafeMethodPasses(t *testing.T) {
	router := csrfRouter()

	req := httptest.NewRequest(http.MethodGet, "/form", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("GET = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "token") {
		t.Error("Expected token in response body")
	}
}

func TestCSRFMiddleware_PostWithoutTokenRejected(t *testing.T) {
	router := csrfRouter()

	form := url.Values{"email": {"bob@example.com"}}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("POST without token = %d, want 403", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "CSRF") {
		t.Errorf("Expected CSRF error body, got %q", rr.Body.String())
	}
}

func TestCSRFMiddleware_RejectionStopsHandlerChain(t *testing.T) {
	secret := []byte("32-byte-long-auth-key-for-tests!")

	executed := false
	router := gin.New()
	router.Use(CSRFMiddleware(secret, false))
	router.POST("/submit", func(c *gin.Context) {
		executed = true
		c.Status(http.StatusOK)
	})

	form := url.Values{"email": {"bob@example.com"}}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("POST without token = %d, want 403", rr.Code)
	}
	if executed {
		t.Error("Expected route handler to not run on a rejected request")
	}
}

func TestCSRFMiddleware_APIClientSkipped(t *testing.T) {
	router := csrfRouter()

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set("Authorization", basicHeader("bob@example.com", "secret"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("POST with Authorization header = %d, want 200", rr.Code)
	}
}
