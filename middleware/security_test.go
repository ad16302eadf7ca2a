package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"strong password", "Sup3rSecret", true},
		{"too short", "Ab1", false},
		{"no uppercase", "sup3rsecret", false},
		{"no lowercase", "SUP3RSECRET", false},
		{"no digit", "SuperSecret", false},
		{"too long", strings.Repeat("Aa1", 50), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, errs := ValidatePasswordStrength(tt.password)
			if ok != tt.wantOK {
				t.Errorf("ValidatePasswordStrength(%q) = %v (%v), want %v",
					tt.password, ok, errs, tt.wantOK)
			}
			if !ok && len(errs) == 0 {
				t.Error("rejection came with no reasons")
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{`"quoted" & 'single'`, "&quot;quoted&quot; &amp; &#x27;single&#x27;"},
		{"  padded  ", "padded"},
	}

	for _, tt := range tests {
		if got := SanitizeInput(tt.in); got != tt.want {
			t.Errorf("SanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRateLimiterReusesLimiters(t *testing.T) {
	rl := NewRateLimiter()

	first := rl.GetLimiter("10.0.0.1", rate.Limit(1), 5)
	second := rl.GetLimiter("10.0.0.1", rate.Limit(1), 5)
	if first != second {
		t.Error("GetLimiter returned a new limiter for the same key")
	}

	other := rl.GetLimiter("10.0.0.2", rate.Limit(1), 5)
	if first == other {
		t.Error("GetLimiter shared a limiter across keys")
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	} {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestInputValidationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(InputValidationMiddleware())
	router.POST("/submit", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("json accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("xml rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("<xml/>"))
		req.Header.Set("Content-Type", "application/xml")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnsupportedMediaType {
			t.Errorf("status = %d, want 415", w.Code)
		}
	})

	t.Run("oversized body rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		req.ContentLength = 11 * 1024 * 1024
		router.ServeHTTP(w, req)
		if w.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want 413", w.Code)
		}
	})
}

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter()
	lim := rl.GetLimiter("burst-test", rate.Limit(1), 3)

	for i := 0; i < 3; i++ {
		if !lim.Allow() {
			t.Fatalf("request %d within burst was denied", i+1)
		}
	}
	if lim.Allow() {
		t.Error("request beyond burst was allowed")
	}
}
