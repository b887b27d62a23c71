package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/harish336/Mindboloom/pkg/config"
	"github.com/harish336/Mindboloom/pkg/token"
)

func newAuthEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", AuthMiddleware(), func(c *gin.Context) {
		uid, ok := CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "no identity in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": uid})
	})
	return r
}

func makeToken(t *testing.T, sub, jti string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": sub, "jti": jti, "exp": exp.Unix()}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejections(t *testing.T) {
	r := newAuthEngine()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not-a-token"},
		{"expired token", "Bearer " + makeToken(t, "1", "jti-exp", time.Now().Add(-time.Hour))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := doRequest(r, tc.header); w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	r := newAuthEngine()
	tok := makeToken(t, "42", "jti-valid", time.Now().Add(time.Hour))

	w := doRequest(r, "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	r := newAuthEngine()
	exp := time.Now().Add(time.Hour)
	tok := makeToken(t, "42", "jti-revoked", exp)

	if w := doRequest(r, "Bearer "+tok); w.Code != http.StatusOK {
		t.Fatalf("expected token to work before revocation, got %d", w.Code)
	}
	token.Revoke("jti-revoked", exp)
	if w := doRequest(r, "Bearer "+tok); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after revocation, got %d", w.Code)
	}
}
