package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"zettel-todo/internal/service"
)

func newProtectedRouter(jwtSvc *service.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", JWTAuthMiddleware(jwtSvc), func(c *gin.Context) {
		userID, _ := GetAuthUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", 15*time.Minute)
	r := newProtectedRouter(jwtSvc)

	token, err := jwtSvc.Issue("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["user_id"] != "user-1" {
		t.Fatalf("expected user-1, got %v", body["user_id"])
	}
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", 15*time.Minute)
	r := newProtectedRouter(jwtSvc)

	otherSvc := service.NewJWTService("other-secret", 15*time.Minute)
	foreignToken, _ := otherSvc.Issue("user-1")
	expiredToken, _ := jwtSvc.IssueWithTTL("user-1", -time.Minute)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + foreignToken},
		{"expired", "Bearer " + expiredToken},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.name, rec.Code)
		}
	}
}
