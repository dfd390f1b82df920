package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWT(), func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": c.GetInt64("user_id")})
	})
	return r
}

func TestJWT_BearerToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()
	r := newAuthRouter()

	token, err := service.GenerateJWT(7)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestJWT_Cookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()
	r := newAuthRouter()

	token, err := service.GenerateJWT(7)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestJWT_Rejections(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()
	r := newAuthRouter()

	cases := []struct {
		name  string
		setup func(req *http.Request)
	}{
		{"no token", func(*http.Request) {}},
		{"garbage bearer", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer not.a.token")
		}},
		{"wrong scheme", func(req *http.Request) {
			req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		}},
		{"garbage cookie", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: CookieName, Value: "junk"})
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tc.setup(req)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 got %d", rec.Code)
			}
		})
	}
}
