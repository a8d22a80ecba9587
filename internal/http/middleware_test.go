package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func operatorRouter(issuer *token.Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	group := r.Group("/sells")
	group.Use(TokenAuthMiddleware(issuer))
	group.GET("/list", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"Ok": []string{}})
	})
	group.POST("/mutate", RequirePrivileged(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"Ok": "done"})
	})

	return r
}

func request(t *testing.T, r *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokenAuthMiddleware(t *testing.T) {
	issuer := token.NewIssuer(testSecret)
	r := operatorRouter(issuer)

	if w := request(t, r, "GET", "/sells/list", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}

	if w := request(t, r, "GET", "/sells/list", "garbage"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", w.Code)
	}

	normalToken, err := issuer.Issue(token.RoleNormal)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if w := request(t, r, "GET", "/sells/list", normalToken); w.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", w.Code)
	}
}

func TestRequirePrivileged(t *testing.T) {
	issuer := token.NewIssuer(testSecret)
	r := operatorRouter(issuer)

	normalToken, err := issuer.Issue(token.RoleNormal)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if w := request(t, r, "POST", "/sells/mutate", normalToken); w.Code != http.StatusUnauthorized {
		t.Errorf("normal token on mutation: status = %d, want 401", w.Code)
	}

	privToken, err := issuer.Issue(token.RolePrivileged)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if w := request(t, r, "POST", "/sells/mutate", privToken); w.Code != http.StatusOK {
		t.Errorf("privileged token on mutation: status = %d, want 200", w.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := request(t, r, "GET", "/", "")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("no X-Request-ID header on response")
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Errorf("X-Request-ID = %q, want the caller's fixed-id", got)
	}
}
