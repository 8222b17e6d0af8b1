package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rollcall-dev/rollcall/db"
	"github.com/rollcall-dev/rollcall/internal/auth"
	"github.com/rollcall-dev/rollcall/internal/router"
	"github.com/rollcall-dev/rollcall/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupServer wires the real router against a fresh in-memory database.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("ALGORITHM", "")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")

	if err := auth.InitJWT(); err != nil {
		t.Fatalf("init jwt: %v", err)
	}

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	var err error

	db.DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return router.NewRouter()
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)

		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}

		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(t *testing.T, r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func registerUser(t *testing.T, r http.Handler, email, name string) types.UserResponse {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    email,
		"name":     name,
		"password": "testpass123",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", email, w.Code, w.Body.String())
	}

	var user types.UserResponse
	decode(t, w, &user)
	return user
}

func loginUser(t *testing.T, r http.Handler, email string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    email,
		"password": "testpass123",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", email, w.Code, w.Body.String())
	}

	var token types.TokenResponse
	decode(t, w, &token)

	if token.AccessToken == "" || token.TokenType != "bearer" {
		t.Fatalf("unexpected token payload: %+v", token)
	}

	return token.AccessToken
}
