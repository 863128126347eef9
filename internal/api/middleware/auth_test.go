package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
)

const testHeader = "x-whop-user-token"

type stubVerifier struct {
	calls    int
	verifyFn func(ctx context.Context, h http.Header) (string, error)
}

func (s *stubVerifier) Verify(ctx context.Context, h http.Header) (string, error) {
	s.calls++
	return s.verifyFn(ctx, h)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(testHeader, "tok")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	v := &stubVerifier{verifyFn: func(_ context.Context, h http.Header) (string, error) {
		if h.Get(testHeader) != "tok" {
			t.Fatalf("verifier did not receive headers")
		}
		return "user_1", nil
	}}

	called := false
	handler := Auth(v, testHeader, zerolog.Nop())(func(c echo.Context) error {
		called = true
		if c.Get(KeyWhopUserID) != "user_1" {
			t.Fatalf("user id not set on echo context")
		}
		if id, ok := UserIDFrom(c.Request().Context()); !ok || id != "user_1" {
			t.Fatalf("user id not set on request context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if v.calls != 1 {
		t.Fatalf("expected 1 verifier call, got %d", v.calls)
	}
}

func TestAuthMiddleware_MissingHeaderSkipsVerifier(t *testing.T) {
	for _, value := range []string{"", "   "} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if value != "" {
			req.Header.Set(testHeader, value)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		v := &stubVerifier{verifyFn: func(context.Context, http.Header) (string, error) {
			t.Fatalf("verifier must not be called")
			return "", nil
		}}
		handler := Auth(v, testHeader, zerolog.Nop())(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})

		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if v.calls != 0 {
			t.Fatalf("expected no verifier calls, got %d", v.calls)
		}
	}
}

func TestAuthMiddleware_VerifierRejects(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(testHeader, "bad")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	v := &stubVerifier{verifyFn: func(context.Context, http.Header) (string, error) {
		return "", domain.ErrUnauthorized
	}}
	handler := Auth(v, testHeader, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if v.calls != 1 {
		t.Fatalf("expected exactly one verifier call, got %d", v.calls)
	}
}

func TestFingerprint(t *testing.T) {
	a, b := fingerprint("token-a"), fingerprint("token-b")
	if len(a) != 12 || a == b || a != fingerprint("token-a") {
		t.Fatalf("unexpected fingerprints %q %q", a, b)
	}
}

type stubIdentity struct {
	currentFn func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubIdentity) Sync(context.Context, string) (*domain.User, error) {
	return nil, errors.New("not used")
}

func (s *stubIdentity) Current(ctx context.Context, id string) (*domain.User, error) {
	return s.currentFn(ctx, id)
}

func TestLoadRole(t *testing.T) {
	tests := []struct {
		name     string
		current  func(ctx context.Context, id string) (*domain.User, error)
		wantRole domain.Role
		wantErr  bool
	}{
		{
			name: "stored role",
			current: func(_ context.Context, id string) (*domain.User, error) {
				return &domain.User{WhopUserID: id, Role: domain.RoleAdmin}, nil
			},
			wantRole: domain.RoleAdmin,
		},
		{
			name: "member with affiliate code",
			current: func(_ context.Context, id string) (*domain.User, error) {
				return &domain.User{WhopUserID: id, Role: domain.RoleMember, AffiliateCode: "ABCD1234"}, nil
			},
			wantRole: domain.RoleAffiliate,
		},
		{
			name: "guest with affiliate code",
			current: func(_ context.Context, id string) (*domain.User, error) {
				return &domain.User{WhopUserID: id, Role: domain.RoleGuest, AffiliateCode: "ABCD1234"}, nil
			},
			wantRole: domain.RoleGuest,
		},
		{
			name: "never synced",
			current: func(context.Context, string) (*domain.User, error) {
				return nil, domain.ErrUserNotFound
			},
			wantRole: domain.RoleGuest,
		},
		{
			name: "store failure",
			current: func(context.Context, string) (*domain.User, error) {
				return nil, errors.New("mongo down")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			c.Set(KeyWhopUserID, "user_1")

			var got domain.Role
			err := LoadRole(&stubIdentity{currentFn: tt.current})(func(c echo.Context) error {
				got, _ = c.Get(KeyRole).(domain.Role)
				return nil
			})(c)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.wantRole {
				t.Fatalf("expected %s, got %s", tt.wantRole, got)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	e := echo.New()
	handler := RateLimit(0.001, 2)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}
}
