package middleware

import (
	"context"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/herbalroots/wellness-hub/internal/core/ports"
	"github.com/herbalroots/wellness-hub/internal/pkg/metrics"
)

// Echo context keys set by this package.
const (
	KeyWhopUserID = "whop_user_id"
	KeyRole       = "role"
)

const missingIdentityMsg = "identity required, open the app from the Whop hub"

type userIDKey struct{}

// WithUserID stores the verified platform user id on ctx.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFrom returns the id stored by WithUserID.
func UserIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// Auth verifies the Whop user token carried in header. Requests without the
// header are rejected before the verifier is consulted.
func Auth(verifier ports.TokenVerifier, header string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			token := strings.TrimSpace(req.Header.Get(header))
			if token == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, missingIdentityMsg)
			}

			userID, err := verifier.Verify(req.Context(), req.Header)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				log.Debug().Err(err).Str("token_fp", fingerprint(token)).Msg("token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid identity token")
			}
			if userID == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid identity token")
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(KeyWhopUserID, userID)
			c.SetRequest(req.WithContext(WithUserID(req.Context(), userID)))

			return next(c)
		}
	}
}

// fingerprint is a short, non-reversible tag for correlating a token in logs.
func fingerprint(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:6])
}

var errNoIdentity = errors.New("no verified identity on context")
