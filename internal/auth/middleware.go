package auth

import (
	"errors"
	"net/http"

	"github.com/anima-music/anima/internal/apierrors"
	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/db"
	"github.com/anima-music/anima/internal/types"
	"github.com/getsentry/sentry-go"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authenticator resolves the verified token to a user account and stores it in
// the request context. It runs after jwtauth.Verifier.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		token, _, err := jwtauth.FromContext(ctx)
		if err != nil || token == nil {
			http.Error(w, "No autorizado", http.StatusUnauthorized)
			return
		}
		userID, err := uuid.Parse(token.Subject())
		if err != nil {
			http.Error(w, "No autorizado", http.StatusUnauthorized)
			return
		}
		user, err := db.GetUserAccountByID(ctx, userID)
		if errors.Is(err, apierrors.ErrNotFound) {
			http.Error(w, "No autorizado", http.StatusUnauthorized)
			return
		} else if err != nil {
			internalctx.GetLogger(ctx).Error("failed to load user for token", zap.Error(err))
			sentry.GetHubFromContext(ctx).CaptureException(err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if user.Status != types.UserAccountStatusActive {
			http.Error(w, "Cuenta deshabilitada", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(internalctx.WithUserAccount(ctx, user)))
	})
}
