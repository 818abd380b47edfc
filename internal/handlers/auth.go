package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/anima-music/anima/api"
	"github.com/anima-music/anima/internal/apierrors"
	"github.com/anima-music/anima/internal/auth"
	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/db"
	"github.com/anima-music/anima/internal/mapping"
	"github.com/anima-music/anima/internal/validation"
	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
)

func AuthRouter(r chi.Router) {
	r.Post("/register", authRegisterHandler)
	r.Post("/login", authLoginHandler)
	r.Group(func(r chi.Router) {
		// the reset flow is the classic brute-force target
		r.Use(httprate.LimitByIP(10, time.Minute))
		r.Post("/forgot-password", forgotPasswordHandler)
		r.Post("/verify-reset-code", verifyResetCodeHandler)
		r.Post("/reset-password", resetPasswordHandler)
	})
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(auth.JWTAuth()), auth.Authenticator)
		r.Post("/change-password", changePasswordHandler)
	})
}

func authRegisterHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := internalctx.GetLogger(ctx)

	request, err := JsonBody[api.AuthRegisterRequest](w, r)
	if err != nil {
		return
	}

	email := validation.NormalizeEmail(request.Email)
	if err := validation.ValidateEmail(email); err != nil {
		RespondError(w, http.StatusBadRequest, validation.Reason(err))
		return
	}
	if err := validation.ValidatePassword(request.Password); err != nil {
		RespondError(w, http.StatusBadRequest, validation.Reason(err))
		return
	}

	userID, err := db.CreateUserAccount(ctx, email, request.Password, request.DisplayName)
	if err != nil {
		if errors.Is(err, apierrors.ErrAlreadyExists) {
			RespondError(w, http.StatusConflict, "El correo ya está registrado")
		} else {
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Error("failed to create user", zap.Error(err))
			RespondError(w, http.StatusInternalServerError, "Error interno")
		}
		return
	}

	user, err := db.GetUserAccountByID(ctx, userID)
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to load created user", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	token, err := auth.GenerateSessionToken(*user)
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to generate token", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	RespondJSON(w, api.AuthLoginResponse{Token: token, User: mapping.UserAccountToAPI(*user)})
}

func authLoginHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := internalctx.GetLogger(ctx)

	request, err := JsonBody[api.AuthLoginRequest](w, r)
	if err != nil {
		return
	}

	email := validation.NormalizeEmail(request.Email)
	userID, err := db.VerifyLogin(ctx, email, request.Password)
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to verify login", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}
	if userID == nil {
		RespondError(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	if err := db.UpdateUserAccountLastLogin(ctx, *userID); err != nil {
		// login still succeeds, the timestamp is informational
		log.Warn("failed to update last login", zap.Error(err))
	}

	user, err := db.GetUserAccountByID(ctx, *userID)
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to load user", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	token, err := auth.GenerateSessionToken(*user)
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to generate token", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	RespondJSON(w, api.AuthLoginResponse{Token: token, User: mapping.UserAccountToAPI(*user)})
}
