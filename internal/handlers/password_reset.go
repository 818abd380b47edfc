package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/anima-music/anima/api"
	"github.com/anima-music/anima/internal/apierrors"
	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/db"
	"github.com/anima-music/anima/internal/env"
	"github.com/anima-music/anima/internal/mail"
	"github.com/anima-music/anima/internal/security"
	"github.com/anima-music/anima/internal/types"
	"github.com/anima-music/anima/internal/validation"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// forgotPasswordHandler issues a fresh reset code for the account, superseding
// any outstanding one, and mails it. Whether an unknown address is revealed as
// 404 or hidden behind a generic success is controlled by
// RESET_REVEAL_UNKNOWN_ACCOUNT, hidden being the default.
func forgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := internalctx.GetLogger(ctx)

	request, err := JsonBody[api.ForgotPasswordRequest](w, r)
	if err != nil {
		return
	}

	email := validation.NormalizeEmail(request.Email)
	if err := validation.ValidateEmail(email); err != nil {
		RespondError(w, http.StatusBadRequest, validation.Reason(err))
		return
	}

	exists, err := db.ExistsUserAccountWithEmail(ctx, email)
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to check account existence", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}
	if !exists {
		if env.ResetRevealUnknownAccount() {
			RespondError(w, http.StatusNotFound, "No existe una cuenta con ese correo")
		} else {
			RespondJSON(w, api.SuccessResponse{Success: true})
		}
		return
	}

	code, err := security.GenerateResetCode()
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to generate reset code", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	err = db.RunTx(ctx, func(ctx context.Context) error {
		if _, err := db.SupersedePasswordResetCodes(ctx, email); err != nil {
			return err
		}
		_, err := db.CreatePasswordResetCode(ctx, email, code, time.Now().Add(env.ResetCodeTTL()))
		return err
	})
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to store reset code", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	resetMail, err := mail.NewPasswordResetMail(email, code, env.ResetCodeTTL())
	if err == nil {
		err = internalctx.GetMailer(ctx).Send(ctx, resetMail)
	}
	if err != nil {
		// the record is kept, the user can retry via forgot-password
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to send reset code mail", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "No se pudo enviar el código")
		return
	}

	RespondJSON(w, api.SuccessResponse{Success: true})
}

func verifyResetCodeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := internalctx.GetLogger(ctx)

	request, err := JsonBody[api.VerifyResetCodeRequest](w, r)
	if err != nil {
		return
	}

	email := validation.NormalizeEmail(request.Email)
	if err := validation.ValidateEmail(email); err != nil {
		RespondError(w, http.StatusBadRequest, validation.Reason(err))
		return
	}
	if err := validation.ValidateResetCode(request.Code); err != nil {
		RespondError(w, http.StatusBadRequest, validation.Reason(err))
		return
	}

	resetCode, err := db.GetActivePasswordResetCode(ctx, email)
	if errors.Is(err, apierrors.ErrNotFound) {
		RespondError(w, http.StatusBadRequest, "Código expirado o no solicitado")
		return
	} else if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to load reset code", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	if resetCode.Code != request.Code {
		attempts, err := db.IncrementPasswordResetAttempts(ctx, resetCode.ID)
		if err != nil {
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Error("failed to record failed attempt", zap.Error(err))
			RespondError(w, http.StatusInternalServerError, "Error interno")
			return
		}
		if maxAttempts := env.ResetCodeMaxAttempts(); maxAttempts > 0 && attempts >= maxAttempts {
			if err := db.InvalidatePasswordResetCode(ctx, resetCode.ID); err != nil &&
				!errors.Is(err, apierrors.ErrAlreadyConsumed) {
				sentry.GetHubFromContext(ctx).CaptureException(err)
				log.Error("failed to invalidate reset code", zap.Error(err))
			}
			RespondError(w, http.StatusBadRequest, "Demasiados intentos. Solicita un nuevo código")
			return
		}
		RespondError(w, http.StatusBadRequest, "Código incorrecto")
		return
	}

	resetToken := uuid.New()
	if err := db.ConsumePasswordResetCode(ctx, resetCode.ID, resetToken); err != nil {
		if errors.Is(err, apierrors.ErrAlreadyConsumed) {
			RespondError(w, http.StatusBadRequest, "Código expirado o no solicitado")
		} else {
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Error("failed to consume reset code", zap.Error(err))
			RespondError(w, http.StatusInternalServerError, "Error interno")
		}
		return
	}

	RespondJSON(w, api.VerifyResetCodeResponse{Success: true, ResetToken: resetToken.String()})
}

// resetPasswordHandler spends a reset token obtained from verify-reset-code.
// The account is resolved from the token's record, tokens are single-use.
func resetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := internalctx.GetLogger(ctx)

	request, err := JsonBody[api.ResetPasswordRequest](w, r)
	if err != nil {
		return
	}

	if err := validation.ValidatePassword(request.NewPassword); err != nil {
		RespondError(w, http.StatusBadRequest, validation.Reason(err))
		return
	}

	resetToken, err := uuid.Parse(request.ResetToken)
	if err != nil {
		RespondError(w, http.StatusBadRequest, "Token inválido")
		return
	}

	resetCode, err := db.GetPasswordResetCodeByToken(ctx, resetToken)
	if errors.Is(err, apierrors.ErrNotFound) {
		RespondError(w, http.StatusBadRequest, "Token inválido")
		return
	} else if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to load reset token", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	err = db.RunTx(ctx, func(ctx context.Context) error {
		if err := db.ClearPasswordResetToken(ctx, resetCode.ID); err != nil {
			return err
		}
		return db.UpdateUserAccountPassword(ctx, resetCode.Email, request.NewPassword)
	})
	if err != nil {
		if errors.Is(err, apierrors.ErrAlreadyConsumed) {
			RespondError(w, http.StatusBadRequest, "Token inválido")
		} else if errors.Is(err, apierrors.ErrNotFound) {
			RespondError(w, http.StatusNotFound, "No existe una cuenta con ese correo")
		} else {
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Error("failed to reset password", zap.Error(err))
			RespondError(w, http.StatusInternalServerError, "Error interno")
		}
		return
	}

	RespondJSON(w, api.SuccessResponse{Success: true})
}

func changePasswordHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := internalctx.GetLogger(ctx)
	user := internalctx.GetUserAccount(ctx)

	request, err := JsonBody[api.ChangePasswordRequest](w, r)
	if err != nil {
		return
	}

	if err := validation.ValidatePassword(request.NewPassword); err != nil {
		RespondError(w, http.StatusBadRequest, validation.Reason(err))
		return
	}
	if user.Status != types.UserAccountStatusActive {
		RespondError(w, http.StatusForbidden, "Cuenta deshabilitada")
		return
	}

	matches, err := db.UserAccountPasswordEquals(ctx, user.Email, request.CurrentPassword)
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to verify current password", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}
	if !matches {
		RespondError(w, http.StatusBadRequest, "Contraseña actual incorrecta")
		return
	}
	// the current password is verified at this point, so comparing the request
	// fields is the same as comparing against the stored credential
	if request.NewPassword == request.CurrentPassword {
		RespondError(w, http.StatusBadRequest, "La nueva contraseña no puede ser igual a la actual")
		return
	}

	if err := db.UpdateUserAccountPassword(ctx, user.Email, request.NewPassword); err != nil {
		if errors.Is(err, apierrors.ErrNotFound) {
			RespondError(w, http.StatusNotFound, "No existe una cuenta con ese correo")
		} else {
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Error("failed to change password", zap.Error(err))
			RespondError(w, http.StatusInternalServerError, "Error interno")
		}
		return
	}

	RespondJSON(w, api.SuccessResponse{Success: true})
}
