package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anima-music/anima/internal/apierrors"
	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/db"
	"github.com/anima-music/anima/internal/mapping"
	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	historyDefaultLimit = 20
	historyMaxLimit     = 100
)

func HistoryRouter(r chi.Router) {
	r.Get("/", historyHandler)
	r.Delete("/{analysisId}", historyDeleteHandler)
}

func historyHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := internalctx.GetLogger(ctx)
	user := internalctx.GetUserAccount(ctx)

	limit := historyDefaultLimit
	if param := r.URL.Query().Get("limit"); param != "" {
		if parsed, err := strconv.Atoi(param); err == nil && parsed > 0 {
			limit = min(parsed, historyMaxLimit)
		}
	}
	offset := 0
	if param := r.URL.Query().Get("offset"); param != "" {
		if parsed, err := strconv.Atoi(param); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	entries, err := db.GetAnalysisHistory(ctx, user.ID, limit, offset)
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to load history", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	RespondJSON(w, mapping.List(entries, mapping.AnalysisHistoryEntryToAPI))
}

func historyDeleteHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := internalctx.GetLogger(ctx)
	user := internalctx.GetUserAccount(ctx)

	analysisID, err := uuid.Parse(chi.URLParam(r, "analysisId"))
	if err != nil {
		RespondError(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	if err := db.DeleteAnalysis(ctx, analysisID, user.ID); err != nil {
		if errors.Is(err, apierrors.ErrNotFound) {
			RespondError(w, http.StatusNotFound, "No encontrado")
		} else {
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Error("failed to delete analysis", zap.Error(err))
			RespondError(w, http.StatusInternalServerError, "Error interno")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
