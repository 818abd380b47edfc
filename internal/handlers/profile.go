package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/anima-music/anima/api"
	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/db"
	"github.com/anima-music/anima/internal/mapping"
	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func ProfileRouter(r chi.Router) {
	r.Get("/", meHandler)
	r.Get("/stats", meStatsHandler)
}

func meHandler(w http.ResponseWriter, r *http.Request) {
	user := internalctx.GetUserAccount(r.Context())
	username := user.Email
	if at := strings.Index(username, "@"); at > 0 {
		username = username[:at]
	}
	if user.DisplayName != nil && *user.DisplayName != "" {
		username = *user.DisplayName
	}
	RespondJSON(w, api.MeResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    username,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	})
}

// statsPeriods are the supported values of the period query parameter.
var statsPeriods = map[string]time.Duration{
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"6m":  6 * 30 * 24 * time.Hour,
}

func meStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := internalctx.GetLogger(ctx)
	user := internalctx.GetUserAccount(ctx)

	periodParam := r.URL.Query().Get("period")
	if periodParam == "" {
		periodParam = "30d"
	}
	period, ok := statsPeriods[periodParam]
	if !ok {
		RespondError(w, http.StatusBadRequest, "Periodo inválido")
		return
	}

	// never look further back than the account exists
	since := time.Now().Add(-period)
	if since.Before(user.CreatedAt) {
		since = user.CreatedAt
	}

	total, err := db.CountCompletedAnalyses(ctx, user.ID, since)
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to count analyses", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	counts, err := db.GetDominantEmotionCounts(ctx, user.ID, since)
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to load emotion counts", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	lastAt, err := db.GetLastCompletedAnalysisAt(ctx, user.ID)
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to load last analysis time", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	RespondJSON(w, api.UserStatsResponse{
		TotalAnalyses:    total,
		DominantEmotions: mapping.List(counts, mapping.EmotionCountToAPI),
		LastAnalysisAt:   lastAt,
		PeriodDays:       int(time.Since(since).Hours() / 24),
	})
}
