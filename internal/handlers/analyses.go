package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/anima-music/anima/api"
	"github.com/anima-music/anima/internal/apierrors"
	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/db"
	"github.com/anima-music/anima/internal/mapping"
	"github.com/anima-music/anima/internal/types"
	"github.com/anima-music/anima/internal/util"
	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func AnalysesRouter(r chi.Router) {
	r.Post("/", createAnalysisHandler)
	r.Get("/", listAnalysesHandler)
	r.Route("/{analysisId}", func(r chi.Router) {
		r.Get("/", getAnalysisHandler)
		r.Post("/emotions", saveEmotionsHandler)
		r.Post("/playlist", attachPlaylistHandler)
	})
}

func createAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := internalctx.GetLogger(ctx)
	user := internalctx.GetUserAccount(ctx)

	request, err := JsonBody[api.CreateAnalysisRequest](w, r)
	if err != nil {
		return
	}

	captureMethod, err := types.ParseCaptureMethod(request.CaptureMethod)
	if err != nil {
		RespondError(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	analysis := types.Analysis{UserAccountID: user.ID, CaptureMethod: captureMethod}
	if err := db.CreateAnalysis(ctx, &analysis); err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to create analysis", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	RespondJSON(w, mapping.AnalysisToAPI(analysis))
}

func listAnalysesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := internalctx.GetLogger(ctx)
	user := internalctx.GetUserAccount(ctx)

	analyses, err := db.GetAnalysesByUserAccount(ctx, user.ID)
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to list analyses", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	RespondJSON(w, mapping.List(analyses, mapping.AnalysisToAPI))
}

func getAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := internalctx.GetLogger(ctx)
	user := internalctx.GetUserAccount(ctx)

	analysisID, ok := ownedAnalysisID(w, r, user.ID)
	if !ok {
		return
	}

	detail, err := db.GetAnalysisDetail(ctx, analysisID)
	if err != nil {
		if errors.Is(err, apierrors.ErrNotFound) {
			RespondError(w, http.StatusNotFound, "No encontrado")
		} else {
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Error("failed to load analysis", zap.Error(err))
			RespondError(w, http.StatusInternalServerError, "Error interno")
		}
		return
	}

	RespondJSON(w, mapping.AnalysisDetailToAPI(*detail))
}

func saveEmotionsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := internalctx.GetLogger(ctx)
	user := internalctx.GetUserAccount(ctx)

	analysisID, ok := ownedAnalysisID(w, r, user.ID)
	if !ok {
		return
	}

	request, err := JsonBody[api.SaveEmotionsRequest](w, r)
	if err != nil {
		return
	}
	if len(request.Emotions) == 0 {
		RespondError(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	err = db.RunTx(ctx, func(ctx context.Context) error {
		_, err := db.CreateAnalysisEmotions(ctx, analysisID, request.Emotions)
		return err
	})
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to save emotions", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	RespondJSON(w, api.SuccessResponse{Success: true})
}

func attachPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := internalctx.GetLogger(ctx)
	user := internalctx.GetUserAccount(ctx)

	analysisID, ok := ownedAnalysisID(w, r, user.ID)
	if !ok {
		return
	}

	request, err := JsonBody[api.AttachPlaylistRequest](w, r)
	if err != nil {
		return
	}
	if request.PlaylistID == "" && request.PlaylistURL == "" {
		RespondError(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	playlist := types.AnalysisPlaylist{
		AnalysisID:         analysisID,
		SpotifyPlaylistID:  ptrIfNotEmpty(request.PlaylistID),
		SpotifyPlaylistURL: ptrIfNotEmpty(request.PlaylistURL),
		PlaylistName:       ptrIfNotEmpty(request.Name),
		TotalTracks:        request.TotalTracks,
		CoverImageURL:      ptrIfNotEmpty(request.CoverURL),
		OwnerDisplay:       ptrIfNotEmpty(request.Owner),
	}
	if err := db.CreateAnalysisPlaylist(ctx, &playlist); err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		log.Error("failed to attach playlist", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return
	}

	RespondJSON(w, api.SuccessResponse{Success: true})
}

// ownedAnalysisID parses the analysis URL parameter and verifies ownership,
// answering 400/404/500 itself when something is off.
func ownedAnalysisID(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (uuid.UUID, bool) {
	ctx := r.Context()
	analysisID, err := uuid.Parse(chi.URLParam(r, "analysisId"))
	if err != nil {
		RespondError(w, http.StatusBadRequest, "Datos inválidos")
		return uuid.Nil, false
	}
	owned, err := db.AnalysisBelongsToUser(ctx, analysisID, userID)
	if err != nil {
		sentry.GetHubFromContext(ctx).CaptureException(err)
		internalctx.GetLogger(ctx).Error("failed to check analysis ownership", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "Error interno")
		return uuid.Nil, false
	}
	if !owned {
		RespondError(w, http.StatusNotFound, "No encontrado")
		return uuid.Nil, false
	}
	return analysisID, true
}

func ptrIfNotEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return util.PtrTo(value)
}
