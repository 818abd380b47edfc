package handlers

import (
	"net/http"

	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/mapping"
	"github.com/anima-music/anima/internal/music"
	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func PlaylistsRouter(musicClient *music.Client) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/playlists", playlistsHandler(musicClient))
	}
}

// playlistsHandler answers GET /spotify/playlists?mood=&pref=. An explicit
// pref query takes precedence over the mood-derived searches.
func playlistsHandler(musicClient *music.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := internalctx.GetLogger(ctx)

		mood := r.URL.Query().Get("mood")
		if mood == "" {
			RespondError(w, http.StatusBadRequest, "Falta el parámetro mood")
			return
		}

		var playlist *music.Playlist
		var err error
		if pref := r.URL.Query().Get("pref"); pref != "" {
			playlist, err = musicClient.PlaylistForQuery(ctx, pref)
		}
		if err == nil && playlist == nil {
			playlist, err = musicClient.PlaylistForMood(ctx, mood)
		}
		if err != nil {
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Error("failed to find playlist", zap.Error(err))
			RespondError(w, http.StatusBadGateway, "No se pudo obtener una playlist")
			return
		}

		RespondJSON(w, mapping.PlaylistToAPI(*playlist, mood))
	}
}
