package handlers

import (
	"net/http"

	"github.com/anima-music/anima/internal/auth"
	"github.com/anima-music/anima/internal/detection"
	"github.com/anima-music/anima/internal/mail"
	"github.com/anima-music/anima/internal/middleware"
	"github.com/anima-music/anima/internal/music"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func NewRouter(
	logger *zap.Logger,
	pool *pgxpool.Pool,
	mailer mail.Mailer,
	musicClient *music.Client,
	detector *detection.Client,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		middleware.LoggerCtxMiddleware(logger),
		middleware.LoggingMiddleware,
		chimiddleware.Recoverer,
		sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle,
		middleware.DbCtxMiddleware(pool),
		middleware.MailerCtxMiddleware(mailer),
	)

	r.Route("/auth", AuthRouter)
	r.Route("/api", func(r chi.Router) {
		r.Use(jwtauth.Verifier(auth.JWTAuth()), auth.Authenticator)
		r.Route("/me", ProfileRouter)
		r.Route("/history", HistoryRouter)
		r.Route("/analyses", AnalysesRouter)
		r.Route("/detection", DetectionRouter(detector))
		r.Route("/spotify", PlaylistsRouter(musicClient))
	})

	r.Get("/healthz", healthzHandler)
	r.Get("/healthz/db", healthzDbHandler(pool))

	return r
}
