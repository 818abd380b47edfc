package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anima-music/anima/internal/apierrors"
	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/env"
	"github.com/anima-music/anima/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func CreateAnalysis(ctx context.Context, analysis *types.Analysis) error {
	db := internalctx.GetDb(ctx)
	rows, err := db.Query(ctx,
		`WITH inserted AS (
			INSERT INTO Analysis (user_account_id, capture_method)
			VALUES (@userAccountId, @captureMethod)
			RETURNING *
		)
		SELECT id, user_account_id, capture_method, status, performed_at FROM inserted`,
		pgx.NamedArgs{
			"userAccountId": analysis.UserAccountID,
			"captureMethod": analysis.CaptureMethod,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to insert Analysis: %w", err)
	}
	result, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[types.Analysis])
	if err != nil {
		if pgErr := new(pgconn.PgError); errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return fmt.Errorf("%w: %w", apierrors.ErrConflict, err)
		}
		return fmt.Errorf("failed to collect Analysis: %w", err)
	}
	*analysis = result
	return nil
}

func AnalysisBelongsToUser(ctx context.Context, analysisID, userID uuid.UUID) (bool, error) {
	db := internalctx.GetDb(ctx)
	var owned bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM Analysis WHERE id = @analysisId AND user_account_id = @userId
		)`,
		pgx.NamedArgs{"analysisId": analysisID, "userId": userID},
	).Scan(&owned)
	if err != nil {
		return false, fmt.Errorf("failed to check Analysis ownership: %w", err)
	}
	return owned, nil
}

// CreateAnalysisEmotions stores the detected emotions and marks the analysis
// completed. Returns the number of inserted rows.
func CreateAnalysisEmotions(ctx context.Context, analysisID uuid.UUID, emotions []types.EmotionScore) (int, error) {
	db := internalctx.GetDb(ctx)
	for _, emotion := range emotions {
		_, err := db.Exec(ctx,
			`INSERT INTO AnalysisEmotion (analysis_id, name, confidence)
             VALUES (@analysisId, @name, @confidence)`,
			pgx.NamedArgs{
				"analysisId": analysisID,
				"name":       emotion.Name,
				"confidence": emotion.Score,
			},
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert AnalysisEmotion: %w", err)
		}
	}
	_, err := db.Exec(ctx,
		`UPDATE Analysis SET status = @status WHERE id = @analysisId`,
		pgx.NamedArgs{"analysisId": analysisID, "status": types.AnalysisStatusCompleted},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to complete Analysis: %w", err)
	}
	return len(emotions), nil
}

func CreateAnalysisPlaylist(ctx context.Context, playlist *types.AnalysisPlaylist) error {
	db := internalctx.GetDb(ctx)
	rows, err := db.Query(ctx,
		`WITH inserted AS (
			INSERT INTO AnalysisPlaylist
				(analysis_id, spotify_playlist_id, spotify_playlist_url, playlist_name,
				 total_tracks, cover_image_url, owner_display)
			VALUES
				(@analysisId, @spotifyPlaylistId, @spotifyPlaylistUrl, @playlistName,
				 @totalTracks, @coverImageUrl, @ownerDisplay)
			RETURNING *
		)
		SELECT id, created_at, analysis_id, spotify_playlist_id, spotify_playlist_url,
			playlist_name, total_tracks, cover_image_url, owner_display
		FROM inserted`,
		pgx.NamedArgs{
			"analysisId":         playlist.AnalysisID,
			"spotifyPlaylistId":  playlist.SpotifyPlaylistID,
			"spotifyPlaylistUrl": playlist.SpotifyPlaylistURL,
			"playlistName":       playlist.PlaylistName,
			"totalTracks":        playlist.TotalTracks,
			"coverImageUrl":      playlist.CoverImageURL,
			"ownerDisplay":       playlist.OwnerDisplay,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to insert AnalysisPlaylist: %w", err)
	}
	result, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[types.AnalysisPlaylist])
	if err != nil {
		if pgErr := new(pgconn.PgError); errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return fmt.Errorf("%w: %w", apierrors.ErrConflict, err)
		}
		return fmt.Errorf("failed to collect AnalysisPlaylist: %w", err)
	}
	*playlist = result
	return nil
}

const analysisHistoryQuery = `
	WITH emo AS (
		SELECT e.analysis_id,
			jsonb_agg(
				jsonb_build_object('name', e.name, 'score', e.confidence)
				ORDER BY e.confidence DESC
			) AS emotions
		FROM AnalysisEmotion e
		GROUP BY e.analysis_id
	)
	SELECT
		a.id,
		a.performed_at,
		coalesce(emo.emotions, '[]'::jsonb) AS emotions,
		coalesce(
			p.spotify_playlist_url,
			CASE WHEN p.spotify_playlist_id IS NOT NULL
				THEN 'https://open.spotify.com/playlist/' || p.spotify_playlist_id
				ELSE NULL END
		) AS playlist_url,
		p.playlist_name,
		p.cover_image_url AS cover_url
	FROM Analysis a
	LEFT JOIN emo ON emo.analysis_id = a.id
	LEFT JOIN AnalysisPlaylist p ON p.analysis_id = a.id
	WHERE a.user_account_id = @userId
		AND a.status = @status
	ORDER BY a.performed_at DESC`

func GetAnalysisHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]types.AnalysisHistoryEntry, error) {
	db := internalctx.GetDb(ctx)
	rows, err := db.Query(ctx,
		analysisHistoryQuery+`
		LIMIT @limit OFFSET @offset`,
		pgx.NamedArgs{
			"userId": userID,
			"status": types.AnalysisStatusCompleted,
			"limit":  limit,
			"offset": offset,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis history: %w", err)
	}
	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[types.AnalysisHistoryEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to collect analysis history: %w", err)
	}
	return result, nil
}

func GetAnalysisDetail(ctx context.Context, analysisID uuid.UUID) (*types.AnalysisDetail, error) {
	db := internalctx.GetDb(ctx)
	rows, err := db.Query(ctx,
		`WITH emo AS (
			SELECT e.analysis_id,
				jsonb_agg(
					jsonb_build_object('name', e.name, 'score', e.confidence)
					ORDER BY e.confidence DESC
				) AS emotions
			FROM AnalysisEmotion e
			WHERE e.analysis_id = @analysisId
			GROUP BY e.analysis_id
		)
		SELECT
			a.id,
			a.capture_method,
			a.status,
			a.performed_at,
			coalesce(emo.emotions, '[]'::jsonb) AS emotions,
			coalesce(
				p.spotify_playlist_url,
				CASE WHEN p.spotify_playlist_id IS NOT NULL
					THEN 'https://open.spotify.com/playlist/' || p.spotify_playlist_id
					ELSE NULL END
			) AS playlist_url,
			p.playlist_name,
			p.cover_image_url AS cover_url
		FROM Analysis a
		LEFT JOIN emo ON emo.analysis_id = a.id
		LEFT JOIN AnalysisPlaylist p ON p.analysis_id = a.id
		WHERE a.id = @analysisId`,
		pgx.NamedArgs{"analysisId": analysisID},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis detail: %w", err)
	}
	result, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[types.AnalysisDetail])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to collect analysis detail: %w", err)
	}
	return &result, nil
}

func GetAnalysesByUserAccount(ctx context.Context, userID uuid.UUID) ([]types.Analysis, error) {
	db := internalctx.GetDb(ctx)
	rows, err := db.Query(ctx,
		`SELECT id, user_account_id, capture_method, status, performed_at
         FROM Analysis
         WHERE user_account_id = @userId
         ORDER BY performed_at DESC`,
		pgx.NamedArgs{"userId": userID},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query Analysis: %w", err)
	}
	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[types.Analysis])
	if err != nil {
		return nil, fmt.Errorf("failed to collect Analysis: %w", err)
	}
	return result, nil
}

func CountCompletedAnalyses(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	db := internalctx.GetDb(ctx)
	var count int
	err := db.QueryRow(ctx,
		`SELECT count(*) FROM Analysis
         WHERE user_account_id = @userId AND status = @status AND performed_at >= @since`,
		pgx.NamedArgs{"userId": userID, "status": types.AnalysisStatusCompleted, "since": since},
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return count, nil
}

// DeleteAnalysis removes an analysis together with its emotions and playlist,
// which cascade from the parent row. The single statement is scoped to the
// owner, so no row of another user is ever touched.
func DeleteAnalysis(ctx context.Context, analysisID, userID uuid.UUID) error {
	db := internalctx.GetDb(ctx)
	cmd, err := db.Exec(ctx,
		`DELETE FROM Analysis WHERE id = @analysisId AND user_account_id = @userId`,
		pgx.NamedArgs{"analysisId": analysisID, "userId": userID},
	)
	if err != nil {
		return fmt.Errorf("failed to delete Analysis: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return apierrors.ErrNotFound
	}
	return nil
}

// GetDominantEmotionCounts counts, per emotion, the analyses where that emotion
// had the highest confidence, for completed analyses performed at or after since.
func GetDominantEmotionCounts(ctx context.Context, userID uuid.UUID, since time.Time) ([]types.EmotionCount, error) {
	db := internalctx.GetDb(ctx)
	rows, err := db.Query(ctx,
		`WITH top_emo AS (
			SELECT e.analysis_id, e.name,
				row_number() OVER (PARTITION BY e.analysis_id ORDER BY e.confidence DESC) AS rn
			FROM AnalysisEmotion e
			JOIN Analysis a ON a.id = e.analysis_id
			WHERE a.user_account_id = @userId
				AND a.status = @status
				AND a.performed_at >= @since
		)
		SELECT name AS emotion, count(*)::int AS count
		FROM top_emo
		WHERE rn = 1
		GROUP BY name
		ORDER BY count DESC`,
		pgx.NamedArgs{
			"userId": userID,
			"status": types.AnalysisStatusCompleted,
			"since":  since,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query emotion counts: %w", err)
	}
	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[types.EmotionCount])
	if err != nil {
		return nil, fmt.Errorf("failed to collect emotion counts: %w", err)
	}
	return result, nil
}

// GetLastCompletedAnalysisAt returns the time of the user's latest completed
// analysis, or nil if there is none.
func GetLastCompletedAnalysisAt(ctx context.Context, userID uuid.UUID) (*time.Time, error) {
	db := internalctx.GetDb(ctx)
	var last *time.Time
	err := db.QueryRow(ctx,
		`SELECT max(performed_at) FROM Analysis
         WHERE user_account_id = @userId AND status = @status`,
		pgx.NamedArgs{"userId": userID, "status": types.AnalysisStatusCompleted},
	).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("failed to query last analysis: %w", err)
	}
	return last, nil
}

// CleanupStaleAnalyses deletes analyses that never completed and are older than
// [env.StaleAnalysisMaxAge]. Completed analyses are kept forever.
func CleanupStaleAnalyses(ctx context.Context) (int64, error) {
	db := internalctx.GetDb(ctx)
	cmd, err := db.Exec(ctx,
		`DELETE FROM Analysis
         WHERE status <> @completed
			AND current_timestamp - performed_at > @maxAge`,
		pgx.NamedArgs{
			"completed": types.AnalysisStatusCompleted,
			"maxAge":    env.StaleAnalysisMaxAge(),
		},
	)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
