package types

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type CaptureMethod string

const (
	CaptureMethodCamera CaptureMethod = "camara"
	CaptureMethodUpload CaptureMethod = "subida_imagen"
)

// ParseCaptureMethod accepts the canonical values plus the aliases various
// frontend versions have been sending.
func ParseCaptureMethod(value string) (CaptureMethod, error) {
	switch value {
	case string(CaptureMethodCamera), "webcam", "camera":
		return CaptureMethodCamera, nil
	case string(CaptureMethodUpload), "upload", "file", "archivo", "imagen", "image", "subida":
		return CaptureMethodUpload, nil
	default:
		return "", errors.New("invalid capture method")
	}
}

type AnalysisStatus string

const (
	AnalysisStatusPending   AnalysisStatus = "pendiente"
	AnalysisStatusCompleted AnalysisStatus = "completado"
)

type Analysis struct {
	ID            uuid.UUID      `db:"id"`
	UserAccountID uuid.UUID      `db:"user_account_id"`
	CaptureMethod CaptureMethod  `db:"capture_method"`
	Status        AnalysisStatus `db:"status"`
	PerformedAt   time.Time      `db:"performed_at"`
}

type AnalysisEmotion struct {
	ID         uuid.UUID `db:"id"`
	AnalysisID uuid.UUID `db:"analysis_id"`
	Name       string    `db:"name"`
	Confidence float64   `db:"confidence"`
}

type AnalysisPlaylist struct {
	ID                 uuid.UUID `db:"id"`
	CreatedAt          time.Time `db:"created_at"`
	AnalysisID         uuid.UUID `db:"analysis_id"`
	SpotifyPlaylistID  *string   `db:"spotify_playlist_id"`
	SpotifyPlaylistURL *string   `db:"spotify_playlist_url"`
	PlaylistName       *string   `db:"playlist_name"`
	TotalTracks        int       `db:"total_tracks"`
	CoverImageURL      *string   `db:"cover_image_url"`
	OwnerDisplay       *string   `db:"owner_display"`
}

// AnalysisHistoryEntry is the denormalized row the history endpoints return:
// one analysis with its emotions (highest confidence first) and the playlist
// that was generated for it, if any.
type AnalysisHistoryEntry struct {
	ID           uuid.UUID      `db:"id"`
	PerformedAt  time.Time      `db:"performed_at"`
	Emotions     []EmotionScore `db:"emotions"`
	PlaylistURL  *string        `db:"playlist_url"`
	PlaylistName *string        `db:"playlist_name"`
	CoverURL     *string        `db:"cover_url"`
}

// AnalysisDetail is the full view of a single analysis.
type AnalysisDetail struct {
	ID            uuid.UUID      `db:"id"`
	CaptureMethod CaptureMethod  `db:"capture_method"`
	Status        AnalysisStatus `db:"status"`
	PerformedAt   time.Time      `db:"performed_at"`
	Emotions      []EmotionScore `db:"emotions"`
	PlaylistURL   *string        `db:"playlist_url"`
	PlaylistName  *string        `db:"playlist_name"`
	CoverURL      *string        `db:"cover_url"`
}

type EmotionScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type EmotionCount struct {
	Emotion string `db:"emotion"`
	Count   int    `db:"count"`
}
