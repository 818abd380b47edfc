package api

import (
	"time"

	"github.com/anima-music/anima/internal/types"
	"github.com/google/uuid"
)

type CreateAnalysisRequest struct {
	CaptureMethod string `json:"captureMethod"`
}

type AnalysisResponse struct {
	ID            uuid.UUID `json:"id"`
	PerformedAt   time.Time `json:"performedAt"`
	CaptureMethod string    `json:"captureMethod"`
	Status        string    `json:"status"`
}

type SaveEmotionsRequest struct {
	Emotions []types.EmotionScore `json:"emotions"`
}

type AttachPlaylistRequest struct {
	PlaylistID  string `json:"playlistId"`
	PlaylistURL string `json:"playlistUrl"`
	Name        string `json:"name"`
	TotalTracks int    `json:"totalTracks"`
	CoverURL    string `json:"coverUrl"`
	Owner       string `json:"owner"`
}

type AnalysisHistoryEntryResponse struct {
	ID           uuid.UUID            `json:"id"`
	PerformedAt  time.Time            `json:"performedAt"`
	Emotions     []types.EmotionScore `json:"emotions"`
	PlaylistURL  *string              `json:"playlistUrl,omitempty"`
	PlaylistName *string              `json:"playlistName,omitempty"`
	CoverURL     *string              `json:"coverUrl,omitempty"`
}

type AnalysisDetailResponse struct {
	AnalysisHistoryEntryResponse
	CaptureMethod string `json:"captureMethod"`
	Status        string `json:"status"`
}
