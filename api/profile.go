package api

import (
	"time"

	"github.com/google/uuid"
)

// MeResponse is the profile summary. Username falls back to the part of the
// email before the @ when no display name is set.
type MeResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

type UserStatsResponse struct {
	TotalAnalyses    int                    `json:"totalAnalyses"`
	DominantEmotions []EmotionCountResponse `json:"dominantEmotions"`
	LastAnalysisAt   *time.Time             `json:"lastAnalysisAt,omitempty"`
	PeriodDays       int                    `json:"periodDays"`
}

type EmotionCountResponse struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
}
