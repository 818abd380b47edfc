package mapping

import (
	"github.com/anima-music/anima/api"
	"github.com/anima-music/anima/internal/music"
	"github.com/anima-music/anima/internal/types"
)

func AnalysisToAPI(analysis types.Analysis) api.AnalysisResponse {
	return api.AnalysisResponse{
		ID:            analysis.ID,
		PerformedAt:   analysis.PerformedAt,
		CaptureMethod: string(analysis.CaptureMethod),
		Status:        string(analysis.Status),
	}
}

func AnalysisHistoryEntryToAPI(entry types.AnalysisHistoryEntry) api.AnalysisHistoryEntryResponse {
	return api.AnalysisHistoryEntryResponse{
		ID:           entry.ID,
		PerformedAt:  entry.PerformedAt,
		Emotions:     entry.Emotions,
		PlaylistURL:  entry.PlaylistURL,
		PlaylistName: entry.PlaylistName,
		CoverURL:     entry.CoverURL,
	}
}

func AnalysisDetailToAPI(detail types.AnalysisDetail) api.AnalysisDetailResponse {
	return api.AnalysisDetailResponse{
		AnalysisHistoryEntryResponse: api.AnalysisHistoryEntryResponse{
			ID:           detail.ID,
			PerformedAt:  detail.PerformedAt,
			Emotions:     detail.Emotions,
			PlaylistURL:  detail.PlaylistURL,
			PlaylistName: detail.PlaylistName,
			CoverURL:     detail.CoverURL,
		},
		CaptureMethod: string(detail.CaptureMethod),
		Status:        string(detail.Status),
	}
}

func EmotionCountToAPI(count types.EmotionCount) api.EmotionCountResponse {
	return api.EmotionCountResponse{
		Emotion: count.Emotion,
		Count:   count.Count,
	}
}

func PlaylistToAPI(playlist music.Playlist, mood string) api.PlaylistResponse {
	return api.PlaylistResponse{
		ID:          playlist.ID,
		Name:        playlist.Name,
		URL:         playlist.URL,
		TotalTracks: playlist.TotalTracks,
		CoverURL:    playlist.CoverURL,
		Owner:       playlist.Owner,
		Fallback:    playlist.Fallback,
		Mood:        mood,
	}
}
