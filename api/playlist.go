package api

type PlaylistResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	TotalTracks int    `json:"totalTracks"`
	CoverURL    string `json:"coverUrl,omitempty"`
	Owner       string `json:"owner,omitempty"`
	Fallback    bool   `json:"fallback"`
	Mood        string `json:"mood"`
}
