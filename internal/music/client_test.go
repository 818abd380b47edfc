package music

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

func newTestClient(tokenEndpoint, searchEndpoint string) *Client {
	return &Client{
		clientID:          "client-id",
		clientSecret:      "client-secret",
		market:            "US",
		fallbackOverrides: map[string]string{},
		tokenEndpoint:     tokenEndpoint,
		searchEndpoint:    searchEndpoint,
		httpClient:        &http.Client{},
		logger:            zap.NewNop(),
	}
}

func tokenHandler(hits *int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*hits++
		_ = json.NewEncoder(w).Encode(tokenResponse{AccessToken: "test-token", ExpiresIn: 3600})
	}
}

func searchResultBody(ids ...string) searchResponse {
	var result searchResponse
	for _, id := range ids {
		item := &playlistItem{ID: id, Name: "Playlist " + id}
		item.ExternalUrls.Spotify = "https://open.spotify.com/playlist/" + id
		item.Tracks.Total = 42
		result.Playlists.Items = append(result.Playlists.Items, item)
	}
	// the real API pads pages with nulls
	result.Playlists.Items = append(result.Playlists.Items, nil)
	return result
}

func TestPlaylistForMood(t *testing.T) {
	g := NewWithT(t)

	tokenHits := 0
	tokenSrv := httptest.NewServer(tokenHandler(&tokenHits))
	defer tokenSrv.Close()
	searchSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.Expect(r.Header.Get("Authorization")).To(Equal("Bearer test-token"))
		g.Expect(r.URL.Query().Get("type")).To(Equal("playlist"))
		_ = json.NewEncoder(w).Encode(searchResultBody("abc123"))
	}))
	defer searchSrv.Close()

	client := newTestClient(tokenSrv.URL, searchSrv.URL)
	playlist, err := client.PlaylistForMood(context.Background(), "happy")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(playlist.ID).To(Equal("abc123"))
	g.Expect(playlist.URL).To(Equal("https://open.spotify.com/playlist/abc123"))
	g.Expect(playlist.TotalTracks).To(Equal(42))
	g.Expect(playlist.Fallback).To(BeFalse())
}

func TestPlaylistForMood_TokenIsCached(t *testing.T) {
	g := NewWithT(t)

	tokenHits := 0
	tokenSrv := httptest.NewServer(tokenHandler(&tokenHits))
	defer tokenSrv.Close()
	searchSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(searchResultBody("xyz"))
	}))
	defer searchSrv.Close()

	client := newTestClient(tokenSrv.URL, searchSrv.URL)
	for range 3 {
		_, err := client.PlaylistForMood(context.Background(), "SAD")
		g.Expect(err).NotTo(HaveOccurred())
	}
	g.Expect(tokenHits).To(Equal(1))
}

func TestPlaylistForMood_TokenRefreshedWhenExpiring(t *testing.T) {
	g := NewWithT(t)

	tokenHits := 0
	tokenSrv := httptest.NewServer(tokenHandler(&tokenHits))
	defer tokenSrv.Close()
	searchSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(searchResultBody("xyz"))
	}))
	defer searchSrv.Close()

	client := newTestClient(tokenSrv.URL, searchSrv.URL)
	client.token = "stale-token"
	client.tokenExpiresAt = time.Now().Add(10 * time.Second)

	_, err := client.PlaylistForMood(context.Background(), "CALM")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(tokenHits).To(Equal(1))
}

func TestPlaylistForMood_RetriesOn401(t *testing.T) {
	g := NewWithT(t)

	tokenHits := 0
	tokenSrv := httptest.NewServer(tokenHandler(&tokenHits))
	defer tokenSrv.Close()
	searchHits := 0
	searchSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		searchHits++
		if searchHits == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(searchResultBody("after-retry"))
	}))
	defer searchSrv.Close()

	client := newTestClient(tokenSrv.URL, searchSrv.URL)
	playlist, err := client.PlaylistForMood(context.Background(), "HAPPY")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(playlist.ID).To(Equal("after-retry"))
	g.Expect(tokenHits).To(Equal(2))
}

func TestPlaylistForMood_Fallback(t *testing.T) {
	g := NewWithT(t)

	tokenHits := 0
	tokenSrv := httptest.NewServer(tokenHandler(&tokenHits))
	defer tokenSrv.Close()
	searchSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer searchSrv.Close()

	client := newTestClient(tokenSrv.URL, searchSrv.URL)
	client.fallbackOverrides["ANGRY"] = "override-id"

	playlist, err := client.PlaylistForMood(context.Background(), "angry")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(playlist.Fallback).To(BeTrue())
	g.Expect(playlist.ID).To(Equal("override-id"))
	g.Expect(playlist.URL).To(Equal("https://open.spotify.com/playlist/override-id"))
}

func TestPlaylistForMood_UnknownMoodFallsBack(t *testing.T) {
	g := NewWithT(t)

	tokenHits := 0
	tokenSrv := httptest.NewServer(tokenHandler(&tokenHits))
	defer tokenSrv.Close()
	searchSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer searchSrv.Close()

	client := newTestClient(tokenSrv.URL, searchSrv.URL)
	playlist, err := client.PlaylistForMood(context.Background(), "not-an-emotion")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(playlist.Fallback).To(BeTrue())
	g.Expect(playlist.ID).To(Equal(fallbackPlaylists["UNKNOWN"]))
}

func TestNormalizeMood(t *testing.T) {
	g := NewWithT(t)

	g.Expect(normalizeMood("HAPPY")).To(Equal("HAPPY"))
	g.Expect(normalizeMood("DISGUSTED")).To(Equal("DISGUSTED"))
	g.Expect(normalizeMood("BORED")).To(Equal("UNKNOWN"))
	g.Expect(normalizeMood("")).To(Equal("UNKNOWN"))
}
