package music

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/anima-music/anima/internal/env"
	"github.com/anima-music/anima/internal/httpstatus"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	defaultTokenEndpoint  = "https://accounts.spotify.com/api/token"
	defaultSearchEndpoint = "https://api.spotify.com/v1/search"

	// tokens are refreshed slightly before Spotify expires them
	tokenExpirySlack = 60 * time.Second
)

type Playlist struct {
	ID          string
	Name        string
	URL         string
	TotalTracks int
	CoverURL    string
	Owner       string
	Fallback    bool
}

type Client struct {
	clientID          string
	clientSecret      string
	market            string
	fallbackOverrides map[string]string
	tokenEndpoint     string
	searchEndpoint    string
	httpClient        *http.Client
	logger            *zap.Logger

	mutex          sync.Mutex
	token          string
	tokenExpiresAt time.Time
}

func NewClientFromEnv(logger *zap.Logger) *Client {
	return &Client{
		clientID:          env.SpotifyClientID(),
		clientSecret:      env.SpotifyClientSecret(),
		market:            env.SpotifyMarket(),
		fallbackOverrides: env.SpotifyFallbackOverrides(),
		tokenEndpoint:     defaultTokenEndpoint,
		searchEndpoint:    defaultSearchEndpoint,
		httpClient:        &http.Client{Timeout: 15 * time.Second},
		logger:            logger,
	}
}

// PlaylistForMood finds a playlist matching the detected emotion. Search
// queries for the mood are tried in order, first restricted to the configured
// market and then without it. When everything comes back empty the editorial
// fallback playlist for the mood is returned instead.
func (c *Client) PlaylistForMood(ctx context.Context, mood string) (*Playlist, error) {
	mood = normalizeMood(strings.ToUpper(mood))
	for _, query := range moodQueries[mood] {
		playlist, err := c.PlaylistForQuery(ctx, query)
		if err != nil {
			return nil, err
		}
		if playlist != nil {
			return playlist, nil
		}
	}
	c.logger.Info("no playlist found, serving fallback", zap.String("mood", mood))
	return c.fallbackPlaylist(mood), nil
}

// PlaylistForQuery searches for a single query, first in the configured market
// and then globally, and picks a random hit. Returns nil when nothing matched.
func (c *Client) PlaylistForQuery(ctx context.Context, query string) (*Playlist, error) {
	for _, market := range []string{c.market, ""} {
		playlists, err := c.search(ctx, query, market)
		if err != nil {
			return nil, fmt.Errorf("playlist search failed: %w", err)
		}
		if len(playlists) > 0 {
			return playlists[rand.IntN(len(playlists))], nil
		}
	}
	return nil, nil
}

func (c *Client) fallbackPlaylist(mood string) *Playlist {
	id, ok := c.fallbackOverrides[mood]
	if !ok {
		id = fallbackPlaylists[mood]
	}
	return &Playlist{
		ID:       id,
		Name:     "Playlist recomendada",
		URL:      "https://open.spotify.com/playlist/" + id,
		Owner:    "Spotify",
		Fallback: true,
	}
}

type searchResponse struct {
	Playlists struct {
		Items []*playlistItem `json:"items"`
	} `json:"playlists"`
}

type playlistItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ExternalUrls struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	Tracks struct {
		Total int `json:"total"`
	} `json:"tracks"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Owner struct {
		DisplayName string `json:"display_name"`
	} `json:"owner"`
}

func (c *Client) search(ctx context.Context, query, market string) ([]*Playlist, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "playlist")
	params.Set("limit", "10")
	if market != "" {
		params.Set("market", market)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.doAuthenticated(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	// the search endpoint pads result pages with null items
	playlists := make([]*Playlist, 0, len(result.Playlists.Items))
	for _, item := range result.Playlists.Items {
		if item == nil || item.ID == "" {
			continue
		}
		playlist := Playlist{
			ID:          item.ID,
			Name:        item.Name,
			URL:         item.ExternalUrls.Spotify,
			TotalTracks: item.Tracks.Total,
			Owner:       item.Owner.DisplayName,
		}
		if playlist.URL == "" {
			playlist.URL = "https://open.spotify.com/playlist/" + item.ID
		}
		if len(item.Images) > 0 {
			playlist.CoverURL = item.Images[0].URL
		}
		playlists = append(playlists, &playlist)
	}
	return playlists, nil
}

func (c *Client) doAuthenticated(ctx context.Context, r *http.Request) (*http.Response, error) {
	resp, err := c.doAuthenticatedNoRetry(ctx, r)
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	c.logger.Warn("got 401 response, regenerating token")
	c.clearToken()
	resp, err1 := c.doAuthenticatedNoRetry(ctx, r)
	if err1 != nil {
		return resp, multierr.Append(err, err1)
	}
	return resp, nil
}

func (c *Client) doAuthenticatedNoRetry(ctx context.Context, r *http.Request) (*http.Response, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}
	r.Header.Set("Authorization", "Bearer "+token)
	return httpstatus.CheckStatus(c.httpClient.Do(r))
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// ensureToken returns a client-credentials token, requesting a fresh one when
// the cached token is missing or about to expire.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.token != "" && time.Now().Add(tokenExpirySlack).Before(c.tokenExpiresAt) {
		return c.token, nil
	}
	body := strings.NewReader(url.Values{"grant_type": {"client_credentials"}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenEndpoint, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)
	resp, err := httpstatus.CheckStatus(c.httpClient.Do(req))
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()
	var result tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("token response contains no access token")
	}
	c.token = result.AccessToken
	c.tokenExpiresAt = time.Now().Add(time.Duration(result.ExpiresIn) * time.Second)
	return c.token, nil
}

func (c *Client) clearToken() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.token = ""
	c.tokenExpiresAt = time.Time{}
}
