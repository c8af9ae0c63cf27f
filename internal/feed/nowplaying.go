package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"linux-backdrop/internal/utils"
)

// DefaultTrackID is the embed's track before the first successful poll.
const DefaultTrackID = "0VjIjW4GlUZAMYd2vXMi3b"

// ErrNoData means nothing is playing or the player could not be read.
var ErrNoData = errors.New("now playing: no data")

type Track struct {
	ID      string
	Name    string
	Artists []string
}

func (t Track) String() string {
	if len(t.Artists) == 0 {
		return t.Name
	}
	return t.Name + " by " + t.Artists[0]
}

// EmbedURL is the player embed address for a track.
func EmbedURL(trackID string) string {
	return "https://open.spotify.com/embed/track/" + url.PathEscape(trackID) + "?utm_source=generator&theme=0"
}

type NowPlayingProvider interface {
	// Configured is false when credentials are missing or placeholders.
	Configured() bool
	NowPlaying(ctx context.Context) (*Track, error)
}

type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// CredentialsFromEnv reads SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET and
// SPOTIFY_REFRESH_TOKEN.
func CredentialsFromEnv() Credentials {
	return Credentials{
		ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		RefreshToken: os.Getenv("SPOTIFY_REFRESH_TOKEN"),
	}
}

// Placeholder reports unset credentials or the setup guide's YOUR_..._HERE values.
func (c Credentials) Placeholder() bool {
	for _, v := range []string{c.ClientID, c.ClientSecret, c.RefreshToken} {
		if v == "" || (strings.HasPrefix(v, "YOUR_") && strings.HasSuffix(v, "_HERE")) {
			return true
		}
	}
	return false
}

// Spotify reads the current playback through the Web API using a refresh token.
type Spotify struct {
	Client      *http.Client
	TokenURL    string
	PlayerURL   string
	Credentials Credentials
}

func NewSpotify(creds Credentials) *Spotify {
	return &Spotify{
		Client:      &http.Client{Timeout: 10 * time.Second},
		TokenURL:    "https://accounts.spotify.com/api/token",
		PlayerURL:   "https://api.spotify.com/v1/me/player/currently-playing",
		Credentials: creds,
	}
}

func (s *Spotify) Configured() bool {
	return !s.Credentials.Placeholder()
}

// AccessToken exchanges the refresh token for a short lived access token.
func (s *Spotify) AccessToken(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {s.Credentials.RefreshToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(s.Credentials.ClientID, s.Credentials.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("token exchange: %s", resp.Status)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("token exchange: empty access token")
	}
	return body.AccessToken, nil
}

func (s *Spotify) NowPlaying(ctx context.Context) (*Track, error) {
	token, err := s.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.PlayerURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w (%s)", ErrNoData, resp.Status)
	}

	var body struct {
		Item *struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
		} `json:"item"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode player state: %w", err)
	}
	if body.Item == nil || body.Item.ID == "" {
		return nil, ErrNoData
	}

	track := &Track{ID: body.Item.ID, Name: body.Item.Name}
	for _, a := range body.Item.Artists {
		track.Artists = append(track.Artists, a.Name)
	}
	return track, nil
}

// MediaEmbed is the player widget whose source follows the current track.
type MediaEmbed interface {
	Source() string
	SetSource(src string)
}

// Embed is a MediaEmbed shared between the poller and the render loop.
type Embed struct {
	mu     sync.RWMutex
	source string
	label  string
}

func NewEmbed(trackID string) *Embed {
	return &Embed{source: EmbedURL(trackID)}
}

func (e *Embed) Source() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.source
}

func (e *Embed) SetSource(src string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.source = src
}

// Label is the human readable caption drawn next to the embed.
func (e *Embed) Label() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.label
}

func (e *Embed) SetLabel(label string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.label = label
}

// NowPlayingSync keeps an embed pointed at the currently playing track.
type NowPlayingSync struct {
	Provider NowPlayingProvider
	Embed    MediaEmbed
	// OnChange runs on the polling goroutine after the embed was swapped.
	OnChange func(Track)

	mu     sync.Mutex
	lastID string
}

func NewNowPlayingSync(provider NowPlayingProvider, embed MediaEmbed, initialTrackID string) *NowPlayingSync {
	return &NowPlayingSync{Provider: provider, Embed: embed, lastID: initialTrackID}
}

// LastTrackID is safe to call from the render goroutine while Run polls.
func (s *NowPlayingSync) LastTrackID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastID
}

// Poll runs one sync cycle and reports whether the embed changed. Errors and
// "nothing playing" only skip the cycle.
func (s *NowPlayingSync) Poll(ctx context.Context) bool {
	if !s.Provider.Configured() {
		utils.Debug("Now playing: credentials not set, skipping sync")
		return false
	}

	track, err := s.Provider.NowPlaying(ctx)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			utils.Debug("Now playing: %v", err)
		} else {
			utils.Warn("Now playing: fetch failed: %v", err)
		}
		return false
	}
	if track == nil || track.ID == "" || track.ID == s.LastTrackID() {
		return false
	}

	utils.Info("Track changed: %s", track)
	s.mu.Lock()
	s.lastID = track.ID
	s.mu.Unlock()
	s.Embed.SetSource(EmbedURL(track.ID))
	if labeled, ok := s.Embed.(interface{ SetLabel(string) }); ok {
		labeled.SetLabel(track.String())
	}
	if s.OnChange != nil {
		s.OnChange(*track)
	}
	return true
}

// Run polls immediately and then every interval until ctx is done.
func (s *NowPlayingSync) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Poll(ctx)
		}
	}
}
