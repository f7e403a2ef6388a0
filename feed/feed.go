package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/junaidrashid-git/kataplum-api/cache"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CacheKey names the feed entry in the cache table.
const CacheKey = "instagram_posts"

const (
	SourceMock  = "mock"
	SourceCache = "cache"
	SourceLive  = "live"
	SourceStale = "stale"
)

type Post struct {
	ID      string `json:"id"`
	Image   string `json:"image"`
	Caption string `json:"caption"`
	Link    string `json:"link"`
}

// Result is what the feed section renders.
type Result struct {
	Posts     []Post    `json:"posts"`
	LastFetch time.Time `json:"last_fetch"`
	Offline   bool      `json:"offline"`
	Source    string    `json:"source"`
}

// Cache is the subset of cache.Store the feed needs.
type Cache interface {
	Get(ctx context.Context, key string, maxAge time.Duration) (cache.Entry, error)
	Put(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}

var mockPosts = []Post{
	{ID: "1", Caption: "Magical birthday celebration 🎉", Link: "#"},
	{ID: "2", Caption: "Disney theme perfection ✨", Link: "#"},
	{ID: "3", Caption: "Superhero party vibes 💥", Link: "#"},
	{ID: "4", Caption: "Retro 80s party setup 🎸", Link: "#"},
	{ID: "5", Caption: "Beautiful party table 🎂", Link: "#"},
	{ID: "6", Caption: "Fun party games for kids 🎮", Link: "#"},
}

// Service serves the social feed preview with a time-boxed cache.
type Service struct {
	endpoint string
	ttl      time.Duration
	cache    Cache
	http     *http.Client
	now      func() time.Time
}

// New builds the feed service. An empty endpoint serves the mock posts; a nil
// cache disables caching.
func New(endpoint string, ttl, timeout time.Duration, c Cache) *Service {
	return &Service{
		endpoint: endpoint,
		ttl:      ttl,
		cache:    c,
		http:     &http.Client{Timeout: timeout},
		now:      time.Now,
	}
}

// Posts never fails: fresh cache, then the endpoint, then stale cache, then
// the mock posts.
func (s *Service) Posts(ctx context.Context) Result {
	if s.endpoint == "" {
		return Result{Posts: mocks(), LastFetch: s.now(), Source: SourceMock}
	}

	var stale *Result
	if s.cache != nil {
		entry, err := s.cache.Get(ctx, CacheKey, s.ttl)
		switch {
		case err == nil:
			var posts []Post
			if jerr := json.Unmarshal(entry.Payload, &posts); jerr == nil {
				r := Result{Posts: posts, LastFetch: entry.StoredAt, Source: SourceCache}
				if entry.Fresh {
					return r
				}
				r.Source = SourceStale
				r.Offline = true
				stale = &r
			}
		case !errors.Is(err, cache.ErrMiss):
			log.WithError(err).Warn("⚠️ feed cache read failed")
		}
	}

	posts, err := s.fetch(ctx)
	if err != nil {
		log.WithFields(log.Fields{"url": s.endpoint, "error": err}).Error("❌ error fetching feed posts")
		if stale != nil {
			return *stale
		}
		return Result{Posts: mocks(), LastFetch: s.now(), Offline: true, Source: SourceMock}
	}

	if s.cache != nil {
		if payload, err := json.Marshal(posts); err == nil {
			if err := s.cache.Put(ctx, CacheKey, payload); err != nil {
				log.WithError(err).Warn("⚠️ feed cache write failed")
			}
		}
	}
	return Result{Posts: posts, LastFetch: s.now(), Source: SourceLive}
}

// Refresh drops the cached entry and fetches again.
func (s *Service) Refresh(ctx context.Context) Result {
	if s.cache != nil {
		if err := s.cache.Delete(ctx, CacheKey); err != nil {
			log.WithError(err).Warn("⚠️ feed cache delete failed")
		}
	}
	return s.Posts(ctx)
}

type wirePost struct {
	ID        postID `json:"id"`
	MediaURL  string `json:"media_url"`
	Image     string `json:"image"`
	Caption   string `json:"caption"`
	Permalink string `json:"permalink"`
	Link      string `json:"link"`
}

func (w wirePost) toPost() Post {
	p := Post{ID: string(w.ID), Image: w.MediaURL, Caption: w.Caption, Link: w.Permalink}
	if p.Image == "" {
		p.Image = w.Image
	}
	if p.Link == "" {
		p.Link = w.Link
	}
	if p.Link == "" {
		p.Link = "#"
	}
	return p
}

// postID accepts ids sent either as strings or as numbers.
type postID string

func (p *postID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = postID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = postID(n.String())
	return nil
}

func (s *Service) fetch(ctx context.Context) ([]Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build feed request")
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch feed")
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("feed endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return nil, errors.Wrap(err, "read feed")
	}
	return decodePosts(body)
}

// decodePosts accepts a bare array or the Graph API {"data": [...]} envelope.
func decodePosts(body []byte) ([]Post, error) {
	body = bytes.TrimSpace(body)
	var wire []wirePost
	if len(body) > 0 && body[0] == '{' {
		var env struct {
			Data []wirePost `json:"data"`
		}
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, errors.Wrap(err, "decode feed envelope")
		}
		wire = env.Data
	} else if err := json.Unmarshal(body, &wire); err != nil {
		return nil, errors.Wrap(err, "decode feed")
	}

	posts := make([]Post, 0, len(wire))
	for _, w := range wire {
		posts = append(posts, w.toPost())
	}
	return posts, nil
}

func mocks() []Post {
	out := make([]Post, len(mockPosts))
	copy(out, mockPosts)
	return out
}
