package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgerrcode"

	apperrors "github.com/pulsefeed/pulsecli/internal/errors"
)

// Memory is an in-memory Client used by the demo binary and tests. It
// serves canned data and can be told to fail its next call with an
// arbitrary error, which lets callers exercise every normalizer rule
// without a real transport. Methods may be called from concurrent
// goroutines; the mutex guards the timeline and the primed fault.
type Memory struct {
	mu       sync.Mutex
	profile  Profile
	posts    []Post
	nextID   int
	failNext error
}

// Verify interface compliance.
var _ Client = (*Memory)(nil)

// NewMemory creates a Memory client with a small canned timeline.
func NewMemory() *Memory {
	now := time.Now()
	return &Memory{
		profile: Profile{Username: "demo_user", Bio: "Exploring the feed."},
		posts: []Post{
			{ID: "1", Author: "ada", Content: "Shipping a new parser today.", CreatedAt: now.Add(-2 * time.Hour)},
			{ID: "2", Author: "linus", Content: "Talk is cheap.", CreatedAt: now.Add(-1 * time.Hour)},
		},
		nextID: 3,
	}
}

// FailNextWith makes the next call fail with err, then clears the fault.
func (m *Memory) FailNextWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

// takeFault returns and clears the primed fault. Callers hold mu.
func (m *Memory) takeFault() error {
	err := m.failNext
	m.failNext = nil
	return err
}

// FetchProfile returns the canned profile.
func (m *Memory) FetchProfile(ctx context.Context) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFault(); err != nil {
		return Profile{}, err
	}
	return m.profile, nil
}

// FetchTimeline returns up to limit canned posts, newest first.
func (m *Memory) FetchTimeline(ctx context.Context, limit int) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFault(); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > len(m.posts) {
		limit = len(m.posts)
	}
	out := make([]Post, limit)
	for i := 0; i < limit; i++ {
		out[i] = m.posts[len(m.posts)-1-i]
	}
	return out, nil
}

// CreatePost appends a post authored by the canned profile. Duplicate
// content is rejected the way the real backend would reject it: with a
// unique-violation failure object.
func (m *Memory) CreatePost(ctx context.Context, content, mediaURL string) (Post, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFault(); err != nil {
		return Post{}, err
	}
	for _, p := range m.posts {
		if p.Content == content {
			return Post{}, &apperrors.BackendError{
				Code:    pgerrcode.UniqueViolation,
				Message: "duplicate key value violates unique constraint \"posts_content_key\"",
			}
		}
	}
	post := Post{
		ID:        fmt.Sprintf("%d", m.nextID),
		Author:    m.profile.Username,
		Content:   content,
		MediaURL:  mediaURL,
		CreatedAt: time.Now(),
	}
	m.nextID++
	m.posts = append(m.posts, post)
	return post, nil
}

// UploadMedia pretends to store the blob and returns a stable URL.
func (m *Memory) UploadMedia(ctx context.Context, name, mimeType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFault(); err != nil {
		return "", err
	}
	return "https://cdn.pulsefeed.dev/media/" + name, nil
}
