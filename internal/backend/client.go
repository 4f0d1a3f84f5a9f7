//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

// Package backend defines the opaque boundary to the remote feed service.
// The core never speaks a wire protocol; it sees only async operations
// that return raw data or fail with an arbitrary error, which the
// normalizer converts into the taxonomy.
package backend

import (
	"context"
	"time"
)

// Profile is the signed-in user's profile as the backend reports it.
type Profile struct {
	Username string
	Bio      string
}

// Post is a single feed entry as the backend reports it.
type Post struct {
	ID        string
	Author    string
	Content   string
	MediaURL  string
	CreatedAt time.Time
}

// Client is the set of backend operations the client application uses.
// Every method may return any error shape — a backend failure object, a
// network-layer error, or something else entirely; callers are expected to
// run them under a guarded surface or normalize the failure themselves.
type Client interface {
	// FetchProfile returns the signed-in user's profile.
	FetchProfile(ctx context.Context) (Profile, error)
	// FetchTimeline returns up to limit of the most recent posts.
	FetchTimeline(ctx context.Context, limit int) ([]Post, error)
	// CreatePost publishes a post and returns it as stored.
	CreatePost(ctx context.Context, content, mediaURL string) (Post, error)
	// UploadMedia stores a media blob and returns its URL.
	UploadMedia(ctx context.Context, name, mimeType string, data []byte) (string, error)
}
