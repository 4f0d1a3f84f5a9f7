package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pulsefeed/pulsecli/internal/backend"
)

// timelineLimit bounds the number of posts the snapshot fetches.
const timelineLimit = 20

// Snapshot is the result of prefetching the signed-in user's profile and
// recent timeline in parallel.
type Snapshot struct {
	Profile  backend.Profile
	Timeline []backend.Post
}

// Prefetch loads the profile and the timeline concurrently. The first
// failure cancels the sibling fetch and is returned as is, so the caller
// can normalize it once.
func Prefetch(ctx context.Context, client backend.Client) (Snapshot, error) {
	var snap Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := client.FetchProfile(ctx)
		if err != nil {
			return err
		}
		snap.Profile = profile
		return nil
	})
	g.Go(func() error {
		posts, err := client.FetchTimeline(ctx, timelineLimit)
		if err != nil {
			return err
		}
		snap.Timeline = posts
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
