package deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrNoSource is returned when no configured origin could provide a deck
var ErrNoSource = errors.New("no deck available")

// Origin names where a loaded deck came from
type Origin string

const (
	OriginFile   Origin = "file"
	OriginRemote Origin = "remote"
	OriginCache  Origin = "cache"
)

// Remote fetches a deck over the network
type Remote interface {
	Fetch(ctx context.Context) (*Deck, error)
}

// Store persists the last remote deck
type Store interface {
	Save(ctx context.Context, d *Deck, fetchedAt time.Time) error
	Load(ctx context.Context) (*Deck, time.Time, error)
}

// Source picks a deck from the configured origins: an explicit file wins,
// then the remote endpoint (refreshing the store), then the store.
type Source struct {
	File    string
	Remote  Remote
	Store   Store
	Offline bool
	Now     func() time.Time
}

// Load returns the deck and the origin that served it
func (s *Source) Load(ctx context.Context) (*Deck, Origin, error) {
	if s.File != "" {
		d, err := LoadFile(s.File)
		if err != nil {
			return nil, "", err
		}
		slog.Info("Loaded deck from file", "path", s.File, "words", d.Size())
		return d, OriginFile, nil
	}

	var remoteErr error
	if s.Remote != nil && !s.Offline {
		d, err := s.Remote.Fetch(ctx)
		if err == nil {
			s.save(ctx, d)
			return d, OriginRemote, nil
		}
		remoteErr = err
		slog.Warn("Remote deck unavailable, trying cache", "error", err)
	}

	if s.Store == nil {
		if remoteErr != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrNoSource, remoteErr)
		}
		return nil, "", ErrNoSource
	}

	d, fetchedAt, err := s.Store.Load(ctx)
	if err != nil {
		if remoteErr != nil {
			return nil, "", fmt.Errorf("%w: remote: %v; cache: %w", ErrNoSource, remoteErr, err)
		}
		return nil, "", fmt.Errorf("%w: %w", ErrNoSource, err)
	}

	slog.Info("Loaded deck from cache", "fetched_at", fetchedAt.Format(time.RFC3339), "words", d.Size())
	return d, OriginCache, nil
}

func (s *Source) save(ctx context.Context, d *Deck) {
	if s.Store == nil {
		return
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	if err := s.Store.Save(ctx, d, now()); err != nil {
		slog.Warn("Failed to cache deck", "error", err)
	}
}
