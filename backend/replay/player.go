package replay

import (
	"context"
	"errors"
	"sync"

	"github.com/gogpu/ar"
	"github.com/gogpu/ar/backend"
)

// Player replays a captured session as a tracking backend. Hit tests
// pop recorded queries in capture order regardless of the requested
// coordinates: playback reproduces the capture's sequence of answers,
// not a spatial model. Recorded pose updates are emitted onto the feed
// at Init.
type Player struct {
	mu      sync.Mutex
	session *Session
	next    int
	feed    chan ar.PoseUpdate
	open    bool
}

// NewPlayer creates a player over a loaded session capture.
func NewPlayer(s *Session) *Player {
	return &Player{session: s}
}

// Name returns the captured backend's name suffixed with "+replay".
func (p *Player) Name() string { return p.session.Backend + "+replay" }

// Init rewinds playback and queues the recorded pose updates. Calling
// Init on an open player closes the previous feed first, so receivers
// ranging over it unblock instead of leaking.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		close(p.feed)
	}
	p.next = 0
	p.feed = make(chan ar.PoseUpdate, len(p.session.Updates)+1)
	for _, u := range p.session.Updates {
		p.feed <- ar.PoseUpdate{AnchorID: u.AnchorID, Pose: u.Pose.pose()}
	}
	p.open = true
	return nil
}

// Close closes the pose feed.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return
	}
	p.open = false
	close(p.feed)
}

// HitTest pops the next recorded query. Past the end of the capture it
// reports nothing there, like a backend that lost all tracking.
func (p *Player) HitTest(ctx context.Context, x, y float64) ([]ar.HitCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return nil, backend.ErrNotInitialized
	}
	if p.next >= len(p.session.Queries) {
		return nil, nil
	}
	q := p.session.Queries[p.next]
	p.next++

	if q.Error != "" {
		return nil, errors.New(q.Error)
	}
	out := make([]ar.HitCandidate, 0, len(q.Candidates))
	for _, c := range q.Candidates {
		hc, err := c.candidate()
		if err != nil {
			return nil, err
		}
		out = append(out, hc)
	}
	return out, nil
}

// PoseUpdates returns the replayed pose feed.
func (p *Player) PoseUpdates() <-chan ar.PoseUpdate {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.feed
}
