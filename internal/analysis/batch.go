package analysis

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/slapshot-data/xgoal.report/internal/shots"
	"github.com/slapshot-data/xgoal.report/internal/surface"
)

// BatchResult collects the outcome of a multi-player estimation run. Each
// player lands in exactly one of Surfaces or Errors; failures are isolated
// per entity so one bad scope never aborts the batch.
type BatchResult struct {
	RunID    string
	Surfaces map[string]*surface.Surface
	Errors   map[string]error
}

// PlayerSurfaces estimates a surface per player using a fixed pool of
// workers. Estimations are independent and share no mutable state, so they
// run concurrently; workers <= 0 means one worker per player. Cancelling ctx
// stops new work but players already in flight still complete.
func (a *Analyzer) PlayerSurfaces(ctx context.Context, players []string, workers int) *BatchResult {
	if workers <= 0 || workers > len(players) {
		workers = len(players)
	}

	result := &BatchResult{
		RunID:    uuid.New().String(),
		Surfaces: make(map[string]*surface.Surface, len(players)),
		Errors:   make(map[string]error),
	}
	if len(players) == 0 {
		return result
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	work := make(chan string)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range work {
				s, err := a.SurfaceFor(ctx, shots.PlayerScope(name))
				mu.Lock()
				if err != nil {
					result.Errors[name] = err
				} else {
					result.Surfaces[name] = s
				}
				mu.Unlock()
			}
		}()
	}

	for _, name := range players {
		select {
		case <-ctx.Done():
			mu.Lock()
			result.Errors[name] = ctx.Err()
			mu.Unlock()
		case work <- name:
		}
	}
	close(work)
	wg.Wait()
	return result
}

// TeamPlayerSurfaces resolves a team's roster and estimates a surface for
// every player on it.
func (a *Analyzer) TeamPlayerSurfaces(ctx context.Context, team string, workers int) (*BatchResult, error) {
	roster, err := a.rosters.Roster(ctx, team)
	if err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, &shots.EmptyScopeError{Scope: shots.TeamScope(team)}
	}
	return a.PlayerSurfaces(ctx, roster, workers), nil
}
