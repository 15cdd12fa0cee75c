package shots

import (
	"context"
	"sort"
	"testing"
)

// fakeSource serves records from a map. A shooter is "known" when the map has
// a key for them, even with an empty slice, mirroring the store's behaviour
// for players who appear in the dataset but took no shots this season.
type fakeSource struct {
	byShooter map[string][]Record
}

func (f *fakeSource) AllShots(ctx context.Context, season int) ([]Record, error) {
	names := make([]string, 0, len(f.byShooter))
	for name := range f.byShooter {
		names = append(names, name)
	}
	sort.Strings(names)

	var all []Record
	for _, name := range names {
		all = append(all, f.byShooter[name]...)
	}
	return all, nil
}

func (f *fakeSource) ShotsForShooter(ctx context.Context, season int, shooter string) ([]Record, error) {
	return f.byShooter[shooter], nil
}

func (f *fakeSource) ShooterKnown(ctx context.Context, shooter string) (bool, error) {
	_, ok := f.byShooter[shooter]
	return ok, nil
}

type fakeRoster struct {
	byTeam map[string][]string
}

func (f *fakeRoster) Roster(ctx context.Context, team string) ([]string, error) {
	return f.byTeam[team], nil
}

func testSource() *fakeSource {
	return &fakeSource{byShooter: map[string][]Record{
		"Connor McDavid": {
			{Shooter: "Connor McDavid", X: 85, Y: 2, XGoal: 0.2},
			{Shooter: "Connor McDavid", X: 80, Y: -5, XGoal: 0.1},
		},
		"Leon Draisaitl": {
			{Shooter: "Leon Draisaitl", X: 70, Y: 10, XGoal: 0.08},
		},
		"Healthy Scratch": {},
	}}
}

func TestGatherLeaguePoolsEverything(t *testing.T) {
	scope := LeagueScope()
	records, err := scope.Gather(context.Background(), testSource(), &fakeRoster{}, 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("league scope gathered %d records, expected 3", len(records))
	}
}

func TestGatherPlayer(t *testing.T) {
	scope := PlayerScope("Connor McDavid")
	records, err := scope.Gather(context.Background(), testSource(), &fakeRoster{}, 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("gathered %d records, expected 2", len(records))
	}
}

func TestGatherUnknownPlayerIsEmptyScope(t *testing.T) {
	scope := PlayerScope("No Such Player")
	_, err := scope.Gather(context.Background(), testSource(), &fakeRoster{}, 2023)
	if !IsEmptyScope(err) {
		t.Fatalf("expected EmptyScopeError, got %v", err)
	}
}

func TestGatherKnownShotlessPlayerIsNotEmptyScope(t *testing.T) {
	// A recognised identity with zero shots gathers an empty set with no
	// error; the estimator then falls back to an all-zero surface.
	scope := PlayerScope("Healthy Scratch")
	records, err := scope.Gather(context.Background(), testSource(), &fakeRoster{}, 2023)
	if err != nil {
		t.Fatalf("known shotless player must not be an empty scope: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("gathered %d records, expected none", len(records))
	}
}

func TestGatherTeamPoolsRoster(t *testing.T) {
	rosters := &fakeRoster{byTeam: map[string][]string{
		"EDM": {"Connor McDavid", "Leon Draisaitl"},
	}}
	records, err := TeamScope("EDM").Gather(context.Background(), testSource(), rosters, 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("team scope gathered %d records, expected 3", len(records))
	}
}

func TestGatherTeamWithNoRosterIsEmptyScope(t *testing.T) {
	_, err := TeamScope("XXX").Gather(context.Background(), testSource(), &fakeRoster{}, 2023)
	if !IsEmptyScope(err) {
		t.Fatalf("expected EmptyScopeError, got %v", err)
	}
}

func TestGatherTeamOfShotlessPlayersIsValid(t *testing.T) {
	rosters := &fakeRoster{byTeam: map[string][]string{
		"BENCH": {"Healthy Scratch"},
	}}
	records, err := TeamScope("BENCH").Gather(context.Background(), testSource(), rosters, 2023)
	if err != nil {
		t.Fatalf("a rostered team with no shots must not be an empty scope: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("gathered %d records, expected none", len(records))
	}
}

func TestScopeString(t *testing.T) {
	if got := LeagueScope().String(); got != "league" {
		t.Errorf("league scope string = %q", got)
	}
	if got := PlayerScope("A").String(); got != `player "A"` {
		t.Errorf("player scope string = %q", got)
	}
	if got := TeamScope("EDM").String(); got != `team "EDM"` {
		t.Errorf("team scope string = %q", got)
	}
}
