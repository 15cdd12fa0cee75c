package shots

import (
	"context"
	"errors"
	"fmt"
)

// ScopeKind selects which records feed one estimation call.
type ScopeKind string

const (
	// ScopeLeague pools every record in the cleaned dataset.
	ScopeLeague ScopeKind = "league"
	// ScopePlayer pools records attributable to one named shooter.
	ScopePlayer ScopeKind = "player"
	// ScopeTeam pools records across every shooter on a team's current
	// roster, resolved at query time.
	ScopeTeam ScopeKind = "team"
)

// Scope identifies one aggregation of shot records. Aggregation never
// deduplicates or reweights: a record contributes exactly once to each scope
// that includes it.
type Scope struct {
	Kind ScopeKind
	Name string
}

// LeagueScope covers the full dataset and serves as the comparison baseline.
func LeagueScope() Scope { return Scope{Kind: ScopeLeague} }

// PlayerScope covers a single named shooter.
func PlayerScope(name string) Scope { return Scope{Kind: ScopePlayer, Name: name} }

// TeamScope covers everyone on a team's roster.
func TeamScope(team string) Scope { return Scope{Kind: ScopeTeam, Name: team} }

func (s Scope) String() string {
	if s.Kind == ScopeLeague {
		return "league"
	}
	return fmt.Sprintf("%s %q", s.Kind, s.Name)
}

// EmptyScopeError reports a scope whose identity resolved to nothing: an
// unknown shooter, or a team with no roster entries. It is distinct from a
// recognised identity that simply has no shots, which gathers an empty record
// set and flows through to an all-zero surface. Callers choose whether to
// treat it as "not found" or to proceed.
type EmptyScopeError struct {
	Scope Scope
}

func (e *EmptyScopeError) Error() string {
	return fmt.Sprintf("scope %s matched nothing", e.Scope)
}

// IsEmptyScope reports whether err is (or wraps) an EmptyScopeError.
func IsEmptyScope(err error) bool {
	var ese *EmptyScopeError
	return errors.As(err, &ese)
}

// Source yields cleaned shot records for a season. The sqlite ShotStore is
// the production implementation; tests substitute fakes.
type Source interface {
	// AllShots returns every cleaned record for the season.
	AllShots(ctx context.Context, season int) ([]Record, error)
	// ShotsForShooter returns the season's records for one shooter. A known
	// shooter with no shots returns an empty slice, not an error.
	ShotsForShooter(ctx context.Context, season int, shooter string) ([]Record, error)
	// ShooterKnown reports whether the shooter appears in the dataset at all.
	ShooterKnown(ctx context.Context, shooter string) (bool, error)
}

// RosterResolver maps a team to the shooters currently on it. Membership is
// resolved per call and never cached here.
type RosterResolver interface {
	Roster(ctx context.Context, team string) ([]string, error)
}

// Gather collects the records for a scope from src (and rosters, for team
// scopes). Unknown identities return an EmptyScopeError; identities that
// exist but have no shots return an empty slice.
func (s Scope) Gather(ctx context.Context, src Source, rosters RosterResolver, season int) ([]Record, error) {
	switch s.Kind {
	case ScopeLeague:
		return src.AllShots(ctx, season)

	case ScopePlayer:
		known, err := src.ShooterKnown(ctx, s.Name)
		if err != nil {
			return nil, fmt.Errorf("resolve shooter %q: %w", s.Name, err)
		}
		if !known {
			return nil, &EmptyScopeError{Scope: s}
		}
		return src.ShotsForShooter(ctx, season, s.Name)

	case ScopeTeam:
		roster, err := rosters.Roster(ctx, s.Name)
		if err != nil {
			return nil, fmt.Errorf("resolve roster for %q: %w", s.Name, err)
		}
		if len(roster) == 0 {
			return nil, &EmptyScopeError{Scope: s}
		}
		var pooled []Record
		for _, shooter := range roster {
			recs, err := src.ShotsForShooter(ctx, season, shooter)
			if err != nil {
				return nil, fmt.Errorf("gather shots for %q: %w", shooter, err)
			}
			pooled = append(pooled, recs...)
		}
		return pooled, nil

	default:
		return nil, fmt.Errorf("unknown scope kind %q", s.Kind)
	}
}
