package reroute

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed data/career_paths.json
var defaultCareerPathsJSON []byte

// SteppingStone is an intermediate role on the way to a target role
type SteppingStone struct {
	IntermediateRole      string `json:"intermediate_role"`
	Recommended           bool   `json:"recommended"`
	TypicalDurationMonths int    `json:"typical_duration_months,omitempty"`
}

// NextRole is an edge in the career graph with a transition probability
type NextRole struct {
	Role                  string  `json:"role"`
	TransitionProbability float64 `json:"transition_probability"`
}

type graphNode struct {
	TypicalNextRoles []NextRole `json:"typical_next_roles"`
}

// CareerPaths holds the static career progression data: stepping
// stones keyed by target role, and a directed graph of typical
// transitions.
type CareerPaths struct {
	SteppingStones map[string][]SteppingStone `json:"stepping_stones"`
	CareerGraph    map[string]graphNode       `json:"career_graph"`
}

// LoadCareerPaths parses career progression data from JSON
func LoadCareerPaths(data []byte) (*CareerPaths, error) {
	var paths CareerPaths
	if err := json.Unmarshal(data, &paths); err != nil {
		return nil, fmt.Errorf("failed to parse career paths: %w", err)
	}
	return &paths, nil
}

var (
	defaultPaths     *CareerPaths
	defaultPathsOnce sync.Once
)

// DefaultCareerPaths returns the embedded career progression data
func DefaultCareerPaths() *CareerPaths {
	defaultPathsOnce.Do(func() {
		p, err := LoadCareerPaths(defaultCareerPathsJSON)
		if err != nil {
			panic(fmt.Sprintf("embedded career paths data is invalid: %v", err))
		}
		defaultPaths = p
	})
	return defaultPaths
}

// SteppingStonesFor returns the stepping stones toward a target role,
// or nil when none are recorded.
func (p *CareerPaths) SteppingStonesFor(targetRole string) []SteppingStone {
	return p.SteppingStones[targetRole]
}

// progressionPotential scores how likely the alternative role leads
// back to the original goal, checked in priority order: curated
// stepping stones, then the career graph, then raw skill-set overlap
// between the two roles' must-have lists.
func (r *Ranker) progressionPotential(alternativeRole, originalRole string) float64 {
	if stones, ok := r.paths.SteppingStones[originalRole]; ok {
		for _, stone := range stones {
			if strings.EqualFold(stone.IntermediateRole, alternativeRole) {
				if stone.Recommended {
					return 0.9
				}
				return 0.7
			}
		}
	}

	if node, ok := r.paths.CareerGraph[alternativeRole]; ok {
		for _, next := range node.TypicalNextRoles {
			if strings.EqualFold(next.Role, originalRole) {
				return next.TransitionProbability
			}
		}
	}

	altRec := r.catalog.Record(alternativeRole)
	origRec := r.catalog.Record(originalRole)
	if altRec != nil && origRec != nil {
		altSkills := make(map[string]bool)
		for _, name := range altRec.MustHaveNames() {
			altSkills[name] = true
		}
		origNames := origRec.MustHaveNames()
		if len(altSkills) > 0 && len(origNames) > 0 {
			shared := 0
			for _, name := range origNames {
				if altSkills[name] {
					shared++
				}
			}
			// Skill similarity alone caps at 0.6
			return float64(shared) / float64(len(origNames)) * 0.6
		}
	}

	// Some potential always exists
	return 0.3
}
