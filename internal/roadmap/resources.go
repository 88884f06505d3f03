package roadmap

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/career-advisor/internal/types"
)

//go:embed data/learning_resources.json
var defaultResourcesJSON []byte

// ProjectIdea is a curated portfolio project for a target role
type ProjectIdea struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills,omitempty"`
}

// Library holds curated learning resources keyed by skill and
// portfolio project ideas keyed by role.
type Library struct {
	Resources    map[string][]types.Resource `json:"resources"`
	ProjectIdeas map[string][]ProjectIdea    `json:"project_ideas"`
}

// LoadLibrary parses a resource library from JSON
func LoadLibrary(data []byte) (*Library, error) {
	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse learning resources: %w", err)
	}
	return &lib, nil
}

var (
	defaultLibrary     *Library
	defaultLibraryOnce sync.Once
)

// DefaultLibrary returns the embedded resource library
func DefaultLibrary() *Library {
	defaultLibraryOnce.Do(func() {
		lib, err := LoadLibrary(defaultResourcesJSON)
		if err != nil {
			panic(fmt.Sprintf("embedded learning resources are invalid: %v", err))
		}
		defaultLibrary = lib
	})
	return defaultLibrary
}

// ForSkill finds resources for a skill: exact key first, then
// case-insensitive, then bidirectional substring.
func (l *Library) ForSkill(skill string) []types.Resource {
	if resources, ok := l.Resources[skill]; ok {
		return resources
	}

	lower := strings.ToLower(skill)
	for key, resources := range l.Resources {
		if strings.ToLower(key) == lower {
			return resources
		}
	}
	for key, resources := range l.Resources {
		keyLower := strings.ToLower(key)
		if strings.Contains(keyLower, lower) || strings.Contains(lower, keyLower) {
			return resources
		}
	}
	return nil
}

// enrichSteps attaches resources to each step: up to two per covered
// skill, deduplicated by URL, at most three per step.
func (l *Library) enrichSteps(steps []types.Step) {
	for i := range steps {
		var resources []types.Resource
		for _, skill := range steps[i].SkillsCovered {
			found := l.ForSkill(skill)
			if len(found) > 2 {
				found = found[:2]
			}
			resources = append(resources, found...)
		}

		seen := make(map[string]bool, len(resources))
		var unique []types.Resource
		for _, res := range resources {
			if seen[res.URL] {
				continue
			}
			seen[res.URL] = true
			unique = append(unique, res)
			if len(unique) == 3 {
				break
			}
		}
		steps[i].Resources = unique
	}
}
