// Package taxonomy provides skill name canonicalization against a
// static taxonomy of canonical names and aliases.
package taxonomy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed data/skills_taxonomy.json
var defaultTaxonomyJSON []byte

// Entry is a single taxonomy entry for one canonical skill
type Entry struct {
	CanonicalName string   `json:"canonical_name"`
	Aliases       []string `json:"aliases,omitempty"`
	Category      string   `json:"category,omitempty"`
}

// taxonomyFile is the on-disk shape of the taxonomy dataset
type taxonomyFile struct {
	Skills map[string]Entry `json:"skills"`
}

// Taxonomy maps skill name variants to canonical names. Immutable
// after load.
type Taxonomy struct {
	byCanonical map[string]string // lowercased canonical -> canonical
	byAlias     map[string]string // lowercased alias -> canonical
}

// Load parses a taxonomy from JSON data
func Load(data []byte) (*Taxonomy, error) {
	var file taxonomyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse skills taxonomy: %w", err)
	}

	t := &Taxonomy{
		byCanonical: make(map[string]string, len(file.Skills)),
		byAlias:     make(map[string]string),
	}
	for _, entry := range file.Skills {
		if entry.CanonicalName == "" {
			continue
		}
		t.byCanonical[strings.ToLower(entry.CanonicalName)] = entry.CanonicalName
		for _, alias := range entry.Aliases {
			t.byAlias[strings.ToLower(alias)] = entry.CanonicalName
		}
	}
	return t, nil
}

var (
	defaultTaxonomy     *Taxonomy
	defaultTaxonomyOnce sync.Once
)

// Default returns the taxonomy loaded from the embedded dataset
func Default() *Taxonomy {
	defaultTaxonomyOnce.Do(func() {
		t, err := Load(defaultTaxonomyJSON)
		if err != nil {
			// The embedded dataset is validated by tests; a parse
			// failure here is a build defect.
			panic(fmt.Sprintf("embedded skills taxonomy is invalid: %v", err))
		}
		defaultTaxonomy = t
	})
	return defaultTaxonomy
}

// Normalize canonicalizes a free-form skill name: exact canonical
// match first, then alias match, then the title-cased original.
// Always returns a non-empty string for non-empty input.
func (t *Taxonomy) Normalize(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := t.byCanonical[lower]; ok {
		return canonical
	}
	if canonical, ok := t.byAlias[lower]; ok {
		return canonical
	}
	return titleCase(strings.TrimSpace(raw))
}

// Match reports whether two skill names refer to the same skill:
// equal after lowercasing, one a case-insensitive substring of the
// other, or both normalizing to the same canonical name.
// The substring rule is deliberately permissive ("Python" matches
// "Python/Java"); it can over-match ("Java" matches "JavaScript"),
// which is accepted because tightening it would silently change
// feasibility verdicts.
func (t *Taxonomy) Match(a, b string) bool {
	s1 := strings.ToLower(strings.TrimSpace(a))
	s2 := strings.ToLower(strings.TrimSpace(b))
	if s1 == "" || s2 == "" {
		return false
	}
	if s1 == s2 {
		return true
	}
	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return true
	}
	return strings.EqualFold(t.Normalize(a), t.Normalize(b))
}

// titleCase uppercases the first letter of each space-separated word,
// lowercasing the rest, mirroring Python's str.title() used by the
// upstream dataset conventions.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
