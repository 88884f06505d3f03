// Package market provides read-only access to the static job-market
// dataset and per-role market analysis for a student's skills.
package market

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/career-advisor/internal/taxonomy"
	"github.com/jonathan/career-advisor/internal/types"
)

//go:embed data/job_market.json
var defaultMarketJSON []byte

//go:embed data/job_market.schema.json
var marketSchemaJSON []byte

// NotFoundError is returned when a role is absent from the catalog.
// It carries the available role names so callers can surface them.
type NotFoundError struct {
	Role           string
	AvailableRoles []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("role %q not found in market data", e.Role)
}

// catalogFile is the on-disk shape of the market dataset
type catalogFile struct {
	Roles map[string]types.RoleMarketRecord `json:"roles"`
}

// Catalog is the loaded, immutable market dataset. Role iteration
// follows the order roles are declared in the source file.
type Catalog struct {
	names   []string // declared order
	records map[string]types.RoleMarketRecord
	tax     *taxonomy.Taxonomy
}

// Load parses and validates a market dataset. The data is checked
// against the embedded JSON Schema before decoding so key typos in
// role records fail loudly at load rather than silently defaulting.
func Load(data []byte, tax *taxonomy.Taxonomy) (*Catalog, error) {
	if err := validateAgainstSchema(data); err != nil {
		return nil, err
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse market data: %w", err)
	}

	names, err := declaredRoleOrder(data)
	if err != nil {
		return nil, err
	}

	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Catalog{names: names, records: file.Roles, tax: tax}, nil
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Default returns the catalog loaded from the embedded dataset
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := Load(defaultMarketJSON, taxonomy.Default())
		if err != nil {
			panic(fmt.Sprintf("embedded market dataset is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// validateAgainstSchema checks the dataset against the embedded schema
func validateAgainstSchema(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(marketSchemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("market schema validation failed during load: %w", err)
	}
	if !result.Valid() {
		var sb strings.Builder
		sb.WriteString("market data failed schema validation:\n")
		for i, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, field, desc.Description()))
		}
		return fmt.Errorf("%s", sb.String())
	}
	return nil
}

// declaredRoleOrder extracts role names in the order they appear in
// the source JSON. encoding/json maps drop key order, and FindRole's
// fallback matching is documented as first-hit-in-catalog-order, so
// the order has to be captured from the raw token stream.
func declaredRoleOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	// Walk to the "roles" object
	if _, err := dec.Token(); err != nil { // opening {
		return nil, fmt.Errorf("failed to scan market data: %w", err)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to scan market data: %w", err)
		}
		key, _ := keyTok.(string)
		if key != "roles" {
			// Skip this key's value entirely
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("failed to scan market data: %w", err)
			}
			continue
		}

		if _, err := dec.Token(); err != nil { // roles opening {
			return nil, fmt.Errorf("failed to scan market data: %w", err)
		}
		var names []string
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("failed to scan market data: %w", err)
			}
			name, _ := nameTok.(string)
			names = append(names, name)

			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("failed to scan market data: %w", err)
			}
		}
		return names, nil
	}
	return nil, nil
}

// RoleNames returns all role names in declared order
func (c *Catalog) RoleNames() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// FindRole looks up a role record: exact key first, then
// case-insensitive, then bidirectional substring. Fallback matches
// return the first hit in catalog order, so an ambiguous query like
// "Analyst" resolves to whichever matching role is declared first.
func (c *Catalog) FindRole(name string) (string, *types.RoleMarketRecord, error) {
	if rec, ok := c.records[name]; ok {
		return name, &rec, nil
	}

	lower := strings.ToLower(name)
	for _, key := range c.names {
		if strings.ToLower(key) == lower {
			rec := c.records[key]
			return key, &rec, nil
		}
	}
	for _, key := range c.names {
		keyLower := strings.ToLower(key)
		if strings.Contains(keyLower, lower) || strings.Contains(lower, keyLower) {
			rec := c.records[key]
			return key, &rec, nil
		}
	}

	return "", nil, &NotFoundError{Role: name, AvailableRoles: c.RoleNames()}
}

// Record returns the record for an exact role name, or nil
func (c *Catalog) Record(name string) *types.RoleMarketRecord {
	if rec, ok := c.records[name]; ok {
		return &rec
	}
	return nil
}

// Taxonomy returns the taxonomy the catalog normalizes skills with
func (c *Catalog) Taxonomy() *taxonomy.Taxonomy {
	return c.tax
}

// Demand score components: up to 60 points from job count, up to 25
// from trend, up to 15 from growth rate.
const demandJobsNormalizer = 5000.0

// DemandScore computes the 0-100 demand score for raw market numbers
func DemandScore(totalJobs int, trend types.Trend, growthRate float64) int {
	base := float64(totalJobs) / demandJobsNormalizer * 60
	if base > 60 {
		base = 60
	}

	var trendBonus int
	switch trend {
	case types.TrendGrowing:
		trendBonus = 25
	case types.TrendStable:
		trendBonus = 15
	case types.TrendDeclining:
		trendBonus = 5
	default:
		trendBonus = 10
	}

	var growthBonus int
	switch {
	case growthRate >= 20:
		growthBonus = 15
	case growthRate >= 10:
		growthBonus = 10
	case growthRate >= 0:
		growthBonus = 5
	}

	score := int(base) + trendBonus + growthBonus
	if score > 100 {
		score = 100
	}
	return score
}

// TrendingRoles returns the topN catalog roles by current demand score
func (c *Catalog) TrendingRoles(topN int) []types.TrendingRole {
	scored := make([]types.TrendingRole, 0, len(c.names))
	for _, name := range c.names {
		rec := c.records[name]
		scored = append(scored, types.TrendingRole{
			Role:        name,
			DemandScore: DemandScore(rec.Market.TotalJobs, rec.Market.Trend, rec.Market.GrowthRateYoY),
			TotalJobs:   rec.Market.TotalJobs,
			Trend:       rec.Market.Trend,
		})
	}
	stableSortByScoreDesc(scored, func(r types.TrendingRole) float64 { return float64(r.DemandScore) })
	if topN > 0 && len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

// RolesForSkills finds catalog roles whose must-have skills the
// student already covers at or above minMatch, best match first.
func (c *Catalog) RolesForSkills(studentSkills []string, minMatch float64) []types.SkillMatchedRole {
	var matching []types.SkillMatchedRole
	for _, name := range c.names {
		rec := c.records[name]
		gap := c.analyzeSkillGap(&rec, studentSkills)
		if gap.skillMatch >= minMatch {
			matching = append(matching, types.SkillMatchedRole{
				Role:               name,
				SkillMatch:         gap.skillMatch,
				MatchedSkills:      gap.matched,
				MissingSkillsCount: len(gap.missing),
			})
		}
	}
	stableSortByScoreDesc(matching, func(r types.SkillMatchedRole) float64 { return r.SkillMatch })
	return matching
}

// Summary extracts the compact market view for a role record
func Summary(rec *types.RoleMarketRecord) types.MarketSummary {
	return types.MarketSummary{
		TotalJobs:        rec.Market.TotalJobs,
		Trend:            rec.Market.Trend,
		GrowthRate:       rec.Market.GrowthRateYoY,
		SalaryRange:      formatSalaryRange(rec.Salary.EntryLevel),
		EntryBarrier:     rec.Requirements.EntryBarrier,
		FreshersAccepted: rec.Requirements.FreshersAccepted,
	}
}

// CompareRoles returns a side-by-side summary of two roles
func (c *Catalog) CompareRoles(roleA, roleB string) (*types.RoleComparison, error) {
	nameA, recA, err := c.FindRole(roleA)
	if err != nil {
		return nil, err
	}
	nameB, recB, err := c.FindRole(roleB)
	if err != nil {
		return nil, err
	}
	return &types.RoleComparison{
		Original: types.ComparisonEntry{Role: nameA, MarketSummary: Summary(recA)},
		Alternatives: []types.ComparisonEntry{
			{Role: nameB, MarketSummary: Summary(recB)},
		},
	}, nil
}

// stableSortByScoreDesc sorts a slice by a score key, descending,
// preserving insertion order for equal scores.
func stableSortByScoreDesc[T any](items []T, score func(T) float64) {
	// Insertion sort keeps ties stable and the catalogs are small.
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && score(items[j]) > score(items[j-1]); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}
