package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedDataset(t *testing.T) {
	tax := Default()

	require.NotNil(t, tax)
	assert.Equal(t, "Python", tax.Normalize("python"))
}

func TestNormalize_CanonicalMatch(t *testing.T) {
	tax := Default()

	assert.Equal(t, "SQL", tax.Normalize("sql"))
	assert.Equal(t, "SQL", tax.Normalize("SQL"))
	assert.Equal(t, "Machine Learning", tax.Normalize("machine learning"))
}

func TestNormalize_AliasMatch(t *testing.T) {
	tax := Default()

	assert.Equal(t, "JavaScript", tax.Normalize("js"))
	assert.Equal(t, "Kubernetes", tax.Normalize("k8s"))
	assert.Equal(t, "Excel", tax.Normalize("ms excel"))
	assert.Equal(t, "Go", tax.Normalize("golang"))
}

func TestNormalize_UnknownSkillTitleCased(t *testing.T) {
	tax := Default()

	assert.Equal(t, "Quantum Computing", tax.Normalize("quantum computing"))
	assert.Equal(t, "Cobol", tax.Normalize("COBOL"))
}

func TestNormalize_TrimsWhitespace(t *testing.T) {
	tax := Default()

	assert.Equal(t, "Python", tax.Normalize("  python  "))
}

func TestMatch_Exact(t *testing.T) {
	tax := Default()

	assert.True(t, tax.Match("Python", "python"))
	assert.True(t, tax.Match("SQL", "sql"))
}

func TestMatch_Substring(t *testing.T) {
	tax := Default()

	// Permissive containment matching is intentional
	assert.True(t, tax.Match("Python", "Python/Java"))
	assert.True(t, tax.Match("SQL Server", "SQL"))
	// Known over-match, preserved on purpose
	assert.True(t, tax.Match("Java", "JavaScript"))
}

func TestMatch_SameCanonical(t *testing.T) {
	tax := Default()

	assert.True(t, tax.Match("k8s", "Kubernetes"))
	assert.True(t, tax.Match("ms excel", "Excel"))
}

func TestMatch_NoMatch(t *testing.T) {
	tax := Default()

	assert.False(t, tax.Match("Python", "Tableau"))
	assert.False(t, tax.Match("", "Python"))
	assert.False(t, tax.Match("Python", ""))
}

func TestLoad_InvalidJSON(t *testing.T) {
	_, err := Load([]byte("{not json"))

	assert.Error(t, err)
}

func TestLoad_SkipsEntriesWithoutCanonicalName(t *testing.T) {
	tax, err := Load([]byte(`{"skills": {"x": {"aliases": ["y"]}}}`))

	require.NoError(t, err)
	assert.Equal(t, "Y", tax.Normalize("y"))
}
