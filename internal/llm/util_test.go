package llm

import (
	"testing"
)

func TestCleanJSONBlock_MarkdownFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence",
			input:    "```json\n{\"verdict\": \"FEASIBLE\"}\n```",
			expected: `{"verdict": "FEASIBLE"}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"verdict\": \"FEASIBLE\"}\n```",
			expected: `{"verdict": "FEASIBLE"}`,
		},
		{
			name:     "fence with wrong language tag",
			input:    "```yaml\n{\"verdict\": \"FEASIBLE\"}\n```",
			expected: `{"verdict": "FEASIBLE"}`,
		},
		{
			name:     "no fence at all",
			input:    `{"verdict": "FEASIBLE"}`,
			expected: `{"verdict": "FEASIBLE"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCleanJSONBlock_SurroundingProse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "preamble before object",
			input:    "Here is the roadmap you asked for:\n{\"role\": \"Data Analyst\"}",
			expected: `{"role": "Data Analyst"}`,
		},
		{
			name:     "multi-sentence preamble",
			input:    "I reviewed the profile. The gap is mostly SQL. Result: {\"missing\": [\"SQL\"], \"match\": 0.6}",
			expected: `{"missing": ["SQL"], "match": 0.6}`,
		},
		{
			name:     "preamble before array",
			input:    "Recommended alternatives:\n[\"Business Analyst\", \"Data Analyst\"]",
			expected: `["Business Analyst", "Data Analyst"]`,
		},
		{
			name:     "trailing chatter",
			input:    "{\"role\": \"Data Analyst\"}\n\nLet me know if you'd like adjustments!",
			expected: `{"role": "Data Analyst"}`,
		},
		{
			name:     "nested steps object",
			input:    "Output:\n{\"steps\": [{\"skill\": \"SQL\", \"weeks\": 3}]}",
			expected: `{"steps": [{"skill": "SQL", "weeks": 3}]}`,
		},
		{
			name:     "escaped quotes survive",
			input:    "Result: {\"note\": \"the so-called \\\"entry barrier\\\"\"}",
			expected: `{"note": "the so-called \"entry barrier\""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "flat object",
			input:    `{"skill": "SQL"}`,
			expected: `{"skill": "SQL"}`,
		},
		{
			name:     "object with trailing prose",
			input:    `{"skill": "SQL"} happy to expand on this`,
			expected: `{"skill": "SQL"}`,
		},
		{
			name:     "braces inside string values",
			input:    `{"template": "step {n} of {total}"}`,
			expected: `{"template": "step {n} of {total}"}`,
		},
		{
			name:     "not an object",
			input:    "plain text",
			expected: "",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractJSONObject(tt.input)
			if result != tt.expected {
				t.Errorf("extractJSONObject() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "array of objects",
			input:    `[{"role": "Data Analyst"}, {"role": "Business Analyst"}]`,
			expected: `[{"role": "Data Analyst"}, {"role": "Business Analyst"}]`,
		},
		{
			name:     "nested arrays",
			input:    `[["SQL"], ["Excel", "Python"]]`,
			expected: `[["SQL"], ["Excel", "Python"]]`,
		},
		{
			name:     "array with trailing prose",
			input:    `["SQL", "Excel"] as discussed`,
			expected: `["SQL", "Excel"]`,
		},
		{
			name:     "not an array",
			input:    "plain text",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractJSONArray(tt.input)
			if result != tt.expected {
				t.Errorf("extractJSONArray() = %q, want %q", result, tt.expected)
			}
		})
	}
}
