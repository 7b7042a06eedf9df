package notion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		prop     *Property
		expected string
	}{
		{
			name:     "nil property",
			prop:     nil,
			expected: "",
		},
		{
			name:     "empty title",
			prop:     &Property{Type: "title"},
			expected: "",
		},
		{
			name: "single run",
			prop: &Property{
				Type:  "title",
				Title: []RichText{{PlainText: "Quarterly report"}},
			},
			expected: "Quarterly report",
		},
		{
			name: "multiple runs joined with spaces",
			prop: &Property{
				Type:  "title",
				Title: []RichText{{PlainText: "Hello"}, {PlainText: "world"}},
			},
			expected: "Hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractTitle(tt.prop))
		})
	}
}

func TestExtractSelect(t *testing.T) {
	tests := []struct {
		name     string
		prop     *Property
		expected string
	}{
		{
			name:     "nil property",
			prop:     nil,
			expected: "",
		},
		{
			name:     "select with no selection",
			prop:     &Property{Type: "select"},
			expected: "",
		},
		{
			name:     "wrong type",
			prop:     &Property{Type: "rich_text", Select: &SelectOption{Name: "Done"}},
			expected: "",
		},
		{
			name:     "selected option",
			prop:     &Property{Type: "select", Select: &SelectOption{Name: "In Progress"}},
			expected: "In Progress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractSelect(tt.prop))
		})
	}
}

func TestExtractMultiSelect(t *testing.T) {
	tests := []struct {
		name     string
		prop     *Property
		expected []string
	}{
		{
			name:     "nil property",
			prop:     nil,
			expected: []string{},
		},
		{
			name:     "wrong type",
			prop:     &Property{Type: "select"},
			expected: []string{},
		},
		{
			name:     "empty multi_select",
			prop:     &Property{Type: "multi_select"},
			expected: []string{},
		},
		{
			name: "order preserved",
			prop: &Property{
				Type: "multi_select",
				MultiSelect: []SelectOption{
					{Name: "Acme"},
					{Name: "Globex"},
				},
			},
			expected: []string{"Acme", "Globex"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractMultiSelect(tt.prop)
			require.NotNil(t, got, "must be an empty slice, never nil")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatProperty(t *testing.T) {
	start := "2024-05-01"

	tests := []struct {
		name     string
		prop     *Property
		expected any
	}{
		{
			name:     "nil property",
			prop:     nil,
			expected: nil,
		},
		{
			name: "title",
			prop: &Property{
				Type:  "title",
				Title: []RichText{{PlainText: "Write"}, {PlainText: "docs"}},
			},
			expected: "Write docs",
		},
		{
			name: "rich_text",
			prop: &Property{
				Type:     "rich_text",
				RichText: []RichText{{PlainText: "a note"}},
			},
			expected: "a note",
		},
		{
			name:     "select with no selection",
			prop:     &Property{Type: "select"},
			expected: nil,
		},
		{
			name:     "select",
			prop:     &Property{Type: "select", Select: &SelectOption{Name: "Done"}},
			expected: "Done",
		},
		{
			name: "multi_select",
			prop: &Property{
				Type:        "multi_select",
				MultiSelect: []SelectOption{{Name: "A"}, {Name: "B"}},
			},
			expected: []string{"A", "B"},
		},
		{
			name:     "date without value",
			prop:     &Property{Type: "date"},
			expected: nil,
		},
		{
			name:     "date",
			prop:     &Property{Type: "date", Date: &DateValue{Start: &start}},
			expected: &DateValue{Start: &start},
		},
		{
			name:     "unknown tag without payload",
			prop:     &Property{Type: "people"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatProperty(tt.prop))
		})
	}
}

// Unrecognized property payloads must survive formatting byte for byte.
func TestFormatPropertyPassThrough(t *testing.T) {
	raw := `[{"id":"user-1","object":"user"}]`
	var prop Property
	input := `{"id":"abc","type":"people","people":` + raw + `}`
	require.NoError(t, json.Unmarshal([]byte(input), &prop))

	got := FormatProperty(&prop)
	rawGot, ok := got.(json.RawMessage)
	require.True(t, ok, "expected json.RawMessage, got %T", got)
	assert.JSONEq(t, raw, string(rawGot))
}
