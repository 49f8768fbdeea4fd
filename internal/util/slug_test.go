package util

import "testing"

func TestNormalizeTagSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic normalization
		{"lowercase", "RAMEN", "ramen"},
		{"spaces to dashes", "date night", "date-night"},
		{"underscores to dashes", "date_night", "date-night"},
		{"already normalized", "date-night", "date-night"},

		// Whitespace handling
		{"trim whitespace", "  ramen  ", "ramen"},
		{"multiple spaces", "date   night", "date-night"},
		{"tabs and spaces", "date\t night", "date-night"},

		// Special characters
		{"emoji removal", "🍜 Ramen!", "ramen"},
		{"punctuation removal", "coffee/tea", "coffee-tea"},
		{"apostrophe removal", "mom's", "moms"},

		// Dash handling
		{"multiple dashes", "date--night", "date-night"},
		{"leading dashes", "--ramen", "ramen"},
		{"trailing dashes", "ramen--", "ramen"},
		{"mixed dashes", "--date--night--", "date-night"},

		// Edge cases
		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"only special chars", "!@#$%", ""},
		{"numbers allowed", "top10", "top10"},
		{"mixed case with numbers", "Top 10 Spots", "top-10-spots"},

		// Real-world examples
		{"tourist attraction", "Tourist Attraction", "tourist-attraction"},
		{"cheap eats", "Cheap Eats", "cheap-eats"},
		{"day trip", "Day-Trip Ideas", "day-trip-ideas"},
		{"brunch", "BrUnCh", "brunch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeTagSlug(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeTagSlug(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestHumanizeToken(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"restaurant", "Restaurant"},
		{"tourist_attraction", "Tourist Attraction"},
		{"food", "Food"},
		{"", ""},
		{"point_of_interest", "Point Of Interest"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := HumanizeToken(tt.input)
			if result != tt.expected {
				t.Errorf("HumanizeToken(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
