package validation

import (
	"testing"

	"github.com/arizal132/todo-app/internal/models"
)

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"keeps inner whitespace", "hello world", "hello world"},
		{"strips control characters", "hel\x00lo\x07", "hello"},
		{"keeps newlines and tabs", "line one\n\tline two", "line one\n\tline two"},
		{"empty string", "", ""},
		{"whitespace only", "   \t\n  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidatePriority(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"low", "medium", "high"} {
		if err := ValidatePriority(valid); err != nil {
			t.Errorf("Expected %q to be valid, got %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "urgent", "LOW", "critical"} {
		if err := ValidatePriority(invalid); err == nil {
			t.Errorf("Expected %q to be rejected", invalid)
		}
	}
}

func TestPriorityStructTag(t *testing.T) {
	t.Parallel()

	type payload struct {
		Priority models.Priority `validate:"omitempty,priority"`
	}

	if err := Validate.Struct(payload{Priority: models.PriorityHigh}); err != nil {
		t.Errorf("Expected high to pass, got %v", err)
	}
	if err := Validate.Struct(payload{}); err != nil {
		t.Errorf("Expected empty value to pass with omitempty, got %v", err)
	}
	if err := Validate.Struct(payload{Priority: "urgent"}); err == nil {
		t.Error("Expected invalid enum value to fail")
	}
}
