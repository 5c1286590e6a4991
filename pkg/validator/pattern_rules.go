package validator

import (
	"fmt"
	"regexp"
)

// MatchesPattern validates value against a precompiled expression.
// The raw value is matched: no trimming, so surrounding spaces fail patterns
// that do not allow them.
func MatchesPattern(field, value string, pattern *regexp.Regexp, description string) Rule {
	var expr string
	if pattern != nil {
		expr = pattern.String()
	}
	return Rule{
		Check: func() bool {
			return pattern != nil && pattern.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must match %s pattern", description),
			TranslationKey: "validation.regex_pattern",
			TranslationValues: map[string]any{
				"field":       field,
				"pattern":     expr,
				"description": description,
			},
		},
	}
}
