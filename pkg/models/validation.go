package models

// ValidationResult carries the outcome of a structural node validation: valid
// with zero issues, or invalid with one or more human-readable issue strings.
// Validation never mutates node state; running it twice without intervening
// mutation yields identical results.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues,omitempty"`
}

// ValidResult returns a successful validation result.
func ValidResult() ValidationResult {
	return ValidationResult{Valid: true}
}

// InvalidResult returns a failed validation result with the given issues.
func InvalidResult(issues ...string) ValidationResult {
	return ValidationResult{Valid: false, Issues: issues}
}

// AddIssue appends an issue and marks the result invalid.
func (v *ValidationResult) AddIssue(issue string) {
	v.Valid = false
	v.Issues = append(v.Issues, issue)
}

// Merge folds another result into this one; any invalid input makes the
// merged result invalid.
func (v *ValidationResult) Merge(other ValidationResult) {
	if !other.Valid {
		v.Valid = false
	}

	v.Issues = append(v.Issues, other.Issues...)
}
