package dto

// Field outcomes produced by document cross-validation.
const (
	// FieldOutcomeMatch is a strict match and counts toward the score tier.
	FieldOutcomeMatch = "match"
	// FieldOutcomePartial is a soft match; logged as a warning, not counted.
	FieldOutcomePartial = "partial"
	// FieldOutcomeMismatch covers conflicting or un-extractable fields.
	FieldOutcomeMismatch = "mismatch"
)

// ExtractedFields holds profile data pulled out of an uploaded document.
// Empty strings and a zero graduation year mean the field could not be
// extracted.
type ExtractedFields struct {
	Name           string `json:"name"`
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	GraduationYear int    `json:"graduation_year"`
}

// DeclaredFields holds the self-declared profile values being verified.
type DeclaredFields struct {
	Name           string `json:"name"`
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	GraduationYear int    `json:"graduation_year"`
}

// FieldResult records the comparison outcome for a single profile field.
type FieldResult struct {
	Field   string `json:"field"`
	Outcome string `json:"outcome"`
	Note    string `json:"note"`
}

// DocumentValidationResult aggregates per-field comparisons into a 0-10
// alignment score.
type DocumentValidationResult struct {
	Score        int           `json:"score"`
	Fields       []FieldResult `json:"fields,omitempty"`
	Mismatches   []string      `json:"mismatches,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
	ManualReview bool          `json:"manual_review"`
}

// Notes flattens the per-field notes for persistence on the candidate record.
func (r DocumentValidationResult) Notes() []string {
	notes := make([]string, 0, len(r.Fields)+len(r.Warnings))
	for _, field := range r.Fields {
		notes = append(notes, field.Note)
	}
	notes = append(notes, r.Warnings...)
	return notes
}
