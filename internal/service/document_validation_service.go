package service

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shanexuu/sot-command-center/internal/dto"
)

// Alignment score awarded when extraction produced no usable text and the
// document needs manual review instead of field comparison.
const manualReviewScore = 3

// tierScores maps the count of strict field matches to the alignment score.
// The mapping is deliberately non-linear: one confirmed mismatch should
// depress confidence more than an average would.
var tierScores = map[int]int{4: 10, 3: 7, 2: 4, 1: 2, 0: 0}

// institutionKeywords are tokens that establish an institutional match when
// shared by both names.
var institutionKeywords = []string{"university", "institute", "college", "polytechnic", "technology", "wananga"}

// DocumentValidationService cross-checks extracted document fields against
// the declared profile and scores their alignment.
type DocumentValidationService interface {
	Validate(extracted *dto.ExtractedFields, declared dto.DeclaredFields) dto.DocumentValidationResult
}

type documentValidationService struct {
	logger zerolog.Logger
}

// NewDocumentValidationService constructs the cross-validator.
func NewDocumentValidationService(logger zerolog.Logger) DocumentValidationService {
	return &documentValidationService{
		logger: logger.With().Str("component", "document_validation_service").Logger(),
	}
}

// Validate compares the four profile fields and applies the tier score. A nil
// extracted value means extraction failed entirely; that case returns a fixed
// low-confidence result rather than scoring every field as mismatched.
func (s *documentValidationService) Validate(extracted *dto.ExtractedFields, declared dto.DeclaredFields) dto.DocumentValidationResult {
	if extracted == nil {
		return dto.DocumentValidationResult{
			Score:        manualReviewScore,
			ManualReview: true,
			Warnings: []string{
				"document text could not be extracted",
				"manual review required before approval",
			},
		}
	}

	result := dto.DocumentValidationResult{}
	matchCount := 0

	fields := []struct {
		name      string
		extracted string
		declared  string
		compare   func(a, b string) string
	}{
		{"name", extracted.Name, declared.Name, compareText},
		{"institution", extracted.Institution, declared.Institution, compareInstitution},
		{"degree", extracted.Degree, declared.Degree, compareText},
	}

	for _, field := range fields {
		outcome, note := evaluateField(field.name, field.extracted, field.declared, field.compare)
		result.Fields = append(result.Fields, dto.FieldResult{Field: field.name, Outcome: outcome, Note: note})
		switch outcome {
		case dto.FieldOutcomeMatch:
			matchCount++
		case dto.FieldOutcomePartial:
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s differs only in formatting: document shows %q", field.name, field.extracted))
		case dto.FieldOutcomeMismatch:
			result.Mismatches = append(result.Mismatches, note)
		}
	}

	yearOutcome, yearNote := compareYear(extracted.GraduationYear, declared.GraduationYear)
	result.Fields = append(result.Fields, dto.FieldResult{Field: "graduation year", Outcome: yearOutcome, Note: yearNote})
	switch yearOutcome {
	case dto.FieldOutcomeMatch:
		matchCount++
	case dto.FieldOutcomePartial:
		result.Warnings = append(result.Warnings, fmt.Sprintf("graduation year off by one: document shows %d", extracted.GraduationYear))
	case dto.FieldOutcomeMismatch:
		result.Mismatches = append(result.Mismatches, yearNote)
	}

	result.Score = tierScores[matchCount]
	return result
}

func evaluateField(name, extracted, declared string, compare func(a, b string) string) (string, string) {
	if strings.TrimSpace(extracted) == "" {
		// An un-extractable field cannot be confirmed, so it counts
		// against the score.
		return dto.FieldOutcomeMismatch, fmt.Sprintf("mismatch: document does not show %s but profile expects %q", name, declared)
	}

	outcome := compare(extracted, declared)
	switch outcome {
	case dto.FieldOutcomeMatch, dto.FieldOutcomePartial:
		return outcome, fmt.Sprintf("%s correctly shows %q", name, extracted)
	default:
		return dto.FieldOutcomeMismatch, fmt.Sprintf("%s mismatch: document shows %q but profile expects %q", name, extracted, declared)
	}
}

// compareText classifies two free-text values: containment either way is a
// match, equality after stripping punctuation is a partial match.
func compareText(extracted, declared string) string {
	a := normalizeName(extracted)
	b := normalizeName(declared)
	if a == b || strings.Contains(a, b) || strings.Contains(b, a) {
		return dto.FieldOutcomeMatch
	}

	if stripPunctuation(a) == stripPunctuation(b) {
		return dto.FieldOutcomePartial
	}

	return dto.FieldOutcomeMismatch
}

// compareInstitution additionally accepts two names sharing an institutional
// keyword token.
func compareInstitution(extracted, declared string) string {
	if outcome := compareText(extracted, declared); outcome != dto.FieldOutcomeMismatch {
		return outcome
	}

	a := normalizeName(extracted)
	b := normalizeName(declared)
	for _, keyword := range institutionKeywords {
		if strings.Contains(a, keyword) && strings.Contains(b, keyword) {
			return dto.FieldOutcomeMatch
		}
	}

	return dto.FieldOutcomeMismatch
}

func compareYear(extracted, declared int) (string, string) {
	if extracted == 0 {
		return dto.FieldOutcomeMismatch, fmt.Sprintf("mismatch: document does not show graduation year but profile expects %d", declared)
	}

	diff := extracted - declared
	if diff < 0 {
		diff = -diff
	}

	switch diff {
	case 0:
		return dto.FieldOutcomeMatch, fmt.Sprintf("graduation year correctly shows %d", extracted)
	case 1:
		return dto.FieldOutcomePartial, fmt.Sprintf("graduation year correctly shows %d", extracted)
	default:
		return dto.FieldOutcomeMismatch, fmt.Sprintf("graduation year mismatch: document shows %d but profile expects %d", extracted, declared)
	}
}

func stripPunctuation(s string) string {
	builder := strings.Builder{}
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
