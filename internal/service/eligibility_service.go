package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shanexuu/sot-command-center/internal/dto"
)

// InstitutionAlias pairs a recognized institution with its common
// abbreviations.
type InstitutionAlias struct {
	Name          string
	Abbreviations []string
}

// EligibilityConfig is the immutable rule set supplied to the eligibility
// engine at construction.
type EligibilityConfig struct {
	Institutions []InstitutionAlias
	WindowMonths int
}

// DefaultEligibilityConfig returns the curated allow-list of programme
// institutions and the 12-month graduation window.
func DefaultEligibilityConfig() EligibilityConfig {
	return EligibilityConfig{
		WindowMonths: 12,
		Institutions: []InstitutionAlias{
			{Name: "University of Auckland", Abbreviations: []string{"UoA", "Auckland Uni"}},
			{Name: "Auckland University of Technology", Abbreviations: []string{"AUT"}},
			{Name: "Victoria University of Wellington", Abbreviations: []string{"VUW", "Vic Wellington"}},
			{Name: "University of Canterbury", Abbreviations: []string{"UC Canterbury"}},
			{Name: "University of Otago", Abbreviations: []string{"Otago"}},
			{Name: "Massey University", Abbreviations: []string{"Massey"}},
			{Name: "University of Waikato", Abbreviations: []string{"Waikato"}},
			{Name: "Lincoln University", Abbreviations: []string{"Lincoln"}},
			{Name: "Unitec Institute of Technology", Abbreviations: []string{"Unitec"}},
			{Name: "Whitecliffe College", Abbreviations: []string{"Whitecliffe"}},
		},
	}
}

// EligibilityService decides whether a candidate is programme-eligible from
// their declared institution and graduation year. Checks are pure and
// deterministic: the same inputs always produce the same result.
type EligibilityService interface {
	Check(graduationYear int, institution string, asOf time.Time) dto.EligibilityResult
}

type eligibilityService struct {
	cfg    EligibilityConfig
	logger zerolog.Logger
}

// NewEligibilityService constructs the eligibility engine.
func NewEligibilityService(cfg EligibilityConfig, logger zerolog.Logger) EligibilityService {
	if cfg.WindowMonths <= 0 {
		cfg.WindowMonths = 12
	}
	return &eligibilityService{
		cfg:    cfg,
		logger: logger.With().Str("component", "eligibility_service").Logger(),
	}
}

func (s *eligibilityService) Check(graduationYear int, institution string, asOf time.Time) dto.EligibilityResult {
	if !s.recognized(institution) {
		return dto.EligibilityResult{
			Eligible:              false,
			Reason:                "institution not recognized",
			RecognizedInstitution: false,
		}
	}

	currentYear := asOf.Year()

	if graduationYear >= currentYear {
		return dto.EligibilityResult{
			Eligible:              true,
			Reason:                "currently studying",
			RecognizedInstitution: true,
			MonthsSinceGraduation: 0,
		}
	}

	if graduationYear < currentYear-1 {
		return dto.EligibilityResult{
			Eligible:              false,
			Reason:                "graduated too long ago",
			RecognizedInstitution: true,
			MonthsSinceGraduation: monthsSince(graduationYear, asOf),
		}
	}

	months := monthsSince(graduationYear, asOf)
	if months < 0 {
		return dto.EligibilityResult{
			Eligible:              false,
			Reason:                "invalid graduation date",
			RecognizedInstitution: true,
		}
	}

	result := dto.EligibilityResult{
		RecognizedInstitution: true,
		MonthsSinceGraduation: months,
	}

	if months > s.cfg.WindowMonths {
		result.Eligible = false
		result.Reason = fmt.Sprintf("graduated %d months ago, outside the %d-month window", months, s.cfg.WindowMonths)
		return result
	}

	result.Eligible = true
	result.Reason = fmt.Sprintf("graduated %d months ago, within the %d-month window", months, s.cfg.WindowMonths)

	if months >= s.cfg.WindowMonths-2 {
		result.Warnings = append(result.Warnings, "near the eligibility window limit")
	}
	if months <= 1 {
		result.Warnings = append(result.Warnings, "verify graduation recency against the uploaded transcript")
	}

	return result
}

// recognized matches the declared institution against the allow-list using
// case-insensitive substring containment in either direction.
func (s *eligibilityService) recognized(institution string) bool {
	declared := normalizeName(institution)
	if declared == "" {
		return false
	}

	for _, alias := range s.cfg.Institutions {
		names := append([]string{alias.Name}, alias.Abbreviations...)
		for _, name := range names {
			known := normalizeName(name)
			if strings.Contains(declared, known) || strings.Contains(known, declared) {
				return true
			}
		}
	}

	return false
}

// monthsSince counts full months from an assumed December 31 graduation date
// in the declared year up to asOf.
func monthsSince(graduationYear int, asOf time.Time) int {
	graduated := time.Date(graduationYear, time.December, 31, 0, 0, 0, 0, asOf.Location())
	months := (asOf.Year()-graduated.Year())*12 + int(asOf.Month()) - int(graduated.Month())
	if asOf.Day() < graduated.Day() {
		months--
	}
	return months
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
