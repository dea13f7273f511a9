package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEligibilityCurrentAndFutureGraduationAlwaysEligible(t *testing.T) {
	svc := NewEligibilityService(DefaultEligibilityConfig(), testLogger())
	asOf := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	for _, year := range []int{2026, 2027, 2030} {
		result := svc.Check(year, "University of Auckland", asOf)
		require.True(t, result.Eligible, "graduation year %d", year)
		require.Equal(t, "currently studying", result.Reason)
		require.Equal(t, 0, result.MonthsSinceGraduation)
	}
}

func TestEligibilityWindowBoundary(t *testing.T) {
	svc := NewEligibilityService(DefaultEligibilityConfig(), testLogger())

	// Exactly twelve months after a Dec 31 2025 graduation.
	onLimit := svc.Check(2025, "AUT", time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC))
	require.True(t, onLimit.Eligible)
	require.Equal(t, 12, onLimit.MonthsSinceGraduation)
	require.Contains(t, onLimit.Warnings, "near the eligibility window limit")

	// One day past the window.
	pastLimit := svc.Check(2025, "AUT", time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.False(t, pastLimit.Eligible)
	require.Equal(t, "graduated too long ago", pastLimit.Reason)
}

func TestEligibilityRecentGraduateMidWindow(t *testing.T) {
	svc := NewEligibilityService(DefaultEligibilityConfig(), testLogger())

	result := svc.Check(2025, "University of Otago", time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC))
	require.True(t, result.Eligible)
	require.Equal(t, 5, result.MonthsSinceGraduation)
	require.Empty(t, result.Warnings)
}

func TestEligibilityVeryRecentGraduateWarned(t *testing.T) {
	svc := NewEligibilityService(DefaultEligibilityConfig(), testLogger())

	result := svc.Check(2025, "Massey University", time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC))
	require.True(t, result.Eligible)
	require.Equal(t, 0, result.MonthsSinceGraduation)
	require.Contains(t, result.Warnings, "verify graduation recency against the uploaded transcript")
}

func TestEligibilityGraduatedTooLongAgo(t *testing.T) {
	svc := NewEligibilityService(DefaultEligibilityConfig(), testLogger())

	result := svc.Check(2023, "University of Auckland", time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC))
	require.False(t, result.Eligible)
	require.Equal(t, "graduated too long ago", result.Reason)
	require.True(t, result.RecognizedInstitution)
}

func TestEligibilityUnrecognizedInstitutionShortCircuits(t *testing.T) {
	svc := NewEligibilityService(DefaultEligibilityConfig(), testLogger())

	result := svc.Check(2026, "Hogwarts School", time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC))
	require.False(t, result.Eligible)
	require.False(t, result.RecognizedInstitution)
	require.Equal(t, "institution not recognized", result.Reason)
}

func TestInstitutionRecognitionSymmetricOnAliases(t *testing.T) {
	svc := NewEligibilityService(DefaultEligibilityConfig(), testLogger())
	asOf := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	pairs := [][2]string{
		{"Auckland University of Technology", "AUT"},
		{"Victoria University of Wellington", "VUW"},
		{"University of Auckland", "UoA"},
	}
	for _, pair := range pairs {
		full := svc.Check(2026, pair[0], asOf)
		abbreviated := svc.Check(2026, pair[1], asOf)
		require.Equal(t, full.RecognizedInstitution, abbreviated.RecognizedInstitution, "%s vs %s", pair[0], pair[1])
		require.True(t, full.RecognizedInstitution)
	}
}

func TestEligibilityRecognitionCaseAndWhitespaceInsensitive(t *testing.T) {
	svc := NewEligibilityService(DefaultEligibilityConfig(), testLogger())
	asOf := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	result := svc.Check(2026, "  auckland   university of TECHNOLOGY ", asOf)
	require.True(t, result.RecognizedInstitution)
}

func TestEligibilityDeterministic(t *testing.T) {
	svc := NewEligibilityService(DefaultEligibilityConfig(), testLogger())
	asOf := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	first := svc.Check(2025, "AUT", asOf)
	second := svc.Check(2025, "AUT", asOf)
	require.Equal(t, first, second)
}
