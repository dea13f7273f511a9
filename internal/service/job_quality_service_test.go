package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shanexuu/sot-command-center/internal/dto"
	"github.com/shanexuu/sot-command-center/internal/models"
	"github.com/shanexuu/sot-command-center/pkg/ai"
)

type fakePostingScorer struct {
	result   ai.QualityResult
	enhanced string
	err      error
}

func (f *fakePostingScorer) ScorePosting(ctx context.Context, input ai.PostingInput) (ai.QualityResult, error) {
	return f.result, f.err
}

func (f *fakePostingScorer) EnhanceDescription(ctx context.Context, input ai.PostingInput) (string, error) {
	return f.enhanced, f.err
}

func completePosting() models.Posting {
	salaryMin := 55000
	salaryMax := 70000
	deadline := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	return models.Posting{
		ID:             7,
		Title:          "Graduate Developer",
		RequiredSkills: []string{"Python", "SQL", "Git"},
		SalaryMin:      &salaryMin,
		SalaryMax:      &salaryMax,
		Deadline:       &deadline,
		Description: strings.Repeat("We build tooling for the energy sector and mentor graduates through real delivery work. ", 3) +
			"We welcome applicants from all backgrounds and provide accommodations on request.",
	}
}

func TestQualityRuleScoreFullChecklist(t *testing.T) {
	svc := NewJobQualityService(nil, testLogger())

	assessment := svc.Assess(context.Background(), completePosting())
	require.Equal(t, dto.ScoreTierRules, assessment.Tier)
	require.Equal(t, 10, assessment.Score)
	require.Empty(t, assessment.Suggestions)
}

func TestQualityRuleScoreSparsePosting(t *testing.T) {
	svc := NewJobQualityService(nil, testLogger())

	assessment := svc.Assess(context.Background(), models.Posting{Title: "Developer", Description: "Short blurb."})
	// Only the absence of biased language earns a point.
	require.Equal(t, 1, assessment.Score)
	require.Len(t, assessment.Suggestions, 5)
}

func TestQualityBiasedLanguageForfeitsPoint(t *testing.T) {
	svc := NewJobQualityService(nil, testLogger())

	posting := completePosting()
	posting.Description += " We want a rockstar who ships fast."
	assessment := svc.Assess(context.Background(), posting)
	require.Equal(t, 9, assessment.Score)
	require.NotEmpty(t, assessment.Suggestions)
}

func TestQualityUsesRemoteTierWhenAvailable(t *testing.T) {
	remote := &fakePostingScorer{result: ai.QualityResult{Score: 8, Notes: []string{"clear description"}, Suggestions: []string{"add salary range"}}}
	svc := NewJobQualityService(remote, testLogger())

	assessment := svc.Assess(context.Background(), completePosting())
	require.Equal(t, 8, assessment.Score)
	require.Equal(t, dto.ScoreTierModel, assessment.Tier)
	require.Equal(t, []string{"add salary range"}, assessment.Suggestions)
}

func TestQualityFallsBackOnRemoteFailure(t *testing.T) {
	remote := &fakePostingScorer{err: errors.New("model unavailable")}
	svc := NewJobQualityService(remote, testLogger())

	assessment := svc.Assess(context.Background(), completePosting())
	require.Equal(t, dto.ScoreTierRules, assessment.Tier)
	require.Equal(t, 10, assessment.Score)
}

func TestEnhanceAppendsSectionsForFailedChecklistItems(t *testing.T) {
	svc := NewJobQualityService(nil, testLogger())

	posting := models.Posting{Title: "Developer", Description: "Join us to build things."}
	enhanced := svc.Enhance(context.Background(), posting)

	require.Contains(t, enhanced, "Join us to build things.")
	require.Contains(t, enhanced, "all backgrounds")
	require.Contains(t, enhanced, "mentoring")
	require.Contains(t, enhanced, "To apply")
}

func TestEnhanceLeavesCompletePostingMostlyAlone(t *testing.T) {
	svc := NewJobQualityService(nil, testLogger())

	posting := completePosting()
	enhanced := svc.Enhance(context.Background(), posting)
	require.NotContains(t, enhanced, "To apply")
	require.NotContains(t, enhanced, "mentoring")
}

func TestEnhanceSanitizesMarkup(t *testing.T) {
	svc := NewJobQualityService(&fakePostingScorer{enhanced: "Great role.<script>alert(1)</script> Apply now."}, testLogger())

	enhanced := svc.Enhance(context.Background(), models.Posting{Title: "Developer"})
	require.NotContains(t, enhanced, "<script>")
	require.Contains(t, enhanced, "Great role.")
}
