package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shanexuu/sot-command-center/internal/dto"
	"github.com/shanexuu/sot-command-center/internal/models"
	"github.com/shanexuu/sot-command-center/pkg/ai"
)

type fakeMatchScorer struct {
	score      int
	rationale  string
	err        error
	scoreCalls int
}

func (f *fakeMatchScorer) ScoreMatch(ctx context.Context, input ai.MatchInput) (int, error) {
	f.scoreCalls++
	return f.score, f.err
}

func (f *fakeMatchScorer) ExplainMatch(ctx context.Context, input ai.MatchInput) (string, error) {
	return f.rationale, f.err
}

func newRuleOnlyScorer(t *testing.T, asOf time.Time) MatchScoringService {
	t.Helper()
	svc := NewMatchScoringService(nil, DefaultMatchWeights(), DefaultSkillSynonyms(), DefaultAvailabilityMatrix(), testLogger())
	svc.(*matchScoringService).now = func() time.Time { return asOf }
	return svc
}

func scenarioCandidate() models.Candidate {
	return models.Candidate{
		ID:             1,
		FullName:       "Aroha Ngata",
		GraduationYear: 2026,
		Skills:         []string{"Python", "SQL"},
		Location:       "Auckland",
		Availability:   "internship",
	}
}

func scenarioPosting() models.Posting {
	return models.Posting{
		ID:             7,
		OrganizationID: 3,
		Title:          "Graduate Developer",
		RequiredSkills: []string{"Python", "Django"},
		Location:       "Auckland",
		EmploymentMode: "internship",
	}
}

func TestRuleScoreGoodMatchScenario(t *testing.T) {
	svc := newRuleOnlyScorer(t, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	organization := models.Organization{ID: 3, Name: "Kiwi Software", Industry: "Technology"}

	assessment := svc.Score(context.Background(), scenarioCandidate(), organization, scenarioPosting())

	require.Equal(t, dto.ScoreTierRules, assessment.Tier)
	// Python exact, Django unmatched: 0.5 skill overlap; exact location;
	// exact availability; neutral interests; graduating this year.
	require.Equal(t, 0.5, assessment.Components["skills"])
	require.Equal(t, 1.0, assessment.Components["location"])
	require.Equal(t, 1.0, assessment.Components["availability"])
	require.Equal(t, 0.5, assessment.Components["interests"])
	require.Equal(t, 1.0, assessment.Components["timeline"])
	require.GreaterOrEqual(t, assessment.Score, 60)
	require.LessOrEqual(t, assessment.Score, 75)
}

func TestRuleScoreDeterministic(t *testing.T) {
	svc := newRuleOnlyScorer(t, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	organization := models.Organization{ID: 3, Name: "Kiwi Software", Industry: "Technology"}

	first := svc.Score(context.Background(), scenarioCandidate(), organization, scenarioPosting())
	second := svc.Score(context.Background(), scenarioCandidate(), organization, scenarioPosting())
	require.Equal(t, first, second)
	require.GreaterOrEqual(t, first.Score, 0)
	require.LessOrEqual(t, first.Score, 100)
}

func TestScoreUsesRemoteTierWhenAvailable(t *testing.T) {
	remote := &fakeMatchScorer{score: 88}
	svc := NewMatchScoringService(remote, DefaultMatchWeights(), DefaultSkillSynonyms(), DefaultAvailabilityMatrix(), testLogger())

	assessment := svc.Score(context.Background(), scenarioCandidate(), models.Organization{}, scenarioPosting())
	require.Equal(t, 88, assessment.Score)
	require.Equal(t, dto.ScoreTierModel, assessment.Tier)
	require.Equal(t, 1, remote.scoreCalls)
}

func TestScoreFallsBackOnRemoteFailure(t *testing.T) {
	remote := &fakeMatchScorer{err: errors.New("model unavailable")}
	svc := NewMatchScoringService(remote, DefaultMatchWeights(), DefaultSkillSynonyms(), DefaultAvailabilityMatrix(), testLogger())
	svc.(*matchScoringService).now = func() time.Time { return time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC) }

	assessment := svc.Score(context.Background(), scenarioCandidate(), models.Organization{Industry: "Technology"}, scenarioPosting())
	require.Equal(t, dto.ScoreTierRules, assessment.Tier)
	require.NotEmpty(t, assessment.Components)
}

func TestSkillSimilarityLadder(t *testing.T) {
	svc := NewMatchScoringService(nil, DefaultMatchWeights(), DefaultSkillSynonyms(), DefaultAvailabilityMatrix(), testLogger()).(*matchScoringService)

	require.Equal(t, 1.0, svc.skillSimilarity("Python", "python"))
	require.Equal(t, 0.8, svc.skillSimilarity("Node.js", "node"))
	require.Equal(t, 0.6, svc.skillSimilarity("python", "django"))
	require.Equal(t, 0.0, svc.skillSimilarity("django", "python"), "family lookup is directional")
	require.Equal(t, 0.0, svc.skillSimilarity("rust", "haskell"))
}

func TestLocationCompatibilityFloor(t *testing.T) {
	require.Equal(t, 1.0, locationCompatibility("Auckland", "auckland"))
	require.Equal(t, 0.8, locationCompatibility("Auckland CBD", "Auckland"))
	require.Equal(t, 0.7, locationCompatibility("Dunedin", "Remote (NZ)"))
	require.Equal(t, 0.7, locationCompatibility("Dunedin", "Wellington / Hybrid"))
	// Distance alone never zeroes the component.
	require.Equal(t, 0.3, locationCompatibility("Dunedin", "Auckland"))
}

func TestAvailabilityMatrixPartialCompatibility(t *testing.T) {
	svc := NewMatchScoringService(nil, DefaultMatchWeights(), DefaultSkillSynonyms(), DefaultAvailabilityMatrix(), testLogger()).(*matchScoringService)

	require.Equal(t, 1.0, svc.availabilityCompatibility("internship", "Internship"))
	require.Equal(t, 0.6, svc.availabilityCompatibility("internship", "part-time"))
	require.Equal(t, 0.0, svc.availabilityCompatibility("internship", "volunteer"))
}

func TestInterestAlignmentDefaultsNeutral(t *testing.T) {
	require.Equal(t, 0.5, interestAlignment(nil, "Technology"))
	require.Equal(t, 1.0, interestAlignment([]string{"technology"}, "Technology"))
	require.Equal(t, 0.5, interestAlignment([]string{"fintech technology", "gardening"}, "Technology"))
	require.Equal(t, 0.0, interestAlignment([]string{"gardening"}, "Technology"))
}

func TestTimelineRelevanceLadder(t *testing.T) {
	svc := NewMatchScoringService(nil, DefaultMatchWeights(), DefaultSkillSynonyms(), DefaultAvailabilityMatrix(), testLogger()).(*matchScoringService)
	svc.now = func() time.Time { return time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC) }

	require.Equal(t, 1.0, svc.timelineRelevance(2026))
	require.Equal(t, 0.9, svc.timelineRelevance(2027))
	require.Equal(t, 0.7, svc.timelineRelevance(2028))
	require.Equal(t, 0.5, svc.timelineRelevance(2029))
	require.Equal(t, 0.3, svc.timelineRelevance(2025))
}

func TestExplainRuleBasedMentionsSkills(t *testing.T) {
	svc := newRuleOnlyScorer(t, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	organization := models.Organization{ID: 3, Name: "Kiwi Software", Industry: "Technology"}

	rationale := svc.Explain(context.Background(), scenarioCandidate(), organization, scenarioPosting())
	require.Contains(t, rationale, "Python")
	require.Contains(t, rationale, "Django")
	require.Contains(t, rationale, "Kiwi Software")
}

func TestExplainUsesRemoteTierWhenAvailable(t *testing.T) {
	remote := &fakeMatchScorer{rationale: "Strong skill and location alignment."}
	svc := NewMatchScoringService(remote, DefaultMatchWeights(), DefaultSkillSynonyms(), DefaultAvailabilityMatrix(), testLogger())

	rationale := svc.Explain(context.Background(), scenarioCandidate(), models.Organization{}, scenarioPosting())
	require.Equal(t, "Strong skill and location alignment.", rationale)
}
