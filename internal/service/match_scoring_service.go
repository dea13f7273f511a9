package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shanexuu/sot-command-center/internal/dto"
	"github.com/shanexuu/sot-command-center/internal/models"
	"github.com/shanexuu/sot-command-center/pkg/ai"
)

// MatchWeights are the fixed component weights of the rule-based scorer.
// Each component is normalized to [0,1] before weighting.
type MatchWeights struct {
	Skills       float64
	Location     float64
	Availability float64
	Interests    float64
	Timeline     float64
	Completeness float64
}

// DefaultMatchWeights returns the contractual weight values.
func DefaultMatchWeights() MatchWeights {
	return MatchWeights{
		Skills:       0.40,
		Location:     0.20,
		Availability: 0.15,
		Interests:    0.10,
		Timeline:     0.10,
		Completeness: 0.05,
	}
}

// SkillSynonyms maps a required skill to candidate skills that partially
// satisfy it. Lookup is directional: knowing Django partially satisfies a
// Python requirement, but knowing Python does not satisfy a Django
// requirement.
type SkillSynonyms map[string][]string

// DefaultSkillSynonyms returns the hand-maintained skill family table.
func DefaultSkillSynonyms() SkillSynonyms {
	return SkillSynonyms{
		"python":     {"django", "flask", "fastapi", "pandas", "numpy"},
		"javascript": {"react", "vue", "angular", "node", "node.js", "typescript"},
		"java":       {"spring", "spring boot", "kotlin"},
		"c#":         {".net", "asp.net", "dotnet"},
		"sql":        {"postgresql", "mysql", "sqlite", "sql server"},
		"go":         {"golang"},
		"devops":     {"docker", "kubernetes", "terraform", "ci/cd"},
	}
}

// AvailabilityMatrix holds partial compatibility weights between a candidate
// availability mode and a posting employment mode when they differ.
type AvailabilityMatrix map[string]map[string]float64

// DefaultAvailabilityMatrix returns the fixed compatibility matrix.
func DefaultAvailabilityMatrix() AvailabilityMatrix {
	return AvailabilityMatrix{
		"internship": {"part-time": 0.6, "full-time": 0.4, "contract": 0.3},
		"part-time":  {"internship": 0.6, "contract": 0.5, "full-time": 0.3},
		"full-time":  {"contract": 0.5, "part-time": 0.3, "internship": 0.2},
		"contract":   {"part-time": 0.5, "full-time": 0.5, "internship": 0.2},
	}
}

// MatchScoringService computes a 0-100 compatibility score between a
// candidate and a posting. A remote model tier is attempted first when
// configured; any failure falls back to the deterministic rule scorer, so
// scoring itself never fails.
type MatchScoringService interface {
	Score(ctx context.Context, candidate models.Candidate, organization models.Organization, posting models.Posting) dto.MatchAssessment
	Explain(ctx context.Context, candidate models.Candidate, organization models.Organization, posting models.Posting) string
}

type matchScoringService struct {
	remote       ai.MatchScorer
	weights      MatchWeights
	synonyms     SkillSynonyms
	availability AvailabilityMatrix
	logger       zerolog.Logger
	now          func() time.Time
}

// NewMatchScoringService constructs the match scorer. remote may be nil, in
// which case only the rule-based tier runs.
func NewMatchScoringService(remote ai.MatchScorer, weights MatchWeights, synonyms SkillSynonyms, availability AvailabilityMatrix, logger zerolog.Logger) MatchScoringService {
	return &matchScoringService{
		remote:       remote,
		weights:      weights,
		synonyms:     synonyms,
		availability: availability,
		logger:       logger.With().Str("component", "match_scoring_service").Logger(),
		now:          time.Now,
	}
}

func (s *matchScoringService) Score(ctx context.Context, candidate models.Candidate, organization models.Organization, posting models.Posting) dto.MatchAssessment {
	if s.remote != nil {
		score, err := s.remote.ScoreMatch(ctx, buildMatchInput(candidate, organization, posting))
		if err == nil {
			return dto.MatchAssessment{Score: score, Tier: dto.ScoreTierModel}
		}
		s.logger.Debug().Err(err).
			Uint("candidate_id", candidate.ID).
			Uint("posting_id", posting.ID).
			Msg("remote match scoring failed, using rule-based tier")
	}

	return s.ruleScore(candidate, organization, posting)
}

func (s *matchScoringService) Explain(ctx context.Context, candidate models.Candidate, organization models.Organization, posting models.Posting) string {
	if s.remote != nil {
		rationale, err := s.remote.ExplainMatch(ctx, buildMatchInput(candidate, organization, posting))
		if err == nil {
			return rationale
		}
		s.logger.Debug().Err(err).
			Uint("candidate_id", candidate.ID).
			Uint("posting_id", posting.ID).
			Msg("remote rationale failed, using rule-based tier")
	}

	return s.ruleExplain(candidate, organization, posting)
}

// ruleScore is the deterministic fallback: a weighted sum of six normalized
// components, rounded to an integer and clamped to [0,100].
func (s *matchScoringService) ruleScore(candidate models.Candidate, organization models.Organization, posting models.Posting) dto.MatchAssessment {
	components := map[string]float64{
		"skills":       s.skillOverlap(candidate.Skills, posting.RequiredSkills),
		"location":     locationCompatibility(candidate.Location, posting.Location),
		"availability": s.availabilityCompatibility(candidate.Availability, posting.EmploymentMode),
		"interests":    interestAlignment(candidate.Interests, organization.Industry),
		"timeline":     s.timelineRelevance(candidate.GraduationYear),
		"completeness": profileCompleteness(candidate),
	}

	sum := components["skills"]*s.weights.Skills +
		components["location"]*s.weights.Location +
		components["availability"]*s.weights.Availability +
		components["interests"]*s.weights.Interests +
		components["timeline"]*s.weights.Timeline +
		components["completeness"]*s.weights.Completeness

	score := int(math.Round(sum * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return dto.MatchAssessment{Score: score, Tier: dto.ScoreTierRules, Components: components}
}

func (s *matchScoringService) ruleExplain(candidate models.Candidate, organization models.Organization, posting models.Posting) string {
	assessment := s.ruleScore(candidate, organization, posting)

	matched := make([]string, 0, len(posting.RequiredSkills))
	missing := make([]string, 0, len(posting.RequiredSkills))
	for _, required := range posting.RequiredSkills {
		if s.bestSkillSimilarity(required, candidate.Skills) > 0 {
			matched = append(matched, required)
		} else {
			missing = append(missing, required)
		}
	}

	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("%s scores %d/100 for %q at %s.", candidate.FullName, assessment.Score, posting.Title, organization.Name))
	if len(matched) > 0 {
		builder.WriteString(" Covers required skills: " + strings.Join(matched, ", ") + ".")
	}
	if len(missing) > 0 {
		builder.WriteString(" Missing required skills: " + strings.Join(missing, ", ") + ".")
	}
	if candidate.Availability == posting.EmploymentMode && candidate.Availability != "" {
		builder.WriteString(fmt.Sprintf(" Availability (%s) matches the posting.", candidate.Availability))
	}
	if assessment.Components["location"] >= 1.0 {
		builder.WriteString(" Locations align.")
	}
	return builder.String()
}

// skillOverlap is the mean best-similarity across required skills. Postings
// without required skills give no signal, so the component is neutral.
func (s *matchScoringService) skillOverlap(candidateSkills, requiredSkills []string) float64 {
	if len(requiredSkills) == 0 {
		return 0.5
	}

	total := 0.0
	for _, required := range requiredSkills {
		total += s.bestSkillSimilarity(required, candidateSkills)
	}
	return total / float64(len(requiredSkills))
}

func (s *matchScoringService) bestSkillSimilarity(required string, candidateSkills []string) float64 {
	best := 0.0
	for _, skill := range candidateSkills {
		if sim := s.skillSimilarity(required, skill); sim > best {
			best = sim
		}
	}
	return best
}

// skillSimilarity: 1.0 exact (case-insensitive), 0.8 substring containment
// either direction, 0.6 same synonym family, else 0.
func (s *matchScoringService) skillSimilarity(required, candidate string) float64 {
	a := normalizeName(required)
	b := normalizeName(candidate)
	if a == "" || b == "" {
		return 0
	}

	if a == b {
		return 1.0
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.8
	}

	for _, member := range s.synonyms[a] {
		if normalizeName(member) == b {
			return 0.6
		}
	}

	return 0
}

// locationCompatibility never reaches zero: physical distance alone should
// not eliminate a match.
func locationCompatibility(candidateLocation, postingLocation string) float64 {
	a := normalizeName(candidateLocation)
	b := normalizeName(postingLocation)

	switch {
	case a != "" && a == b:
		return 1.0
	case a != "" && b != "" && (strings.Contains(a, b) || strings.Contains(b, a)):
		return 0.8
	case strings.Contains(b, "remote") || strings.Contains(b, "hybrid"):
		return 0.7
	default:
		return 0.3
	}
}

func (s *matchScoringService) availabilityCompatibility(availability, employmentMode string) float64 {
	a := normalizeName(availability)
	b := normalizeName(employmentMode)
	if a == "" || b == "" {
		return 0
	}

	if a == b {
		return 1.0
	}

	return s.availability[a][b]
}

// interestAlignment is the fraction of declared interests textually related
// to the organization's industry. No declared interests is absence of signal,
// not a penalty, so the component defaults to neutral.
func interestAlignment(interests []string, industry string) float64 {
	if len(interests) == 0 {
		return 0.5
	}

	target := normalizeName(industry)
	if target == "" {
		return 0.5
	}

	related := 0
	for _, interest := range interests {
		normalized := normalizeName(interest)
		if normalized == "" {
			continue
		}
		if strings.Contains(target, normalized) || strings.Contains(normalized, target) {
			related++
		}
	}

	return float64(related) / float64(len(interests))
}

// timelineRelevance rewards near-term availability.
func (s *matchScoringService) timelineRelevance(graduationYear int) float64 {
	delta := graduationYear - s.now().Year()
	switch {
	case delta < 0:
		return 0.3
	case delta == 0:
		return 1.0
	case delta == 1:
		return 0.9
	case delta == 2:
		return 0.7
	default:
		return 0.5
	}
}

// profileCompleteness is the populated fraction of the optional-field
// checklist: bio, external links, skills, interests, uploaded document.
func profileCompleteness(candidate models.Candidate) float64 {
	populated := 0
	if strings.TrimSpace(candidate.Bio) != "" {
		populated++
	}
	if candidate.HasLinks() {
		populated++
	}
	if len(candidate.Skills) > 0 {
		populated++
	}
	if len(candidate.Interests) > 0 {
		populated++
	}
	if candidate.HasDocument() {
		populated++
	}
	return float64(populated) / 5.0
}

func buildMatchInput(candidate models.Candidate, organization models.Organization, posting models.Posting) ai.MatchInput {
	return ai.MatchInput{
		CandidateName:    candidate.FullName,
		Institution:      candidate.Institution,
		Degree:           candidate.Degree,
		GraduationYear:   candidate.GraduationYear,
		Skills:           candidate.Skills,
		Interests:        candidate.Interests,
		Location:         candidate.Location,
		Availability:     candidate.Availability,
		Bio:              candidate.Bio,
		OrganizationName: organization.Name,
		Industry:         organization.Industry,
		OrganizationSize: organization.Size,
		PostingTitle:     posting.Title,
		RequiredSkills:   posting.RequiredSkills,
		PostingLocation:  posting.Location,
		EmploymentMode:   posting.EmploymentMode,
		Description:      posting.Description,
	}
}
