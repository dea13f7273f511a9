package service

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/shanexuu/sot-command-center/internal/dto"
	"github.com/shanexuu/sot-command-center/internal/models"
	"github.com/shanexuu/sot-command-center/pkg/ai"
)

const (
	minDescriptionLength = 200
	minRequiredSkills    = 3
	maxQualityScore      = 10
)

// inclusiveMarkers signal the posting welcomes a broad applicant pool.
var inclusiveMarkers = []string{
	"all backgrounds", "diverse", "diversity", "inclusive", "inclusion",
	"equal opportunity", "encourage", "accessibility", "accommodations",
}

// biasedMarkers are flagged exclusionary or cliquey phrasings.
var biasedMarkers = []string{
	"rockstar", "ninja", "guru", "wizard", "young", "energetic culture",
	"manpower", "work hard play hard", "aggressive",
}

// Templated sections the rule-based enhancer appends for failed checklist
// items.
const (
	inclusivityStatement = "We welcome applicants from all backgrounds and are committed to building a diverse, inclusive team. " +
		"If you need accommodations at any stage of the process, let us know."
	cultureStatement = "You will join a supportive team that invests in mentoring, pairs you with experienced engineers, " +
		"and gives you real ownership of your work from day one."
	applicationInstructions = "To apply, submit your profile through the programme portal. " +
		"Shortlisted candidates will be contacted for an interview."
)

// JobQualityService scores posting completeness and assembles an enhanced
// description, attempting the remote model first and falling back to the
// checklist rules.
type JobQualityService interface {
	Assess(ctx context.Context, posting models.Posting) dto.PostingAssessment
	Enhance(ctx context.Context, posting models.Posting) string
}

type jobQualityService struct {
	remote    ai.PostingScorer
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewJobQualityService constructs the posting quality scorer. remote may be
// nil, in which case only the rule-based tier runs.
func NewJobQualityService(remote ai.PostingScorer, logger zerolog.Logger) JobQualityService {
	return &jobQualityService{
		remote:    remote,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "job_quality_service").Logger(),
	}
}

func (s *jobQualityService) Assess(ctx context.Context, posting models.Posting) dto.PostingAssessment {
	if s.remote != nil {
		result, err := s.remote.ScorePosting(ctx, buildPostingInput(posting))
		if err == nil {
			return dto.PostingAssessment{
				Score:       result.Score,
				Tier:        dto.ScoreTierModel,
				Notes:       result.Notes,
				Suggestions: result.Suggestions,
			}
		}
		s.logger.Debug().Err(err).Uint("posting_id", posting.ID).Msg("remote quality scoring failed, using rule-based tier")
	}

	return s.ruleAssess(posting)
}

// ruleAssess awards fixed points per checklist item, capped at 10.
func (s *jobQualityService) ruleAssess(posting models.Posting) dto.PostingAssessment {
	assessment := dto.PostingAssessment{Tier: dto.ScoreTierRules}
	score := 0

	if len(posting.Description) >= minDescriptionLength {
		score += 2
		assessment.Notes = append(assessment.Notes, "description is detailed")
	} else {
		assessment.Suggestions = append(assessment.Suggestions, "expand the description to at least 200 characters")
	}

	if len(posting.RequiredSkills) >= minRequiredSkills {
		score += 2
		assessment.Notes = append(assessment.Notes, "required skills are specified")
	} else {
		assessment.Suggestions = append(assessment.Suggestions, "list at least three required skills")
	}

	if posting.HasSalaryRange() {
		score += 2
		assessment.Notes = append(assessment.Notes, "salary range is transparent")
	} else {
		assessment.Suggestions = append(assessment.Suggestions, "publish both salary bounds")
	}

	if posting.Deadline != nil {
		score++
		assessment.Notes = append(assessment.Notes, "application deadline is set")
	} else {
		assessment.Suggestions = append(assessment.Suggestions, "set an application deadline")
	}

	if containsAnyMarker(posting.Description, inclusiveMarkers) {
		score += 2
		assessment.Notes = append(assessment.Notes, "uses inclusive language")
	} else {
		assessment.Suggestions = append(assessment.Suggestions, "add an inclusivity statement")
	}

	if !containsAnyMarker(posting.Description, biasedMarkers) {
		score++
		assessment.Notes = append(assessment.Notes, "free of flagged biased language")
	} else {
		assessment.Suggestions = append(assessment.Suggestions, "remove exclusionary phrasing such as rockstar or ninja")
	}

	if score > maxQualityScore {
		score = maxQualityScore
	}
	assessment.Score = score

	return assessment
}

// Enhance produces an improved description. All output is sanitized before it
// reaches the store since the external UI renders it.
func (s *jobQualityService) Enhance(ctx context.Context, posting models.Posting) string {
	if s.remote != nil {
		enhanced, err := s.remote.EnhanceDescription(ctx, buildPostingInput(posting))
		if err == nil {
			return strings.TrimSpace(s.sanitizer.Sanitize(enhanced))
		}
		s.logger.Debug().Err(err).Uint("posting_id", posting.ID).Msg("remote enhancement failed, using rule-based tier")
	}

	return strings.TrimSpace(s.sanitizer.Sanitize(s.ruleEnhance(posting)))
}

// ruleEnhance appends templated sections keyed off the failed checklist
// items.
func (s *jobQualityService) ruleEnhance(posting models.Posting) string {
	sections := []string{strings.TrimSpace(posting.Description)}

	if len(posting.Description) < minDescriptionLength {
		sections = append(sections, cultureStatement)
	}

	if !containsAnyMarker(posting.Description, inclusiveMarkers) {
		sections = append(sections, inclusivityStatement)
	}

	if posting.Deadline == nil {
		sections = append(sections, applicationInstructions)
	}

	return strings.Join(sections, "\n\n")
}

func containsAnyMarker(text string, markers []string) bool {
	lowered := strings.ToLower(text)
	for _, marker := range markers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

func buildPostingInput(posting models.Posting) ai.PostingInput {
	return ai.PostingInput{
		Title:          posting.Title,
		Description:    posting.Description,
		RequiredSkills: posting.RequiredSkills,
		HasSalaryRange: posting.HasSalaryRange(),
		HasDeadline:    posting.Deadline != nil,
	}
}
