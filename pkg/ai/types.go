package ai

import "context"

// MatchInput carries the structured attributes of both parties that are
// embedded into a match scoring prompt.
type MatchInput struct {
	CandidateName    string
	Institution      string
	Degree           string
	GraduationYear   int
	Skills           []string
	Interests        []string
	Location         string
	Availability     string
	Bio              string
	OrganizationName string
	Industry         string
	OrganizationSize string
	PostingTitle     string
	RequiredSkills   []string
	PostingLocation  string
	EmploymentMode   string
	Description      string
}

// PostingInput carries the posting attributes used for quality scoring and
// description enhancement.
type PostingInput struct {
	Title          string
	Description    string
	RequiredSkills []string
	HasSalaryRange bool
	HasDeadline    bool
}

// QualityResult is the structured payload expected from a quality scoring
// call.
type QualityResult struct {
	Score       int      `json:"score"`
	Notes       []string `json:"notes"`
	Suggestions []string `json:"suggestions"`
}

// ProfileFields holds profile data extracted from document text.
type ProfileFields struct {
	Name           string `json:"name"`
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	GraduationYear int    `json:"graduation_year"`
}

// MatchScorer describes a model capable of scoring and explaining a
// candidate-to-posting match.
type MatchScorer interface {
	ScoreMatch(ctx context.Context, input MatchInput) (int, error)
	ExplainMatch(ctx context.Context, input MatchInput) (string, error)
}

// PostingScorer describes a model capable of assessing posting quality and
// producing an improved description.
type PostingScorer interface {
	ScorePosting(ctx context.Context, input PostingInput) (QualityResult, error)
	EnhanceDescription(ctx context.Context, input PostingInput) (string, error)
}

// ProfileExtractor describes a model capable of pulling structured profile
// fields out of already extracted document text.
type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, text string) (ProfileFields, error)
}
