package dto

// EligibilityResult is the outcome of an eligibility check. It is derived on
// demand from the declared profile and never persisted.
type EligibilityResult struct {
	Eligible              bool     `json:"eligible"`
	Reason                string   `json:"reason"`
	RecognizedInstitution bool     `json:"recognized_institution"`
	MonthsSinceGraduation int      `json:"months_since_graduation"`
	Warnings              []string `json:"warnings,omitempty"`
}
