package ai

import (
	"fmt"
	"strings"
)

func matchSystemPrompt() string {
	return "You are a recruitment matching assistant for a graduate talent programme. " +
		"Score candidate-to-posting compatibility from 0 to 100. Weight skill overlap most heavily (40%), " +
		"then location compatibility (20%), availability fit (15%), interest-to-industry alignment (10%), " +
		"graduation timeline (10%), and profile completeness (5%). Respond with a single integer only."
}

func buildMatchPrompt(input MatchInput) string {
	builder := strings.Builder{}
	builder.WriteString("# Candidate\n")
	builder.WriteString("Name: " + input.CandidateName + "\n")
	builder.WriteString("Institution: " + input.Institution + "\n")
	builder.WriteString("Degree: " + input.Degree + "\n")
	builder.WriteString(fmt.Sprintf("Graduation year: %d\n", input.GraduationYear))
	builder.WriteString("Skills: " + joinList(input.Skills) + "\n")
	builder.WriteString("Interests: " + joinList(input.Interests) + "\n")
	builder.WriteString("Location: " + input.Location + "\n")
	builder.WriteString("Availability: " + input.Availability + "\n")
	if input.Bio != "" {
		builder.WriteString("Bio: " + input.Bio + "\n")
	}
	builder.WriteString("\n# Organization\n")
	builder.WriteString("Name: " + input.OrganizationName + "\n")
	builder.WriteString("Industry: " + input.Industry + "\n")
	builder.WriteString("Size: " + input.OrganizationSize + "\n")
	builder.WriteString("\n# Posting\n")
	builder.WriteString("Title: " + input.PostingTitle + "\n")
	builder.WriteString("Required skills: " + joinList(input.RequiredSkills) + "\n")
	builder.WriteString("Location: " + input.PostingLocation + "\n")
	builder.WriteString("Employment mode: " + input.EmploymentMode + "\n")
	builder.WriteString("Description: " + input.Description + "\n")
	builder.WriteString("\nReturn one integer between 0 and 100.")
	return builder.String()
}

func buildExplainPrompt(input MatchInput) string {
	builder := strings.Builder{}
	builder.WriteString("Explain in two or three sentences why candidate ")
	builder.WriteString(input.CandidateName)
	builder.WriteString(" fits or does not fit the posting \"")
	builder.WriteString(input.PostingTitle)
	builder.WriteString("\" at ")
	builder.WriteString(input.OrganizationName)
	builder.WriteString(".\nCandidate skills: " + joinList(input.Skills))
	builder.WriteString("\nRequired skills: " + joinList(input.RequiredSkills))
	builder.WriteString("\nCandidate location: " + input.Location + ", availability: " + input.Availability)
	builder.WriteString("\nPosting location: " + input.PostingLocation + ", employment mode: " + input.EmploymentMode)
	builder.WriteString("\nWrite plain prose, no markdown.")
	return builder.String()
}

func qualitySystemPrompt() string {
	return "You are a job posting quality reviewer. Assess completeness, clarity, and inclusive language. " +
		"Respond with a JSON object containing score (integer 0-10), notes (array of strings describing what is good), " +
		"and suggestions (array of strings describing concrete improvements)."
}

func buildQualityPrompt(input PostingInput) string {
	builder := strings.Builder{}
	builder.WriteString("# Posting\n")
	builder.WriteString("Title: " + input.Title + "\n")
	builder.WriteString("Required skills: " + joinList(input.RequiredSkills) + "\n")
	builder.WriteString(fmt.Sprintf("Salary range provided: %t\n", input.HasSalaryRange))
	builder.WriteString(fmt.Sprintf("Application deadline provided: %t\n", input.HasDeadline))
	builder.WriteString("\n## Description\n")
	builder.WriteString(input.Description)
	builder.WriteString("\n\nReturn JSON.")
	return builder.String()
}

func buildEnhancePrompt(input PostingInput) string {
	builder := strings.Builder{}
	builder.WriteString("Rewrite the following job description for the posting \"")
	builder.WriteString(input.Title)
	builder.WriteString("\" so it is clear, complete, and welcoming to applicants from all backgrounds. ")
	builder.WriteString("Keep every factual detail. Add an inclusivity statement and application instructions if missing. ")
	builder.WriteString("Return plain text only.\n\n")
	builder.WriteString(input.Description)
	return builder.String()
}

func extractSystemPrompt() string {
	return "You extract profile fields from CV or transcript text. Respond with a JSON object containing " +
		"name, institution, degree (strings, empty when absent) and graduation_year (integer, 0 when absent)."
}

func joinList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
