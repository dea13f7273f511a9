package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseScoreResponse(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{name: "bare integer", content: "87", want: 87},
		{name: "surrounding whitespace", content: "  42  ", want: 42},
		{name: "trailing period", content: "63.", want: 63},
		{name: "lower bound", content: "0", want: 0},
		{name: "upper bound", content: "100", want: 100},
		{name: "prose answer", content: "The score is 85", wantErr: true},
		{name: "empty", content: "", wantErr: true},
		{name: "above range", content: "150", wantErr: true},
		{name: "negative", content: "-5", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, err := parseScoreResponse(tc.content, 0, 100)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, score)
		})
	}
}

func TestParseQualityResponseValidPayload(t *testing.T) {
	content := `{"score": 7, "notes": ["salary range present"], "suggestions": ["add an application deadline"]}`

	result, err := parseQualityResponse(content)
	require.NoError(t, err)
	require.Equal(t, 7, result.Score)
	require.Equal(t, []string{"salary range present"}, result.Notes)
	require.Equal(t, []string{"add an application deadline"}, result.Suggestions)
}

func TestParseQualityResponseRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "looks good to me"},
		{name: "missing required key", content: `{"score": 7, "notes": []}`},
		{name: "score above range", content: `{"score": 15, "notes": [], "suggestions": []}`},
		{name: "non-integer score", content: `{"score": 7.5, "notes": [], "suggestions": []}`},
		{name: "wrong notes type", content: `{"score": 7, "notes": "fine", "suggestions": []}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseQualityResponse(tc.content)
			require.Error(t, err)
		})
	}
}

func TestParseProfileResponse(t *testing.T) {
	content := `{"name": "Aroha Ngata", "institution": "AUT", "degree": "Bachelor of Computer Science", "graduation_year": 2026}`

	fields, err := parseProfileResponse(content)
	require.NoError(t, err)
	require.Equal(t, "Aroha Ngata", fields.Name)
	require.Equal(t, "AUT", fields.Institution)
	require.Equal(t, "Bachelor of Computer Science", fields.Degree)
	require.Equal(t, 2026, fields.GraduationYear)
}

func TestParseProfileResponsePartialPayload(t *testing.T) {
	// Missing keys stay zero so downstream comparison treats them as
	// un-extractable rather than erroring.
	fields, err := parseProfileResponse(`{"name": "Aroha Ngata"}`)
	require.NoError(t, err)
	require.Equal(t, "Aroha Ngata", fields.Name)
	require.Empty(t, fields.Institution)
	require.Zero(t, fields.GraduationYear)
}

func TestParseProfileResponseRejectsNonJSON(t *testing.T) {
	_, err := parseProfileResponse("Name: Aroha Ngata")
	require.Error(t, err)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test-key"})
	require.NoError(t, err)
	require.Equal(t, "gpt-4o-mini", client.cfg.Model)
	require.Equal(t, 512, client.cfg.MaxTokens)
}
