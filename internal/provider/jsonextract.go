package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"video-profile-extractor/internal/domain"
)

// ExtractJSONObject returns the first balanced {...} span found anywhere in s.
// Models wrap JSON in prose or code fences, so the scan starts at the first
// opening brace and tracks brace depth with full string/escape awareness:
// braces inside JSON string values do not count, and the span closes on the
// brace that returns the depth to zero. It is deliberately the FIRST balanced
// span, not the largest or the last.
func ExtractJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", fmt.Errorf("%w: no opening brace", domain.ErrProfileParse)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("%w: unbalanced braces", domain.ErrProfileParse)
}

// parseProfile decodes the first JSON object in a model response into
// ProfileData. Fields the model left empty get the NotSpecified sentinel so
// downstream prompts never see a hole.
func parseProfile(responseText string) (*domain.ProfileData, error) {
	raw, err := ExtractJSONObject(responseText)
	if err != nil {
		return nil, err
	}

	var profile domain.ProfileData
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProfileParse, err)
	}

	for _, f := range []*string{
		&profile.Name, &profile.Profession, &profile.Experience, &profile.Education,
		&profile.Technologies, &profile.Languages, &profile.Achievements, &profile.SoftSkills,
	} {
		if strings.TrimSpace(*f) == "" {
			*f = domain.NotSpecified
		}
	}
	return &profile, nil
}
