package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Analysis is the normalized result of one CV analysis. Every field always
// holds a safe value; normalization never produces a partial result.
type Analysis struct {
	Skills          []string `json:"skills"`
	Summary         string   `json:"summary"`
	ExperienceLevel string   `json:"experience_level"`
	AIScore         float64  `json:"ai_score"`
	Suggestions     string   `json:"suggestions"`
}

// NormalizeAnalysis parses the raw assistant reply into an Analysis. The
// reply is semi-structured at best: models wrap JSON in prose or markdown and
// occasionally emit single-quoted pseudo-JSON, so several recovery strategies
// are tried before giving up with a ParseError.
func NormalizeAnalysis(text string) (*Analysis, error) {
	obj, err := extractJSONObject(text)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Skills:          coerceSkills(obj["skills"]),
		Summary:         coerceString(obj["summary"]),
		ExperienceLevel: coerceString(obj["experience_level"]),
		AIScore:         coerceScore(obj["ai_score"]),
		Suggestions:     coerceString(obj["suggestions"]),
	}, nil
}

// extractJSONObject recovers a JSON object from free text. Strategies, in
// order: strict parse of the whole text, the substring spanning the first "{"
// through the last "}", then the same substring with single quotes swapped
// for double quotes.
func extractJSONObject(text string) (map[string]interface{}, error) {
	trimmed := strings.TrimSpace(text)

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
		return obj, nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &ParseError{Text: text}
	}
	candidate := trimmed[start : end+1]

	if err := json.Unmarshal([]byte(candidate), &obj); err == nil {
		return obj, nil
	}

	// Best-effort recovery from single-quoted pseudo-JSON
	requoted := strings.ReplaceAll(candidate, "'", "\"")
	if err := json.Unmarshal([]byte(requoted), &obj); err == nil {
		return obj, nil
	}

	return nil, &ParseError{Text: text}
}

// coerceSkills accepts an array of values or a single comma-separated string;
// anything else yields an empty slice.
func coerceSkills(v interface{}) []string {
	switch val := v.(type) {
	case []interface{}:
		skills := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				skills = append(skills, s)
			}
		}
		return skills
	case string:
		parts := strings.Split(val, ",")
		skills := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				skills = append(skills, p)
			}
		}
		return skills
	default:
		return []string{}
	}
}

func coerceString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// coerceScore defaults to 0.0 on any failure and never returns NaN or Inf.
func coerceScore(v interface{}) float64 {
	var score float64
	switch val := v.(type) {
	case float64:
		score = val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0.0
		}
		score = parsed
	default:
		return 0.0
	}

	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0.0
	}
	return score
}
