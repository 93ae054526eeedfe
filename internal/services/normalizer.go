package services

import (
	"encoding/json"
	"strings"

	"alfredoptarigan/smart-ats/internal/models"
)

const (
	defaultMatch   = "0%"
	defaultSummary = "No summary available"

	// maxFallbackSummaryRunes bounds how much raw model output is echoed back
	// when no JSON object can be recovered from it.
	maxFallbackSummaryRunes = 500
)

// NormalizeAnalysis converts raw model output into an AnalysisResult. The model
// is not a contractually typed API: the text may be fenced, single-quoted,
// use alternate key names or contain no JSON at all. This function is total —
// it never fails, it only degrades.
func NormalizeAnalysis(raw string) models.AnalysisResult {
	trimmed := strings.TrimSpace(raw)

	candidate, found := extractJSONObject(stripCodeFences(trimmed))
	if !found {
		return fallbackResult(trimmed)
	}

	fields, err := parseObject(candidate)
	if err != nil {
		// One repair pass for the usual model sins, then give up.
		fields, err = parseObject(repairJSON(candidate))
		if err != nil {
			return models.AnalysisResult{
				JDMatch:         defaultMatch,
				MissingKeywords: []string{},
				ProfileSummary:  "Error parsing response: " + err.Error(),
			}
		}
	}

	return models.AnalysisResult{
		JDMatch:         resolveString(fields, defaultMatch, "JD Match", "jd_match"),
		MissingKeywords: resolveKeywords(fields, "MissingKeywords", "missing_keywords"),
		ProfileSummary:  resolveString(fields, defaultSummary, "Profile Summary", "profile_summary"),
	}
}

// stripCodeFences removes a leading ```lang line and a trailing ``` line.
func stripCodeFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx != -1 {
		// Drop the language tag line, if any.
		text = text[idx+1:]
	} else {
		return strings.TrimSpace(strings.TrimSuffix(text, "```"))
	}

	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")

	return strings.TrimSpace(text)
}

// extractJSONObject slices the substring between the first '{' and the last
// '}' inclusive.
func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start == -1 || end == -1 || end <= start {
		return "", false
	}

	return text[start : end+1], true
}

// repairJSON applies the heuristic fixes for near-JSON model output: single
// quotes become double quotes and doubled double quotes collapse to one.
func repairJSON(candidate string) string {
	repaired := strings.ReplaceAll(candidate, "'", `"`)
	repaired = strings.ReplaceAll(repaired, `""`, `"`)
	return repaired
}

func parseObject(candidate string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// resolveString tries the candidate keys in priority order and returns the
// first string value, falling back to the default.
func resolveString(fields map[string]json.RawMessage, defaultValue string, keys ...string) string {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}

		var value string
		if err := json.Unmarshal(raw, &value); err == nil {
			return value
		}
	}

	return defaultValue
}

// resolveKeywords reads the keyword field as either a list of strings or a
// single comma-joined string.
func resolveKeywords(fields map[string]json.RawMessage, keys ...string) []string {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}

		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			if list == nil {
				list = []string{}
			}
			return list
		}

		var joined string
		if err := json.Unmarshal(raw, &joined); err == nil {
			return splitKeywords(joined)
		}
	}

	return []string{}
}

func splitKeywords(joined string) []string {
	keywords := []string{}
	for _, part := range strings.Split(joined, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			keywords = append(keywords, part)
		}
	}
	return keywords
}

// fallbackResult wraps unstructured model output into the contract, keeping a
// bounded slice of the raw text as the summary.
func fallbackResult(trimmed string) models.AnalysisResult {
	summary := trimmed
	if runes := []rune(summary); len(runes) > maxFallbackSummaryRunes {
		summary = string(runes[:maxFallbackSummaryRunes]) + "..."
	}

	if summary == "" {
		summary = defaultSummary
	}

	return models.AnalysisResult{
		JDMatch:         defaultMatch,
		MissingKeywords: []string{},
		ProfileSummary:  summary,
	}
}
