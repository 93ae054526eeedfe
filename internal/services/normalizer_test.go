package services

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeAnalysisCanonicalResponse(t *testing.T) {
	raw := `{"JD Match":"60%","MissingKeywords":["AWS","Kubernetes"],"Profile Summary":"Good backend fit"}`

	result := NormalizeAnalysis(raw)

	if result.JDMatch != "60%" {
		t.Fatalf("expected match 60%%, got %q", result.JDMatch)
	}

	if !reflect.DeepEqual(result.MissingKeywords, []string{"AWS", "Kubernetes"}) {
		t.Fatalf("unexpected keywords: %v", result.MissingKeywords)
	}

	if result.ProfileSummary != "Good backend fit" {
		t.Fatalf("unexpected summary: %q", result.ProfileSummary)
	}
}

func TestNormalizeAnalysisFencedSingleQuoted(t *testing.T) {
	raw := "```json\n{'JD Match':'40%','MissingKeywords':[],'Profile Summary':'Needs more cloud experience'}\n```"

	result := NormalizeAnalysis(raw)

	if result.JDMatch != "40%" {
		t.Fatalf("expected match 40%%, got %q", result.JDMatch)
	}

	if len(result.MissingKeywords) != 0 {
		t.Fatalf("expected no keywords, got %v", result.MissingKeywords)
	}

	if result.ProfileSummary != "Needs more cloud experience" {
		t.Fatalf("unexpected summary: %q", result.ProfileSummary)
	}
}

func TestNormalizeAnalysisFenceStripping(t *testing.T) {
	content := `{"JD Match":"75%","MissingKeywords":["Go"],"Profile Summary":"Solid"}`

	cases := []struct {
		name string
		raw  string
	}{
		{name: "unwrapped", raw: content},
		{name: "fenced", raw: "```\n" + content + "\n```"},
		{name: "fenced with language tag", raw: "```json\n" + content + "\n```"},
		{name: "fenced with surrounding whitespace", raw: "\n\n```json\n" + content + "\n```\n\n"},
	}

	want := NormalizeAnalysis(content)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeAnalysis(tc.raw)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("expected %+v, got %+v", want, got)
			}
		})
	}
}

func TestNormalizeAnalysisKeyFallback(t *testing.T) {
	primary := `{"JD Match":"55%","MissingKeywords":["Rust"],"Profile Summary":"Promising"}`
	secondary := `{"jd_match":"55%","missing_keywords":["Rust"],"profile_summary":"Promising"}`

	if got, want := NormalizeAnalysis(secondary), NormalizeAnalysis(primary); !reflect.DeepEqual(got, want) {
		t.Fatalf("secondary keys produced %+v, primary produced %+v", got, want)
	}
}

func TestNormalizeAnalysisKeywordStringCoercion(t *testing.T) {
	raw := `{"JD Match":"30%","MissingKeywords":"Python, Docker,  AWS","Profile Summary":"ok"}`

	result := NormalizeAnalysis(raw)

	if !reflect.DeepEqual(result.MissingKeywords, []string{"Python", "Docker", "AWS"}) {
		t.Fatalf("unexpected keywords: %v", result.MissingKeywords)
	}
}

func TestNormalizeAnalysisDefaults(t *testing.T) {
	result := NormalizeAnalysis(`{"something_else": true}`)

	if result.JDMatch != "0%" {
		t.Fatalf("expected default match, got %q", result.JDMatch)
	}

	if len(result.MissingKeywords) != 0 {
		t.Fatalf("expected no keywords, got %v", result.MissingKeywords)
	}

	if result.ProfileSummary != "No summary available" {
		t.Fatalf("expected default summary, got %q", result.ProfileSummary)
	}
}

func TestNormalizeAnalysisNoJSON(t *testing.T) {
	raw := "I cannot process this request."

	result := NormalizeAnalysis(raw)

	if result.JDMatch != "0%" {
		t.Fatalf("expected default match, got %q", result.JDMatch)
	}

	if len(result.MissingKeywords) != 0 {
		t.Fatalf("expected no keywords, got %v", result.MissingKeywords)
	}

	if result.ProfileSummary != raw {
		t.Fatalf("expected raw text as summary, got %q", result.ProfileSummary)
	}
}

func TestNormalizeAnalysisTruncatesLongProse(t *testing.T) {
	raw := strings.Repeat("a", 600)

	result := NormalizeAnalysis(raw)

	if !strings.HasSuffix(result.ProfileSummary, "...") {
		t.Fatalf("expected truncation marker, got %q", result.ProfileSummary)
	}

	if got := len([]rune(result.ProfileSummary)); got != 503 {
		t.Fatalf("expected 503 runes, got %d", got)
	}
}

func TestNormalizeAnalysisTotality(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t  ",
		"plain prose with no structure",
		"{",
		"}{",
		"{{{",
		"{broken json",
		`{"JD Match":}`,
		"```json\n```",
		"``````",
		"null",
		"[1,2,3]",
		`{"MissingKeywords": 42}`,
		`{"JD Match": ["not","a","string"]}`,
	}

	for _, input := range inputs {
		result := NormalizeAnalysis(input)

		if result.JDMatch == "" {
			t.Fatalf("empty match for input %q", input)
		}

		if result.MissingKeywords == nil {
			t.Fatalf("nil keywords for input %q", input)
		}

		if result.ProfileSummary == "" {
			t.Fatalf("empty summary for input %q", input)
		}
	}
}

func TestNormalizeAnalysisIdempotent(t *testing.T) {
	first := NormalizeAnalysis(`{"JD Match":"60%","MissingKeywords":["AWS","Kubernetes"],"Profile Summary":"Good backend fit"}`)

	serialized, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := NormalizeAnalysis(string(serialized))

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("normalization not idempotent: %+v vs %+v", first, second)
	}
}

func TestNormalizeAnalysisIgnoresSurroundingProse(t *testing.T) {
	raw := "Sure, here is the evaluation you asked for:\n" +
		`{"JD Match":"82%","MissingKeywords":["Terraform"],"Profile Summary":"Strong match"}` +
		"\nLet me know if you need anything else."

	result := NormalizeAnalysis(raw)

	if result.JDMatch != "82%" {
		t.Fatalf("expected match 82%%, got %q", result.JDMatch)
	}

	if result.ProfileSummary != "Strong match" {
		t.Fatalf("unexpected summary: %q", result.ProfileSummary)
	}
}
