package services

import (
	"strings"
	"testing"
)

func TestBuildMatchPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	resume := "5 years Python, Flask, Docker"
	jd := "Need Python developer with Flask, AWS, Kubernetes"

	prompt := pb.BuildMatchPrompt(resume, jd)

	if !strings.Contains(prompt, resume) {
		t.Fatal("expected prompt to embed the resume text")
	}

	if !strings.Contains(prompt, jd) {
		t.Fatal("expected prompt to embed the job description")
	}

	for _, field := range []string{"JD Match", "MissingKeywords", "Profile Summary"} {
		if !strings.Contains(prompt, field) {
			t.Fatalf("expected prompt to name the %q field", field)
		}
	}

	if !strings.Contains(prompt, "ATS") {
		t.Fatal("expected prompt to state the ATS evaluator role")
	}
}

func TestBuildMatchPromptDeterministic(t *testing.T) {
	pb := NewPromptBuilder()

	first := pb.BuildMatchPrompt("resume", "job")
	second := pb.BuildMatchPrompt("resume", "job")

	if first != second {
		t.Fatal("expected identical prompts for identical inputs")
	}
}
