package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"
)

type stubGemini struct {
	responses []string
	errs      []error
	calls     int
}

func (s *stubGemini) GenerateText(_ context.Context, _ string) (string, error) {
	idx := s.calls
	s.calls++

	if idx < len(s.errs) && s.errs[idx] != nil {
		return "", s.errs[idx]
	}
	if idx < len(s.responses) {
		return s.responses[idx], nil
	}

	return "", errors.New("unexpected call")
}

func (s *stubGemini) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func TestAnalyzeSuccess(t *testing.T) {
	stub := &stubGemini{
		responses: []string{`{"JD Match":"73%","MissingKeywords":["AWS"],"Profile Summary":"Good fit"}`},
	}
	analyzer := NewAnalyzerService(stub, 2, 0)

	result := analyzer.Analyze(context.Background(), "5 years Python, Flask, Docker", "Need Python developer")

	if result.JDMatch != "73%" {
		t.Fatalf("expected match 73%%, got %q", result.JDMatch)
	}

	if stub.calls != 1 {
		t.Fatalf("expected a single invocation, got %d", stub.calls)
	}
}

func TestAnalyzeRetriesThenSucceeds(t *testing.T) {
	stub := &stubGemini{
		errs:      []error{errors.New("transient"), nil},
		responses: []string{"", `{"JD Match":"50%","MissingKeywords":[],"Profile Summary":"ok"}`},
	}
	analyzer := NewAnalyzerService(stub, 2, 0)

	result := analyzer.Analyze(context.Background(), "resume text", "job description")

	if result.JDMatch != "50%" {
		t.Fatalf("expected match 50%%, got %q", result.JDMatch)
	}

	if stub.calls != 2 {
		t.Fatalf("expected 2 invocations, got %d", stub.calls)
	}
}

func TestAnalyzeRetryExhaustion(t *testing.T) {
	failure := errors.New("model unavailable")
	stub := &stubGemini{
		errs: []error{failure, failure, failure},
	}
	analyzer := NewAnalyzerService(stub, 2, 0)

	resumeText := "5 years Python, Flask, Docker"
	result := analyzer.Analyze(context.Background(), resumeText, "Need Python developer")

	if stub.calls != 3 {
		t.Fatalf("expected 3 invocations (1 initial + 2 retries), got %d", stub.calls)
	}

	if result.JDMatch != "0%" {
		t.Fatalf("expected fallback match, got %q", result.JDMatch)
	}

	if result.MissingKeywords == nil || len(result.MissingKeywords) != 0 {
		t.Fatalf("expected empty keyword list, got %v", result.MissingKeywords)
	}

	if !strings.Contains(result.ProfileSummary, strconv.Itoa(len(resumeText))) {
		t.Fatalf("expected summary to reference the resume length, got %q", result.ProfileSummary)
	}
}

func TestAnalyzeCancelledDuringRetryWait(t *testing.T) {
	stub := &stubGemini{
		errs: []error{errors.New("transient"), errors.New("transient"), errors.New("transient")},
	}
	analyzer := NewAnalyzerService(stub, 2, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	var result = make(chan string, 1)

	go func() {
		defer close(done)
		r := analyzer.Analyze(ctx, "resume text", "job description")
		result <- r.ProfileSummary
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("analyze did not return after cancellation")
	}

	if stub.calls != 1 {
		t.Fatalf("expected a single invocation before the cancelled wait, got %d", stub.calls)
	}

	summary := <-result
	if !strings.Contains(summary, "timed out") {
		t.Fatalf("expected timeout-flavored fallback, got %q", summary)
	}
}
