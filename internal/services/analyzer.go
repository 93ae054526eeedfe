package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"alfredoptarigan/smart-ats/internal/models"
)

// AnalyzerService sequences the analysis pipeline: build the prompt, invoke
// the model with a bounded retry budget, normalize whatever comes back. It
// never returns an error; when every attempt fails the caller still receives
// a schema-valid fallback result.
type AnalyzerService interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) models.AnalysisResult
}

type analyzerService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
	retryDelay    time.Duration
}

func NewAnalyzerService(gemini GeminiService, maxRetries int, retryDelay time.Duration) AnalyzerService {
	return &analyzerService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		retryDelay:    retryDelay,
	}
}

// Analyze implements AnalyzerService.
func (a *analyzerService) Analyze(ctx context.Context, resumeText, jobDescription string) models.AnalysisResult {
	prompt := a.promptBuilder.BuildMatchPrompt(resumeText, jobDescription)
	log.Printf("📝 Analysis prompt length: %d characters", len(prompt))

	attempts := a.maxRetries + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		response, err := a.gemini.GenerateText(ctx, prompt)
		if err == nil {
			log.Printf("✅ Analysis response received: %d characters", len(response))
			return NormalizeAnalysis(response)
		}

		lastErr = err
		log.Printf("⚠️ Attempt %d/%d failed: %v", attempt, attempts, err)

		if attempt == attempts {
			break
		}

		// Fixed delay between attempts; a caller deadline aborts the wait.
		select {
		case <-ctx.Done():
			log.Printf("⚠️ Analysis cancelled while waiting to retry: %v", ctx.Err())
			return timeoutFallback(resumeText)
		case <-time.After(a.retryDelay):
		}
	}

	log.Printf("❌ Analysis failed after %d attempts: %v", attempts, lastErr)
	return exhaustedFallback(resumeText, attempts)
}

func exhaustedFallback(resumeText string, attempts int) models.AnalysisResult {
	return models.AnalysisResult{
		JDMatch:         defaultMatch,
		MissingKeywords: []string{},
		ProfileSummary: fmt.Sprintf(
			"The AI model was unavailable after %d attempts. Your resume (%d characters extracted) could not be analyzed. Please try again later.",
			attempts, len(resumeText)),
	}
}

func timeoutFallback(resumeText string) models.AnalysisResult {
	return models.AnalysisResult{
		JDMatch:         defaultMatch,
		MissingKeywords: []string{},
		ProfileSummary: fmt.Sprintf(
			"The analysis timed out before the AI model responded. Your resume (%d characters extracted) could not be analyzed. Please try again later.",
			len(resumeText)),
	}
}
