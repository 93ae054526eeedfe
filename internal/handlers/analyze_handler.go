package handlers

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/smart-ats/internal/models"
	"alfredoptarigan/smart-ats/internal/services"
)

type AnalyzeHandler struct {
	analyzer       services.AnalyzerService
	pdfExtractor   services.PDFExtractorService
	storageService services.StorageService
	maxFileSize    int64
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	pdfExtractor services.PDFExtractorService,
	storageService services.StorageService,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:       analyzer,
		pdfExtractor:   pdfExtractor,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleAnalyze handles POST /analyze: a multipart request with a PDF resume
// and a job description. Precondition failures (missing inputs, unreadable
// PDF) are rejected here; everything past extraction degrades instead of
// failing, so this handler always answers 200 once the pipeline runs.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	jobDescription := strings.TrimSpace(c.FormValue("job_description"))
	if jobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Job description is required",
		})
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume file is required",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF files are supported",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}

	resumeText, err := h.pdfExtractor.ExtractText(data)
	if err != nil || strings.TrimSpace(resumeText) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not extract text from PDF. Please ensure the PDF contains readable text.",
		})
	}

	log.Printf("📄 Extracted %d characters from %s", len(resumeText), fileHeader.Filename)

	// Archive the upload; analysis proceeds even if archiving fails.
	storedName, err := h.storageService.SaveResume(fileHeader.Filename, data)
	if err != nil {
		log.Printf("⚠️  Failed to archive resume %s: %v", fileHeader.Filename, err)
		storedName = ""
	}

	result := h.analyzer.Analyze(c.Context(), resumeText, jobDescription)

	return c.JSON(models.AnalyzeResponse{
		JDMatch:         result.JDMatch,
		MissingKeywords: result.MissingKeywords,
		ProfileSummary:  result.ProfileSummary,
		ResumeFileName:  storedName,
	})
}
