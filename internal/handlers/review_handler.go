package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/smart-ats/internal/models"
	"alfredoptarigan/smart-ats/internal/repositories"
	"alfredoptarigan/smart-ats/internal/services"
)

type ReviewHandler struct {
	reviewRepo    repositories.ReviewRepository
	userRepo      repositories.UserRepository
	gemini        services.GeminiService
	qdrantService services.QdrantService
	indexer       services.Indexer
}

func NewReviewHandler(
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
	gemini services.GeminiService,
	qdrantService services.QdrantService,
	indexer services.Indexer,
) *ReviewHandler {
	return &ReviewHandler{
		reviewRepo:    reviewRepo,
		userRepo:      userRepo,
		gemini:        gemini,
		qdrantService: qdrantService,
		indexer:       indexer,
	}
}

// HandleCreate handles POST /reviews
func (h *ReviewHandler) HandleCreate(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req models.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.JobTitle == "" || req.JobDescription == "" || req.ResumeFileName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "jobTitle, jobDescription and resumeFileName are required",
		})
	}

	if req.MatchScore == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "matchScore is required",
		})
	}

	review := &models.Review{
		ID:              uuid.New(),
		UserID:          userID,
		JobTitle:        req.JobTitle,
		JobDescription:  req.JobDescription,
		ResumeFileName:  req.ResumeFileName,
		MatchScore:      *req.MatchScore,
		MissingKeywords: models.StringList(req.MissingKeywords),
		ProfileSummary:  req.ProfileSummary,
		Recommendations: models.StringList(req.Recommendations),
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := h.reviewRepo.Create(review); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create review",
		})
	}

	if err := h.userRepo.AddReviewScore(userID, review.MatchScore); err != nil {
		log.Printf("⚠️  Failed to update user stats for %s: %v", userID, err)
	}

	h.indexer.EnqueueReview(review.ID)

	log.Printf("✅ New review created for user: %s", userID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review created successfully",
		"review":  review,
	})
}

// HandleList handles GET /reviews
func (h *ReviewHandler) HandleList(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	page, limit := pagination(c)

	result, err := h.reviewRepo.FindByUser(userID, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list reviews",
		})
	}

	return c.JSON(result)
}

// HandleGet handles GET /reviews/:id
func (h *ReviewHandler) HandleGet(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review ID format",
		})
	}

	review, err := h.reviewRepo.FindByID(reviewID, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found",
		})
	}

	return c.JSON(fiber.Map{
		"review": review,
	})
}

// HandleUpdate handles PUT /reviews/:id
func (h *ReviewHandler) HandleUpdate(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review ID format",
		})
	}

	var req models.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	updates := map[string]interface{}{}
	if req.JobTitle != nil {
		updates["job_title"] = *req.JobTitle
	}
	if req.JobDescription != nil {
		updates["job_description"] = *req.JobDescription
	}
	if req.ResumeFileName != nil {
		updates["resume_file_name"] = *req.ResumeFileName
	}
	if req.MatchScore != nil {
		updates["match_score"] = *req.MatchScore
	}
	if req.MissingKeywords != nil {
		updates["missing_keywords"] = models.StringList(req.MissingKeywords)
	}
	if req.ProfileSummary != nil {
		updates["profile_summary"] = *req.ProfileSummary
	}
	if req.Recommendations != nil {
		updates["recommendations"] = models.StringList(req.Recommendations)
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No updatable fields provided",
		})
	}

	// Content changed, so the vector index entry is stale.
	updates["indexed"] = false

	if err := h.reviewRepo.Update(reviewID, userID, updates); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found or update failed",
		})
	}

	h.indexer.EnqueueReview(reviewID)

	review, err := h.reviewRepo.FindByID(reviewID, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found",
		})
	}

	log.Printf("✅ Review updated: %s by user: %s", reviewID, userID)

	return c.JSON(fiber.Map{
		"message": "Review updated successfully",
		"review":  review,
	})
}

// HandleDelete handles DELETE /reviews/:id
func (h *ReviewHandler) HandleDelete(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review ID format",
		})
	}

	if err := h.reviewRepo.Delete(reviewID, userID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found or delete failed",
		})
	}

	// Best-effort removal from the vector index.
	if err := h.qdrantService.DeleteReview(c.Context(), reviewID.String()); err != nil {
		log.Printf("⚠️  Failed to remove review %s from index: %v", reviewID, err)
	}

	log.Printf("✅ Review deleted: %s by user: %s", reviewID, userID)

	return c.JSON(fiber.Map{
		"message": "Review deleted successfully",
	})
}

// HandleStats handles GET /reviews/stats
func (h *ReviewHandler) HandleStats(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	stats, err := h.reviewRepo.GetStats(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute stats",
		})
	}

	return c.JSON(stats)
}

// HandleSearch handles GET /reviews/search
func (h *ReviewHandler) HandleSearch(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Search query is required",
		})
	}

	page, limit := pagination(c)

	result, err := h.reviewRepo.Search(userID, query, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search reviews",
		})
	}

	return c.JSON(result)
}

// HandleSimilar handles GET /reviews/similar: semantic search over the user's
// indexed reviews.
func (h *ReviewHandler) HandleSimilar(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Search query is required",
		})
	}

	limit := c.QueryInt("limit", 5)
	if limit < 1 || limit > 20 {
		limit = 5
	}

	embedding, err := h.gemini.GenerateEmbedding(c.Context(), query)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Failed to embed search query",
		})
	}

	matches, err := h.qdrantService.SearchSimilar(c.Context(), embedding, userID.String(), limit)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Failed to search similar reviews",
		})
	}

	similar := []models.SimilarReview{}
	for _, match := range matches {
		reviewID, err := uuid.Parse(match.ReviewID)
		if err != nil {
			continue
		}

		review, err := h.reviewRepo.FindByID(reviewID, userID)
		if err != nil {
			// Point outlived its review; skip it.
			continue
		}

		similar = append(similar, models.SimilarReview{
			Review: *review,
			Score:  match.Score,
		})
	}

	return c.JSON(fiber.Map{
		"reviews": similar,
	})
}

// HandleTrendingKeywords handles GET /reviews/trending-keywords
func (h *ReviewHandler) HandleTrendingKeywords(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	keywords, err := h.reviewRepo.GetTrendingKeywords(userID, 20)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute trending keywords",
		})
	}

	return c.JSON(fiber.Map{
		"keywords": keywords,
	})
}

// HandleExport handles GET /reviews/export
func (h *ReviewHandler) HandleExport(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	reviews, err := h.reviewRepo.FindByUser(userID, 1, 1000)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load reviews",
		})
	}

	stats, err := h.reviewRepo.GetStats(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute stats",
		})
	}

	log.Printf("✅ Data exported for user: %s", userID)

	return c.JSON(models.ExportResponse{
		User:       user,
		Reviews:    reviews.Reviews,
		Stats:      stats,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// pagination reads and clamps page/limit query parameters.
func pagination(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	return ClampPagination(page, limit)
}

// ClampPagination normalizes pagination parameters: page is at least 1 and
// limit stays within 1..100, falling back to 10 when out of range.
func ClampPagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
