package repositories

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/smart-ats/internal/models"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	FindByID(id, userID uuid.UUID) (*models.Review, error)
	FindAnyByID(id uuid.UUID) (*models.Review, error)
	FindByUser(userID uuid.UUID, page, limit int) (*models.ReviewListResponse, error)
	Update(id, userID uuid.UUID, updates map[string]interface{}) error
	Delete(id, userID uuid.UUID) error
	Search(userID uuid.UUID, query string, page, limit int) (*models.ReviewListResponse, error)
	GetStats(userID uuid.UUID) (*models.ReviewStats, error)
	GetTrendingKeywords(userID uuid.UUID, limit int) ([]models.TrendingKeyword, error)
	FindUnindexed(limit int) ([]models.Review, error)
	MarkIndexed(id uuid.UUID) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create implements ReviewRepository.
func (r *reviewRepository) Create(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// FindByID returns a review only if it belongs to the given user.
func (r *reviewRepository) FindByID(id, userID uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&review).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("review not found")
		}

		return nil, fmt.Errorf("failed to find review: %w", err)
	}

	return &review, nil
}

// FindAnyByID returns a review regardless of owner. Used by the indexer,
// which operates outside any user scope.
func (r *reviewRepository) FindAnyByID(id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.Where("id = ?", id).First(&review).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("review not found")
		}

		return nil, fmt.Errorf("failed to find review: %w", err)
	}

	return &review, nil
}

// FindByUser implements ReviewRepository.
func (r *reviewRepository) FindByUser(userID uuid.UUID, page, limit int) (*models.ReviewListResponse, error) {
	return r.list(r.db.Where("user_id = ?", userID), page, limit)
}

// Update implements ReviewRepository.
func (r *reviewRepository) Update(id, userID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := r.db.Model(&models.Review{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update review: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("review not found")
	}

	return nil
}

// Delete implements ReviewRepository.
func (r *reviewRepository) Delete(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Review{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("review not found")
	}

	return nil
}

// Search matches the query against job titles and missing keywords.
func (r *reviewRepository) Search(userID uuid.UUID, query string, page, limit int) (*models.ReviewListResponse, error) {
	pattern := "%" + query + "%"
	tx := r.db.Where("user_id = ?", userID).
		Where("job_title ILIKE ? OR missing_keywords::text ILIKE ?", pattern, pattern)

	return r.list(tx, page, limit)
}

// GetStats implements ReviewRepository.
func (r *reviewRepository) GetStats(userID uuid.UUID) (*models.ReviewStats, error) {
	stats := &models.ReviewStats{RecentReviews: []models.Review{}}

	row := r.db.Model(&models.Review{}).
		Where("user_id = ?", userID).
		Select("COUNT(*), COALESCE(AVG(match_score), 0), COALESCE(MAX(match_score), 0)").
		Row()

	if err := row.Scan(&stats.TotalReviews, &stats.AverageScore, &stats.BestScore); err != nil {
		return nil, fmt.Errorf("failed to aggregate review stats: %w", err)
	}

	stats.AverageScore = math.Round(stats.AverageScore*100) / 100

	var recent []models.Review
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(5).
		Find(&recent).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent reviews: %w", err)
	}

	stats.RecentReviews = recent
	return stats, nil
}

// GetTrendingKeywords counts missing keywords across the user's reviews and
// returns the most frequent ones with their average match score.
func (r *reviewRepository) GetTrendingKeywords(userID uuid.UUID, limit int) ([]models.TrendingKeyword, error) {
	var reviews []models.Review
	err := r.db.Where("user_id = ?", userID).
		Select("match_score", "missing_keywords").
		Limit(1000).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews for keywords: %w", err)
	}

	type bucket struct {
		frequency  int
		scoreTotal int
	}

	buckets := make(map[string]*bucket)
	for _, review := range reviews {
		for _, keyword := range review.MissingKeywords {
			b, ok := buckets[keyword]
			if !ok {
				b = &bucket{}
				buckets[keyword] = b
			}
			b.frequency++
			b.scoreTotal += review.MatchScore
		}
	}

	keywords := make([]models.TrendingKeyword, 0, len(buckets))
	for keyword, b := range buckets {
		avg := float64(b.scoreTotal) / float64(b.frequency)
		keywords = append(keywords, models.TrendingKeyword{
			Keyword:      keyword,
			Frequency:    b.frequency,
			AverageScore: math.Round(avg*100) / 100,
		})
	}

	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Frequency != keywords[j].Frequency {
			return keywords[i].Frequency > keywords[j].Frequency
		}
		return keywords[i].Keyword < keywords[j].Keyword
	})

	if limit > 0 && len(keywords) > limit {
		keywords = keywords[:limit]
	}

	return keywords, nil
}

// FindUnindexed returns reviews that have not been pushed to the vector index yet.
func (r *reviewRepository) FindUnindexed(limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("indexed = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unindexed reviews: %w", err)
	}

	return reviews, nil
}

// MarkIndexed implements ReviewRepository.
func (r *reviewRepository) MarkIndexed(id uuid.UUID) error {
	result := r.db.Model(&models.Review{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"indexed":    true,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark review indexed: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("review not found")
	}

	return nil
}

func (r *reviewRepository) list(tx *gorm.DB, page, limit int) (*models.ReviewListResponse, error) {
	var total int64
	if err := tx.Session(&gorm.Session{}).Model(&models.Review{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	var reviews []models.Review
	err := tx.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	if reviews == nil {
		reviews = []models.Review{}
	}

	return &models.ReviewListResponse{
		Reviews:    reviews,
		Total:      total,
		Page:       page,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}, nil
}
