package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/smart-ats/internal/models"
	"alfredoptarigan/smart-ats/internal/repositories"
)

// Indexer pushes review embeddings into the vector index in the background.
// Indexing is eventually consistent: failed reviews stay unindexed and the
// poller re-enqueues them.
type Indexer interface {
	Start(ctx context.Context)
	Stop()
	EnqueueReview(reviewID uuid.UUID)
}

type indexer struct {
	reviewRepo    repositories.ReviewRepository
	gemini        GeminiService
	qdrantService QdrantService
	jobQueue      chan uuid.UUID
	concurrency   int
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

func NewIndexer(
	reviewRepo repositories.ReviewRepository,
	gemini GeminiService,
	qdrantService QdrantService,
	concurrency int,
) Indexer {
	return &indexer{
		reviewRepo:    reviewRepo,
		gemini:        gemini,
		qdrantService: qdrantService,
		jobQueue:      make(chan uuid.UUID, 100),
		concurrency:   concurrency,
		stopChan:      make(chan struct{}),
	}
}

// Start implements Indexer.
func (w *indexer) Start(ctx context.Context) {
	log.Printf("🚀 Starting indexer with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// Start polling for unindexed reviews
	w.wg.Add(1)
	go w.pollUnindexed(ctx)

	log.Println("✅ Indexer started successfully")
}

// Stop implements Indexer.
func (w *indexer) Stop() {
	log.Println("🛑 Stopping indexer...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Indexer stopped")
}

// EnqueueReview implements Indexer.
func (w *indexer) EnqueueReview(reviewID uuid.UUID) {
	select {
	case w.jobQueue <- reviewID:
		log.Printf("📥 Review %s enqueued for indexing\n", reviewID)
	case <-w.stopChan:
		log.Printf("⚠️  Indexer stopped, cannot enqueue review %s\n", reviewID)
	}
}

func (w *indexer) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Indexer worker #%d stopped\n", workerID)
			return
		case reviewID := <-w.jobQueue:
			if err := w.indexReview(ctx, reviewID); err != nil {
				log.Printf("❌ Indexer worker #%d failed to index review %s: %v\n", workerID, reviewID, err)
			} else {
				log.Printf("✅ Indexer worker #%d indexed review %s\n", workerID, reviewID)
			}
		}
	}
}

func (w *indexer) indexReview(ctx context.Context, reviewID uuid.UUID) error {
	review, err := w.reviewRepo.FindAnyByID(reviewID)
	if err != nil {
		// Deleted in the meantime.
		return nil
	}

	if review.Indexed {
		return nil
	}

	text := indexText(review)

	embedding, err := w.gemini.GenerateEmbedding(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed review: %w", err)
	}

	err = w.qdrantService.UpsertReview(ctx, review.ID.String(), review.UserID.String(), text, embedding)
	if err != nil {
		return fmt.Errorf("failed to upsert review: %w", err)
	}

	return w.reviewRepo.MarkIndexed(review.ID)
}

func (w *indexer) pollUnindexed(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	log.Println("🔄 Starting unindexed reviews poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Unindexed reviews poller stopped")
			return
		case <-ticker.C:
			pending, err := w.reviewRepo.FindUnindexed(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch unindexed reviews: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d unindexed reviews\n", len(pending))
			}

			for _, review := range pending {
				w.EnqueueReview(review.ID)
			}
		}
	}
}

// indexText builds the searchable text for a review.
func indexText(review *models.Review) string {
	return fmt.Sprintf("%s\n%s\n%s", review.JobTitle, review.ProfileSummary, review.JobDescription)
}
