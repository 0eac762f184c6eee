package db

import (
	"context"
	"database/sql"
	"errors"

	pgvector "github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"
)

type ReviewRepository struct {
	db *bun.DB
}

type ReviewSearchRow struct {
	ReviewRecord `bun:",extend"`
	Distance     float64 `bun:"distance"`
}

func NewReviewRepository(database *Database) *ReviewRepository {
	return &ReviewRepository{db: database.Bun()}
}

// StoreReview upserts one review keyed by (repo, pr_number, head_sha), so a
// re-run against the same head replaces the stored body instead of piling up
// duplicates.
func (r *ReviewRepository) StoreReview(ctx context.Context, rec *ReviewRecord) error {
	_, err := r.db.NewInsert().Model(rec).
		On("CONFLICT (repo, pr_number, head_sha) DO UPDATE SET " +
			"title = EXCLUDED.title, author = EXCLUDED.author, " +
			"files_total = EXCLUDED.files_total, files_reviewed = EXCLUDED.files_reviewed, " +
			"files_skipped = EXCLUDED.files_skipped, new_functions = EXCLUDED.new_functions, " +
			"new_imports = EXCLUDED.new_imports, test_files = EXCLUDED.test_files, " +
			"languages = EXCLUDED.languages, review_body = EXCLUDED.review_body, " +
			"model = EXCLUDED.model, succeeded = EXCLUDED.succeeded, " +
			"failure_reason = EXCLUDED.failure_reason, failure_category = EXCLUDED.failure_category, " +
			"embedding = EXCLUDED.embedding, posted_at = EXCLUDED.posted_at").
		Exec(ctx)
	return err
}

// GetReview returns the most recent stored review for a pull request, or nil
// when none exists.
func (r *ReviewRepository) GetReview(ctx context.Context, repo string, number int) (*ReviewRecord, error) {
	rec := new(ReviewRecord)
	err := r.db.NewSelect().Model(rec).
		Where("repo = ? AND pr_number = ?", repo, number).
		OrderExpr("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (r *ReviewRepository) HasReview(ctx context.Context, repo string, number int, headSHA string) (bool, error) {
	count, err := r.db.NewSelect().Model((*ReviewRecord)(nil)).
		Where("repo = ? AND pr_number = ? AND head_sha = ?", repo, number, headSHA).
		Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewRepository) SearchReviews(ctx context.Context, embedding []float32, limit int) ([]ReviewSearchRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var results []ReviewSearchRow
	err := r.db.NewSelect().Model(&results).
		Column(
			"id", "repo", "pr_number", "head_sha", "title", "author",
			"files_total", "files_reviewed", "files_skipped",
			"new_functions", "new_imports", "test_files", "languages",
			"review_body", "model", "succeeded", "created_at", "posted_at",
		).
		ColumnExpr("embedding <=> ? AS distance", pgvector.NewVector(embedding)).
		Where("embedding IS NOT NULL").
		OrderExpr("distance").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ReviewRepository) RecentReviews(ctx context.Context, limit int) ([]*ReviewRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var recs []*ReviewRecord
	err := r.db.NewSelect().Model(&recs).
		OrderExpr("created_at DESC").
		Limit(limit).
		Scan(ctx)
	return recs, err
}
