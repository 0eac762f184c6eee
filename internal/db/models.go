package db

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"
)

type ReviewRecord struct {
	bun.BaseModel `bun:"table:reviews"`

	ID              int64            `bun:"id,pk,autoincrement"`
	Repo            string           `bun:"repo"`
	PRNumber        int              `bun:"pr_number"`
	HeadSHA         string           `bun:"head_sha"`
	Title           string           `bun:"title"`
	Author          string           `bun:"author"`
	FilesTotal      int              `bun:"files_total"`
	FilesReviewed   int              `bun:"files_reviewed"`
	FilesSkipped    int              `bun:"files_skipped"`
	NewFunctions    int              `bun:"new_functions"`
	NewImports      int              `bun:"new_imports"`
	TestFiles       int              `bun:"test_files"`
	Languages       string           `bun:"languages"`
	ReviewBody      string           `bun:"review_body"`
	Model           string           `bun:"model"`
	Succeeded       bool             `bun:"succeeded"`
	FailureReason   *string          `bun:"failure_reason"`
	FailureCategory *string          `bun:"failure_category"`
	Embedding       *pgvector.Vector `bun:"embedding"` // Nullable: embedding generation is best-effort
	PostedAt        *time.Time       `bun:"posted_at"` // NULL = comment never posted
	CreatedAt       time.Time        `bun:"created_at,nullzero,default:now()"`
}
