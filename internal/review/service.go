package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/jmalles/diffscope/internal/db"
	"github.com/jmalles/diffscope/internal/embeddings"
	"github.com/jmalles/diffscope/internal/logging"
)

// Service runs the full review lifecycle for one pull request: fetch,
// review, post the comment, embed, store. Webhook deliveries and the CLI
// both go through it.
type Service struct {
	reviewer *Reviewer
	prs      PullRequestService
	repo     *db.ReviewRepository
	embed    *embeddings.Client
	log      logging.Logger
}

func NewService(reviewer *Reviewer, prs PullRequestService, repo *db.ReviewRepository, embed *embeddings.Client) *Service {
	return &Service{
		reviewer: reviewer,
		prs:      prs,
		repo:     repo,
		embed:    embed,
		log:      reviewer.log.WithName("service"),
	}
}

// ProcessPR reviews one pull request end to end. With force false, a head
// SHA that already has a stored review is skipped; webhook redeliveries are
// common and re-reviewing an unchanged head wastes model calls.
func (s *Service) ProcessPR(ctx context.Context, number int, force bool) (Review, error) {
	repoName := s.prs.FullName()

	meta, err := s.prs.FetchPR(ctx, number)
	if err != nil {
		return Review{}, fmt.Errorf("fetch pull request #%d: %w", number, err)
	}

	if !force {
		seen, err := s.repo.HasReview(ctx, repoName, number, meta.HeadSHA)
		if err != nil {
			return Review{}, fmt.Errorf("check existing review: %w", err)
		}
		if seen {
			s.log.Info("head already reviewed, skipping", "pr", number, "sha", meta.HeadSHA)
			return Review{Succeeded: false, FailureReason: "head already reviewed", FailureCategory: FailureCategorySkipped}, nil
		}
	}

	result, err := s.reviewer.Review(ctx, meta)
	if err != nil {
		return Review{}, err
	}
	if result.FailureCategory == FailureCategoryDisabled {
		return result, nil
	}

	if result.Succeeded && s.reviewer.PostComments() {
		url, err := s.prs.PostComment(ctx, number, result.Body)
		if err != nil {
			// The review is still stored; posting can be retried by hand.
			s.log.Error(err, "post review comment failed", "pr", number)
		} else {
			s.log.Info("posted review comment", "pr", number, "url", url)
			result.CommentURL = url
		}
	}

	record := s.buildRecord(repoName, meta, result)

	if result.Succeeded && s.embed != nil {
		if vec, err := s.embedReview(ctx, meta, result); err != nil {
			s.log.Error(err, "embedding failed, storing review without vector", "pr", number)
		} else {
			record.Embedding = vec
		}
	}

	if err := s.repo.StoreReview(ctx, record); err != nil {
		return result, fmt.Errorf("store review for pull request #%d: %w", number, err)
	}
	s.log.Info("stored review", "pr", number, "succeeded", result.Succeeded)

	return result, nil
}

func (s *Service) buildRecord(repoName string, meta PRMetadata, result Review) *db.ReviewRecord {
	record := &db.ReviewRecord{
		Repo:            repoName,
		PRNumber:        meta.Number,
		HeadSHA:         meta.HeadSHA,
		Title:           meta.Title,
		Author:          meta.Author,
		FilesTotal:      result.Stats.FilesTotal,
		FilesReviewed:   result.Stats.FilesReviewed,
		FilesSkipped:    result.Stats.FilesSkipped,
		NewFunctions:    result.Stats.NewFunctions,
		NewImports:      result.Stats.NewImports,
		TestFiles:       result.Stats.TestFiles,
		Languages:       strings.Join(result.Stats.Languages, ","),
		ReviewBody:      result.Body,
		Model:           s.reviewer.cfg.ModelName,
		Succeeded:       result.Succeeded,
		FailureReason:   strPtr(result.FailureReason),
		FailureCategory: strPtr(string(result.FailureCategory)),
	}
	if result.CommentURL != "" {
		now := time.Now()
		record.PostedAt = &now
	}
	return record
}

func (s *Service) embedReview(ctx context.Context, meta PRMetadata, result Review) (*pgvector.Vector, error) {
	document := embeddings.BuildDocument(meta.Title, meta.Body, result.Body)
	vectors, err := s.embed.EmbedTexts(ctx, []string{document})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding returned no vectors")
	}
	vec := pgvector.NewVector(vectors[0])
	return &vec, nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
