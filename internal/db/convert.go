package db

import (
	"fmt"
	"time"

	"github.com/jmalles/diffscope/internal/mcp/tools/types"
)

func ToReviewResult(entity ReviewRecord, similarity *float64) types.ReviewResult {
	var postedAt *string
	if entity.PostedAt != nil {
		v := entity.PostedAt.Format(time.RFC3339)
		postedAt = &v
	}
	return types.ReviewResult{
		Repo:            entity.Repo,
		PRNumber:        entity.PRNumber,
		HeadSHA:         entity.HeadSHA,
		Title:           entity.Title,
		Author:          entity.Author,
		FilesTotal:      entity.FilesTotal,
		FilesReviewed:   entity.FilesReviewed,
		FilesSkipped:    entity.FilesSkipped,
		NewFunctions:    entity.NewFunctions,
		NewImports:      entity.NewImports,
		TestFiles:       entity.TestFiles,
		Languages:       entity.Languages,
		ReviewBody:      entity.ReviewBody,
		Model:           entity.Model,
		Succeeded:       entity.Succeeded,
		CreatedAt:       entity.CreatedAt.Format(time.RFC3339),
		PostedAt:        postedAt,
		GithubURL:       pullRequestURL(entity.Repo, entity.PRNumber),
		SimilarityScore: similarity,
	}
}

func pullRequestURL(repo string, number int) string {
	return fmt.Sprintf("https://github.com/%s/pull/%d", repo, number)
}
