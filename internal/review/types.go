package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmalles/diffscope/internal/diff"
)

type FailureCategory string

const (
	FailureCategoryLargeDiff FailureCategory = "large_diff"
	FailureCategoryTimeout   FailureCategory = "timeout"
	FailureCategoryError     FailureCategory = "error"
	FailureCategoryDisabled  FailureCategory = "disabled"
	FailureCategorySkipped   FailureCategory = "skipped"
)

// Review is the outcome of reviewing one pull request. Pipeline problems are
// reported in band: Succeeded false plus a reason and category, so one broken
// pull request never aborts a caller that processes many.
type Review struct {
	Body            string          `json:"body,omitempty"`
	Succeeded       bool            `json:"succeeded"`
	FailureReason   string          `json:"failure_reason,omitempty"`
	FailureCategory FailureCategory `json:"failure_category,omitempty"`
	Files           []FileReport    `json:"files,omitempty"`
	Stats           Stats           `json:"stats"`
	CommentURL      string          `json:"comment_url,omitempty"`
}

// FileReport pairs one changed file with its structural classification.
type FileReport struct {
	File   ChangedFile `json:"file"`
	Result diff.Result `json:"result"`
}

type Stats struct {
	FilesTotal    int      `json:"files_total"`
	FilesReviewed int      `json:"files_reviewed"`
	FilesSkipped  int      `json:"files_skipped"`
	NewFunctions  int      `json:"new_functions"`
	NewImports    int      `json:"new_imports"`
	TestFiles     int      `json:"test_files"`
	Languages     []string `json:"languages,omitempty"`
}

type PRMetadata struct {
	Number    int
	Title     string
	Body      string
	Author    string
	BaseRef   string
	HeadSHA   string
	URL       string
	CreatedAt time.Time
}

// ChangedFile is one file of a pull request as served by the code host: the
// path, the change status, and the per-file diff fragment. The Patch field
// holds hunks only; the host strips the file header lines.
type ChangedFile struct {
	Filename         string `json:"filename"`
	PreviousFilename string `json:"previous_filename,omitempty"`
	Status           string `json:"status"`
	Additions        int    `json:"additions"`
	Deletions        int    `json:"deletions"`
	Patch            string `json:"-"`
}

// UnifiedPatch reconstructs the file header lines the host strips, so the
// fragment parses as a standalone unified diff.
func (f ChangedFile) UnifiedPatch() string {
	oldPath := "a/" + f.Filename
	newPath := "b/" + f.Filename
	switch f.Status {
	case "added":
		oldPath = "/dev/null"
	case "removed":
		newPath = "/dev/null"
	case "renamed":
		if f.PreviousFilename != "" {
			oldPath = "a/" + f.PreviousFilename
		}
	}
	return fmt.Sprintf("--- %s\n+++ %s\n%s", oldPath, newPath, f.Patch)
}

type Document struct {
	FilePath   string
	Content    string
	TokenCount int
}

type DocumentStats struct {
	FilesIncluded int
	MaxTokens     float64
	MedianTokens  float64
}

func GetFailureDetails(err error) (reason string, category FailureCategory) {
	if err == nil {
		return "", ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout: " + strings.TrimSpace(err.Error()), FailureCategoryTimeout
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown failure"
	}
	return msg, FailureCategoryError
}

func GetFailureCategory(err error) FailureCategory {
	_, category := GetFailureDetails(err)
	return category
}
