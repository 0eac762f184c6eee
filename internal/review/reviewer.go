package review

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jmalles/diffscope/internal/diff"
	"github.com/jmalles/diffscope/internal/logging"
)

// summarizer is the model-facing half of the pipeline. llmClient is the
// production implementation.
type summarizer interface {
	mapFile(ctx context.Context, doc Document, meta PRMetadata) (string, error)
	reduceReview(ctx context.Context, findings []string, meta PRMetadata) (string, error)
}

type Reviewer struct {
	cfg      Config
	log      logging.Logger
	engine   *diff.Analyzer
	patterns map[string]*regexp.Regexp
	llm      summarizer
	prs      PullRequestService
}

func NewReviewer(cfg Config, prs PullRequestService) (*Reviewer, error) {
	log := logging.New(cfg.Logger)

	policy, err := LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return nil, err
	}
	cfg = cfg.withPolicy(policy)

	patterns := buildIgnorePatterns()
	if err := appendPolicyPatterns(patterns, policy.Ignore); err != nil {
		return nil, err
	}

	client, err := newLLMClient(cfg, cfg.Logger)
	if err != nil {
		return nil, err
	}

	return &Reviewer{
		cfg:      cfg,
		log:      log,
		engine:   diff.NewAnalyzer(),
		patterns: patterns,
		llm:      client,
		prs:      prs,
	}, nil
}

// PostComments reports the effective posting toggle after policy overrides.
func (r *Reviewer) PostComments() bool {
	return r.cfg.PostComments
}

func (r *Reviewer) Review(ctx context.Context, meta PRMetadata) (Review, error) {
	if !r.cfg.Enabled {
		r.log.Info("reviewer disabled", "pr", meta.Number)
		return Review{Succeeded: false, FailureReason: "reviewer disabled", FailureCategory: FailureCategoryDisabled}, nil
	}

	files, err := r.prs.FetchChangedFiles(ctx, meta.Number)
	if err != nil {
		r.log.Error(err, "fetch changed files failed", "pr", meta.Number)
		reason, category := GetFailureDetails(err)
		return Review{Succeeded: false, FailureReason: reason, FailureCategory: category}, nil
	}
	if len(files) == 0 {
		return Review{Succeeded: false, FailureReason: "no changed files"}, nil
	}

	included, skipped := filterChangedFiles(files, r.patterns)
	if len(included) == 0 {
		return Review{Succeeded: false, FailureReason: "all files filtered as generated"}, nil
	}
	if r.cfg.MaxFiles > 0 && len(included) > r.cfg.MaxFiles {
		r.log.Info("pull request over file cap", "pr", meta.Number, "files", len(included), "limit", r.cfg.MaxFiles)
		return Review{
			Succeeded:       false,
			FailureReason:   fmt.Sprintf("pull request too large: %d reviewable files (limit %d)", len(included), r.cfg.MaxFiles),
			FailureCategory: FailureCategoryLargeDiff,
		}, nil
	}

	reports, stats := r.classifyFiles(included)
	stats.FilesTotal = len(files)
	stats.FilesSkipped += len(skipped)
	if len(reports) == 0 {
		return Review{Succeeded: false, FailureReason: "no reviewable patch content", Stats: stats}, nil
	}

	docs, docStats := buildDocuments(reports, r.log, r.cfg)

	r.log.Info("review prep stats",
		"pr", meta.Number,
		"files_total", stats.FilesTotal,
		"files_reviewed", stats.FilesReviewed,
		"files_skipped", stats.FilesSkipped,
		"chunks", len(docs),
		"max_tokens", docStats.MaxTokens,
		"median_tokens", docStats.MedianTokens,
	)

	if len(docs) > 100 {
		r.log.Error(fmt.Errorf("large diff detected: %d chunks", len(docs)), "large diff", "pr", meta.Number)
		return Review{
			Succeeded:       false,
			FailureReason:   "large diff detected",
			FailureCategory: FailureCategoryLargeDiff,
			Files:           reports,
			Stats:           stats,
		}, nil
	}

	findings := make([]string, 0, len(docs))
	for idx, doc := range docs {
		r.log.Debug(fmt.Sprintf("reviewing chunk %d/%d", idx+1, len(docs)), "file", doc.FilePath)
		result, err := r.llm.mapFile(ctx, doc, meta)
		if err != nil {
			r.log.Error(err, "file review stage failed", "file", doc.FilePath)
			reason, category := GetFailureDetails(err)
			return Review{Succeeded: false, FailureReason: reason, FailureCategory: category, Files: reports, Stats: stats}, nil
		}
		findings = append(findings, result)
	}

	merged, err := r.llm.reduceReview(ctx, findings, meta)
	if err != nil {
		r.log.Error(err, "reduce stage failed", "pr", meta.Number)
		reason, category := GetFailureDetails(err)
		return Review{Succeeded: false, FailureReason: reason, FailureCategory: category, Files: reports, Stats: stats}, nil
	}
	r.log.Debug("reduce stage completed", "chars", len(merged))

	body := fmt.Sprintf("## Pull Request Review: %s\n\n%s", meta.Title, strings.TrimSpace(merged))

	return Review{
		Succeeded: true,
		Body:      body,
		Files:     reports,
		Stats:     stats,
	}, nil
}

// classifyFiles runs the diff engine over each included file. Files the
// host serves without patch text (binaries, oversized diffs) are counted
// as skipped rather than failing the review.
func (r *Reviewer) classifyFiles(files []ChangedFile) ([]FileReport, Stats) {
	var stats Stats
	reports := make([]FileReport, 0, len(files))
	langs := make(map[string]struct{})

	for _, f := range files {
		if strings.TrimSpace(f.Patch) == "" {
			r.log.Debug("skipping file without patch text", "file", f.Filename)
			stats.FilesSkipped++
			continue
		}
		res, err := r.engine.Analyze(f.UnifiedPatch())
		if err != nil {
			r.log.Debug("patch not analyzable", "file", f.Filename, "error", err.Error())
			stats.FilesSkipped++
			continue
		}
		if res.Filename == "" {
			// Deleted files resolve to /dev/null in the diff header.
			res.Filename = f.Filename
			res.IsTestFile = diff.IsTestFile(f.Filename)
		}
		if !res.LanguageSupported {
			r.log.Debug("language not supported for structural matching", "file", f.Filename, "language", res.Language)
		}
		if res.Language != diff.LanguageUnknown {
			langs[res.Language] = struct{}{}
		}

		stats.FilesReviewed++
		stats.NewFunctions += len(res.Functions.Lines)
		stats.NewImports += len(res.Imports)
		if res.IsTestFile {
			stats.TestFiles++
		}
		reports = append(reports, FileReport{File: f, Result: res})
	}

	stats.Languages = make([]string, 0, len(langs))
	for lang := range langs {
		stats.Languages = append(stats.Languages, lang)
	}
	sort.Strings(stats.Languages)

	return reports, stats
}
