package review

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmalles/diffscope/internal/logging"
	"github.com/tmc/langchaingo/textsplitter"
)

const defaultContextTokens = 4096

func buildDocuments(reports []FileReport, log logging.Logger, cfg Config) ([]Document, DocumentStats) {
	docs := make([]Document, 0, len(reports))
	tokenCounts := make([]int, 0, len(reports))

	chunkSize := cfg.MaxContextTokens
	if chunkSize == 0 {
		chunkSize = defaultContextTokens
	}
	targetTokens := chunkSize * 3 / 4
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithSeparators([]string{"\n@@", "\n", ""}),
		textsplitter.WithChunkSize(targetTokens*approxCharsPerToken),
		textsplitter.WithChunkOverlap(200*approxCharsPerToken),
	)

	for _, rep := range reports {
		docsForFile, counts := splitPatchRecursive(rep, splitter, log, targetTokens)
		docs = append(docs, docsForFile...)
		tokenCounts = append(tokenCounts, counts...)
	}

	stats := DocumentStats{FilesIncluded: len(reports)}
	if len(tokenCounts) > 0 {
		sort.Ints(tokenCounts)
		stats.MaxTokens = float64(tokenCounts[len(tokenCounts)-1])
		stats.MedianTokens = float64(tokenCounts[len(tokenCounts)/2])
	}

	return docs, stats
}

func splitPatchRecursive(rep FileReport, splitter textsplitter.RecursiveCharacter, log logging.Logger, targetTokens int) ([]Document, []int) {
	path := rep.File.Filename
	analysis := serializeResult(rep.Result)
	patch := rep.File.Patch

	// The analysis block travels with every chunk, so the patch budget
	// shrinks by its size.
	patchBudget := targetTokens - estimateTokens(analysis)
	if patchBudget < targetTokens/4 {
		patchBudget = targetTokens / 4
	}

	var chunks []string
	if estimateTokens(patch) <= patchBudget {
		chunks = []string{patch}
	} else {
		parts, err := splitter.SplitText(patch)
		if err != nil || len(parts) == 0 {
			log.Error(err, "splitText failed; truncating patch", "file", path)
			chunks = []string{truncateToTokens(patch, patchBudget)}
		} else {
			chunks = parts
		}
	}

	docs := make([]Document, 0, len(chunks))
	counts := make([]int, 0, len(chunks))

	for idx, chunk := range chunks {
		annotated := annotateChunk(chunk, analysis, path, idx, len(chunks))
		tokenCount := estimateTokens(annotated)
		docs = append(docs, Document{FilePath: path, Content: annotated, TokenCount: tokenCount})
		counts = append(counts, tokenCount)
	}

	return docs, counts
}

func annotateChunk(patch, analysis, path string, index, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", path)
	if total > 1 {
		fmt.Fprintf(&b, "Chunk: %d/%d\n", index+1, total)
	}
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(analysis))
	b.WriteString("\n\n<diff>\n")
	b.WriteString(strings.TrimSpace(patch))
	b.WriteString("\n</diff>")
	return b.String()
}
