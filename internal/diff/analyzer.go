package diff

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyPatch is returned by Analyze for a missing patch argument. It is
// the engine's only hard failure; everything else degrades to a sparse but
// well-typed Result.
var ErrEmptyPatch = errors.New("empty patch text")

// Analyzer classifies single-file unified diffs. It compiles its pattern
// tables once at construction and holds no per-call state, so a single
// instance is safe for concurrent use.
type Analyzer struct {
	functions  map[string][]*regexp.Regexp
	imports    map[string][]*regexp.Regexp
	testDecls  map[string][]*regexp.Regexp
	exclusions []*regexp.Regexp
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		functions:  buildMatchTables(functionPatternTable),
		imports:    buildMatchTables(importPatternTable),
		testDecls:  buildMatchTables(testDeclPatternTable),
		exclusions: buildPatternList(controlFlowPatterns),
	}
}

// Analyze produces the classification record for one file patch. Malformed
// or unrecognized diff content never fails the call; the tracker skips what
// it cannot interpret and the result carries whatever was recovered. The
// analyzer performs no I/O and identical input always yields an identical
// Result.
func (a *Analyzer) Analyze(patch string) (Result, error) {
	if strings.TrimSpace(patch) == "" {
		return Result{}, ErrEmptyPatch
	}

	filename := TargetFile(patch)
	result := Result{
		Filename:     filename,
		Language:     DetectLanguage(patch),
		IsTestFile:   IsTestFile(filename),
		AddedLines:   TrackLines(patch, Added),
		DeletedLines: TrackLines(patch, Removed),
	}

	functions, supported := a.MatchFunctions(result.AddedLines, result.Language)
	result.Functions = functions
	result.LanguageSupported = supported
	if !supported {
		result.Imports = []string{}
		result.TestDeclarations = []string{}
		return result, nil
	}

	result.Imports, _ = a.MatchImports(result.AddedLines, result.Language)
	result.TestDeclarations, _ = a.MatchTestDeclarations(result.AddedLines, result.Language)
	return result, nil
}
