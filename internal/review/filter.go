package review

import (
	"fmt"
	"regexp"
)

var ignorePatternMap = map[string]string{
	"package-lock":    `package-lock\.json$`,
	"yarn-lock":       `yarn\.lock$`,
	"pnpm-lock":       `pnpm-lock\.yaml$`,
	"npm-shrinkwrap":  `npm-shrinkwrap\.json$`,
	"go-sum":          `go\.sum$`,
	"go-work-sum":     `go\.work\.sum$`,
	"cargo-lock":      `Cargo\.lock$`,
	"gemfile-lock":    `Gemfile\.lock$`,
	"poetry-lock":     `poetry\.lock$`,
	"vendor":          `(^|/)vendor/`,
	"node_modules":    `(^|/)node_modules/`,
	"dist":            `(^|/)dist/`,
	"generated-go":    `\.(?:pb|pb\.gw|pb\.json|pb\.grpc)\.go$`,
	"generated-stubs": `\.generated\.(?:ts|js|py|go|rs|java)$`,
	"snapshots":       `\.snap$`,
	"minified":        `\.min\.(?:js|css)$`,
	"sourcemaps":      `\.js\.map$`,
	"lockfiles":       `\.lock$`,
	"swagger-json":    `\.swagger\.json$`,
}

func buildIgnorePatterns() map[string]*regexp.Regexp {
	compiled := make(map[string]*regexp.Regexp, len(ignorePatternMap))
	for reason, pattern := range ignorePatternMap {
		compiled[reason] = regexp.MustCompile(pattern)
	}
	return compiled
}

// appendPolicyPatterns adds repo policy ignore rules to the compiled set.
// Policy patterns come from user-edited files, so a bad expression is an
// error rather than a panic.
func appendPolicyPatterns(patterns map[string]*regexp.Regexp, extras []string) error {
	for i, pattern := range extras {
		rx, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("policy ignore pattern %q: %w", pattern, err)
		}
		patterns[fmt.Sprintf("policy-%d", i)] = rx
	}
	return nil
}

func shouldIgnoreFile(path string, patterns map[string]*regexp.Regexp) (bool, string) {
	for reason, rx := range patterns {
		if rx.MatchString(path) {
			return true, reason
		}
	}
	return false, ""
}

// filterChangedFiles splits the pull request's files into the set worth
// reviewing and the generated or vendored noise.
func filterChangedFiles(files []ChangedFile, patterns map[string]*regexp.Regexp) (included, skipped []ChangedFile) {
	included = make([]ChangedFile, 0, len(files))
	for _, f := range files {
		if ignore, _ := shouldIgnoreFile(f.Filename, patterns); ignore {
			skipped = append(skipped, f)
			continue
		}
		included = append(included, f)
	}
	return included, skipped
}
