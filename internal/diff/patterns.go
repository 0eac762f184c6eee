package diff

import "regexp"

// languageAliases folds dialect extensions onto the table that covers their
// syntax.
var languageAliases = map[string]string{
	"jsx": "js",
	"mjs": "js",
	"cjs": "js",
	"tsx": "ts",
}

// Function patterns per language, ordered: declaration forms first, then
// assigned expression forms, then the looser method-in-body forms. A line is
// recorded once, on its first match.
var functionPatternTable = map[string][]string{
	"js": {
		`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*[\w$]+\s*\(`,
		`^\s*(?:export\s+)?(?:const|let|var)\s+[\w$]+\s*=\s*(?:async\s+)?(?:function\s*\*?\s*\(|\([^)]*\)\s*=>|[\w$]+\s*=>)`,
		`^\s*(?:static\s+)?(?:async\s+)?(?:get\s+|set\s+)?[\w$]+\s*\([^)]*\)\s*\{`,
	},
	"ts": {
		`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*[\w$]+\s*\(`,
		`^\s*(?:export\s+)?(?:const|let|var)\s+[\w$]+(?:\s*:\s*[^=]+?)?\s*=\s*(?:async\s+)?(?:function\s*\*?\s*\(|\([^)]*\)\s*=>|[\w$]+\s*=>)`,
		`^\s*(?:(?:public|private|protected|readonly|static|abstract|override)\s+)*(?:async\s+)?(?:get\s+|set\s+)?[\w$]+\s*\([^)]*\)\s*(?::\s*[^{;]+)?\{`,
	},
	"py": {
		`^\s*(?:async\s+)?def\s+\w+\s*\(`,
		`^\s*\w+\s*=\s*lambda\b`,
	},
	"go": {
		`^\s*func\s+\w+\s*\(`,
		`^\s*\w+\s*:?=\s*func\s*\(`,
		`^\s*func\s+\(`,
	},
	"java": {
		`^\s*(?:public|private|protected)\s+(?:(?:static|final|abstract|synchronized|native)\s+)*(?:[\w<>\[\],]+\s+)*\w+\s*\([^)]*\)`,
		`^\s*(?:(?:static|final|synchronized)\s+)*[\w<>\[\],]+\s+\w+\s*\([^)]*\)\s*\{`,
	},
	"rb": {
		`^\s*def\s+(?:self\.)?\w+[!?]?`,
		`^\s*\w+\s*=\s*(?:lambda\b|proc\b|->)`,
	},
	"rs": {
		`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?(?:unsafe\s+)?(?:extern\s+"[^"]*"\s+)?fn\s+\w+`,
		`^\s*let\s+\w+\s*=\s*(?:move\s+)?\|`,
	},
}

var importPatternTable = map[string][]string{
	"js": {
		`^\s*import\s+[\w$*{},\s]+\s+from\s+['"]`,
		`^\s*import\s*['"]`,
		`^\s*(?:const|let|var)\s+[\w${},\s]+=\s*require\s*\(`,
	},
	"ts": {
		`^\s*import\s+[\w$*{},\s]+\s+from\s+['"]`,
		`^\s*import\s*['"]`,
		`^\s*(?:const|let|var)\s+[\w${},\s]+=\s*require\s*\(`,
	},
	"py": {
		`^\s*import\s+[\w.]+`,
		`^\s*from\s+[\w.]+\s+import\b`,
	},
	"go": {
		`^\s*import\s+(?:\w+\s+)?"`,
		`^\s*import\s*\(`,
		`^\s*(?:\w+\s+)?"[\w./-]+"$`,
	},
	"java": {
		`^\s*import\s+(?:static\s+)?[\w.]+(?:\.\*)?\s*;`,
	},
	"rb": {
		`^\s*require(?:_relative)?\s+['"]`,
	},
	"rs": {
		`^\s*(?:pub\s+)?use\s+[\w:]+`,
		`^\s*extern\s+crate\s+\w+`,
	},
}

var testDeclPatternTable = map[string][]string{
	"js": {
		`^\s*(?:it|test|describe)(?:\.\w+)?\s*\(`,
	},
	"ts": {
		`^\s*(?:it|test|describe)(?:\.\w+)?\s*\(`,
	},
	"py": {
		`^\s*(?:async\s+)?def\s+test_\w+\s*\(`,
		`^\s*class\s+Test\w*[(:]`,
	},
	"go": {
		`^\s*func\s+(?:Test|Benchmark|Fuzz|Example)\w*\s*\(`,
	},
	"java": {
		`^\s*@(?:Test|ParameterizedTest|RepeatedTest)\b`,
	},
	"rb": {
		`^\s*(?:it|describe|context|specify)\s+['"]`,
		`^\s*def\s+test_\w+`,
	},
	"rs": {
		`^\s*#\[\s*(?:\w+::)*test\s*\]`,
	},
}

// Control-flow statements ending in "(...) {" look like the loose method
// patterns above. A line matching any of these is never a function.
var controlFlowPatterns = []string{
	`^\s*\}?\s*for\s*\(`,
	`^\s*\}?\s*while\s*\(`,
	`^\s*\}?\s*if\s*\(`,
	`^\s*\}?\s*else\b`,
	`^\s*\}?\s*switch\s*\(`,
	`^\s*\}?\s*catch\s*\(`,
}

func buildMatchTables(raw map[string][]string) map[string][]*regexp.Regexp {
	compiled := make(map[string][]*regexp.Regexp, len(raw))
	for lang, patterns := range raw {
		set := make([]*regexp.Regexp, 0, len(patterns))
		for _, pattern := range patterns {
			set = append(set, regexp.MustCompile(pattern))
		}
		compiled[lang] = set
	}
	return compiled
}

func buildPatternList(raw []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(raw))
	for _, pattern := range raw {
		compiled = append(compiled, regexp.MustCompile(pattern))
	}
	return compiled
}

// resolveLanguage maps a detected tag to its pattern-table key. The second
// return is false when no table covers the language.
func resolveLanguage(tag string) (string, bool) {
	if canonical, ok := languageAliases[tag]; ok {
		tag = canonical
	}
	_, ok := functionPatternTable[tag]
	return tag, ok
}
