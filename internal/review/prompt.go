package review

import (
	"fmt"
	"strings"

	"github.com/jmalles/diffscope/internal/diff"
)

const filePromptTemplate = `You are a code reviewer. Review the diff below and report concrete findings a maintainer should act on.

Context:
- Pull request title: {{.PRTitle}}
- File path: {{.FilePath}}

Rules:
- Only comment on lines visible in the diff (lines starting with '+' or '-').
- Never speculate or use words like "likely", "suggests", "appears", or "possibly".
- Use the structural analysis section to anchor findings to line numbers.
- Output exactly one bullet per finding, using the format:
  - [FILE: {{.FilePath}}:<line>] <finding> — "<diff snippet>"
- Report correctness problems, missing error handling, and changed behavior without test coverage. Skip style nits.
- Maximum 5 bullets; each under 25 words. Output "- no findings" when the change is sound.

{{.Text}}

**Findings:**
- [FILE: {{.FilePath}}:...] ...`

const reviewPromptTemplate = `You are a code review summarizer. Combine the per-file findings below into one review comment for the pull request author.

## Rules:
1.  **Extract, Don't Infer:** Only include findings listed in the context. Do not invent new ones.
2.  **Be Direct and Factual:** Use clear, technical language. Keep file paths and line numbers intact.
3.  **Use the Provided Structure:** Fill in the sections below. Drop a section when it would be empty.

**CONTEXT:**

**PR Title:**
{{.PRTitle}}

**PR Description:**
{{.PRDescription}}

**Per-file Findings:**
{{.Text}}

---
**REVIEW:**

### Summary
(One or two sentences on what this pull request changes, based on the findings and the description.)

### Findings
(Bulleted list of the findings worth acting on, grouped by file, most severe first.)
-

### Test Coverage
(Note which changed files gained test declarations and which behavior changes lack them, based only on the findings.)`

// serializeResult renders one file's classification as the structural
// analysis block the file prompt anchors its findings on.
func serializeResult(res diff.Result) string {
	var b strings.Builder
	b.WriteString("Structural analysis:\n")
	if res.LanguageSupported {
		fmt.Fprintf(&b, "- Language: %s\n", res.Language)
	} else {
		fmt.Fprintf(&b, "- Language: %s (no structural matching)\n", res.Language)
	}
	fmt.Fprintf(&b, "- Test file: %t\n", res.IsTestFile)
	fmt.Fprintf(&b, "- Lines added: %d, lines removed: %d\n", len(res.AddedLines), len(res.DeletedLines))
	if res.Functions.Found {
		b.WriteString("- New or modified functions:\n")
		for i, line := range res.Functions.Lines {
			fmt.Fprintf(&b, "    line %d: %s\n", res.Functions.Numbers[i], strings.TrimSpace(line))
		}
	}
	if len(res.Imports) > 0 {
		b.WriteString("- New imports:\n")
		for _, line := range res.Imports {
			fmt.Fprintf(&b, "    %s\n", strings.TrimSpace(line))
		}
	}
	if len(res.TestDeclarations) > 0 {
		b.WriteString("- New test declarations:\n")
		for _, line := range res.TestDeclarations {
			fmt.Fprintf(&b, "    %s\n", strings.TrimSpace(line))
		}
	}
	return b.String()
}
