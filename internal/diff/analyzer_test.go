package diff

import (
	"errors"
	"reflect"
	"testing"
)

const twoHunkPatch = `--- a/src/orders.js
+++ b/src/orders.js
@@ -8,3 +8,6 @@ function setup() {
 const TAX = 0.2;
 
+function computeTotal(x, y) {
+  return (x + y) * (1 + TAX);
+}
 module.exports = { TAX };
@@ -18,3 +21,2 @@ function legacy() {
 let a = 1;
-let obsolete = true;
 let b = 2;
`

func TestAnalyzeTwoHunkPatch(t *testing.T) {
	analyzer := NewAnalyzer()

	result, err := analyzer.Analyze(twoHunkPatch)
	if err != nil {
		t.Fatalf("Analyze() returned error: %v", err)
	}

	if result.Filename != "src/orders.js" {
		t.Errorf("Filename = %q, want %q", result.Filename, "src/orders.js")
	}
	if result.Language != "js" {
		t.Errorf("Language = %q, want %q", result.Language, "js")
	}
	if !result.LanguageSupported {
		t.Error("js must be a supported language")
	}
	if result.IsTestFile {
		t.Error("src/orders.js is not a test file")
	}

	wantAdded := []Line{
		{Number: 10, Content: "function computeTotal(x, y) {"},
		{Number: 11, Content: "  return (x + y) * (1 + TAX);"},
		{Number: 12, Content: "}"},
	}
	if !reflect.DeepEqual(result.AddedLines, wantAdded) {
		t.Errorf("AddedLines = %+v, want %+v", result.AddedLines, wantAdded)
	}
	for i := 1; i < len(result.AddedLines); i++ {
		if result.AddedLines[i].Number < result.AddedLines[i-1].Number {
			t.Errorf("added line numbers decrease at index %d", i)
		}
	}

	wantDeleted := []Line{{Number: 22, Content: "let obsolete = true;"}}
	if !reflect.DeepEqual(result.DeletedLines, wantDeleted) {
		t.Errorf("DeletedLines = %+v, want %+v", result.DeletedLines, wantDeleted)
	}

	if !result.Functions.Found {
		t.Fatal("Functions.Found = false, want true")
	}
	if len(result.Functions.Lines) != 1 || len(result.Functions.Numbers) != 1 {
		t.Fatalf("Functions = %+v, want exactly one record", result.Functions)
	}
	if result.Functions.Lines[0] != "function computeTotal(x, y) {" {
		t.Errorf("Functions.Lines[0] = %q", result.Functions.Lines[0])
	}
	if result.Functions.Numbers[0] != 10 {
		t.Errorf("Functions.Numbers[0] = %d, want 10", result.Functions.Numbers[0])
	}

	if len(result.Imports) != 0 {
		t.Errorf("Imports = %v, want empty", result.Imports)
	}
	if len(result.TestDeclarations) != 0 {
		t.Errorf("TestDeclarations = %v, want empty", result.TestDeclarations)
	}
}

func TestAnalyzeEmptyPatch(t *testing.T) {
	analyzer := NewAnalyzer()

	for _, patch := range []string{"", "   ", "\n\t\n"} {
		if _, err := analyzer.Analyze(patch); !errors.Is(err, ErrEmptyPatch) {
			t.Errorf("Analyze(%q) error = %v, want ErrEmptyPatch", patch, err)
		}
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	analyzer := NewAnalyzer()

	first, err := analyzer.Analyze(twoHunkPatch)
	if err != nil {
		t.Fatalf("first Analyze() returned error: %v", err)
	}
	second, err := analyzer.Analyze(twoHunkPatch)
	if err != nil {
		t.Fatalf("second Analyze() returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated analysis diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAnalyzeUnsupportedLanguage(t *testing.T) {
	analyzer := NewAnalyzer()
	patch := `--- a/README.md
+++ b/README.md
@@ -1,1 +1,2 @@
 # Title
+New paragraph with function update(x) { in prose.
`

	result, err := analyzer.Analyze(patch)
	if err != nil {
		t.Fatalf("Analyze() returned error: %v", err)
	}
	if result.LanguageSupported {
		t.Error("md must be reported as unsupported")
	}
	if result.Language != "md" {
		t.Errorf("Language = %q, want %q", result.Language, "md")
	}
	if len(result.AddedLines) != 1 {
		t.Fatalf("AddedLines = %+v, want one line", result.AddedLines)
	}
	if result.Functions.Found {
		t.Error("no function matching may run for an unsupported language")
	}
	if len(result.Imports) != 0 || len(result.TestDeclarations) != 0 {
		t.Error("unsupported language must yield empty match collections")
	}
}

func TestAnalyzeDegradesOnUnparsableInput(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name  string
		patch string
	}{
		{"binary marker", "Binary files a/logo.png and b/logo.png differ\n"},
		{"plain text", "this is not a diff\njust some text\n"},
		{"headers without hunks", "--- a/app.js\n+++ b/app.js\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := analyzer.Analyze(tt.patch)
			if err != nil {
				t.Fatalf("Analyze() returned error: %v", err)
			}
			if len(result.AddedLines) != 0 || len(result.DeletedLines) != 0 {
				t.Errorf("unparsable input must yield empty line collections, got %+v", result)
			}
			if result.Functions.Found {
				t.Error("unparsable input must not report functions")
			}
		})
	}
}

func TestAnalyzeHeadersWithoutHunksKeepsIdentity(t *testing.T) {
	analyzer := NewAnalyzer()

	result, err := analyzer.Analyze("--- a/app.js\n+++ b/app.js\n")
	if err != nil {
		t.Fatalf("Analyze() returned error: %v", err)
	}
	if result.Filename != "app.js" {
		t.Errorf("Filename = %q, want %q", result.Filename, "app.js")
	}
	if result.Language != "js" {
		t.Errorf("Language = %q, want %q", result.Language, "js")
	}
}

func TestAnalyzeTestFilePatch(t *testing.T) {
	analyzer := NewAnalyzer()
	patch := `--- a/__tests__/calc.test.js
+++ b/__tests__/calc.test.js
@@ -4,2 +4,5 @@
 const calc = require("../calc");
 
+test("adds two numbers", () => {
+  expect(calc.add(2, 3)).toBe(5);
+});
`

	result, err := analyzer.Analyze(patch)
	if err != nil {
		t.Fatalf("Analyze() returned error: %v", err)
	}
	if !result.IsTestFile {
		t.Error("IsTestFile = false, want true")
	}
	if len(result.TestDeclarations) != 1 {
		t.Fatalf("TestDeclarations = %v, want one entry", result.TestDeclarations)
	}
	if result.TestDeclarations[0] != `test("adds two numbers", () => {` {
		t.Errorf("TestDeclarations[0] = %q", result.TestDeclarations[0])
	}
}

func TestAnalyzePythonImports(t *testing.T) {
	analyzer := NewAnalyzer()
	patch := `--- a/src/app.py
+++ b/src/app.py
@@ -1,2 +1,5 @@
 import os
+import json
+from typing import Optional
 
+def load_config(path):
`

	result, err := analyzer.Analyze(patch)
	if err != nil {
		t.Fatalf("Analyze() returned error: %v", err)
	}
	if result.Language != "py" {
		t.Errorf("Language = %q, want %q", result.Language, "py")
	}
	wantImports := []string{"import json", "from typing import Optional"}
	if !reflect.DeepEqual(result.Imports, wantImports) {
		t.Errorf("Imports = %v, want %v", result.Imports, wantImports)
	}
	if !result.Functions.Found {
		t.Error("Functions.Found = false, want true for added def")
	}
}
