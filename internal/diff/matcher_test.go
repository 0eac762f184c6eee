package diff

import "testing"

func TestMatchFunctionsJavaScript(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name string
		line string
		want bool
	}{
		{"function declaration", "function computeTotal(x, y) {", true},
		{"exported async declaration", "export async function loadUser(id) {", true},
		{"generator declaration", "function* walk(tree) {", true},
		{"arrow assigned to const", "const add = (a, b) => a + b", true},
		{"single arg arrow", "let double = n => n * 2", true},
		{"function expression", "var render = function (props) {", true},
		{"class method", "  render(props) {", true},
		{"static async method", "  static async fetchAll(filter) {", true},
		{"for loop excluded", "for (let i = 0; i < 10; i++) {", false},
		{"while loop excluded", "while (queue.length > 0) {", false},
		{"if statement excluded", "if (user.isAdmin) {", false},
		{"else if excluded", "} else if (retries > 0) {", false},
		{"bare else excluded", "} else {", false},
		{"switch excluded", "switch (action.type) {", false},
		{"catch excluded", "} catch (err) {", false},
		{"plain call expression", "computeTotal(3, 4);", false},
		{"assignment without function", "const limit = 10;", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, ok := analyzer.MatchFunctions([]Line{{Number: 7, Content: tt.line}}, "js")
			if !ok {
				t.Fatal("js unexpectedly unsupported")
			}
			if matches.Found != tt.want {
				t.Errorf("Found = %v, want %v for %q", matches.Found, tt.want, tt.line)
			}
			if len(matches.Lines) != len(matches.Numbers) {
				t.Fatalf("parallel arrays diverge: %d lines, %d numbers", len(matches.Lines), len(matches.Numbers))
			}
			if tt.want {
				if len(matches.Lines) != 1 {
					t.Fatalf("got %d records, want 1", len(matches.Lines))
				}
				if matches.Lines[0] != tt.line {
					t.Errorf("recorded %q, want %q", matches.Lines[0], tt.line)
				}
				if matches.Numbers[0] != 7 {
					t.Errorf("recorded number %d, want 7", matches.Numbers[0])
				}
			}
		})
	}
}

func TestMatchFunctionsAcrossLanguages(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name     string
		language string
		line     string
		want     bool
	}{
		{"python def", "py", "def compute_total(x, y):", true},
		{"python async def", "py", "async def fetch_user(session, uid):", true},
		{"python method", "py", "    def save(self):", true},
		{"python lambda assignment", "py", "square = lambda n: n * n", true},
		{"python call", "py", "compute_total(3, 4)", false},
		{"go function", "go", "func ParseHeader(raw string) (Header, error) {", true},
		{"go method", "go", "func (s *Server) handle(w http.ResponseWriter, r *http.Request) {", true},
		{"go closure assignment", "go", "retry := func(n int) error {", true},
		{"go if statement", "go", "if err != nil {", false},
		{"java public method", "java", "public int parse(String raw) {", true},
		{"java static generic method", "java", "public static <T> List<T> of(T... items) {", true},
		{"java constructor", "java", "public Calculator(int precision) {", true},
		{"java bare method", "java", "void reset() {", true},
		{"java field", "java", "private int counter;", false},
		{"ruby def", "rb", "def total(items)", true},
		{"ruby singleton def", "rb", "def self.build(params)", true},
		{"ruby predicate def", "rb", "def empty?", true},
		{"ruby lambda arrow", "rb", "adder = ->(a, b) { a + b }", true},
		{"ruby call", "rb", "total(items)", false},
		{"rust fn", "rs", "fn checksum(data: &[u8]) -> u32 {", true},
		{"rust pub async fn", "rs", "pub async fn connect(addr: &str) -> Result<Client> {", true},
		{"rust closure", "rs", "let emit = move |event| {", true},
		{"rust match arm", "rs", "Some(v) => v,", false},
		{"typescript method with types", "ts", "  private async load(id: string): Promise<User> {", true},
		{"typescript annotated arrow", "ts", "const compare: Comparator = (a, b) => a.id - b.id", true},
		{"jsx resolves to js table", "jsx", "const Button = (props) => {", true},
		{"tsx resolves to ts table", "tsx", "export function App() {", true},
		{"mjs resolves to js table", "mjs", "export default function main() {", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, ok := analyzer.MatchFunctions([]Line{{Number: 1, Content: tt.line}}, tt.language)
			if !ok {
				t.Fatalf("language %q unexpectedly unsupported", tt.language)
			}
			if matches.Found != tt.want {
				t.Errorf("Found = %v, want %v for %q (%s)", matches.Found, tt.want, tt.line, tt.language)
			}
		})
	}
}

func TestMatchFunctionsUnsupportedLanguage(t *testing.T) {
	analyzer := NewAnalyzer()
	added := []Line{{Number: 1, Content: "function looksLikeJs() {"}}

	matches, ok := analyzer.MatchFunctions(added, "md")
	if ok {
		t.Fatal("md should not be a supported language")
	}
	if matches.Found {
		t.Error("unsupported language must not report functions")
	}
	if len(matches.Lines) != 0 || len(matches.Numbers) != 0 {
		t.Errorf("unsupported language must return empty collections, got %d/%d", len(matches.Lines), len(matches.Numbers))
	}
}

func TestMatchFunctionsRecordsLineOnce(t *testing.T) {
	analyzer := NewAnalyzer()
	added := []Line{
		{Number: 4, Content: "export const fetchAll = async () => {"},
		{Number: 9, Content: "function helper() {"},
	}

	matches, _ := analyzer.MatchFunctions(added, "js")
	if len(matches.Lines) != 2 {
		t.Fatalf("got %d records, want 2 (one per line)", len(matches.Lines))
	}
	if matches.Numbers[0] != 4 || matches.Numbers[1] != 9 {
		t.Errorf("numbers = %v, want [4 9]", matches.Numbers)
	}
}

func TestMatchImports(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name     string
		language string
		line     string
		want     bool
	}{
		{"js named import", "js", `import { useState } from "react"`, true},
		{"js default import", "js", `import express from "express"`, true},
		{"js namespace import", "js", `import * as path from "path"`, true},
		{"js side effect import", "js", `import "./styles.css"`, true},
		{"js require", "js", `const fs = require("fs")`, true},
		{"js comment mentioning import", "js", `// import nothing here`, false},
		{"ts type import", "ts", `import type { Config } from "./config"`, true},
		{"python import", "py", "import json", true},
		{"python from import", "py", "from typing import Optional", true},
		{"python identifier starting with import", "py", "important = True", false},
		{"go single import", "go", `import "fmt"`, true},
		{"go aliased import", "go", `import bunmigrate "github.com/uptrace/bun/migrate"`, true},
		{"go block opener", "go", "import (", true},
		{"go quoted path inside block", "go", "\t\"github.com/spf13/viper\"", true},
		{"go string literal with spaces", "go", "\tmsg := \"hello world\"", false},
		{"java import", "java", "import java.util.List;", true},
		{"java static import", "java", "import static org.junit.Assert.assertEquals;", true},
		{"ruby require", "rb", `require "json"`, true},
		{"ruby require relative", "rb", `require_relative "helpers"`, true},
		{"rust use", "rs", "use std::collections::HashMap;", true},
		{"rust pub use", "rs", "pub use crate::client::Client;", true},
		{"rust extern crate", "rs", "extern crate serde;", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imports, ok := analyzer.MatchImports([]Line{{Number: 1, Content: tt.line}}, tt.language)
			if !ok {
				t.Fatalf("language %q unexpectedly unsupported", tt.language)
			}
			if got := len(imports) == 1; got != tt.want {
				t.Errorf("matched = %v, want %v for %q", got, tt.want, tt.line)
			}
		})
	}
}

func TestMatchTestDeclarations(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name     string
		language string
		line     string
		want     bool
	}{
		{"js it block", "js", `it("adds two numbers", () => {`, true},
		{"js test block", "js", `test("renders without crashing", () => {`, true},
		{"js describe block", "js", `describe("Calculator", () => {`, true},
		{"js test each", "js", "test.each(cases)(\"sums %p\", (a, b) => {", true},
		{"js plain function", "js", "function setup() {", false},
		{"python test function", "py", "def test_compute_total():", true},
		{"python test class", "py", "class TestCalculator(unittest.TestCase):", true},
		{"python helper function", "py", "def build_fixture():", false},
		{"go test function", "go", "func TestParseHeader(t *testing.T) {", true},
		{"go benchmark", "go", "func BenchmarkTrack(b *testing.B) {", true},
		{"go fuzz target", "go", "func FuzzAnalyze(f *testing.F) {", true},
		{"go helper", "go", "func setupFixtures(t *testing.T) {", false},
		{"java test annotation", "java", "@Test", true},
		{"java parameterized", "java", "@ParameterizedTest", true},
		{"ruby it block", "rb", `it "computes the total" do`, true},
		{"ruby describe block", "rb", `describe "Calculator" do`, true},
		{"ruby minitest method", "rb", "def test_total", true},
		{"rust test attribute", "rs", "#[test]", true},
		{"rust tokio test attribute", "rs", "#[tokio::test]", true},
		{"rust plain attribute", "rs", "#[derive(Debug)]", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls, ok := analyzer.MatchTestDeclarations([]Line{{Number: 1, Content: tt.line}}, tt.language)
			if !ok {
				t.Fatalf("language %q unexpectedly unsupported", tt.language)
			}
			if got := len(decls) == 1; got != tt.want {
				t.Errorf("matched = %v, want %v for %q", got, tt.want, tt.line)
			}
		})
	}
}

func TestMatchersUnsupportedLanguageCommaOk(t *testing.T) {
	analyzer := NewAnalyzer()
	added := []Line{{Number: 1, Content: `import "something"`}}

	if _, ok := analyzer.MatchImports(added, "toml"); ok {
		t.Error("MatchImports must report toml as unsupported")
	}
	if _, ok := analyzer.MatchTestDeclarations(added, "toml"); ok {
		t.Error("MatchTestDeclarations must report toml as unsupported")
	}
}
