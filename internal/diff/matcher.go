package diff

// MatchFunctions scans the added lines for new function or method
// definitions. Exclusion is checked before acceptance: a line matching any
// control-flow pattern is never recorded, regardless of what else it looks
// like. The second return is false when no pattern table covers the
// language; that is a valid outcome, not a failure.
func (a *Analyzer) MatchFunctions(added []Line, language string) (FunctionMatches, bool) {
	matches := FunctionMatches{Lines: []string{}, Numbers: []int{}}
	lang, ok := resolveLanguage(language)
	if !ok {
		return matches, false
	}

	for _, line := range added {
		if a.isControlFlow(line.Content) {
			continue
		}
		for _, rx := range a.functions[lang] {
			if rx.MatchString(line.Content) {
				matches.Found = true
				matches.Lines = append(matches.Lines, line.Content)
				matches.Numbers = append(matches.Numbers, line.Number)
				break
			}
		}
	}
	return matches, true
}

// MatchImports collects added lines that introduce import or dependency
// statements for the language.
func (a *Analyzer) MatchImports(added []Line, language string) ([]string, bool) {
	imports := []string{}
	lang, ok := resolveLanguage(language)
	if !ok {
		return imports, false
	}

	for _, line := range added {
		for _, rx := range a.imports[lang] {
			if rx.MatchString(line.Content) {
				imports = append(imports, line.Content)
				break
			}
		}
	}
	return imports, true
}

// MatchTestDeclarations collects added lines that declare test cases for the
// language.
func (a *Analyzer) MatchTestDeclarations(added []Line, language string) ([]string, bool) {
	decls := []string{}
	lang, ok := resolveLanguage(language)
	if !ok {
		return decls, false
	}

	for _, line := range added {
		for _, rx := range a.testDecls[lang] {
			if rx.MatchString(line.Content) {
				decls = append(decls, line.Content)
				break
			}
		}
	}
	return decls, true
}

func (a *Analyzer) isControlFlow(content string) bool {
	for _, rx := range a.exclusions {
		if rx.MatchString(content) {
			return true
		}
	}
	return false
}
