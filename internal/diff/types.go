package diff

// LineMode selects which side of the change TrackLines records.
type LineMode int

const (
	Added LineMode = iota
	Removed
)

// Line is one changed line together with its post-change line number. For a
// removed line the number is the running counter at the point of removal;
// removed lines occupy no slot in the new file.
type Line struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// FunctionMatches reports function and method definitions found among the
// added lines. Lines and Numbers are parallel and share order.
type FunctionMatches struct {
	Found   bool     `json:"found"`
	Lines   []string `json:"lines"`
	Numbers []int    `json:"numbers"`
}

// Result is the classification of a single-file unified diff. A Result is
// complete when returned and never mutated by the engine afterward.
type Result struct {
	Filename          string          `json:"filename"`
	Language          string          `json:"language"`
	LanguageSupported bool            `json:"language_supported"`
	IsTestFile        bool            `json:"is_test_file"`
	AddedLines        []Line          `json:"added_lines"`
	DeletedLines      []Line          `json:"deleted_lines"`
	Functions         FunctionMatches `json:"functions"`
	Imports           []string        `json:"imports"`
	TestDeclarations  []string        `json:"test_declarations"`
}
