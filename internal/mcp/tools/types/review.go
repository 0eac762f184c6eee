package types

type ReviewResult struct {
	Repo            string   `json:"repo"`
	PRNumber        int      `json:"pr_number"`
	HeadSHA         string   `json:"head_sha"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	FilesTotal      int      `json:"files_total"`
	FilesReviewed   int      `json:"files_reviewed"`
	FilesSkipped    int      `json:"files_skipped"`
	NewFunctions    int      `json:"new_functions"`
	NewImports      int      `json:"new_imports"`
	TestFiles       int      `json:"test_files"`
	Languages       string   `json:"languages"`
	ReviewBody      string   `json:"review_body"`
	Model           string   `json:"model"`
	Succeeded       bool     `json:"succeeded"`
	CreatedAt       string   `json:"created_at"`
	PostedAt        *string  `json:"posted_at,omitempty"`
	GithubURL       string   `json:"github_url"`
	SimilarityScore *float64 `json:"similarity_score,omitempty"`
}
