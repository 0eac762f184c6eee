package embeddings

import "strings"

// BuildDocument assembles the text that represents one review for embedding.
// Long segments are truncated so a single oversized PR body cannot dominate
// the vector.
func BuildDocument(title, body, reviewBody string) string {
	var builder strings.Builder
	builder.WriteString("PR Title: ")
	builder.WriteString(title)
	builder.WriteString("\n\nPR Description: ")
	if len(body) > 2000 {
		builder.WriteString(body[:2000])
	} else {
		builder.WriteString(body)
	}
	if reviewBody != "" {
		builder.WriteString("\n\nReview: ")
		if len(reviewBody) > 3000 {
			builder.WriteString(reviewBody[:3000])
		} else {
			builder.WriteString(reviewBody)
		}
	}
	return builder.String()
}
