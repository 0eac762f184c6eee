package review

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const approxCharsPerToken = 4

var (
	tokenEncoderOnce sync.Once
	tokenEncoder     *tiktoken.Tiktoken

	estimateTokensFunc = defaultEstimateTokens
)

func estimateTokens(text string) int {
	return estimateTokensFunc(text)
}

func defaultEstimateTokens(text string) int {
	enc := getTokenEncoder()
	if enc != nil {
		tokens := enc.Encode(text, nil, nil)
		if len(tokens) > 0 {
			return len(tokens)
		}
	}
	return maxInt(1, len(text)/approxCharsPerToken)
}

func getTokenEncoder() *tiktoken.Tiktoken {
	tokenEncoderOnce.Do(func() {
		enc, err := tiktoken.EncodingForModel("gpt-4o-mini")
		if err != nil {
			enc, err = tiktoken.GetEncoding("cl100k_base")
		}
		tokenEncoder = enc
	})
	return tokenEncoder
}

// truncateToTokens cuts text to roughly the given token budget. The cut is
// approximate; it lands on the nearest earlier line break when one exists in
// the tail so a diff line is never sliced mid-way.
func truncateToTokens(text string, budget int) string {
	if budget <= 0 || estimateTokens(text) <= budget {
		return text
	}
	limit := budget * approxCharsPerToken
	if limit >= len(text) {
		return text
	}
	cut := limit
	for cut > limit/2 {
		if text[cut-1] == '\n' {
			break
		}
		cut--
	}
	if cut <= limit/2 {
		cut = limit
	}
	return text[:cut]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
