package inference

import "unicode/utf8"

// charsPerToken is the usual ratio for English text on llama-family tokenizers.
const charsPerToken = 4

// EstimateTokens approximates the token count of s. Non-empty text counts as
// at least one token.
func EstimateTokens(s string) int {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return 0
	}
	t := (n + charsPerToken/2) / charsPerToken
	if t < 1 {
		t = 1
	}
	return t
}

// LlamaBuilt reports whether this binary links the in-process llama runtime.
func LlamaBuilt() bool { return llamaBuilt }
