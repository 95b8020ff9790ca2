package llm

import "strings"

// StripCodeFences removes a Markdown code fence wrapping a model response,
// including an optional leading "json" language tag. Text without fences
// passes through unchanged.
func StripCodeFences(s string) string {
	out := strings.TrimSpace(s)
	if strings.HasPrefix(out, "```") {
		if idx := strings.Index(out, "\n"); idx >= 0 {
			out = out[idx+1:]
		} else {
			out = strings.TrimPrefix(out, "```")
		}
	}
	if strings.HasSuffix(out, "```") {
		if idx := strings.LastIndex(out, "\n"); idx >= 0 {
			out = out[:idx]
		} else {
			out = strings.TrimSuffix(out, "```")
		}
	}
	if strings.HasPrefix(out, "json") {
		if idx := strings.Index(out, "\n"); idx >= 0 {
			out = out[idx+1:]
		}
	}
	return strings.TrimSpace(out)
}
