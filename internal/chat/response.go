package chat

import (
	"google.golang.org/genai"
)

const (
	// FallbackText is returned when the backend produced nothing renderable
	FallbackText = "Sorry, I could not generate a response."
	// BlockedPrefix precedes the block reason when the prompt was blocked
	BlockedPrefix = "Response blocked: "
)

// MapResponse converts a unary backend result into the client schema.
// Only candidates with at least one text part are kept, and only their text
// parts. When nothing qualifies a single synthetic candidate is returned so the
// client always has something to render.
func MapResponse(resp *genai.GenerateContentResponse) *Response {
	out := &Response{Candidates: []Candidate{}}

	if resp != nil {
		for _, cand := range resp.Candidates {
			if c, ok := mapCandidate(cand); ok {
				out.Candidates = append(out.Candidates, c)
			}
		}
	}

	if len(out.Candidates) > 0 {
		return out
	}

	text := FallbackText
	if reason := blockReason(resp); reason != "" {
		text = BlockedPrefix + reason
	}
	out.Candidates = append(out.Candidates, Candidate{
		Content: Turn{Role: genai.RoleModel, Parts: []Part{{Text: text}}},
	})
	return out
}

func mapCandidate(cand *genai.Candidate) (Candidate, bool) {
	if cand == nil || cand.Content == nil {
		return Candidate{}, false
	}

	parts := textParts(cand.Content)
	if len(parts) == 0 {
		return Candidate{}, false
	}

	role := cand.Content.Role
	if role == "" {
		role = genai.RoleModel
	}

	return Candidate{
		Content:      Turn{Role: role, Parts: parts},
		FinishReason: finishReason(cand),
	}, true
}

// textParts keeps non-empty text parts, skipping thought summaries and non-text data
func textParts(content *genai.Content) []Part {
	var parts []Part
	for _, part := range content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		parts = append(parts, Part{Text: part.Text})
	}
	return parts
}

func finishReason(cand *genai.Candidate) string {
	if cand.FinishReason == genai.FinishReasonUnspecified {
		return ""
	}
	return string(cand.FinishReason)
}

func blockReason(resp *genai.GenerateContentResponse) string {
	if resp == nil || resp.PromptFeedback == nil {
		return ""
	}
	reason := resp.PromptFeedback.BlockReason
	if reason == "" || reason == genai.BlockedReasonUnspecified {
		return ""
	}
	return string(reason)
}
