package chat

import (
	"errors"

	"google.golang.org/genai"
)

// ErrEmptyPrompt is a client error: the request carries no prompt
var ErrEmptyPrompt = errors.New("prompt is required")

// Validate rejects requests that must never reach the backend
func Validate(req *Request) error {
	if req == nil || req.Prompt == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// BuildContents returns history followed by one user turn carrying the prompt.
// History is copied verbatim: no dedupe, truncation or role checks.
func BuildContents(req *Request) ([]*genai.Content, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		parts := make([]*genai.Part, 0, len(turn.Parts))
		for _, part := range turn.Parts {
			parts = append(parts, genai.NewPartFromText(part.Text))
		}
		contents = append(contents, &genai.Content{Role: turn.Role, Parts: parts})
	}

	contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))
	return contents, nil
}
