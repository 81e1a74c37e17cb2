package llm

import (
	"context"
	"errors"
	"math"

	"github.com/sashabaranov/go-openai"
)

// systemInstruction is the fixed first turn of every hosted-chat exchange.
const systemInstruction = "You are a helpful assistant."

// generateAzure wraps the prompt as a single user turn after the fixed system
// instruction. Sampling is pinned (temperature 0, top_p 1, bounded output) so
// pipeline generation is reproducible rather than creative.
func (c *Client) generateAzure(ctx context.Context, prompt string) (string, error) {
	if c.azure == nil {
		return "", &BackendError{Backend: BackendAzure, Err: errors.New("azure endpoint not configured")}
	}

	req := openai.ChatCompletionRequest{
		Model: c.cfg.Azure.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 2048,
		// go-openai drops a zero Temperature from the request body (omitempty);
		// the smallest nonzero float is its convention for an explicit 0.
		Temperature: math.SmallestNonzeroFloat32,
		TopP:        1,
	}

	resp, err := c.azure.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &BackendError{Backend: BackendAzure, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &BackendError{Backend: BackendAzure, Err: errors.New("no choices in response")}
	}
	return resp.Choices[0].Message.Content, nil
}
