package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/struckmeier-elektro/baulog/internal/domain/ai"
	"github.com/struckmeier-elektro/baulog/internal/infra/ai/prompt"
)

const (
	maxTokens   = 1500
	temperature = 0.3
)

type Client struct {
	*openai.Client
	model string
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = openai.GPT4o
	}
	return &Client{Client: openai.NewClient(apiKey), model: model}
}

func (c *Client) Model() string { return c.model }

// Analyze sends the instruction template plus the encoded photo in one user
// message and returns the raw reply text. Low temperature keeps the output
// close to the requested JSON schema.
func (c *Client) Analyze(ctx context.Context, img ai.Payload, filename string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt.Bautagebuch(),
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    img.DataURI,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ai.ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ai.ErrUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}
