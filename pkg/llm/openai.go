package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"shoedex/internal/model"
)

type OpenAIExtractor struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIExtractor(apiKey string) *OpenAIExtractor {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIExtractor{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}
}

func (c *OpenAIExtractor) ExtractShoes(input ExtractInput) ([]model.LooseSpec, error) {
	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPromptFor(input)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var parsed []model.LooseSpec
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	return stampIdentity(parsed, input), nil
}
