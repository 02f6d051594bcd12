package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// openAIClient implements LLMClient against the OpenAI chat completions
// API, or an Azure OpenAI deployment when one is configured.
type openAIClient struct {
	cfg      LLMConfig
	client   openai.Client
	observer Observer
}

func NewOpenAIClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai provider requires ROASTERY_LLM_API_KEY")
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	cfg.Provider = ProviderOpenAI

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	switch {
	case cfg.UseAzure():
		base := strings.TrimRight(cfg.BaseURL, "/") + "/openai/deployments/" + cfg.AzureDeployment
		opts = append(opts,
			option.WithBaseURL(base),
			option.WithHeader("api-key", cfg.APIKey),
		)
		if cfg.AzureAPIVersion != "" {
			opts = append(opts, option.WithQuery("api-version", cfg.AzureAPIVersion))
		}
		cfg.Model = cfg.AzureDeployment
	case cfg.BaseURL != "":
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	// Retries are ours.
	opts = append(opts, option.WithMaxRetries(0))

	return &openAIClient{
		cfg:      cfg,
		client:   openai.NewClient(opts...),
		observer: observer,
	}, nil
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := c.cfg.sampling(req)

	conversation := req.conversation()
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(conversation))
	for _, m := range conversation {
		switch m.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(c.cfg.Model),
		Messages:    messages,
		Temperature: openai.Float(temp),
	}
	if maxTok > 0 {
		params.MaxTokens = openai.Int(int64(maxTok))
	}
	if req.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	return callWithRetries(ctx, c.cfg, c.observer, req.Task, func(ctx context.Context) (*GenerateResponse, error) {
		resp, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("%w: no choices in response", ErrInvalidOutput)
		}
		return &GenerateResponse{Text: resp.Choices[0].Message.Content, Model: resp.Model}, nil
	})
}

func (c *openAIClient) Available(ctx context.Context) bool {
	return c.cfg.APIKey != ""
}
