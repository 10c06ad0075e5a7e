package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kdduha/healthy-eating/internal/apperrors"
	"github.com/kdduha/healthy-eating/internal/models"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIClient sends payloads to an OpenAI-compatible chat completions API,
// e.g. a local vLLM serving a vision model.
type OpenAIClient struct {
	client openai.Client
}

func NewOpenAIClient(apiKey, baseURL string, timeout time.Duration, opts ...option.RequestOption) *OpenAIClient {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}, opts...)

	return &OpenAIClient{client: openai.NewClient(opts...)}
}

func (c *OpenAIClient) Provider() string {
	return ProviderOpenAI
}

func (c *OpenAIClient) Send(ctx context.Context, payload *Payload) (models.AnalysisResult, error) {
	var httpResp *http.Response
	resp, err := c.client.Chat.Completions.New(ctx, buildOpenAIParams(payload), option.WithResponseInto(&httpResp))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			msg := apiErr.Message
			if msg == "" {
				msg = fmt.Sprintf("API error: %d", apiErr.StatusCode)
			}
			return nil, apperrors.NewUpstream(msg, err)
		}
		return nil, transportOrStatus(err, httpResp)
	}

	if len(resp.Choices) == 0 {
		return nil, apperrors.NewDecode(msgBadResponse, fmt.Errorf("response has no choices"))
	}
	return decodeResult(resp.Choices[0].Message.Content)
}

func buildOpenAIParams(p *Payload) openai.ChatCompletionNewParams {
	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(p.Parts))
	for _, part := range p.Parts {
		switch part.Kind {
		case PartImage:
			parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: fmt.Sprintf("data:%s;base64,%s", part.MediaType, part.Data),
			}))
		default:
			parts = append(parts, openai.TextContentPart(part.Text))
		}
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if p.System != "" {
		messages = append(messages, openai.SystemMessage(p.System))
	}
	messages = append(messages, openai.UserMessage(parts))

	return openai.ChatCompletionNewParams{
		Model:               shared.ChatModel(p.Model),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(p.MaxTokens),
	}
}
