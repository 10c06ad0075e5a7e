package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/kdduha/healthy-eating/internal/apperrors"
	"github.com/kdduha/healthy-eating/internal/models"
)

type AnthropicClient struct {
	client *anthropic.Client
}

// NewAnthropicClient talks to the Messages API at baseURL. The SDK's own
// retries are disabled: a failure goes straight back to the caller.
func NewAnthropicClient(apiKey, baseURL string, timeout time.Duration, opts ...option.RequestOption) *AnthropicClient {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}, opts...)

	client := anthropic.NewClient(opts...)
	return &AnthropicClient{client: &client}
}

func (c *AnthropicClient) Provider() string {
	return ProviderAnthropic
}

func (c *AnthropicClient) Send(ctx context.Context, payload *Payload) (models.AnalysisResult, error) {
	var httpResp *http.Response
	msg, err := c.client.Messages.New(ctx, buildAnthropicParams(payload), option.WithResponseInto(&httpResp))
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, apperrors.NewUpstream(upstreamMessage(apiErr.RawJSON(), apiErr.StatusCode), err)
		}
		return nil, transportOrStatus(err, httpResp)
	}

	if len(msg.Content) == 0 {
		return nil, apperrors.NewDecode(msgBadResponse, fmt.Errorf("response has no content blocks"))
	}
	return decodeResult(msg.Content[0].Text)
}

func buildAnthropicParams(p *Payload) anthropic.MessageNewParams {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(p.Parts))
	for _, part := range p.Parts {
		switch part.Kind {
		case PartImage:
			blocks = append(blocks, anthropic.NewImageBlockBase64(part.MediaType, part.Data))
		default:
			blocks = append(blocks, anthropic.NewTextBlock(part.Text))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.Model),
		MaxTokens: p.MaxTokens,
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
	}
	if p.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: p.System}}
	}
	return params
}
