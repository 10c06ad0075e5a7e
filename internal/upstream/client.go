package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
	"github.com/kdduha/healthy-eating/internal/apperrors"
	"github.com/kdduha/healthy-eating/internal/models"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

const (
	msgUnreachable = "Could not reach the analysis service. Please try again."
	msgBadResponse = "Could not understand the analysis. Please try again."
)

// Client sends one payload upstream and returns the verdict it carries.
type Client interface {
	Send(ctx context.Context, payload *Payload) (models.AnalysisResult, error)
	Provider() string
}

// decodeResult checks that the model's text is a JSON object and returns it
// untouched.
func decodeResult(text string) (models.AnalysisResult, error) {
	if !sonic.ValidString(text) {
		return nil, apperrors.NewDecode(msgBadResponse, fmt.Errorf("result is not valid JSON: %.80q", text))
	}
	node, err := sonic.GetFromString(text)
	if err != nil {
		return nil, apperrors.NewDecode(msgBadResponse, err)
	}
	if node.TypeSafe() != ast.V_OBJECT {
		return nil, apperrors.NewDecode(msgBadResponse, fmt.Errorf("result is not a JSON object"))
	}
	return models.AnalysisResult(text), nil
}

// errorBody is the {"error": {"message": ...}} shape both providers use.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// upstreamMessage extracts error.message from a raw error body, falling back
// to the status code.
func upstreamMessage(raw string, status int) string {
	var body errorBody
	if raw != "" && sonic.UnmarshalString(raw, &body) == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return fmt.Sprintf("API error: %d", status)
}

// transportOrStatus classifies an SDK error that is not a typed API error.
// resp is whatever the SDK captured. When it is set the provider answered,
// so the failure is about the body, not the connection.
func transportOrStatus(err error, resp *http.Response) error {
	switch {
	case resp == nil:
		return apperrors.NewTransport(msgUnreachable, err)
	case resp.StatusCode >= http.StatusBadRequest:
		return apperrors.NewUpstream(fmt.Sprintf("API error: %d", resp.StatusCode), err)
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return apperrors.NewDecode(msgBadResponse, err)
	default:
		return apperrors.NewTransport(msgUnreachable, err)
	}
}
