package service

import (
	"fmt"

	"github.com/kdduha/healthy-eating/internal/models"
	"github.com/kdduha/healthy-eating/internal/upstream"
)

// BuildTextPayload asks the model to rate a named food.
func BuildTextPayload(model, food string) *upstream.Payload {
	return &upstream.Payload{
		Model:     model,
		MaxTokens: textMaxTokens,
		System:    systemPromptText,
		Parts: []upstream.Part{
			upstream.TextPart(textUserPrefix + food),
		},
	}
}

// BuildImagePayload asks the model to identify and rate the food in a photo.
// The image part must precede the instruction.
func BuildImagePayload(model, imageBase64, mediaType string) *upstream.Payload {
	return &upstream.Payload{
		Model:     model,
		MaxTokens: imageMaxTokens,
		System:    systemPromptImage,
		Parts: []upstream.Part{
			upstream.ImagePart(mediaType, imageBase64),
			upstream.TextPart(imageUserInstruction),
		},
	}
}

func (s *AnalyzeService) buildPayload(req models.AnalysisRequest) (*upstream.Payload, error) {
	switch r := req.(type) {
	case *models.TextQuery:
		return BuildTextPayload(s.modelName, r.Food), nil
	case *models.ImageQuery:
		return BuildImagePayload(s.modelName, r.ImageData, r.MediaType), nil
	default:
		return nil, fmt.Errorf("unsupported request type %T", req)
	}
}
