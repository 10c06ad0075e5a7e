package models

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/kdduha/healthy-eating/internal/apperrors"
)

type RequestKind string

const (
	KindText  RequestKind = "text"
	KindImage RequestKind = "image"
)

const (
	MediaTypeJPEG = "image/jpeg"
	MediaTypePNG  = "image/png"
	MediaTypeGIF  = "image/gif"
	MediaTypeWEBP = "image/webp"
)

var allowedMediaTypes = map[string]struct{}{
	MediaTypeJPEG: {},
	MediaTypePNG:  {},
	MediaTypeGIF:  {},
	MediaTypeWEBP: {},
}

const (
	msgNoFood         = "Please provide a food to analyse."
	msgNoImage        = "Please provide an image to analyse."
	msgUnsupportedFmt = "Unsupported image type: "
)

// AnalysisRequest is either a TextQuery or an ImageQuery.
type AnalysisRequest interface {
	Kind() RequestKind
	Validate() error
}

// TextQuery represents request for analyze endpoint
type TextQuery struct {
	Food string `json:"food" example:"banana bread"`
}

func (q *TextQuery) Kind() RequestKind { return KindText }

// Validate trims Food in place and rejects an empty value.
func (q *TextQuery) Validate() error {
	q.Food = strings.TrimSpace(q.Food)
	if q.Food == "" {
		return apperrors.NewInvalidInput(msgNoFood)
	}
	return nil
}

// ImageQuery represents request for analyze-image endpoint
type ImageQuery struct {
	ImageData string `json:"image" example:"/9j/4AAQSkZJRgABAQAAAQABAAD..."`
	MediaType string `json:"media_type" example:"image/jpeg"`
}

func (q *ImageQuery) Kind() RequestKind { return KindImage }

func (q *ImageQuery) Validate() error {
	if q.ImageData == "" || q.MediaType == "" {
		return apperrors.NewInvalidInput(msgNoImage)
	}
	if !IsAllowedMediaType(q.MediaType) {
		return apperrors.NewInvalidInput(msgUnsupportedFmt + q.MediaType)
	}
	return nil
}

func IsAllowedMediaType(mediaType string) bool {
	_, ok := allowedMediaTypes[mediaType]
	return ok
}

// InvalidBodyError is what a request body that is not a JSON object maps to.
func InvalidBodyError(kind RequestKind) error {
	if kind == KindImage {
		return apperrors.NewInvalidInput(msgNoImage)
	}
	return apperrors.NewInvalidInput(msgNoFood)
}

// AnalysisResult is the verdict JSON object exactly as the model produced it.
type AnalysisResult []byte

// MarshalJSON writes the verdict through unchanged.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	return r, nil
}

// Rating reads the "rating" field for logging, "?" when absent.
func (r AnalysisResult) Rating() string {
	return r.field("rating")
}

// Food reads the "food" field for logging, "?" when absent.
func (r AnalysisResult) Food() string {
	return r.field("food")
}

func (r AnalysisResult) field(name string) string {
	node, err := sonic.Get(r, name)
	if err != nil || !node.Exists() {
		return "?"
	}
	if s, err := node.String(); err == nil {
		return s
	}
	raw, err := node.Raw()
	if err != nil {
		return "?"
	}
	return raw
}

// ErrorResponse is the body of every failed JSON response.
type ErrorResponse struct {
	Error string `json:"error" example:"Please provide a food to analyse."`
}

// AnalysisResultDoc documents the verdict shape for the API docs only;
// responses are not decoded into it.
type AnalysisResultDoc struct {
	Food        string  `json:"food" example:"Banana bread"`
	Rating      int     `json:"rating" example:"5"`
	Portion     string  `json:"portion" example:"one slice, about the size of your palm"`
	Calories    string  `json:"calories" example:"~250 calories"`
	Protein     string  `json:"protein,omitempty" example:"~4g"`
	Carbs       string  `json:"carbs,omitempty" example:"~38g"`
	Fat         string  `json:"fat,omitempty" example:"~9g"`
	Explanation string  `json:"explanation" example:"Tasty and fine now and then."`
	Alternative *string `json:"alternative" example:"Try a banana with peanut butter."`
}
