package models

import (
	"net/http"
	"testing"

	"github.com/kdduha/healthy-eating/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextQueryValidate(t *testing.T) {
	tests := map[string]struct {
		food    string
		want    string
		wantErr bool
	}{
		"plain":             {food: "apple", want: "apple"},
		"surrounding space": {food: "  banana bread \n", want: "banana bread"},
		"empty":             {food: "", wantErr: true},
		"only whitespace":   {food: " \t\n ", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			q := &TextQuery{Food: tc.food}
			err := q.Validate()
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
				assert.Equal(t, "Please provide a food to analyse.", apperrors.Message(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, q.Food)
		})
	}
}

func TestImageQueryValidate(t *testing.T) {
	for _, mt := range []string{MediaTypeJPEG, MediaTypePNG, MediaTypeGIF, MediaTypeWEBP} {
		q := &ImageQuery{ImageData: "aGVsbG8=", MediaType: mt}
		assert.NoError(t, q.Validate(), mt)
	}

	missing := []*ImageQuery{
		{ImageData: "", MediaType: MediaTypePNG},
		{ImageData: "aGVsbG8=", MediaType: ""},
		{},
	}
	for _, q := range missing {
		err := q.Validate()
		require.Error(t, err)
		assert.Equal(t, "Please provide an image to analyse.", apperrors.Message(err))
		assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
	}

	for _, mt := range []string{"image/bmp", "image/JPEG", "application/pdf", "image/svg+xml"} {
		err := (&ImageQuery{ImageData: "aGVsbG8=", MediaType: mt}).Validate()
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
		assert.Equal(t, "Unsupported image type: "+mt, apperrors.Message(err))
	}
}

func TestInvalidBodyError(t *testing.T) {
	assert.Equal(t, "Please provide a food to analyse.", apperrors.Message(InvalidBodyError(KindText)))
	assert.Equal(t, "Please provide an image to analyse.", apperrors.Message(InvalidBodyError(KindImage)))
}

func TestAnalysisResultFields(t *testing.T) {
	r := AnalysisResult(`{"food":"Apple","rating":9,"alternative":null}`)
	assert.Equal(t, "Apple", r.Food())
	assert.Equal(t, "9", r.Rating())

	empty := AnalysisResult(`{}`)
	assert.Equal(t, "?", empty.Food())
	assert.Equal(t, "?", empty.Rating())

	out, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, []byte(r), out)
}
