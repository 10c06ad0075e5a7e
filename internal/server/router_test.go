package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	_ "github.com/kdduha/healthy-eating/docs"
	"github.com/kdduha/healthy-eating/internal/handler"
	"github.com/kdduha/healthy-eating/internal/models"
	"github.com/kdduha/healthy-eating/internal/service"
	"github.com/kdduha/healthy-eating/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const maxImageBody = 10_000_000

type countingService struct {
	calls  atomic.Int32
	result models.AnalysisResult
	err    error
}

func (s *countingService) Analyze(context.Context, models.AnalysisRequest) (models.AnalysisResult, error) {
	s.calls.Add(1)
	return s.result, s.err
}

type panickingService struct{}

func (panickingService) Analyze(context.Context, models.AnalysisRequest) (models.AnalysisResult, error) {
	panic("nil map write")
}

type explodingReader struct{ t *testing.T }

func (r explodingReader) Read([]byte) (int, error) {
	r.t.Error("request body must not be read")
	return 0, io.EOF
}

func newTestRouter(t *testing.T, svc *countingService, indexPath string) http.Handler {
	t.Helper()
	lg := zaptest.NewLogger(t)
	return NewRouter(Handlers{
		Analyze: handler.NewAnalyzeHandler(svc, lg, maxImageBody),
		Static:  handler.NewStaticHandler(indexPath, lg),
	})
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func assertCORS(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body models.ErrorResponse
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestOptionsOnAnyPath(t *testing.T) {
	r := newTestRouter(t, &countingService{}, "missing.html")

	for _, path := range []string{"/", "/api/analyze", "/api/analyze-image", "/whatever/deep"} {
		rec := do(r, http.MethodOptions, path, "")
		assert.Equal(t, http.StatusNoContent, rec.Code, path)
		assert.Empty(t, rec.Body.String(), path)
		assertCORS(t, rec)
	}
}

func TestNotFound(t *testing.T) {
	r := newTestRouter(t, &countingService{}, "missing.html")

	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/unknown"},
		{http.MethodPost, "/"},
		{http.MethodPut, "/api/analyze"},
		{http.MethodDelete, "/api/analyze-image"},
		{http.MethodPatch, "/"},
	}
	for _, c := range cases {
		rec := do(r, c.method, c.path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, c.method+" "+c.path)
		assert.Equal(t, "Not found", rec.Body.String())
		assertCORS(t, rec)
	}
}

func TestStaticIndex(t *testing.T) {
	dir := t.TempDir()
	index := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(index, []byte("<h1>Healthy eating</h1>"), 0o644))
	r := newTestRouter(t, &countingService{}, index)

	for _, path := range []string{"/", "/index.html", "/some/page", "/api/analyze"} {
		rec := do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "<h1>Healthy eating</h1>", rec.Body.String())
		assertCORS(t, rec)
	}
}

func TestStaticIndexMissing(t *testing.T) {
	r := newTestRouter(t, &countingService{}, filepath.Join(t.TempDir(), "nope.html"))

	rec := do(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", rec.Body.String())
	assertCORS(t, rec)
}

func TestOperationalRoutes(t *testing.T) {
	r := newTestRouter(t, &countingService{}, "missing.html")

	rec := do(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy_eating_http_requests_total")

	rec = do(r, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/analyze-image")
}

func TestAnalyzeTextValidation(t *testing.T) {
	svc := &countingService{}
	r := newTestRouter(t, svc, "missing.html")

	for _, body := range []string{`{"food":""}`, `{"food":"   \t"}`, `{}`, `{"food":5}`, `not json`, ``} {
		rec := do(r, http.MethodPost, "/api/analyze", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "Please provide a food to analyse.", errorOf(t, rec))
		assertCORS(t, rec)
	}
	assert.Zero(t, svc.calls.Load(), "invalid input never reaches upstream")
}

func TestAnalyzeImageValidation(t *testing.T) {
	svc := &countingService{}
	r := newTestRouter(t, svc, "missing.html")

	for _, body := range []string{`{"image":"","media_type":"image/png"}`, `{"image":"aGk="}`, `{}`, `[]`} {
		rec := do(r, http.MethodPost, "/api/analyze-image", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "Please provide an image to analyse.", errorOf(t, rec))
	}

	for _, mt := range []string{"image/bmp", "text/plain", "image/tiff; x=1"} {
		body := `{"image":"aGk=","media_type":"` + mt + `"}`
		rec := do(r, http.MethodPost, "/api/analyze-image", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Unsupported image type: "+mt, errorOf(t, rec))
		assertCORS(t, rec)
	}
	assert.Zero(t, svc.calls.Load())
}

func TestAnalyzeImageTooLargeByContentLength(t *testing.T) {
	svc := &countingService{}
	r := newTestRouter(t, svc, "missing.html")

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-image", explodingReader{t: t})
	req.ContentLength = maxImageBody + 1
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "Image is too large. Please try a smaller photo.", errorOf(t, rec))
	assertCORS(t, rec)
	assert.Zero(t, svc.calls.Load())
}

func TestAnalyzeImageTooLargeWhileReading(t *testing.T) {
	svc := &countingService{}
	lg := zaptest.NewLogger(t)
	r := NewRouter(Handlers{
		Analyze: handler.NewAnalyzeHandler(svc, lg, 64),
		Static:  handler.NewStaticHandler("missing.html", lg),
	})

	body := `{"image":"` + strings.Repeat("A", 128) + `","media_type":"image/png"}`
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-image", io.NopCloser(strings.NewReader(body)))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "Image is too large. Please try a smaller photo.", errorOf(t, rec))
	assert.Zero(t, svc.calls.Load())
}

func TestAnalyzeImageAtCeilingIsAccepted(t *testing.T) {
	svc := &countingService{result: models.AnalysisResult(`{"food":"toast","rating":5}`)}
	r := newTestRouter(t, svc, "missing.html")

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-image",
		strings.NewReader(`{"image":"aGk=","media_type":"image/webp"}`))
	req.ContentLength = maxImageBody
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, svc.calls.Load())
}

// fakeAnthropic answers /v1/messages with a fixed status and body.
func fakeAnthropic(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newGateway(t *testing.T, upstreamURL string) http.Handler {
	t.Helper()
	lg := zaptest.NewLogger(t)
	client := upstream.NewAnthropicClient("sk-test", upstreamURL, 5*time.Second)
	svc := service.NewAnalyzeService(lg, client, "claude-sonnet-4-20250514")
	return NewRouter(Handlers{
		Analyze: handler.NewAnalyzeHandler(svc, lg, maxImageBody),
		Static:  handler.NewStaticHandler("missing.html", lg),
	})
}

func envelope(t *testing.T, text string) string {
	t.Helper()
	out, err := sonic.MarshalString(map[string]any{
		"id":      "msg_01",
		"type":    "message",
		"role":    "assistant",
		"content": []map[string]any{{"type": "text", "text": text}},
	})
	require.NoError(t, err)
	return out
}

func TestGatewayRoundTrip(t *testing.T) {
	verdict := `{"food":"apple","rating":9,"portion":"one medium apple","calories":"~95 calories","explanation":"Great pick.","alternative":null}`
	srv, calls := fakeAnthropic(t, http.StatusOK, envelope(t, verdict))
	gw := newGateway(t, srv.URL)

	rec := do(gw, http.MethodPost, "/api/analyze", `{"food":"  apple "}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, verdict, rec.Body.String())
	assertCORS(t, rec)

	imageVerdict := `{"food":"salad","rating":8,"protein":"~12g","carbs":"~20g","fat":"~9g","alternative":null}`
	srv2, _ := fakeAnthropic(t, http.StatusOK, envelope(t, imageVerdict))
	gw2 := newGateway(t, srv2.URL)

	rec = do(gw2, http.MethodPost, "/api/analyze-image", `{"image":"aGk=","media_type":"image/jpeg"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, imageVerdict, rec.Body.String())
	assertCORS(t, rec)
	assert.EqualValues(t, 1, calls.Load())
}

func TestGatewayUpstreamRateLimited(t *testing.T) {
	srv, _ := fakeAnthropic(t, http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`)
	gw := newGateway(t, srv.URL)

	for _, tc := range []struct{ path, body string }{
		{"/api/analyze", `{"food":"apple"}`},
		{"/api/analyze-image", `{"image":"aGk=","media_type":"image/png"}`},
	} {
		rec := do(gw, http.MethodPost, tc.path, tc.body)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "rate limited", errorOf(t, rec))
		assertCORS(t, rec)
	}
}

func TestGatewayUpstreamReturnsProse(t *testing.T) {
	srv, _ := fakeAnthropic(t, http.StatusOK, envelope(t, "I think an apple is great, 9/10!"))
	gw := newGateway(t, srv.URL)

	rec := do(gw, http.MethodPost, "/api/analyze", `{"food":"apple"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, errorOf(t, rec))
	assertCORS(t, rec)
}

func TestGatewayUpstreamUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	gw := newGateway(t, url)

	rec := do(gw, http.MethodPost, "/api/analyze", `{"food":"apple"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	msg := errorOf(t, rec)
	assert.NotEmpty(t, msg)
	assert.NotContains(t, msg, "sk-test")
	assertCORS(t, rec)
}

func TestPanicAnswersWithJSONError(t *testing.T) {
	lg := zaptest.NewLogger(t)
	r := NewRouter(Handlers{
		Analyze: handler.NewAnalyzeHandler(panickingService{}, lg, maxImageBody),
		Static:  handler.NewStaticHandler("missing.html", lg),
		Logger:  lg,
	})

	rec := do(r, http.MethodPost, "/api/analyze", `{"food":"apple"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Something went wrong. Please try again.", errorOf(t, rec))
	assert.NotContains(t, rec.Body.String(), "nil map write")
	assertCORS(t, rec)
}
