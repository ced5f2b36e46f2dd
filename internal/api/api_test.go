package api

import (
	"bytes"
	"encoding/json"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/mwoelke/boxwrap/pkg/geometry"
	"github.com/mwoelke/boxwrap/pkg/host"
	"github.com/mwoelke/boxwrap/pkg/pipeline"
	"github.com/mwoelke/boxwrap/pkg/template"
	"github.com/mwoelke/boxwrap/pkg/wrap"
)

// A small box keeps the rendered images small and the tests fast.
const testDimsJSON = `{"length":30,"width":30,"height":25}`

func newTestRouter(t *testing.T) (http.Handler, *host.MemoryHost) {
	t.Helper()
	quiet := log.NewWithOptions(io.Discard, log.Options{})
	artifacts := host.NewMemoryHost()
	runner := pipeline.NewRunner(nil, nil, artifacts, quiet)
	t.Cleanup(func() { runner.Close() })
	srv := NewServer(runner, artifacts, quiet, geometry.DefaultParams())
	return srv.Routes(), artifacts
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// buildTemplatePNG builds a template through the API and returns its
// encoded pixels, for feeding back into the wraps endpoint.
func buildTemplatePNG(t *testing.T, h http.Handler) []byte {
	t.Helper()
	w := postJSON(t, h, "/v1/template", testDimsJSON)
	if w.Code != http.StatusOK {
		t.Fatalf("template build status = %d, body %s", w.Code, w.Body)
	}
	var resp buildResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.PNG
}

// multipartBody assembles a wraps request body. A nil png leaves the
// file field out.
func multipartBody(t *testing.T, png []byte, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if png != nil {
		fw, err := mw.CreateFormFile("template", "template.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(png); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func postWraps(t *testing.T, h http.Handler, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/wraps", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	h, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("body = %q, want it to contain %q", w.Body.String(), "ok")
	}
}

func TestTemplateEndpoint(t *testing.T) {
	h, artifacts := newTestRouter(t)
	w := postJSON(t, h, "/v1/template", testDimsJSON)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	var resp buildResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Name != template.Name {
		t.Errorf("name = %q, want %q", resp.Name, template.Name)
	}
	if resp.DPI != 300 {
		t.Errorf("dpi = %d, want 300", resp.DPI)
	}
	if resp.Cached {
		t.Error("first build reported as cached")
	}
	if len(resp.Guides) == 0 {
		t.Error("response has no guides")
	}

	img, err := imaging.Decode(bytes.NewReader(resp.PNG))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	size := img.Bounds().Size()
	if size.X != resp.WidthPx || size.Y != resp.HeightPx {
		t.Errorf("png size = %v, want %dx%d", size, resp.WidthPx, resp.HeightPx)
	}

	if _, ok := artifacts.Artifact(resp.ID); !ok {
		t.Errorf("artifact %s not retained by the host", resp.ID)
	}
}

func TestTemplateEndpointErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"zero dims", `{"length":0,"width":30,"height":25}`, http.StatusBadRequest, "INVALID_DIMENSIONS"},
		{"negative dims", `{"length":30,"width":-2,"height":25}`, http.StatusBadRequest, "INVALID_DIMENSIONS"},
		{"malformed json", `{"length":`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRouter(t)
			w := postJSON(t, h, "/v1/template", tt.body)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if resp := decodeError(t, w); resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
		})
	}
}

func TestWrapsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)
	png := buildTemplatePNG(t, h)

	body, contentType := multipartBody(t, png, map[string]string{
		"length": "30", "width": "30", "height": "25", "thickness": "2",
	})
	w := postWraps(t, h, body, contentType)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	var resp wrapsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Top.Name != wrap.TopName {
		t.Errorf("top name = %q, want %q", resp.Top.Name, wrap.TopName)
	}
	if resp.Bottom.Name != wrap.BottomName {
		t.Errorf("bottom name = %q, want %q", resp.Bottom.Name, wrap.BottomName)
	}
	if resp.Top.Cached || resp.Bottom.Cached {
		t.Error("wraps reported as cached")
	}
	for _, br := range []buildResponse{resp.Top, resp.Bottom} {
		if _, err := imaging.Decode(bytes.NewReader(br.PNG)); err != nil {
			t.Errorf("decode %s png: %v", br.Name, err)
		}
	}
}

func TestWrapsSizeMismatch(t *testing.T) {
	h, _ := newTestRouter(t)

	var tiny bytes.Buffer
	if err := imaging.Encode(&tiny, image.NewRGBA(image.Rect(0, 0, 10, 10)), imaging.PNG); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	body, contentType := multipartBody(t, tiny.Bytes(), map[string]string{
		"length": "30", "width": "30", "height": "25", "thickness": "2",
	})
	w := postWraps(t, h, body, contentType)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}
	resp := decodeError(t, w)
	if resp.Code != "TEMPLATE_SIZE_MISMATCH" {
		t.Errorf("code = %q, want TEMPLATE_SIZE_MISMATCH", resp.Code)
	}
	if !strings.HasPrefix(resp.Message, "Template image has the wrong size.") {
		t.Errorf("message = %q, want size mismatch explanation", resp.Message)
	}
}

func TestWrapsEndpointErrors(t *testing.T) {
	h, _ := newTestRouter(t)
	png := buildTemplatePNG(t, h)

	tests := []struct {
		name   string
		png    []byte
		fields map[string]string
		code   string
	}{
		{"missing file", nil, map[string]string{"length": "30"}, "INVALID_INPUT"},
		{"not an image", []byte("not a png"), map[string]string{"length": "30"}, "DECODE_FAILED"},
		{"bad number", png, map[string]string{"length": "wide"}, "INVALID_INPUT"},
		{"missing dims", png, nil, "INVALID_DIMENSIONS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartBody(t, tt.png, tt.fields)
			w := postWraps(t, h, body, contentType)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if resp := decodeError(t, w); resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
		})
	}
}

func TestArtifactDownload(t *testing.T) {
	h, artifacts := newTestRouter(t)
	buildTemplatePNG(t, h)

	arts := artifacts.List()
	if len(arts) != 1 {
		t.Fatalf("host holds %d artifacts, want 1", len(arts))
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/artifacts/"+arts[0].ID, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	img, err := imaging.Decode(w.Body)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	want := arts[0].Image.Bounds().Size()
	if got := img.Bounds().Size(); got != want {
		t.Errorf("size = %v, want %v", got, want)
	}
}

func TestArtifactNotFound(t *testing.T) {
	h, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/artifacts/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestWrapOptionsDefaults(t *testing.T) {
	quiet := log.NewWithOptions(io.Discard, log.Options{})
	srv := NewServer(nil, nil, quiet, geometry.Params{FlapSize: 7, InsideSize: 20, MarkSize: 4, MarkDistance: 3})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("length=30&height=25&flap_size=12"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	opts, err := srv.wrapOptions(req)
	if err != nil {
		t.Fatalf("wrapOptions error: %v", err)
	}
	if opts.Length != 30 || opts.Height != 25 {
		t.Errorf("dims = %g x %g x %g, want 30 x 0 x 25", opts.Length, opts.Width, opts.Height)
	}
	if opts.FlapSize != 12 {
		t.Errorf("flap size = %g, want the submitted 12", opts.FlapSize)
	}
	if opts.InsideSize != 20 || opts.MarkSize != 4 || opts.MarkDistance != 3 {
		t.Errorf("layout = %g/%g/%g, want server defaults 20/4/3",
			opts.InsideSize, opts.MarkSize, opts.MarkDistance)
	}
	if opts.Thickness != 0 {
		t.Errorf("thickness = %g, want 0 when absent", opts.Thickness)
	}
}
