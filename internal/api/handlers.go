package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/go-chi/chi/v5"

	"github.com/mwoelke/boxwrap/pkg/errors"
	"github.com/mwoelke/boxwrap/pkg/host"
	"github.com/mwoelke/boxwrap/pkg/pipeline"
)

// templateRequest is the POST /v1/template body. Dimensions are in
// millimeters.
type templateRequest struct {
	Length  float64 `json:"length"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Refresh bool    `json:"refresh,omitempty"`
}

// buildResponse describes one built image. PNG carries the encoded
// pixels and is base64 in the JSON encoding.
type buildResponse struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	DPI      int         `json:"dpi"`
	WidthPx  int         `json:"width_px"`
	HeightPx int         `json:"height_px"`
	Cached   bool        `json:"cached,omitempty"`
	PNG      []byte      `json:"png"`
	Guides   []guideJSON `json:"guides"`
}

// wrapsResponse pairs the two wrap images of one build.
type wrapsResponse struct {
	Top    buildResponse `json:"top"`
	Bottom buildResponse `json:"bottom"`
}

// guideJSON matches the guide entries in the sidecar files DirHost
// writes, so API consumers and file consumers parse the same shape.
type guideJSON struct {
	Orientation string `json:"orientation"`
	Kind        string `json:"kind"`
	OffsetPx    int    `json:"offset_px"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "request body is not valid JSON")
		return
	}

	res, err := s.runner.Template(r.Context(), pipeline.Options{
		Length:  req.Length,
		Width:   req.Width,
		Height:  req.Height,
		Refresh: req.Refresh,
	})
	if err != nil {
		s.writeBuildError(w, err)
		return
	}

	resp, err := newBuildResponse(res.Artifacts[0], res.CacheInfo.TemplateHit)
	if err != nil {
		s.writeBuildError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWraps(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "request is not valid multipart form data")
		return
	}

	file, _, err := r.FormFile("template")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, `missing "template" file field`)
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.ErrCodeDecode, "template file is not a decodable image")
		return
	}

	opts, err := s.wrapOptions(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error())
		return
	}

	res, err := s.runner.Wraps(r.Context(), img, opts)
	if err != nil {
		s.writeBuildError(w, err)
		return
	}

	top, err := newBuildResponse(res.Artifacts[0], false)
	if err != nil {
		s.writeBuildError(w, err)
		return
	}
	bottom, err := newBuildResponse(res.Artifacts[1], false)
	if err != nil {
		s.writeBuildError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, wrapsResponse{Top: top, Bottom: bottom})
}

// wrapOptions reads the box dimensions and layout lengths from the
// form. Absent layout lengths fall back to the server defaults;
// absent dimensions stay zero and fail validation in the builder.
func (s *Server) wrapOptions(r *http.Request) (pipeline.Options, error) {
	opts := pipeline.Options{
		FlapSize:     s.defaults.FlapSize,
		InsideSize:   s.defaults.InsideSize,
		MarkSize:     s.defaults.MarkSize,
		MarkDistance: s.defaults.MarkDistance,
	}
	fields := []struct {
		name string
		dst  *float64
	}{
		{"length", &opts.Length},
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"thickness", &opts.Thickness},
		{"flap_size", &opts.FlapSize},
		{"inside_size", &opts.InsideSize},
		{"mark_size", &opts.MarkSize},
		{"mark_distance", &opts.MarkDistance},
	}
	for _, f := range fields {
		raw := r.FormValue(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return pipeline.Options{}, fmt.Errorf("field %q is not a number", f.name)
		}
		*f.dst = v
	}
	return opts, nil
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	art, ok := s.artifacts.Artifact(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "NOT_FOUND", "no artifact with this ID; newer builds may have evicted it")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Name+".png"))
	if err := imaging.Encode(w, art.Image, imaging.PNG); err != nil {
		s.logger.Error("encode artifact", "id", id, "error", err)
	}
}

// newBuildResponse encodes the artifact's image and packages it with
// the print metadata.
func newBuildResponse(art *host.Artifact, cached bool) (buildResponse, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, art.Image, imaging.PNG); err != nil {
		return buildResponse{}, errors.Wrap(errors.ErrCodeEncode, err, "encode %s", art.Name)
	}

	guides := make([]guideJSON, len(art.Guides))
	for i, g := range art.Guides {
		guides[i] = guideJSON{
			Orientation: g.Orientation.String(),
			Kind:        g.Kind.String(),
			OffsetPx:    g.Offset,
		}
	}

	size := art.Image.Bounds().Size()
	return buildResponse{
		ID:       art.ID,
		Name:     art.Name,
		DPI:      art.DPI,
		WidthPx:  size.X,
		HeightPx: size.Y,
		Cached:   cached,
		PNG:      buf.Bytes(),
		Guides:   guides,
	}, nil
}

// writeBuildError translates a build failure into a status code. Bad
// input is the client's fault, a mis-sized template is unprocessable,
// and everything else is an internal error worth logging.
func (s *Server) writeBuildError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidDimensions, errors.ErrCodeInvalidThickness,
		errors.ErrCodeInvalidLayout, errors.ErrCodeInvalidInput, errors.ErrCodeDecode:
		status = http.StatusBadRequest
	case errors.ErrCodeSizeMismatch:
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("build failed", "error", err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
	}
	s.writeError(w, status, code, errors.UserMessage(err))
}

func (s *Server) writeError(w http.ResponseWriter, status int, code errors.Code, message string) {
	s.writeJSON(w, status, errorResponse{Code: string(code), Message: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "error", err)
	}
}
