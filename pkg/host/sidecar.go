package host

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

type sidecar struct {
	Name     string         `json:"name"`
	DPI      int            `json:"dpi"`
	WidthPx  int            `json:"width_px"`
	HeightPx int            `json:"height_px"`
	Created  time.Time      `json:"created"`
	Guides   []sidecarGuide `json:"guides"`
}

type sidecarGuide struct {
	Orientation string `json:"orientation"`
	Kind        string `json:"kind"`
	OffsetPx    int    `json:"offset_px"`
}

// WriteGuides encodes an artifact's guide metadata as indented JSON
// and writes it to w. The image pixels are not included; the sidecar
// travels next to the PNG.
func WriteGuides(art *Artifact, w io.Writer) error {
	size := art.Image.Bounds().Size()
	out := sidecar{
		Name:     art.Name,
		DPI:      art.DPI,
		WidthPx:  size.X,
		HeightPx: size.Y,
		Created:  art.Created,
		Guides:   make([]sidecarGuide, len(art.Guides)),
	}
	for i, g := range art.Guides {
		out.Guides[i] = sidecarGuide{
			Orientation: g.Orientation.String(),
			Kind:        g.Kind.String(),
			OffsetPx:    g.Offset,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode guides: %w", err)
	}
	return nil
}
