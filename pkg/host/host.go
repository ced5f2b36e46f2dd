// Package host publishes finished box art images.
//
// A Host is the sink at the end of a build: it receives an [Artifact]
// holding the rendered image together with its print guides and makes
// it available somewhere, returning a reference to the published
// result. [DirHost] writes PNG files with a JSON guide sidecar next to
// each image and returns file paths; [MemoryHost] keeps artifacts in
// memory and returns artifact IDs, which suits tests and the HTTP
// server.
package host

import (
	"context"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/mwoelke/boxwrap/pkg/geometry"
	"github.com/mwoelke/boxwrap/pkg/units"
)

// Artifact is one finished image with its print metadata.
type Artifact struct {
	// ID uniquely identifies the artifact across all hosts.
	ID string
	// Name is the artifact's base name, such as "template" or
	// "wrap-top". File-based hosts derive file names from it.
	Name string
	// Image is the rendered raster.
	Image image.Image
	// DPI is the print resolution the image was rendered at.
	DPI int
	// Guides are the layout boundaries, for print shops and for
	// re-importing the image into an editor.
	Guides []geometry.Guide
	// Created is the build time in UTC.
	Created time.Time
}

// NewArtifact assembles an artifact with a fresh ID at the package
// print resolution.
func NewArtifact(name string, img image.Image, guides []geometry.Guide) *Artifact {
	return &Artifact{
		ID:      uuid.NewString(),
		Name:    name,
		Image:   img,
		DPI:     units.DPI,
		Guides:  guides,
		Created: time.Now().UTC(),
	}
}

// Host publishes artifacts.
type Host interface {
	// Publish makes the artifact available and returns a reference to
	// it: a file path, an ID, or whatever locator the host's medium
	// uses.
	Publish(ctx context.Context, art *Artifact) (string, error)
}
