package host

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/mwoelke/boxwrap/pkg/errors"
)

// DirHost writes artifacts into a directory: <name>.png for the image
// and <name>.guides.json for the sidecar. Publishing the same name
// twice overwrites the earlier files.
type DirHost struct {
	Dir string
}

// NewDirHost returns a host writing into dir. The directory is created
// on first publish.
func NewDirHost(dir string) *DirHost {
	return &DirHost{Dir: dir}
}

// Publish writes the artifact's PNG and guide sidecar and returns the
// PNG path.
func (h *DirHost) Publish(ctx context.Context, art *Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", h.Dir, err)
	}

	pngPath := filepath.Join(h.Dir, art.Name+".png")
	if err := writePNG(pngPath, art); err != nil {
		return "", err
	}

	sidecarPath := filepath.Join(h.Dir, art.Name+".guides.json")
	f, err := os.Create(sidecarPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", sidecarPath, err)
	}
	defer f.Close()
	if err := WriteGuides(art, f); err != nil {
		return "", errors.Wrap(errors.ErrCodeEncode, err, "write guide sidecar %s", sidecarPath)
	}
	return pngPath, nil
}

func writePNG(path string, art *Artifact) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := imaging.Encode(f, art.Image, imaging.PNG); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "encode %s", path)
	}
	return nil
}
