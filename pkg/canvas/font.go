package canvas

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/mwoelke/boxwrap/pkg/errors"
)

// The Go Regular typeface ships with golang.org/x/image, so labels
// render the same everywhere without a font lookup on the host system.
// The parsed font is cached after first use; faces are cheap and
// derived per size.
var (
	fontOnce   sync.Once
	parsedFont *truetype.Font
	fontErr    error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		parsedFont, fontErr = truetype.Parse(goregular.TTF)
		if fontErr != nil {
			fontErr = errors.Wrap(errors.ErrCodeInternal, fontErr, "parse embedded font")
		}
	})
	return parsedFont, fontErr
}

// fontFace returns a face of the embedded font with the given pixel
// size.
func fontFace(size float64) (font.Face, error) {
	f, err := loadFont()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}
