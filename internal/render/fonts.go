package render

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

type weight int

const (
	regular weight = iota
	medium
	bold
	italic
	mediumItalic
	monoBold
)

// The Go fonts cover WGL4, which includes Cyrillic.
var fontData = map[weight][]byte{
	regular:      goregular.TTF,
	medium:       gomedium.TTF,
	bold:         gobold.TTF,
	italic:       goitalic.TTF,
	mediumItalic: gomediumitalic.TTF,
	monoBold:     gomonobold.TTF,
}

type faceKey struct {
	w    weight
	size float64
}

// fontSet caches faces by weight and pixel size. Faces keep glyph caches
// and must not be used from several goroutines at once.
type fontSet struct {
	fonts map[weight]*truetype.Font
	faces map[faceKey]font.Face
}

func loadFonts() (*fontSet, error) {
	fs := &fontSet{
		fonts: make(map[weight]*truetype.Font, len(fontData)),
		faces: make(map[faceKey]font.Face),
	}
	for w, data := range fontData {
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TTF (weight %d): %w", w, err)
		}
		fs.fonts[w] = f
	}
	return fs, nil
}

func (fs *fontSet) face(w weight, px float64) font.Face {
	key := faceKey{w: w, size: px}
	if face, ok := fs.faces[key]; ok {
		return face
	}
	f, ok := fs.fonts[w]
	if !ok {
		f = fs.fonts[regular]
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	fs.faces[key] = face
	return face
}
