// Package imagepkg renders deck share artifacts: QR codes and share cards.
package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardbinder/internal/cards"
)

const (
	ShareWidth  = 1200
	ShareHeight = 630

	margin      = 30
	coverW      = 360
	coverH      = 540
	qrSide      = 300
	tileW       = 48
	tileH       = 66
	tileGap     = 6
	tilesPerRow = 6
	maxTiles    = 42
)

var (
	background = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	coverBlank = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}

	categoryColors = map[cards.Category]color.NRGBA{
		cards.CategoryMonster: {R: 0xd9, G: 0x8c, B: 0x3f, A: 0xff},
		cards.CategorySpell:   {R: 0x2f, G: 0x9e, B: 0x8f, A: 0xff},
		cards.CategoryTrap:    {R: 0xb0, G: 0x3a, B: 0x7a, A: 0xff},
		cards.CategoryOther:   {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	}
)

// ComposeShareImage lays out a deck share card: the cover on the left, one
// tile per card colored by category in the middle, and the QR on the right.
// A nil cover or qr leaves its area blank.
func ComposeShareImage(cover image.Image, categories []cards.Category, qr image.Image) image.Image {
	canvas := imaging.New(ShareWidth, ShareHeight, background)

	if cover != nil {
		c := imaging.Fill(cover, coverW, coverH, imaging.Center, imaging.Lanczos)
		canvas = imaging.Paste(canvas, c, image.Pt(margin, margin+15))
	} else {
		canvas = imaging.Paste(canvas, imaging.New(coverW, coverH, coverBlank), image.Pt(margin, margin+15))
	}

	if qr != nil {
		q := imaging.Resize(qr, qrSide, qrSide, imaging.NearestNeighbor)
		canvas = imaging.Paste(canvas, q, image.Pt(ShareWidth-margin-qrSide, margin+15))
	}

	x0 := margin + coverW + margin
	for i, cat := range categories {
		if i >= maxTiles {
			break
		}
		col := categoryColors[cat.OrOther()]
		tile := imaging.New(tileW, tileH, col)
		x := x0 + (i%tilesPerRow)*(tileW+tileGap)
		y := margin + 15 + (i/tilesPerRow)*(tileH+tileGap)
		canvas = imaging.Paste(canvas, tile, image.Pt(x, y))
	}

	return canvas
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
