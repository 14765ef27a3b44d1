package enhance

import (
	"github.com/anthonynsimon/bild/parallel"

	"github.com/snagata/ocrprep/internal/raster"
)

// LocalContrast applies contrast-limited adaptive histogram equalization to
// the luminance of a color image.
//
// Only the LAB L channel is equalized; the chroma planes pass through
// untouched, so colors keep their hue and saturation while local contrast
// improves. clipLimit bounds the amplification per tile and tilesX x tilesY
// is the tile grid.
func LocalContrast(im *raster.Image, clipLimit float64, tilesX, tilesY int) *raster.Image {
	l, a, b := raster.ToLab(im)
	return raster.FromLab(clahePlane(l, clipLimit, tilesX, tilesY), a, b)
}

// clahePlane equalizes a grayscale plane tile by tile.
//
// Each tile gets a histogram clipped at clipLimit (scaled by tile area,
// floored at one count) with the excess redistributed uniformly, and a
// lookup table built from the clipped cumulative distribution. Output
// pixels bilinearly blend the tables of the four nearest tiles, which
// removes the blocking that per-tile equalization alone would produce.
func clahePlane(p *raster.Image, clipLimit float64, tilesX, tilesY int) *raster.Image {
	w, h := p.Width, p.Height
	tileW := (w + tilesX - 1) / tilesX
	tileH := (h + tilesY - 1) / tilesY

	luts := make([][256]uint8, tilesX*tilesY)
	parallel.Line(tilesY, func(start, end int) {
		for ty := start; ty < end; ty++ {
			for tx := 0; tx < tilesX; tx++ {
				x1 := tx * tileW
				y1 := ty * tileH
				x2 := minInt(x1+tileW, w)
				y2 := minInt(y1+tileH, h)
				luts[ty*tilesX+tx] = tileLUT(p, x1, y1, x2, y2, clipLimit)
			}
		}
	})

	out := raster.New(w, h, raster.GrayChannels)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			// Position relative to tile centers.
			fy := (float64(y)-float64(tileH)/2 + 0.5) / float64(tileH)
			ty0 := int(fy)
			if fy < 0 {
				ty0 = -1
			}
			wy := fy - float64(ty0)
			ty1 := clampInt(ty0+1, 0, tilesY-1)
			ty0 = clampInt(ty0, 0, tilesY-1)

			for x := 0; x < w; x++ {
				fx := (float64(x)-float64(tileW)/2 + 0.5) / float64(tileW)
				tx0 := int(fx)
				if fx < 0 {
					tx0 = -1
				}
				wx := fx - float64(tx0)
				tx1 := clampInt(tx0+1, 0, tilesX-1)
				tx0 = clampInt(tx0, 0, tilesX-1)

				v := p.Pix[y*w+x]
				top := (1-wx)*float64(luts[ty0*tilesX+tx0][v]) + wx*float64(luts[ty0*tilesX+tx1][v])
				bottom := (1-wx)*float64(luts[ty1*tilesX+tx0][v]) + wx*float64(luts[ty1*tilesX+tx1][v])
				out.Pix[y*w+x] = raster.ClampU8((1-wy)*top + wy*bottom)
			}
		}
	})
	return out
}

// tileLUT builds the clipped-equalization lookup table for one tile region.
func tileLUT(p *raster.Image, x1, y1, x2, y2 int, clipLimit float64) [256]uint8 {
	var hist [256]int
	for y := y1; y < y2; y++ {
		row := p.Pix[y*p.Width : (y+1)*p.Width]
		for x := x1; x < x2; x++ {
			hist[row[x]]++
		}
	}
	area := (x2 - x1) * (y2 - y1)

	limit := int(clipLimit * float64(area) / 256)
	if limit < 1 {
		limit = 1
	}

	// Clip and redistribute the excess uniformly; the remainder tops up the
	// lowest bins so every count is conserved.
	excess := 0
	for i, c := range hist {
		if c > limit {
			excess += c - limit
			hist[i] = limit
		}
	}
	bonus := excess / 256
	rest := excess % 256
	for i := range hist {
		hist[i] += bonus
		if i < rest {
			hist[i]++
		}
	}

	var lut [256]uint8
	scale := 255.0 / float64(area)
	cum := 0
	for i, c := range hist {
		cum += c
		lut[i] = raster.ClampU8(float64(cum) * scale)
	}
	return lut
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
