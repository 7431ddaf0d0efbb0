package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/corridors/engine/board"
)

// cellPx is the pixel width of one grid cell; the wall lattice between
// cells gets a thinner gutter.
const cellPx = 48
const gutterPx = 10

// BoardOptions controls PNG rasterization. A nil TTF falls back to
// x/image's built-in basicfont; a non-nil TTF (raw font bytes) is parsed
// with freetype for a higher-quality label.
type BoardOptions struct {
	TTF []byte
}

// BoardPNG rasterizes pos into a PNG image and writes it to w. Hero is
// drawn as a filled circle, Villain as a ring, placed walls as thick
// bars across the gutter they occupy.
func BoardPNG(w io.Writer, pos board.Board, opts BoardOptions) error {
	side := (board.Size+1)*cellPx + board.Size*gutterPx
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	drawGrid(img)
	drawWalls(img, pos)
	drawPawn(img, cellOrigin(pos.Hero.X, pos.Hero.Y), color.RGBA{R: 200, A: 255})
	drawPawnRing(img, cellOrigin(pos.Villain.X, pos.Villain.Y), color.RGBA{B: 200, A: 255})

	if err := drawLabel(img, opts); err != nil {
		return err
	}

	return png.Encode(w, img)
}

func cellOrigin(x, y int8) image.Point {
	// y is flipped so row 0 renders at the bottom, matching board.Format.
	col := int(x)
	row := board.Size - int(y)
	return image.Point{
		X: col*(cellPx+gutterPx) + cellPx/2,
		Y: row*(cellPx+gutterPx) + cellPx/2,
	}
}

func drawGrid(img *image.RGBA) {
	grey := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	b := img.Bounds()
	for x := cellPx; x < b.Dx(); x += cellPx + gutterPx {
		for dx := 0; dx < gutterPx; dx++ {
			for y := 0; y < b.Dy(); y++ {
				img.Set(x+dx, y, grey)
			}
		}
	}
	for y := cellPx; y < b.Dy(); y += cellPx + gutterPx {
		for dy := 0; dy < gutterPx; dy++ {
			for x := 0; x < b.Dx(); x++ {
				img.Set(x, y+dy, grey)
			}
		}
	}
}

func drawWalls(img *image.RGBA, pos board.Board) {
	black := color.RGBA{A: 255}
	for y := int8(0); y < board.WallLatticeSize; y++ {
		for x := int8(0); x < board.WallLatticeSize; x++ {
			if hasWallBit(pos.HWalls, x, y) {
				fillBar(img, black, horizontalBar(x, y))
			}
			if hasWallBit(pos.VWalls, x, y) {
				fillBar(img, black, verticalBar(x, y))
			}
		}
	}
}

func hasWallBit(bb uint64, x, y int8) bool {
	idx := uint(y)*board.WallLatticeSize + uint(x)
	return bb&(1<<idx) != 0
}

// horizontalBar spans the gutter between row y and y+1, across the two
// columns x and x+1 (a Corridors wall always covers two cells).
func horizontalBar(x, y int8) image.Rectangle {
	row := board.Size - int(y) - 1
	col := int(x)
	top := row*(cellPx+gutterPx) + cellPx
	left := col * (cellPx + gutterPx)
	return image.Rect(left, top, left+2*cellPx+gutterPx, top+gutterPx)
}

func verticalBar(x, y int8) image.Rectangle {
	row := board.Size - int(y) - 1
	col := int(x)
	top := row * (cellPx + gutterPx)
	left := col*(cellPx+gutterPx) + cellPx
	return image.Rect(left, top, left+gutterPx, top+2*cellPx+gutterPx)
}

func fillBar(img *image.RGBA, c color.Color, r image.Rectangle) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func drawPawn(img *image.RGBA, center image.Point, c color.Color) {
	radius := cellPx/2 - 6
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				img.Set(center.X+dx, center.Y+dy, c)
			}
		}
	}
}

func drawPawnRing(img *image.RGBA, center image.Point, c color.Color) {
	outer := cellPx/2 - 6
	inner := outer - 6
	for dy := -outer; dy <= outer; dy++ {
		for dx := -outer; dx <= outer; dx++ {
			d2 := dx*dx + dy*dy
			if d2 <= outer*outer && d2 >= inner*inner {
				img.Set(center.X+dx, center.Y+dy, c)
			}
		}
	}
}

// drawLabel stamps the fixed caption "corridors" in the top-left corner, using
// freetype over the caller-supplied TTF when given, otherwise falling
// back to x/image's built-in basicfont.
func drawLabel(img *image.RGBA, opts BoardOptions) error {
	label := "corridors"
	pt := fixed.Point26_6{X: fixed.I(4), Y: fixed.I(14)}

	if len(opts.TTF) == 0 {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.Black),
			Face: basicfont.Face7x13,
			Dot:  pt,
		}
		d.DrawString(label)
		return nil
	}

	f, err := truetype.Parse(opts.TTF)
	if err != nil {
		return err
	}
	face := truetype.NewFace(f, &truetype.Options{Size: 14, DPI: 72})
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(14)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(color.Black))
	_, err = ctx.DrawString(label, pt)
	face.Close()
	return err
}
