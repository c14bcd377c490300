package deployhelper

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"
)

// HeatScheme defines how the rendered board should be coloured.
type HeatScheme struct {
	Board      color.Color
	Danger     color.Color
	Safe       color.Color
	Unanalyzed color.Color
	Footprint  color.Color
	Wall       color.Color
	Source     color.Color

	// Scale in pixels per inch. Defaults to 8 if unset.
	Scale float64
}

// DefaultHeatScheme returns a reasonable default HeatScheme.
func DefaultHeatScheme() *HeatScheme {
	return &HeatScheme{
		Board:      colornames.Whitesmoke,
		Danger:     color.RGBA{220, 60, 60, 160},
		Safe:       color.RGBA{70, 160, 80, 160},
		Unanalyzed: colornames.Lightgray,
		Footprint:  colornames.Tan,
		Wall:       colornames.Black,
		Source:     colornames.Royalblue,
		Scale:      8,
	}
}

// HeatmapImage renders a grid plus the terrain it was computed against.
// We lean on a drawing lib for the rotated / mirrored shapes - it's 100x
// easier than rasterising all the geometry ourselves.
func HeatmapImage(g *VisibilityGrid, pieces []*TerrainPiece, sources []Point, scheme *HeatScheme) image.Image {
	if scheme == nil {
		scheme = DefaultHeatScheme()
	}
	scale := scheme.Scale
	if scale <= 0 {
		scale = 8
	}

	w := int(float64(g.Columns) * g.Resolution * scale)
	h := int(float64(g.Rows) * g.Resolution * scale)
	ctx := gg.NewContext(w, h)

	ctx.SetColor(scheme.Board)
	ctx.Clear()

	// cell classifications first, terrain drawn over the top
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			switch g.Cells[r][c].Class {
			case Danger:
				ctx.SetColor(scheme.Danger)
			case Safe:
				ctx.SetColor(scheme.Safe)
			default:
				ctx.SetColor(scheme.Unanalyzed)
			}
			ctx.DrawRectangle(
				float64(c)*g.Resolution*scale,
				float64(r)*g.Resolution*scale,
				g.Resolution*scale,
				g.Resolution*scale,
			)
			ctx.Fill()
		}
	}

	for _, p := range pieces {
		if !p.Blocking {
			continue
		}
		drawPiece(ctx, p, scheme, scale)
	}

	ctx.SetColor(scheme.Source)
	for _, s := range sources {
		ctx.DrawCircle(s.X*scale, s.Y*scale, scale/2)
		ctx.Fill()
	}

	return ctx.Image()
}

// SaveHeatmap renders & writes a PNG to the given path.
func SaveHeatmap(fpath string, g *VisibilityGrid, pieces []*TerrainPiece, sources []Point, scheme *HeatScheme) error {
	im := HeatmapImage(g, pieces, sources, scheme)
	ctx := gg.NewContextForRGBA(im.(*image.RGBA))
	return ctx.SavePNG(fpath)
}

// drawPiece paints one piece's shapes under its own transform. The context
// transform stack mirrors the geometry model: mirror, rotate about the
// anchor, translate (applied here innermost-last).
func drawPiece(ctx *gg.Context, p *TerrainPiece, scheme *HeatScheme, scale float64) {
	ctx.Push()
	defer ctx.Pop()

	px, py := p.Position.X*scale, p.Position.Y*scale
	ctx.RotateAbout(gg.Radians(p.Rotation), px, py)
	switch p.Mirror {
	case MirrorHorizontal:
		ctx.ScaleAbout(-1, 1, px, py)
	case MirrorVertical:
		ctx.ScaleAbout(1, -1, px, py)
	}

	for i := range p.Shapes {
		s := &p.Shapes[i]

		if s.Kind == KindWall {
			ctx.SetColor(scheme.Wall)
			ctx.SetLineCapSquare()
			ctx.SetLineWidth(s.Thickness * scale)
			ctx.DrawLine(px+s.Start.X*scale, py+s.Start.Y*scale, px+s.End.X*scale, py+s.End.Y*scale)
			ctx.Stroke()
			continue
		}

		if i == 0 {
			ctx.SetColor(scheme.Footprint)
		} else {
			ctx.SetColor(scheme.Wall)
		}

		switch s.Kind {
		case KindRectangle:
			ctx.DrawRectangle(px, py, s.Width*scale, s.Height*scale)
			ctx.Fill()
		case KindCircle:
			ctx.DrawCircle(px, py, s.Radius*scale)
			ctx.Fill()
		case KindPolygon:
			for j, pt := range s.Points {
				if j == 0 {
					ctx.MoveTo(px+pt.X*scale, py+pt.Y*scale)
				} else {
					ctx.LineTo(px+pt.X*scale, py+pt.Y*scale)
				}
			}
			ctx.ClosePath()
			ctx.Fill()
		}
	}
}
