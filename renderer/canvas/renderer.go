package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/captioner/fonts"
	"github.com/ByLCY/captioner/layout"
	"github.com/ByLCY/captioner/renderer"
)

// Renderer loads font faces and draws text via github.com/tdewolff/canvas.
// 画布单位为 mm，并以 canvas.DPMM(1) 光栅化，因此 1 mm 即 1 像素。
type Renderer struct {
	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a canvas-based renderer.
func NewRenderer() *Renderer {
	return &Renderer{fontFamilies: map[string]*canvas.FontFamily{}}
}

// LoadFace 实现 renderer.Renderer。sizePx 为像素字号（em 高度）。
func (r *Renderer) LoadFace(src fonts.Source, sizePx float64) (renderer.Face, error) {
	if sizePx <= 0 || math.IsNaN(sizePx) || math.IsInf(sizePx, 0) {
		return nil, fmt.Errorf("字号必须为正数，当前为 %g", sizePx)
	}
	family, err := r.ensureFontFamily(src)
	if err != nil {
		return nil, err
	}
	sizePt := layout.PxToPt(sizePx)
	return &Face{
		family: family,
		sizePt: sizePt,
		face:   family.Face(sizePt, canvas.White, canvas.FontRegular, canvas.FontNormal),
	}, nil
}

func (r *Renderer) ensureFontFamily(src fonts.Source) (*canvas.FontFamily, error) {
	key := src.Key()
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[key]; ok {
		return family, nil
	}
	data, err := fonts.Load(src)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily(src.Name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("%w %s: %v", fonts.ErrLoad, src, err)
	}
	r.fontFamilies[key] = family
	return family, nil
}

// Face 是固定字号的字体面。
type Face struct {
	family *canvas.FontFamily
	sizePt float64
	face   *canvas.FontFace
}

var _ renderer.Face = (*Face)(nil)

// TextWidth 返回 s 的排版宽度（像素）。
func (f *Face) TextWidth(s string) float64 {
	return f.face.TextWidth(s)
}

// Metrics 返回行高、上升部与下降部（像素）。
func (f *Face) Metrics() layout.Metrics {
	m := f.face.Metrics()
	return layout.Metrics{
		LineHeight: m.LineHeight,
		Ascent:     math.Abs(m.Ascent),
		Descent:    math.Abs(m.Descent),
	}
}

// DrawLines 在与 dst 等大的画布上排布文字，光栅化后以 Over 合成到 dst。
func (f *Face) DrawLines(dst xdraw.Image, lines []string, x, baseline float64, align renderer.Align, col color.Color) error {
	bounds := dst.Bounds()
	if bounds.Empty() {
		return fmt.Errorf("绘制目标为空")
	}
	if col == nil {
		col = canvas.White
	}

	c := canvas.New(float64(bounds.Dx()), float64(bounds.Dy()))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 左上角为原点，与像素坐标一致

	face := f.family.Face(f.sizePt, col, canvas.FontRegular, canvas.FontNormal)
	lineHeight := face.Metrics().LineHeight
	textAlign := textAlignOf(align)
	for i, line := range lines {
		if line == "" {
			continue
		}
		ctx.DrawText(x, baseline+float64(i)*lineHeight, canvas.NewTextLine(face, line, textAlign))
	}

	layer := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	xdraw.Draw(dst, bounds, layer, image.Point{}, xdraw.Over)
	return nil
}

func textAlignOf(align renderer.Align) canvas.TextAlign {
	switch align {
	case renderer.AlignCenter:
		return canvas.Center
	case renderer.AlignRight:
		return canvas.Right
	default:
		return canvas.Left
	}
}
