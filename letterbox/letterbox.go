// Package letterbox 把图片等比缩放进目标尺寸，并在背景色上水平居中、顶部对齐地贴图。
// 多出来的纵向空间总是落在原图下方，供标题文字使用。
package letterbox

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// ErrInvalidSize 表示源图或目标尺寸不可用作像素尺寸。
var ErrInvalidSize = errors.New("letterbox: 尺寸无效")

// Transparent 是完全透明的背景色。
var Transparent = color.NRGBA{}

// ResizePreserveRatio 返回恰好 width×height 的新图：源图按比例缩放（Lanczos），
// 水平居中、顶部对齐地贴到 bg 背景上，最后压平为不透明 RGB（丢弃背景的 alpha）。
func ResizePreserveRatio(img image.Image, width, height int, bg color.Color) (*image.RGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: 源图为空", ErrInvalidSize)
	}
	src := img.Bounds()
	if src.Dx() <= 0 || src.Dy() <= 0 {
		return nil, fmt.Errorf("%w: 源图 %dx%d", ErrInvalidSize, src.Dx(), src.Dy())
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: 目标 %dx%d", ErrInvalidSize, width, height)
	}
	if bg == nil {
		bg = Transparent
	}

	resizedW, resizedH := FitSize(src.Dx(), src.Dy(), width, height)
	scaled := imaging.Resize(img, resizedW, resizedH, imaging.Lanczos)
	background := imaging.New(width, height, bg)
	composite := imaging.Paste(background, scaled, Offset(width, resizedW))
	return flatten(composite), nil
}

// FitSize 计算等比缩放后的尺寸：宽度比更小时以宽为准，否则以高为准。
// 另一边按四舍六入五成双取整，且至少为 1 像素。
func FitSize(srcW, srcH, width, height int) (int, int) {
	ratioW := float64(width) / float64(srcW)
	ratioH := float64(height) / float64(srcH)
	if ratioW < ratioH {
		return width, atLeastOne(math.RoundToEven(ratioW * float64(srcH)))
	}
	return atLeastOne(math.RoundToEven(ratioH * float64(srcW))), height
}

// Offset 返回贴图位置：水平居中，垂直为 0。
func Offset(width, resizedW int) image.Point {
	return image.Pt(int(math.RoundToEven(float64(width-resizedW)/2)), 0)
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}

// flatten 丢弃 alpha 通道，保留存储的颜色分量。
func flatten(src *image.NRGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		di := dst.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[di+0] = src.Pix[si+0]
			dst.Pix[di+1] = src.Pix[si+1]
			dst.Pix[di+2] = src.Pix[si+2]
			dst.Pix[di+3] = 0xff
			si += 4
			di += 4
		}
	}
	return dst
}
