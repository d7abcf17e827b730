package renderer

import (
	"fmt"
	"image/color"
	"image/draw"
	"strings"

	"github.com/ByLCY/captioner/fonts"
	"github.com/ByLCY/captioner/layout"
)

// Renderer 把字体来源加载为指定像素字号的 Face。
type Renderer interface {
	LoadFace(src fonts.Source, sizePx float64) (Face, error)
}

// Face 同时负责文本度量与绘制，换行与绘制使用同一套字形宽度。
type Face interface {
	layout.BlockMeasurer
	// DrawLines 从 baseline 开始逐行绘制，行距取字体行高；x 是对齐锚点。
	DrawLines(dst draw.Image, lines []string, x, baseline float64, align Align, col color.Color) error
}

// Align 表示多行文本在文本块内的水平对齐方式。
// 零值 AlignLeft：文本块整体居中，块内各行左对齐。
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlign 解析 left/center/right（不区分大小写），空串视为 left。
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left", "start":
		return AlignLeft, nil
	case "center", "centre", "middle":
		return AlignCenter, nil
	case "right", "end":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("未知的对齐方式 %q（可选 left/center/right）", s)
}

// AnchorX 返回绘制锚点：文本块整体在画布上水平居中，块内各行按 align 对齐。
func AnchorX(canvasWidth, blockWidth float64, align Align) float64 {
	center := canvasWidth / 2
	switch align {
	case AlignCenter:
		return center
	case AlignRight:
		return center + blockWidth/2
	default:
		return center - blockWidth/2
	}
}
