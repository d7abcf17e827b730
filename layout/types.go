package layout

import (
	"math"
	"strings"
)

// Metrics 描述字体的纵向度量，单位为像素。
type Metrics struct {
	LineHeight float64 `json:"lineHeight"`
	Ascent     float64 `json:"ascent"`
	Descent    float64 `json:"descent"`
}

// Line 表示排版后的一行文本及其宽度。
type Line struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
}

// Block 是换行后的多行文本块，Height 为多行包围盒高度。
type Block struct {
	Lines      []Line  `json:"lines"`
	MaxWidth   float64 `json:"maxWidth"`
	LineHeight float64 `json:"lineHeight"`
	Ascent     float64 `json:"ascent"`
	Descent    float64 `json:"descent"`
	Height     float64 `json:"height"`
}

// Text 以换行符拼接所有行。
func (b Block) Text() string {
	parts := make([]string, len(b.Lines))
	for i, ln := range b.Lines {
		parts[i] = ln.Content
	}
	return strings.Join(parts, "\n")
}

// Contents 返回各行内容。
func (b Block) Contents() []string {
	out := make([]string, len(b.Lines))
	for i, ln := range b.Lines {
		out[i] = ln.Content
	}
	return out
}

// PixelHeight 将包围盒高度向上取整为整像素。
func (b Block) PixelHeight() int {
	if b.Height <= 0 {
		return 0
	}
	return int(math.Ceil(b.Height - 1e-9))
}
