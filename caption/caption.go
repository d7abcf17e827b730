// Package caption 在图片下方追加自动折行的标题文字并保存为新图片。
//
// 流程：读入图片、字体与标题 → 按图片宽度减去留白折行 → 度量多行文本高度 →
// 向下扩展画布（2×留白 + 文本高度）→ 在原图下方居中绘制文字 → 保存。
package caption

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"

	"github.com/disintegration/imaging"

	"github.com/ByLCY/captioner/binding"
	"github.com/ByLCY/captioner/layout"
	"github.com/ByLCY/captioner/letterbox"
	"github.com/ByLCY/captioner/renderer"
)

// Result 记录生成结果，供命令行输出与调试 JSON 使用。
type Result struct {
	OutputPath   string       `json:"outputPath"`
	Font         string       `json:"font"`
	FontSize     int          `json:"fontSize"`
	Padding      int          `json:"padding"`
	SourceWidth  int          `json:"sourceWidth"`
	SourceHeight int          `json:"sourceHeight"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	TextHeight   int          `json:"textHeight"`
	AnchorX      float64      `json:"anchorX"`
	Baseline     float64      `json:"baseline"`
	Align        string       `json:"align"`
	Block        layout.Block `json:"block"`
}

// AddCaption 执行一次完整的加标题操作，成功时恰好写出一个文件。
// 保存之前的任何失败都不会产生输出文件。
func AddCaption(opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := CheckOutputFormat(opts.OutputPath); err != nil {
		return nil, err
	}
	if err := CheckOutput(opts.OutputPath, opts.Force); err != nil {
		return nil, err
	}

	img, err := imaging.Open(opts.ImagePath, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, absPath(opts.ImagePath))
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidImage, absPath(opts.ImagePath), err)
	}
	face, err := opts.Renderer.LoadFace(opts.Font, float64(opts.FontSize))
	if err != nil {
		return nil, fmt.Errorf("%w（%s）: %w", ErrFontLoad, opts.Font, err)
	}
	text, err := ReadCaption(opts.CaptionPath)
	if err != nil {
		return nil, err
	}
	text = binding.Expand(text, opts.Data)

	src := img.Bounds()
	maxWidth := src.Dx() - opts.Padding
	if maxWidth <= 0 {
		return nil, fmt.Errorf("%w: 留白 %d 不小于图片宽度 %d，没有可排版的空间", ErrInvalidOption, opts.Padding, src.Dx())
	}

	wrapped := layout.Wrap(text, face, float64(maxWidth))
	block := layout.Measure(wrapped, face, float64(maxWidth))
	textHeight := block.PixelHeight()

	width := src.Dx()
	height := src.Dy() + 2*opts.Padding + textHeight
	Logger().Debug("caption layout",
		"lines", len(block.Lines), "maxWidth", maxWidth, "textHeight", textHeight,
		"canvas", fmt.Sprintf("%dx%d", width, height))

	bg := opts.Background
	if bg == nil {
		bg = letterbox.Transparent
	}
	canvas, err := letterbox.ResizePreserveRatio(img, width, height, bg)
	if err != nil {
		return nil, fmt.Errorf("扩展画布失败: %w", err)
	}

	fill := opts.TextColor
	if fill == nil {
		fill = color.White
	}
	anchorX := renderer.AnchorX(float64(width), blockWidth(block), opts.Align)
	baseline := float64(src.Dy() + opts.Padding)
	if err := face.DrawLines(canvas, block.Contents(), anchorX, baseline, opts.Align, fill); err != nil {
		return nil, fmt.Errorf("绘制标题失败: %w", err)
	}

	if err := save(canvas, opts.OutputPath); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrSave, absPath(opts.OutputPath), err)
	}

	return &Result{
		OutputPath:   absPath(opts.OutputPath),
		Font:         opts.Font.String(),
		FontSize:     opts.FontSize,
		Padding:      opts.Padding,
		SourceWidth:  src.Dx(),
		SourceHeight: src.Dy(),
		Width:        width,
		Height:       height,
		TextHeight:   textHeight,
		AnchorX:      anchorX,
		Baseline:     baseline,
		Align:        opts.Align.String(),
		Block:        block,
	}, nil
}

func blockWidth(b layout.Block) float64 {
	w := 0.0
	for _, ln := range b.Lines {
		if ln.Width > w {
			w = ln.Width
		}
	}
	return w
}
