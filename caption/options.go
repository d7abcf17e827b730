package caption

import (
	"fmt"
	"image/color"

	"github.com/ByLCY/captioner/fonts"
	"github.com/ByLCY/captioner/renderer"
)

// 默认参数，与命令行缺省值一致。
const (
	DefaultFont     = "Arial"
	DefaultFontSize = 100
	DefaultPadding  = 75
	OutputSuffix    = "_cap"
)

// Options 描述一次加标题操作所需的全部输入。
type Options struct {
	ImagePath   string
	CaptionPath string
	OutputPath  string
	Force       bool // 允许覆盖已存在的输出文件

	Font     fonts.Source
	FontSize int // 像素字号
	Padding  int // 原图与文字之间、文字与底边之间的留白（像素）

	TextColor  color.Color // nil 表示白色
	Background color.Color // nil 表示透明（输出时压平为黑色）
	Align      renderer.Align // 零值为左对齐：文本块整体居中，块内各行左对齐

	Data any // 用于展开标题中 ${path} 占位符的数据，nil 表示不展开

	Renderer renderer.Renderer
}

func (o *Options) validate() error {
	switch {
	case o.Renderer == nil:
		return fmt.Errorf("%w: renderer 不能为空", ErrInvalidOption)
	case o.ImagePath == "":
		return fmt.Errorf("%w: 缺少图片路径", ErrInvalidOption)
	case o.CaptionPath == "":
		return fmt.Errorf("%w: 缺少标题文件路径", ErrInvalidOption)
	case o.OutputPath == "":
		return fmt.Errorf("%w: 缺少输出路径", ErrInvalidOption)
	case o.FontSize <= 0:
		return fmt.Errorf("%w: 字号必须为正数，当前为 %d", ErrInvalidOption, o.FontSize)
	case o.Padding < 0:
		return fmt.Errorf("%w: 留白不能为负数，当前为 %d", ErrInvalidOption, o.Padding)
	}
	return nil
}
