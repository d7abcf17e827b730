package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ByLCY/captioner/caption"
	"github.com/ByLCY/captioner/dsl"
	"github.com/ByLCY/captioner/fonts"
	"github.com/ByLCY/captioner/renderer"
	canvasrenderer "github.com/ByLCY/captioner/renderer/canvas"
)

// cliOptions 对应命令行参数。
type cliOptions struct {
	out        string
	force      bool
	size       int
	font       string
	padding    int
	color      string
	background string
	align      string
	data       string
	debug      string
	verbose    bool
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr, fonts.NewSystemLocator(), canvasrenderer.NewRenderer()))
}

// execute 运行命令并返回进程退出码：成功为 0，任何错误都以 "ERROR: " 前缀写到 stderr 并返回 1。
func execute(args []string, stdout, stderr io.Writer, locator fonts.Locator, r renderer.Renderer) int {
	cmd := newRootCmd(stdout, stderr, locator, r)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer, locator fonts.Locator, r renderer.Renderer) *cobra.Command {
	var o cliOptions
	cmd := &cobra.Command{
		Use:           "captioner imagefile captionfile",
		Short:         "在图片下方添加自动折行的标题",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if o.verbose {
				level = slog.LevelDebug
			}
			caption.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

			res, err := run(args[0], args[1], o, locator, r)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "已生成图片：%s\n", res.OutputPath)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.out, "out", "o", "", "输出图片路径（默认为 <图片名>_cap.<扩展名>）")
	f.BoolVarP(&o.force, "force", "f", false, "覆盖已存在的输出文件")
	f.IntVarP(&o.size, "size", "S", caption.DefaultFontSize, "字号（像素）")
	f.StringVarP(&o.font, "font", "F", caption.DefaultFont, "字体名称或字体文件路径")
	f.IntVarP(&o.padding, "padding", "P", caption.DefaultPadding, "留白（像素）")
	f.StringVarP(&o.color, "color", "c", "white", "文字颜色，如 white、#ffcc00、rgba(0,0,0,0.5)")
	f.StringVarP(&o.background, "background", "b", "transparent", "扩展区域的背景色")
	f.StringVarP(&o.align, "align", "a", renderer.AlignLeft.String(), "文本块内各行的对齐方式：left、center、right（文本块整体始终居中）")
	f.StringVar(&o.data, "data", "", "用于展开标题中 ${path} 占位符的 JSON 数据")
	f.StringVar(&o.debug, "debug", "", "布局调试 JSON 输出路径")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "输出调试日志")
	return cmd
}

// run 校验输入、解析字体后生成图片。
func run(imagePath, captionPath string, o cliOptions, locator fonts.Locator, r renderer.Renderer) (*caption.Result, error) {
	if err := caption.CheckInput(imagePath); err != nil {
		return nil, err
	}
	if err := caption.CheckInput(captionPath); err != nil {
		return nil, err
	}

	outputPath := o.out
	if outputPath == "" {
		outputPath = caption.DefaultOutputPath(imagePath)
	}
	if err := caption.CheckOutput(outputPath, o.force); err != nil {
		return nil, err
	}

	textColor, err := dsl.ParseColor(o.color)
	if err != nil {
		return nil, fmt.Errorf("%w: --color: %w", caption.ErrInvalidOption, err)
	}
	background, err := dsl.ParseColor(o.background)
	if err != nil {
		return nil, fmt.Errorf("%w: --background: %w", caption.ErrInvalidOption, err)
	}
	align, err := renderer.ParseAlign(o.align)
	if err != nil {
		return nil, fmt.Errorf("%w: --align: %w", caption.ErrInvalidOption, err)
	}

	var data any
	if o.data != "" {
		if err := json.Unmarshal([]byte(o.data), &data); err != nil {
			return nil, fmt.Errorf("%w: 解析 --data JSON 失败: %w", caption.ErrInvalidOption, err)
		}
	}

	font, err := caption.ResolveFont(locator, o.font, caption.DefaultFont, caption.BuiltinFallback)
	if err != nil {
		return nil, err
	}

	res, err := caption.AddCaption(caption.Options{
		ImagePath:   imagePath,
		CaptionPath: captionPath,
		OutputPath:  outputPath,
		Force:       o.force,
		Font:        font,
		FontSize:    o.size,
		Padding:     o.padding,
		TextColor:   textColor,
		Background:  background,
		Align:       align,
		Data:        data,
		Renderer:    r,
	})
	if err != nil {
		return nil, err
	}

	if o.debug != "" {
		if err := caption.WriteDebugJSON(res, o.debug); err != nil {
			return nil, fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}
	return res, nil
}
