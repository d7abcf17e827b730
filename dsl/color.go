// Package dsl 解析命令行中的颜色表达式。
//
// 支持的写法：
//
//	#fff  #ffff  #ffffff  #ffffff80
//	rgb(255, 255, 255)
//	rgba(0, 0, 0, 0.5)   // alpha 为小数或 ≤1 时按比例，否则按 0-255
//	white / black / transparent / red / green / blue / yellow / gray
package dsl

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	colorLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Hex", Pattern: `#[0-9A-Fa-f]+`},
		{Name: "Number", Pattern: `(?:\d+\.\d*|\.\d+|\d+)`},
		{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[(),]`},
	})

	colorParser = participle.MustBuild[ColorExpr](
		participle.Lexer(colorLexer),
		participle.Elide("Whitespace"),
		participle.CaseInsensitive("Ident"),
	)
)

// ColorExpr is the AST of a colour expression.
type ColorExpr struct {
	Hex  *string    `parser:"  @Hex"`
	Func *ColorFunc `parser:"| @@"`
	Name *string    `parser:"| @Ident"`
}

// ColorFunc captures rgb(...) / rgba(...).
type ColorFunc struct {
	Name string   `parser:"@('rgb' | 'rgba')"`
	Args []string `parser:"'(' @Number ( ',' @Number )* ')'"`
}

var namedColors = map[string]color.NRGBA{
	"white":       {255, 255, 255, 255},
	"black":       {0, 0, 0, 255},
	"transparent": {0, 0, 0, 0},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
}

// ParseColor 将颜色表达式解析为非预乘的 RGBA。
func ParseColor(s string) (color.NRGBA, error) {
	expr, err := colorParser.ParseString("", strings.TrimSpace(s))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("无法解析颜色 %q: %w", s, err)
	}
	switch {
	case expr.Hex != nil:
		return parseHex(*expr.Hex)
	case expr.Func != nil:
		return expr.Func.eval()
	case expr.Name != nil:
		if c, ok := namedColors[strings.ToLower(*expr.Name)]; ok {
			return c, nil
		}
		return color.NRGBA{}, fmt.Errorf("未知的颜色名 %q", *expr.Name)
	}
	return color.NRGBA{}, fmt.Errorf("无法解析颜色 %q", s)
}

func parseHex(hex string) (color.NRGBA, error) {
	digits := strings.TrimPrefix(hex, "#")
	switch len(digits) {
	case 3, 4:
		var sb strings.Builder
		for _, r := range digits {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		digits = sb.String()
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("十六进制颜色 %s 长度应为 3/4/6/8 位", hex)
	}
	if len(digits) == 6 {
		digits += "ff"
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("十六进制颜色 %s 无效: %w", hex, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func (f *ColorFunc) eval() (color.NRGBA, error) {
	name := strings.ToLower(f.Name)
	want := 3
	if name == "rgba" {
		want = 4
	}
	if len(f.Args) != want {
		return color.NRGBA{}, fmt.Errorf("%s() 需要 %d 个参数，实际 %d 个", name, want, len(f.Args))
	}
	var channels [4]uint8
	channels[3] = 255
	for i, arg := range f.Args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%s() 参数 %q 无效: %w", name, arg, err)
		}
		if i == 3 && (strings.Contains(arg, ".") || v <= 1) {
			v *= 255
		}
		if v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("%s() 参数 %q 超出 0-255 范围", name, arg)
		}
		channels[i] = uint8(math.Round(v))
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}
