package caption

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/disintegration/imaging"

	"github.com/ByLCY/captioner/fonts"
	"github.com/ByLCY/captioner/layout"
	"github.com/ByLCY/captioner/renderer"
	canvasrenderer "github.com/ByLCY/captioner/renderer/canvas"
)

// stubFace 是等宽桩字体：每个字符宽 advance 像素，绘制时只记录调用参数。
type stubFace struct {
	advance  float64
	metrics  layout.Metrics
	drawn    []string
	anchorX  float64
	baseline float64
	align    renderer.Align
}

func (f *stubFace) TextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * f.advance
}

func (f *stubFace) Metrics() layout.Metrics { return f.metrics }

func (f *stubFace) DrawLines(dst draw.Image, lines []string, x, baseline float64, align renderer.Align, col color.Color) error {
	f.drawn = append([]string(nil), lines...)
	f.anchorX = x
	f.baseline = baseline
	f.align = align
	return nil
}

type stubRenderer struct {
	face *stubFace
	err  error
}

func (r *stubRenderer) LoadFace(src fonts.Source, sizePx float64) (renderer.Face, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.face, nil
}

func newStubRenderer() *stubRenderer {
	return &stubRenderer{face: &stubFace{
		advance: 100,
		metrics: layout.Metrics{LineHeight: 40, Ascent: 30, Descent: 10},
	}}
}

func writeImage(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	if err := imaging.Save(imaging.New(w, h, c), path); err != nil {
		t.Fatalf("write image: %v", err)
	}
}

func writeText(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write caption: %v", err)
	}
}

type fixture struct {
	dir     string
	image   string
	caption string
	output  string
}

func newFixture(t *testing.T, w, h int, text string) fixture {
	t.Helper()
	dir := t.TempDir()
	fx := fixture{
		dir:     dir,
		image:   filepath.Join(dir, "photo.png"),
		caption: filepath.Join(dir, "caption.txt"),
		output:  filepath.Join(dir, "photo_cap.png"),
	}
	writeImage(t, fx.image, w, h, color.NRGBA{B: 255, A: 255})
	writeText(t, fx.caption, []byte(text))
	return fx
}

func (fx fixture) options(r renderer.Renderer) Options {
	return Options{
		ImagePath:   fx.image,
		CaptionPath: fx.caption,
		OutputPath:  fx.output,
		Font:        fonts.Source{Name: "stub", Data: []byte{1}},
		FontSize:    DefaultFontSize,
		Padding:     DefaultPadding,
		Renderer:    r,
	}
}

// 场景：800×600、padding 75、文字高 120 → 画布 800×870。
func TestAddCaptionCanvasGeometry(t *testing.T) {
	fx := newFixture(t, 800, 600, "aaaa bbbb cccc\n")
	r := newStubRenderer()

	res, err := AddCaption(fx.options(r))
	if err != nil {
		t.Fatalf("AddCaption error: %v", err)
	}
	if res.TextHeight != 120 {
		t.Fatalf("text height: got %d want 120", res.TextHeight)
	}
	if res.Width != 800 || res.Height != 870 {
		t.Fatalf("canvas: got %dx%d want 800x870", res.Width, res.Height)
	}
	if got := len(r.face.drawn); got != 3 {
		t.Fatalf("expected 3 drawn lines, got %d (%q)", got, r.face.drawn)
	}
	if r.face.baseline != 675 {
		t.Fatalf("first baseline: got %g want 675", r.face.baseline)
	}
	// 三行宽均为 400，文本块居中后左边缘位于 (800-400)/2。
	if r.face.anchorX != 200 {
		t.Fatalf("anchor x: got %g want 200", r.face.anchorX)
	}

	out, err := imaging.Open(fx.output)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if got := out.Bounds().Size(); got != image.Pt(800, 870) {
		t.Fatalf("output size: got %v", got)
	}
	r0, g0, b0, a0 := out.At(10, 10).RGBA()
	if r0 != 0 || g0 != 0 || b0>>8 != 255 || a0>>8 != 255 {
		t.Fatalf("source area should be opaque blue, got %d %d %d %d", r0, g0, b0, a0)
	}
}

func TestAddCaptionSingleLineFits(t *testing.T) {
	fx := newFixture(t, 1500, 100, "hello world")
	r := newStubRenderer()
	res, err := AddCaption(fx.options(r))
	if err != nil {
		t.Fatalf("AddCaption error: %v", err)
	}
	if len(r.face.drawn) != 1 || r.face.drawn[0] != "hello world" {
		t.Fatalf("expected a single line, got %q", r.face.drawn)
	}
	if res.Block.Text() != "hello world" {
		t.Fatalf("block text: got %q", res.Block.Text())
	}
}

func TestAddCaptionRefusesExistingOutput(t *testing.T) {
	fx := newFixture(t, 200, 100, "x")
	original := []byte("do not touch")
	writeText(t, fx.output, original)

	_, err := AddCaption(fx.options(newStubRenderer()))
	if !errors.Is(err, ErrOutputExists) {
		t.Fatalf("expected ErrOutputExists, got %v", err)
	}
	got, _ := os.ReadFile(fx.output)
	if !bytes.Equal(got, original) {
		t.Fatalf("existing output was modified")
	}
}

func TestAddCaptionForceOverwrites(t *testing.T) {
	fx := newFixture(t, 200, 100, "x")
	writeText(t, fx.output, []byte("old"))

	opts := fx.options(newStubRenderer())
	opts.Force = true
	if _, err := AddCaption(opts); err != nil {
		t.Fatalf("AddCaption error: %v", err)
	}
	if _, err := imaging.Open(fx.output); err != nil {
		t.Fatalf("output should be a decodable image: %v", err)
	}
}

func TestAddCaptionFatalInputs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(t *testing.T, fx fixture, o *Options)
		want   error
	}{
		{"invalid image", func(t *testing.T, fx fixture, o *Options) {
			writeText(t, fx.image, []byte("not really a png"))
		}, ErrInvalidImage},
		{"missing image", func(t *testing.T, fx fixture, o *Options) {
			o.ImagePath = filepath.Join(fx.dir, "nope.png")
		}, ErrMissingInput},
		{"invalid utf-8", func(t *testing.T, fx fixture, o *Options) {
			writeText(t, fx.caption, []byte{'o', 'k', ' ', 0xff, 0xfe})
		}, ErrTextDecode},
		{"font load", func(t *testing.T, fx fixture, o *Options) {
			o.Renderer = &stubRenderer{err: fonts.ErrLoad}
		}, ErrFontLoad},
		{"padding wider than image", func(t *testing.T, fx fixture, o *Options) {
			o.Padding = 200
		}, ErrInvalidOption},
		{"negative padding", func(t *testing.T, fx fixture, o *Options) {
			o.Padding = -1
		}, ErrInvalidOption},
		{"zero font size", func(t *testing.T, fx fixture, o *Options) {
			o.FontSize = 0
		}, ErrInvalidOption},
		{"unsupported output format", func(t *testing.T, fx fixture, o *Options) {
			o.OutputPath = filepath.Join(fx.dir, "out.webp")
		}, ErrInvalidOption},
		{"unwritable destination", func(t *testing.T, fx fixture, o *Options) {
			o.OutputPath = filepath.Join(fx.dir, "missing-dir", "out.png")
		}, ErrSave},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fx := newFixture(t, 200, 100, "caption")
			opts := fx.options(newStubRenderer())
			c.mutate(t, fx, &opts)

			_, err := AddCaption(opts)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if _, statErr := os.Stat(opts.OutputPath); statErr == nil {
				t.Fatalf("no output should be written on a fatal path")
			}
			leftovers, _ := filepath.Glob(filepath.Join(fx.dir, ".captioner-*"))
			if len(leftovers) != 0 {
				t.Fatalf("temporary files left behind: %v", leftovers)
			}
		})
	}
}

func TestAddCaptionWithCanvasRenderer(t *testing.T) {
	fx := newFixture(t, 400, 200, "A caption drawn with the built-in Go font")
	opts := fx.options(canvasrenderer.NewRenderer())
	src, _ := fonts.Builtin("Go")
	opts.Font = src
	opts.FontSize = 32
	opts.Padding = 20

	res, err := AddCaption(opts)
	if err != nil {
		t.Fatalf("AddCaption error: %v", err)
	}
	if len(res.Block.Lines) < 2 {
		t.Fatalf("expected the caption to wrap, got %q", res.Block.Text())
	}
	for i, ln := range res.Block.Lines {
		if ln.Width > float64(400-20) && utf8.RuneCountInString(ln.Content) > 1 {
			t.Fatalf("line %d exceeds wrap width: %g", i, ln.Width)
		}
	}
	if res.Height != 200+40+res.TextHeight {
		t.Fatalf("height: got %d", res.Height)
	}

	out, err := imaging.Open(fx.output)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	nrgba := imaging.Clone(out)
	white := 0
	for y := 200; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			if c := nrgba.NRGBAAt(x, y); c.R > 200 && c.G > 200 && c.B > 200 {
				white++
			}
		}
	}
	if white == 0 {
		t.Fatalf("expected white caption pixels below the source image")
	}
}

func TestWriteDebugJSON(t *testing.T) {
	fx := newFixture(t, 800, 600, "aaaa bbbb")
	res, err := AddCaption(fx.options(newStubRenderer()))
	if err != nil {
		t.Fatalf("AddCaption error: %v", err)
	}
	path := filepath.Join(fx.dir, "debug", "layout.json")
	if err := WriteDebugJSON(res, path); err != nil {
		t.Fatalf("WriteDebugJSON error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read debug json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded["height"].(float64) != float64(res.Height) {
		t.Fatalf("height mismatch in debug json: %v", decoded["height"])
	}
}

func TestAddCaptionExpandsPlaceholders(t *testing.T) {
	fx := newFixture(t, 1500, 100, "${place|somewhere} ${year}")
	r := newStubRenderer()
	opts := fx.options(r)
	opts.Data = map[string]any{"place": "Sydney", "year": float64(2024)}

	if _, err := AddCaption(opts); err != nil {
		t.Fatalf("AddCaption error: %v", err)
	}
	if len(r.face.drawn) != 1 || r.face.drawn[0] != "Sydney 2024" {
		t.Fatalf("unexpected drawn lines %q", r.face.drawn)
	}
}

func TestAddCaptionDefaultAlignsLinesLeftInCenteredBlock(t *testing.T) {
	fx := newFixture(t, 800, 600, "aaaaaa b")
	r := newStubRenderer()
	res, err := AddCaption(fx.options(r))
	if err != nil {
		t.Fatalf("AddCaption error: %v", err)
	}
	if got := r.face.drawn; len(got) != 2 || got[0] != "aaaaaa" || got[1] != "b" {
		t.Fatalf("unexpected lines %q", got)
	}
	if r.face.align != renderer.AlignLeft || res.Align != "left" {
		t.Fatalf("default align should be left, got %v / %q", r.face.align, res.Align)
	}
	// 最宽行 600 居中：所有行都从 x=100 开始。
	if r.face.anchorX != 100 {
		t.Fatalf("anchor x: got %g want 100", r.face.anchorX)
	}
}

// 默认选项下，真实字体绘制的各行起笔位置一致。
func TestAddCaptionDefaultLineStartsMatch(t *testing.T) {
	fx := newFixture(t, 600, 100, "WWWWWWWWWWWWWWWWW i")
	opts := fx.options(canvasrenderer.NewRenderer())
	src, _ := fonts.Builtin("Go")
	opts.Font = src
	opts.FontSize = 48
	opts.Padding = 40

	res, err := AddCaption(opts)
	if err != nil {
		t.Fatalf("AddCaption error: %v", err)
	}
	if len(res.Block.Lines) != 2 {
		t.Fatalf("expected two lines, got %q", res.Block.Text())
	}
	out, err := imaging.Open(fx.output)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	nrgba := imaging.Clone(out)

	lh := res.Block.LineHeight
	starts := make([]int, len(res.Block.Lines))
	for i := range res.Block.Lines {
		baseline := res.Baseline + float64(i)*lh
		top := max(int(baseline-lh)+1, res.SourceHeight)
		bottom := min(int(baseline), res.Height-1)
		starts[i] = -1
		for x := 0; x < res.Width && starts[i] < 0; x++ {
			for y := top; y <= bottom; y++ {
				if c := nrgba.NRGBAAt(x, y); c.R > 128 && c.G > 128 && c.B > 128 {
					starts[i] = x
					break
				}
			}
		}
		if starts[i] < 0 {
			t.Fatalf("line %d: no ink found", i)
		}
	}
	if d := starts[1] - starts[0]; d < -1 || d > 1 {
		t.Fatalf("line starts differ: %v", starts)
	}
	if starts[0] > res.Width/4 {
		t.Fatalf("widest line should start near the left edge of the centered block, got %d", starts[0])
	}
}

func TestAddCaptionEmptyCaptionAddsNoTextBand(t *testing.T) {
	fx := newFixture(t, 600, 200, "")
	res, err := AddCaption(fx.options(newStubRenderer()))
	if err != nil {
		t.Fatalf("AddCaption error: %v", err)
	}
	if res.TextHeight != 0 {
		t.Fatalf("text height: got %d want 0", res.TextHeight)
	}
	if res.Height != 200+2*DefaultPadding {
		t.Fatalf("canvas height: got %d want %d", res.Height, 200+2*DefaultPadding)
	}
}
