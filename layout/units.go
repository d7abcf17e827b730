package layout

// 渲染时 1 像素对应画布上的 1 mm（canvas.DPMM(1)），字体字号则以 pt 传给字体引擎。

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PxToPt 将像素字号换算为 pt。
func PxToPt(px float64) float64 { return px * MmToPt }

// PtToPx 将 pt 换算为像素。
func PtToPx(pt float64) float64 { return pt * PtToMm }
