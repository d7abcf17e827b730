package layout

// Measurer 返回字符串在固定字体与字号下的渲染宽度（像素）。
// 换行算法只依赖该接口，测试中可以用等宽桩实现替代真实字体。
type Measurer interface {
	TextWidth(s string) float64
}

// BlockMeasurer 在 Measurer 的基础上提供多行文本需要的纵向度量。
type BlockMeasurer interface {
	Measurer
	Metrics() Metrics
}
