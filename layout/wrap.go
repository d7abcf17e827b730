package layout

import "strings"

// Wrap 将 text 贪心折行，使每一行在 m 的度量下不超过 maxWidth，并以换行符拼接。
func Wrap(text string, m Measurer, maxWidth float64) string {
	return strings.Join(WrapLines(text, m, maxWidth), "\n")
}

// WrapLines 按单个空格切词，逐词尝试追加到当前行；放不下时另起一行，
// 单词本身超宽时按字符拆分。结果至少包含一行（空文本返回一个空行）。
//
// 单个字符本身超过 maxWidth 时独占一行，不会产生空行。
func WrapLines(text string, m Measurer, maxWidth float64) []string {
	lines := []string{""}
	for _, word := range strings.Split(text, " ") {
		if word == "" {
			continue
		}
		last := len(lines) - 1
		candidate := strings.TrimSpace(lines[last] + " " + word)
		if m.TextWidth(candidate) <= maxWidth {
			lines[last] = candidate
			continue
		}
		if m.TextWidth(word) <= maxWidth {
			lines = appendLine(lines, word)
			continue
		}
		for _, part := range splitWord(word, m, maxWidth) {
			lines = appendLine(lines, part)
		}
	}
	return lines
}

// appendLine 追加新行；当前行仍为空时直接占用它。
func appendLine(lines []string, s string) []string {
	if last := len(lines) - 1; lines[last] == "" {
		lines[last] = s
		return lines
	}
	return append(lines, s)
}

// splitWord 逐字符累加，超出 maxWidth 时在上一个字符处截断。
func splitWord(word string, m Measurer, maxWidth float64) []string {
	var (
		parts []string
		part  []rune
	)
	for _, r := range word {
		part = append(part, r)
		if len(part) > 1 && m.TextWidth(string(part)) > maxWidth {
			parts = append(parts, string(part[:len(part)-1]))
			part = []rune{r}
		}
	}
	if len(part) > 0 {
		parts = append(parts, string(part))
	}
	return parts
}

// Measure 对已折行的文本做多行度量。wrapped 中的每个换行符都视为一行，
// 包括单词内部原本携带的换行。
// 包围盒高度 = (行数-1)*行高 + 上升部 + 下降部；所有行都为空时高度为 0。
func Measure(wrapped string, m BlockMeasurer, maxWidth float64) Block {
	metrics := m.Metrics()
	contents := strings.Split(wrapped, "\n")
	block := Block{
		Lines:      make([]Line, 0, len(contents)),
		MaxWidth:   maxWidth,
		LineHeight: metrics.LineHeight,
		Ascent:     metrics.Ascent,
		Descent:    metrics.Descent,
	}
	blank := true
	for _, c := range contents {
		block.Lines = append(block.Lines, Line{Content: c, Width: m.TextWidth(c)})
		if c != "" {
			blank = false
		}
	}
	if blank {
		return block
	}
	block.Height = float64(len(block.Lines)-1)*metrics.LineHeight + metrics.Ascent + metrics.Descent
	return block
}
