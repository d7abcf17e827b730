// Package binding 把标题文本中的 ${path} 占位符替换为外部数据中的值。
//
// 路径语法：以点分隔的键名，键名后可接任意个 [下标]，例如 ${photo.tags[0]}。
// ${path|默认值} 在路径不存在时使用默认值；$${ 输出字面量 ${。
package binding

import (
	"fmt"
	"strconv"
	"strings"
)

// Expand 展开 text 中的占位符。data 为 nil 时只处理 $${ 转义，占位符保持原样。
// 无法解析且没有默认值的占位符保持原样。
func Expand(text string, data any) string {
	if !strings.Contains(text, "${") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for {
		start := strings.Index(text, "${")
		if start == -1 {
			b.WriteString(text)
			return b.String()
		}
		if start > 0 && text[start-1] == '$' {
			b.WriteString(text[:start-1])
			b.WriteString("${")
			text = text[start+2:]
			continue
		}
		end := strings.IndexByte(text[start:], '}')
		if end == -1 {
			b.WriteString(text)
			return b.String()
		}
		end += start
		b.WriteString(text[:start])
		b.WriteString(expandOne(text[start:end+1], text[start+2:end], data))
		text = text[end+1:]
	}
}

func expandOne(raw, expr string, data any) string {
	if data == nil {
		return raw
	}
	path, def, hasDefault := strings.Cut(expr, "|")
	path = strings.TrimSpace(path)
	if path != "" {
		if val, ok := Lookup(data, path); ok {
			return format(val)
		}
	}
	if hasDefault {
		return def
	}
	return raw
}

// Lookup 按路径在 JSON 解码后的数据（map[string]any / []any）中取值。
func Lookup(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := splitSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			m, isMap := current.(map[string]any)
			if !isMap {
				return nil, false
			}
			if current, ok = m[name]; !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			list, isList := current.([]any)
			if !isList || idx < 0 || idx >= len(list) {
				return nil, false
			}
			current = list[idx]
		}
	}
	return current, true
}

// splitSegment 拆出 "name[1][2]" 中的键名与下标。
func splitSegment(segment string) (string, []int, bool) {
	name, rest, found := strings.Cut(segment, "[")
	if !found {
		return name, nil, name != ""
	}
	rest = "[" + rest
	var indexes []int
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			return "", nil, false
		}
		idx, err := strconv.Atoi(strings.TrimSpace(rest[1:end]))
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = rest[end+1:]
	}
	return name, indexes, true
}

func format(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
