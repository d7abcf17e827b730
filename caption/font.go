package caption

import (
	"errors"
	"fmt"

	"github.com/ByLCY/captioner/fonts"
)

// BuiltinFallback 是主机上连默认字体都找不到时最后使用的内置字体。
const BuiltinFallback = "Go"

// ResolveFont 解析 requested；若找不到则记录警告并依次尝试 fallbacks。
// 全部无法解析时返回 ErrFontNotFound。其他错误原样返回。
func ResolveFont(l fonts.Locator, requested string, fallbacks ...string) (fonts.Source, error) {
	src, err := l.Locate(requested)
	if err == nil {
		return src, nil
	}
	if !errors.Is(err, fonts.ErrNotFound) {
		return fonts.Source{}, err
	}

	tried := requested
	for _, name := range fallbacks {
		if name == "" || name == tried {
			continue
		}
		Logger().Warn("找不到字体，改用默认字体", "font", tried, "fallback", name)
		src, err = l.Locate(name)
		if err == nil {
			return src, nil
		}
		if !errors.Is(err, fonts.ErrNotFound) {
			return fonts.Source{}, err
		}
		tried = name
	}
	return fonts.Source{}, fmt.Errorf("%w: %q: %w", ErrFontNotFound, requested, err)
}
