package caption

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// ReadCaption 严格按 UTF-8 读取标题文本：出现非法字节即报 ErrTextDecode。
// 开头的 BOM 会被去掉，CRLF 统一为 LF，末尾的换行符被裁掉。
func ReadCaption(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return "", fmt.Errorf("读取标题文件 %s 失败: %w", path, err)
	}
	if offset := invalidUTF8Offset(data); offset >= 0 {
		return "", fmt.Errorf("%w: %s 在第 %d 字节处含有非法的 UTF-8 序列，请确认文件编码为 UTF-8", ErrTextDecode, path, offset)
	}
	text, err := unicode.UTF8BOM.NewDecoder().String(string(data))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTextDecode, path, err)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimRight(text, "\n"), nil
}

// invalidUTF8Offset 返回第一个非法字节的位置，全部合法时返回 -1。
func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
