// Package fonts 负责把人类可读的字体名解析为可加载的字体数据。
//
// 解析顺序：已存在的字体文件路径 → 内置 Go 字体 → 系统字体目录。
package fonts

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNotFound 表示字体名无法解析。
	ErrNotFound = errors.New("找不到字体")
	// ErrLoad 表示字体已被找到，但文件无法读取。
	ErrLoad = errors.New("无法读取字体文件")
)

// Source 描述一个已解析的字体：Path 指向字体文件，或 Data 直接携带内置字体字节。
type Source struct {
	Name string
	Path string
	Data []byte
}

// Key 返回用于缓存字体族的唯一键。
func (s Source) Key() string {
	if s.Path != "" {
		return "file:" + s.Path
	}
	return "builtin:" + s.Name
}

// String 返回便于诊断输出的描述。
func (s Source) String() string {
	if s.Path != "" {
		return s.Path
	}
	return "built-in:" + s.Name
}

// Load 返回字体字节。内置字体直接返回，文件字体读取失败时包装为 ErrLoad。
func Load(src Source) ([]byte, error) {
	if len(src.Data) > 0 {
		return src.Data, nil
	}
	if src.Path == "" {
		return nil, fmt.Errorf("%w: 字体 %q 缺少路径", ErrLoad, src.Name)
	}
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrLoad, src.Path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w %s: 文件为空", ErrLoad, src.Path)
	}
	return data, nil
}
