package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/font"
)

// Locator 将字体名解析为字体来源。
type Locator interface {
	Locate(name string) (Source, error)
}

// Catalog 是系统字体目录的查询接口，返回匹配到的字体文件路径。
type Catalog interface {
	Match(name string) (string, bool)
}

// SystemLocator 依次尝试字体文件路径、内置字体与系统字体目录。
type SystemLocator struct {
	catalog Catalog
}

var _ Locator = (*SystemLocator)(nil)

// NewSystemLocator 创建使用主机字体目录的解析器。
func NewSystemLocator() *SystemLocator {
	return &SystemLocator{catalog: &hostCatalog{dirs: font.DefaultFontDirs()}}
}

// NewLocator 创建使用自定义字体目录的解析器，catalog 可为 nil。
func NewLocator(catalog Catalog) *SystemLocator {
	return &SystemLocator{catalog: catalog}
}

// Locate 实现 Locator。
func (l *SystemLocator) Locate(name string) (Source, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Source{}, fmt.Errorf("%w: 字体名为空", ErrNotFound)
	}
	if info, err := os.Stat(name); err == nil && info.Mode().IsRegular() {
		return Source{Name: strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)), Path: name}, nil
	}
	if src, ok := Builtin(name); ok {
		return src, nil
	}
	if l.catalog != nil {
		if path, ok := l.catalog.Match(name); ok {
			return Source{Name: name, Path: path}, nil
		}
	}
	return Source{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// hostCatalog 在首次查询时扫描系统字体目录。
type hostCatalog struct {
	dirs []string

	once  sync.Once
	fonts *font.SystemFonts
	err   error
}

func (c *hostCatalog) Match(name string) (string, bool) {
	c.once.Do(func() {
		c.fonts, c.err = font.FindSystemFonts(c.dirs)
	})
	if c.err != nil || c.fonts == nil {
		return "", false
	}
	metadata, ok := c.fonts.Match(name, font.Regular)
	if !ok || metadata.Filename == "" {
		return "", false
	}
	return metadata.Filename, true
}
