package fonts

import (
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

// builtin 内置的 Go 字体族，按小写名称索引。
var builtin = map[string]struct {
	name string
	data []byte
}{
	"go":           {"Go", goregular.TTF},
	"go regular":   {"Go", goregular.TTF},
	"go bold":      {"Go Bold", gobold.TTF},
	"go italic":    {"Go Italic", goitalic.TTF},
	"go medium":    {"Go Medium", gomedium.TTF},
	"go mono":      {"Go Mono", gomono.TTF},
	"go smallcaps": {"Go Smallcaps", gosmallcaps.TTF},
}

// Builtin 按名称（不区分大小写）查找内置字体。
func Builtin(name string) (Source, bool) {
	entry, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Source{}, false
	}
	return Source{Name: entry.name, Data: entry.data}, true
}

// BuiltinNames 返回全部内置字体名（去重、排序）。
func BuiltinNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, entry := range builtin {
		if seen[entry.name] {
			continue
		}
		seen[entry.name] = true
		names = append(names, entry.name)
	}
	sort.Strings(names)
	return names
}
