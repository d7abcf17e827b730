package caption

import "errors"

// 所有错误都会终止本次运行；调用方用 errors.Is 区分类别。
// 只有 ErrFontNotFound 之前的“找不到所需字体”会在 ResolveFont 内部回退处理。
var (
	ErrMissingInput  = errors.New("输入不是文件")
	ErrOutputExists  = errors.New("输出文件已存在")
	ErrInvalidImage  = errors.New("无法识别的图片文件")
	ErrFontNotFound  = errors.New("找不到字体")
	ErrFontLoad      = errors.New("字体已安装，但无法打开字体文件")
	ErrTextDecode    = errors.New("无法按 UTF-8 解码标题文件")
	ErrInvalidOption = errors.New("参数无效")
	ErrSave          = errors.New("保存图片失败")
)
