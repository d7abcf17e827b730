package caption

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultOutputPath 在原图文件名的扩展名前插入 OutputSuffix，例如 a/b.png → a/b_cap.png。
func DefaultOutputPath(imagePath string) string {
	dir, base := filepath.Split(imagePath)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+OutputSuffix+ext)
}

// CheckInput 确认 path 指向一个已存在的普通文件。
func CheckInput(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrMissingInput, absPath(path))
	}
	return nil
}

// CheckOutput 在 force 为假且 path 已存在时返回 ErrOutputExists；
// path 为目录时无论 force 与否都拒绝。
func CheckOutput(path string, force bool) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: 无法检查输出路径 %s: %v", ErrInvalidOption, absPath(path), err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: 输出路径 %s 是目录", ErrInvalidOption, absPath(path))
	}
	if !force {
		return fmt.Errorf("%w: %s", ErrOutputExists, absPath(path))
	}
	return nil
}

// CheckOutputFormat 确认输出扩展名是支持的图片格式。
func CheckOutputFormat(path string) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("%w: 不支持的输出格式 %q（可选 .png/.jpg/.jpeg/.gif/.tif/.tiff/.bmp）", ErrInvalidOption, filepath.Ext(path))
	}
	return nil
}

// save 先写入同目录下的临时文件再改名，编码失败时不会留下残缺的输出文件。
func save(img image.Image, path string) (err error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".captioner-*"+filepath.Ext(path))
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if err = imaging.Encode(tmp, img, format); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
