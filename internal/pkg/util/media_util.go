package util

import (
	"io"

	"github.com/disintegration/imaging"
)

// GetImageDimensions 解码图片并返回宽高，调用方负责把 reader 复位
func GetImageDimensions(reader io.ReadSeeker) (int, int, error) {
	img, err := imaging.Decode(reader)
	if err != nil {
		return 0, 0, err
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}

	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
