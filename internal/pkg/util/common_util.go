package util

import (
	"io"
	"net/http"
)

// GetSafeContentType 通过文件头嗅探真实的 MIME 类型，读取后会把指针复位
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return http.DetectContentType(buf[:n]), nil
}

// PtrInt 用于将 int 转换为 *int
func PtrInt(i int) *int {
	return &i
}

// PtrFloat64 用于将 float64 转换为 *float64
func PtrFloat64(f float64) *float64 {
	return &f
}
