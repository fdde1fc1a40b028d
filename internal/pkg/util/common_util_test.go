package util

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestGetSafeContentType(t *testing.T) {
	// PNG 魔数
	png := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
	r := bytes.NewReader(png)

	ct, err := GetSafeContentType(r)
	if err != nil {
		t.Fatalf("GetSafeContentType() error = %v", err)
	}
	if !strings.HasPrefix(ct, "image/png") {
		t.Errorf("content type = %q, want image/png", ct)
	}

	// 读取后指针必须复位
	if pos, _ := r.Seek(0, io.SeekCurrent); pos != 0 {
		t.Errorf("reader position = %d after sniff, want 0", pos)
	}
}

func TestGetSafeContentTypeShortFile(t *testing.T) {
	r := bytes.NewReader([]byte("hi"))
	ct, err := GetSafeContentType(r)
	if err != nil {
		t.Fatalf("GetSafeContentType() error = %v", err)
	}
	if ct == "" {
		t.Error("content type is empty for short file")
	}
}
