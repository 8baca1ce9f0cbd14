package xhs

import (
	"errors"
	"testing"
)

func TestExtractURLFromMixedText(t *testing.T) {
	text := "家庭版馄饨｜早餐自制馄饨 真的太好吃了～好吃到汤都... http://xhslink.com/o/5ZMAfpDOokl 复制后打开【小红书】查看笔记！"
	url, err := ExtractURL(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "http://xhslink.com/o/5ZMAfpDOokl" {
		t.Errorf("got %q", url)
	}
}

func TestExtractURLHTTPS(t *testing.T) {
	text := "检查这个：https://xhslink.com/o/abc123xyz 很棒的笔记"
	url, err := ExtractURL(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://xhslink.com/o/abc123xyz" {
		t.Errorf("got %q", url)
	}
}

func TestExtractURLNotFound(t *testing.T) {
	_, err := ExtractURL("这是一个没有链接的文本")
	if !errors.Is(err, ErrURLNotFound) {
		t.Fatalf("expected ErrURLNotFound, got %v", err)
	}
}

func TestParseFromTextStillStubbed(t *testing.T) {
	_, err := ParseFromText("prefix http://xhslink.com/o/ABC123 suffix")
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}

	// No URL takes priority over the stub.
	_, err = ParseFromText("no link here")
	if !errors.Is(err, ErrURLNotFound) {
		t.Fatalf("expected ErrURLNotFound, got %v", err)
	}
}
