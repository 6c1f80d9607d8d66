package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCappedFileStartsOverAtCap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	w, err := newCappedFile(path, 1)
	if err != nil {
		t.Fatalf("new capped file: %v", err)
	}
	defer w.Close()

	chunk := make([]byte, 512*1024)
	for i := 0; i < 3; i++ {
		if _, err := w.Write(chunk); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() > 1024*1024 {
		t.Fatalf("log grew past the 1MB cap: %d", info.Size())
	}
}

func TestCappedFileReopensAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	w, err := newCappedFile(path, 1)
	if err != nil {
		t.Fatalf("new capped file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := w.Write([]byte("after close\n")); err != nil {
		t.Fatalf("write after close: %v", err)
	}
	_ = w.Close()
}
