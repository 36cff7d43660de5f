package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"designmarket/conf"
)

func useTempDir(t *testing.T) {
	old := conf.UploadDir
	conf.UploadDir = t.TempDir()
	t.Cleanup(func() { conf.UploadDir = old })
}

func TestSaveAndOpen(t *testing.T) {
	useTempDir(t)

	locator, err := Save("chair.stl", strings.NewReader("solid chair"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(locator, "/design/file/") || !strings.HasSuffix(locator, ".stl") {
		t.Errorf("locator: got %v", locator)
	}

	name := filepath.Base(locator)
	content, err := Open(name)
	if err != nil || string(content) != "solid chair" {
		t.Errorf("Open: got %q, %v", content, err)
	}
}

func TestSaveIsContentAddressed(t *testing.T) {
	useTempDir(t)

	first, err := Save("a.stl", strings.NewReader("same content"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := Save("b.stl", strings.NewReader("same content"))
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("same content got two locators: %v, %v", first, second)
	}

	third, err := Save("a.stl", strings.NewReader("other content"))
	if err != nil {
		t.Fatal(err)
	}
	if third == first {
		t.Error("different content collided")
	}
}

func TestSaveRejectsEmptyFile(t *testing.T) {
	useTempDir(t)
	if _, err := Save("a.stl", strings.NewReader("")); err == nil {
		t.Error("empty file accepted")
	}
}

func TestOpenStripsPath(t *testing.T) {
	useTempDir(t)
	outside := filepath.Join(filepath.Dir(conf.UploadDir), "secret")
	if err := os.WriteFile(outside, []byte("secret"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open("../secret"); err == nil {
		t.Error("path traversal escaped the upload directory")
	}
}
