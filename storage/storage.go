// Package storage persists uploaded design files under conf.UploadDir. Files
// are stored content-addressed by sha3-512 fingerprint so re-uploads of the
// same content collapse to one file; the returned locator is the tokenURI
// recorded on the ledger.
package storage

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/sha3"

	"designmarket/conf"
)

// Save writes content to the upload directory and returns its locator, e.g.
// "/design/file/<fingerprint><ext>". ext keeps the original file extension.
func Save(originalName string, r io.Reader) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if len(content) == 0 {
		return "", fmt.Errorf("empty file")
	}
	digest := sha3.Sum512(content)
	name := hex.EncodeToString(digest[:32]) + filepath.Ext(originalName)

	if err := os.MkdirAll(conf.UploadDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(conf.UploadDir, name)
	if _, err := os.Stat(path); err == nil {
		return locator(name), nil
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", err
	}
	return locator(name), nil
}

// Open returns the stored file content by name; name is stripped to its base
// so a crafted path cannot escape the upload directory.
func Open(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(conf.UploadDir, filepath.Base(name)))
}

func locator(name string) string {
	return "/design/file/" + name
}
