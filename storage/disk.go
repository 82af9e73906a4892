package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Disk writes files into Dir, which the router serves under /uploads.
type Disk struct {
	Dir     string
	BaseURL string
}

func NewDisk(dir, baseURL string) *Disk {
	return &Disk{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (d *Disk) Save(ctx context.Context, name, contentType string, content io.Reader) (string, error) {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(d.Dir, filepath.Base(name))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	if _, err := io.Copy(file, content); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	return d.BaseURL + "/uploads/" + filepath.Base(name), nil
}

func (d *Disk) Delete(ctx context.Context, name string) error {
	err := os.Remove(filepath.Join(d.Dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}
