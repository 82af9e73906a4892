package storage

import (
	"context"
	"fmt"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"io"
	"path/filepath"
	"strings"
)

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	Folder string
}

func NewCloudinary(cloudinaryURL, folder string) (*Cloudinary, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL is required")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("initialize cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, Folder: strings.Trim(folder, "/")}, nil
}

// publicID drops the extension; Cloudinary appends the detected format itself.
func publicID(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func (c *Cloudinary) Save(ctx context.Context, name, contentType string, content io.Reader) (string, error) {
	overwrite := false
	result, err := c.cld.Upload.Upload(ctx, content, uploader.UploadParams{
		PublicID:     publicID(name),
		Folder:       c.Folder,
		Overwrite:    &overwrite,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("upload %s: %s", name, result.Error.Message)
	}

	if result.SecureURL != "" {
		return result.SecureURL, nil
	}
	return result.URL, nil
}

func (c *Cloudinary) Delete(ctx context.Context, name string) error {
	id := publicID(name)
	if c.Folder != "" {
		id = c.Folder + "/" + id
	}

	result, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id})
	if err != nil {
		return fmt.Errorf("destroy %s: %w", id, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("destroy %s: %s", id, result.Error.Message)
	}
	return nil
}
