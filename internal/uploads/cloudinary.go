package uploads

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage uploads files to a Cloudinary folder.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("configuring cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStorage) Put(ctx context.Context, file *Prepared) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, file.Reader(), uploader.UploadParams{
		Folder:       path.Join(s.folder, string(file.Kind)),
		PublicID:     strings.TrimSuffix(file.Name, path.Ext(file.Name)),
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", errors.New("cloudinary upload: " + resp.Error.Message)
	}
	return resp.SecureURL, nil
}
