package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ContactImageFolder is the remote folder contact pictures are uploaded to.
const ContactImageFolder = "scm/contacts"

// ImageService uploads a contact picture to the external image store and
// returns the public URL it is served from.
type ImageService interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader, publicID string) (string, error)
}

// CloudinaryImageService is the Cloudinary-backed ImageService.
type CloudinaryImageService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryImageService creates a new CloudinaryImageService.
func NewCloudinaryImageService(cld *cloudinary.Cloudinary) *CloudinaryImageService {
	return &CloudinaryImageService{
		cld: cld,
	}
}

// UploadImage streams the uploaded file to Cloudinary under the given public
// id and returns the secure URL of the stored image.
func (s *CloudinaryImageService) UploadImage(ctx context.Context, file *multipart.FileHeader, publicID string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file %s: %w", file.Filename, err)
	}
	defer src.Close()

	uploadResult, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		PublicID: publicID,
		Folder:   ContactImageFolder,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", file.Filename, err)
	}
	return uploadResult.SecureURL, nil
}
