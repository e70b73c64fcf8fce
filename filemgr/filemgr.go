package filemgr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"foodfreaky/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

type EntityType string

const (
	EntityRestaurant EntityType = "restaurant"
	EntityUser       EntityType = "user"
)

const (
	maxUploadBytes = 10 << 20
	maxDimension   = 3000
	thumbWidth     = 200
)

var (
	allowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}
	allowedMIMEs      = []string{"image/jpeg", "image/png", "image/gif"}

	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
)

// ResolvePath maps an entity to its picture directory under static/.
func ResolvePath(entity EntityType) string {
	switch entity {
	case EntityUser:
		return filepath.Join("static", "userpic")
	default:
		return filepath.Join("static", "restaurantpic")
	}
}

func validateDimensions(img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		return fmt.Errorf("image dimensions %dx%d exceed max %dx%d",
			bounds.Dx(), bounds.Dy(), maxDimension, maxDimension)
	}
	return nil
}

// SaveImage validates, re-encodes, and stores an uploaded picture. Re-encoding
// to JPEG strips any EXIF payload from the original. A 200px thumbnail lands
// next to the original under thumb/.
func SaveImage(file multipart.File, header *multipart.FileHeader, entity EntityType) (string, error) {
	defer file.Close()

	if header.Size > maxUploadBytes {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !utils.Contains(allowedExtensions, ext) {
		return "", fmt.Errorf("%w: %s", ErrInvalidExtension, ext)
	}

	buf, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	mimeType := http.DetectContentType(buf)
	if !utils.Contains(allowedMIMEs, mimeType) {
		return "", fmt.Errorf("%w: %s", ErrInvalidMIME, mimeType)
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("decode image %q: %w", header.Filename, err)
	}
	if err := validateDimensions(img); err != nil {
		return "", err
	}

	destDir := ResolvePath(entity)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", destDir, err)
	}

	fileName := uuid.New().String() + ".jpg"
	fullPath := filepath.Join(destDir, fileName)
	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", fullPath, err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 90}); err != nil {
		return "", fmt.Errorf("encode %s: %w", fullPath, err)
	}

	if err := generateThumbnail(img, destDir, fileName); err != nil {
		// The original saved fine; a missing thumbnail is not fatal.
		return fileName, nil
	}
	return fileName, nil
}

func generateThumbnail(img image.Image, destDir, fileName string) error {
	resized := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)

	thumbDir := filepath.Join(destDir, "thumb")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", thumbDir, err)
	}

	thumbPath := filepath.Join(thumbDir, fileName)
	out, err := os.Create(thumbPath)
	if err != nil {
		return fmt.Errorf("create thumbnail: %w", err)
	}
	defer out.Close()

	return jpeg.Encode(out, resized, &jpeg.Options{Quality: 85})
}

// SaveFormFile pulls the named file out of a parsed multipart form and
// stores it for the entity.
func SaveFormFile(form *multipart.Form, formKey string, entity EntityType) (string, error) {
	files := form.File[formKey]
	if len(files) == 0 {
		return "", fmt.Errorf("missing required file: %s", formKey)
	}
	file, err := files[0].Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", formKey, err)
	}
	return SaveImage(file, files[0], entity)
}
