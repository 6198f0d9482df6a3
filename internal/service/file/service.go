package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/presensia/attendance-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

type FileService interface {
	// Attendance photo uploads (check-in/check-out selfies)
	UploadAttendancePhoto(ctx context.Context, userID string, date time.Time, photo []byte, eventType string) (string, error)

	// Face reference uploads
	UploadFaceReference(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// Download retrieves a stored file's contents.
	Download(ctx context.Context, path string) ([]byte, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadAttendancePhoto uploads a check-in/check-out selfie.
// Compresses image to target size between 50KB - 150KB.
func (s *fileServiceImpl) UploadAttendancePhoto(ctx context.Context, userID string, date time.Time, photo []byte, eventType string) (string, error) {
	// Compress image to target size (50KB - 150KB)
	compressed, err := compressImage(photo, 150*1024, 50*1024)
	if err != nil {
		return "", fmt.Errorf("failed to compress image: %w", err)
	}

	// Generate path: attendance/{date}/{userID}-{eventType}-{uuid}.jpg
	// Always output as JPEG after compression for consistency
	dateStr := date.Format("2006-01-02")
	newFilename := fmt.Sprintf("%s-%s-%s.jpg", userID, eventType, uuid.New().String())
	path := filepath.Join("attendance", dateStr, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(compressed), path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload attendance photo: %w", err)
	}

	return uploadedPath, nil
}

// UploadFaceReference uploads the stored reference photo used by face
// verification.
func (s *fileServiceImpl) UploadFaceReference(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	allowedExts := []string{".jpg", ".jpeg", ".png"}

	isValid := false
	for _, allowed := range allowedExts {
		if ext == allowed {
			isValid = true
			break
		}
	}

	if !isValid {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	newFilename := fmt.Sprintf("%s-%s%s", userID, uuid.New().String(), ext)
	path := filepath.Join("faces", userID, newFilename)

	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload face reference: %w", err)
	}

	return uploadedPath, nil
}

// Download retrieves a stored file's contents.
func (s *fileServiceImpl) Download(ctx context.Context, path string) ([]byte, error) {
	rc, err := s.storage.Download(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// ==================== HELPER FUNCTIONS ====================

// compressImage compresses an image to target size range using Go standard library
// maxSize: maximum allowed size (e.g., 150KB)
// minSize: minimum target size (e.g., 50KB)
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	// Check if compression is needed
	if len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	// Decode the image
	img, format, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Get original dimensions
	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	// Start with quality 85 and reduce progressively
	quality := 85
	var compressed []byte
	currentImg := img

	// Try compression with decreasing quality first
	for quality >= 50 {
		buf := new(bytes.Buffer)
		err = jpeg.Encode(buf, currentImg, &jpeg.Options{Quality: quality})
		if err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}

		compressed = buf.Bytes()

		// Check if we've reached target size
		if len(compressed) <= maxSize && len(compressed) >= minSize {
			return compressed, nil
		}

		// If still too large, reduce quality
		if len(compressed) > maxSize {
			quality -= 5
			continue
		}

		// If too small but quality already low, accept it
		if len(compressed) < minSize && quality <= 60 {
			return compressed, nil
		}

		break
	}

	// If still too large after quality reduction, try resizing
	if len(compressed) > maxSize {
		// Calculate resize ratio to target 100KB (middle of range)
		targetSize := 100 * 1024
		ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
		newWidth := int(float64(originalWidth) * ratio)
		newHeight := int(float64(originalHeight) * ratio)

		// Ensure minimum dimensions
		if newWidth < 600 {
			newWidth = 600
		}
		if newHeight < 400 {
			newHeight = 400
		}

		// Resize the image
		resized := resizeImage(img, newWidth, newHeight)

		// Encode with quality 70
		buf := new(bytes.Buffer)
		err = jpeg.Encode(buf, resized, &jpeg.Options{Quality: 70})
		if err != nil {
			return nil, fmt.Errorf("failed to encode resized image: %w", err)
		}

		compressed = buf.Bytes()
	}

	_ = format // PNG is converted to JPEG

	return compressed, nil
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
