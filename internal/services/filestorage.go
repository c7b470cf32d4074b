package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/edutest/edutest-backend/internal/logger"
)

// FileStorageService writes uploads and generated assets under a single
// local root. Stored values are paths relative to that root, so the root can
// move without rewriting rows.
type FileStorageService interface {
	SaveUpload(file *multipart.FileHeader, subdir string) (string, error)
	SaveBytes(data []byte, subdir, ext string) (string, error)
	Resolve(relPath string) (string, error)
	Delete(relPath string) error
	Root() string
}

type fileStorageService struct {
	log  *logger.Logger
	root string
}

func NewFileStorageService(log *logger.Logger, root string) (FileStorageService, error) {
	serviceLog := log.With("service", "FileStorageService")
	if root == "" {
		return nil, fmt.Errorf("upload root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload root: %w", err)
	}
	return &fileStorageService{log: serviceLog, root: root}, nil
}

func (fs *fileStorageService) Root() string {
	return fs.root
}

func (fs *fileStorageService) SaveUpload(file *multipart.FileHeader, subdir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	relPath := filepath.Join(subdir, uuid.New().String()+ext)
	absPath := filepath.Join(fs.root, relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	fs.log.Debug("Upload stored", "path", relPath, "size", file.Size)
	return relPath, nil
}

func (fs *fileStorageService) SaveBytes(data []byte, subdir, ext string) (string, error) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	relPath := filepath.Join(subdir, uuid.New().String()+ext)
	absPath := filepath.Join(fs.root, relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create dir: %w", err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return relPath, nil
}

// Resolve maps a stored relative path to an absolute one, refusing anything
// that escapes the root.
func (fs *fileStorageService) Resolve(relPath string) (string, error) {
	cleaned := filepath.Clean(relPath)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid path")
	}
	return filepath.Join(fs.root, cleaned), nil
}

func (fs *fileStorageService) Delete(relPath string) error {
	absPath, err := fs.Resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
