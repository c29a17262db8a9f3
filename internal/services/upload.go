package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// UploadService stores user-submitted files (post images, profile pictures)
// under a single directory and hands back the stored filename. The filename
// is what gets recorded on the owning row; the files are served from
// /uploads by the router.
type UploadService struct {
	Dir string
}

func NewUploadService(dir string) (*UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadService{Dir: dir}, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SecureFilename strips directory components and unsafe runes from a name
// hint so it can never escape the upload dir.
func SecureFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\\", "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}

// Save writes the uploaded file under a sanitized version of the name hint
// and returns the stored filename.
func (s *UploadService) Save(file multipart.File, hint string) (string, error) {
	filename := SecureFilename(hint)

	dst, err := os.Create(filepath.Join(s.Dir, filename))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return filename, nil
}

// SaveFormFile is the common handler path: pulls the named file out of the
// form, prefixes the hint and stores it. A missing file is not an error;
// it returns "" so the caller can leave the reference unset.
func (s *UploadService) SaveFormFile(header *multipart.FileHeader, prefix string) (string, error) {
	if header == nil || header.Filename == "" {
		return "", nil
	}
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	return s.Save(file, prefix+header.Filename)
}
