package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	apperrors "portfolio/internal/errors"
)

// Public subdirectories uploads are written to.
const (
	DirProjects     = "projects"
	DirTestimonials = "testimonials"
)

// Store writes uploaded files below the public directory and hands back the
// site-relative path. Files are never cleaned up if a later step fails.
type Store struct {
	root     string
	maxBytes int64
	now      func() time.Time
}

// NewStore creates a store rooted at publicDir.
func NewStore(publicDir string, maxBytes int64) *Store {
	return &Store{root: publicDir, maxBytes: maxBytes, now: time.Now}
}

// Root is the directory uploads are written under.
func (s *Store) Root() string {
	return s.root
}

// Check validates an upload before anything is written: it must fit the size
// limit and sniff as an image.
func (s *Store) Check(field string, fh *multipart.FileHeader) error {
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return apperrors.Field(field, fmt.Sprintf("File must be at most %d bytes", s.maxBytes))
	}
	mtype, err := s.detect(fh)
	if err != nil {
		return apperrors.Internal("Failed to read upload", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return apperrors.Field(field, "File must be an image")
	}
	return nil
}

// Save writes fh as <unix-millis>-<tag><ext> under subdir. An empty tag is
// replaced by a random one.
func (s *Store) Save(fh *multipart.FileHeader, subdir, tag string) (string, error) {
	if tag == "" {
		tag = uuid.NewString()[:8]
	}
	ext, err := s.extension(fh)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), tag, ext)

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return path.Join("/", subdir, name), nil
}

func (s *Store) detect(fh *multipart.FileHeader) (*mimetype.MIME, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return mimetype.DetectReader(f)
}

// extension keeps the client's extension when it is a plain one and falls
// back to the sniffed type otherwise.
func (s *Store) extension(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != "" && len(ext) <= 6 && !strings.ContainsAny(ext, `/\ `) {
		return ext, nil
	}
	mtype, err := s.detect(fh)
	if err != nil {
		return "", fmt.Errorf("detect upload type: %w", err)
	}
	return mtype.Extension(), nil
}
