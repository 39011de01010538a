package utils

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/unicode/norm"
)

// ErrUnsupportedUpload is returned when an upload is not an accepted image.
var ErrUnsupportedUpload = errors.New("unsupported upload")

var allowedImageExtensions = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// AllowedImage reports whether filename carries one of the accepted image extensions.
func AllowedImage(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	return allowedImageExtensions[strings.ToLower(filename[i+1:])]
}

// SecureFilename reduces name to a flat ASCII filename that is safe to join
// onto an upload directory. It may return "".
func SecureFilename(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	name = strings.NewReplacer("/", " ", `\`, " ").Replace(b.String())
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// SaveAvatar stores an uploaded image under destDir using its sanitized
// filename and returns that filename. An existing file with the same name is
// overwritten. With sniff set, the content must also be detected as an image.
func SaveAvatar(file *multipart.FileHeader, destDir string, sniff bool) (string, error) {
	staged, err := StageAvatar(file, destDir, sniff)
	if err != nil {
		return "", err
	}
	if err := staged.Commit(); err != nil {
		staged.Discard()
		return "", err
	}
	return staged.Filename, nil
}

// StagedAvatar is an accepted upload written to a temporary file next to its
// final location. Nothing under the final name changes until Commit.
type StagedAvatar struct {
	Filename string
	dir      string
	tmpPath  string
}

// StageAvatar validates file and copies it into a temporary file in destDir.
func StageAvatar(file *multipart.FileHeader, destDir string, sniff bool) (*StagedAvatar, error) {
	if !AllowedImage(file.Filename) {
		return nil, ErrUnsupportedUpload
	}
	filename := SecureFilename(file.Filename)
	if filename == "" || !AllowedImage(filename) {
		return nil, ErrUnsupportedUpload
	}

	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if sniff {
		mtype, err := mimetype.DetectReader(src)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(mtype.String(), "image/") {
			return nil, ErrUnsupportedUpload
		}
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	}

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, err
	}

	dst, err := os.CreateTemp(destDir, ".upload-*")
	if err != nil {
		return nil, err
	}
	staged := &StagedAvatar{Filename: filename, dir: destDir, tmpPath: dst.Name()}

	// Copy the file content
	_, err = io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		staged.Discard()
		return nil, err
	}
	return staged, nil
}

// Commit moves the staged upload onto its final name, replacing any file there.
func (s *StagedAvatar) Commit() error {
	return os.Rename(s.tmpPath, filepath.Join(s.dir, s.Filename))
}

// Discard removes the temporary file. It is a no-op after Commit.
func (s *StagedAvatar) Discard() {
	_ = os.Remove(s.tmpPath)
}
