package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"strings"
	"travelworld/utils"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// MediaKind selects the upload directory of an entity type
type MediaKind string

const (
	MediaRegion MediaKind = "states"
	MediaPlace  MediaKind = "places"

	uploadsDir      = "uploads"
	thumbsDir       = "thumbs"
	thumbSize       = 480
	maxNameLength   = 120
	uniqueIDLength  = 8
	maxSaveAttempts = 5
)

var (
	ErrNotAnImage = errors.New("not an image")
	ErrTooLarge   = errors.New("file too large")
	ErrNoSpace    = errors.New("not enough storage space")
)

// SanitizeFilename keeps only the base name made of ASCII letters, digits, '.', '-' and '_'.
// Whitespace becomes '_', accents are folded, anything else is dropped. Returns "" if nothing is left.
func SanitizeFilename(name string) string {
	// Both separators, whatever the client OS was
	name = name[strings.LastIndexAny(name, `/\`)+1:]
	var sb strings.Builder
	for _, r := range norm.NFKD.String(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '_'):
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune('_')
		}
	}
	result := strings.TrimLeft(sb.String(), "._")
	for strings.Contains(result, "..") {
		result = strings.ReplaceAll(result, "..", ".")
	}
	if len(result) > maxNameLength {
		ext := path.Ext(result)
		if len(ext) > 10 {
			ext = ""
		}
		result = result[:maxNameLength-len(ext)] + ext
	}
	return result
}

// MediaPath returns the storage path for a sanitized file name of the given kind
func MediaPath(kind MediaKind, name string) string {
	return path.Join(uploadsDir, string(kind), name)
}

// ThumbPath returns where the thumbnail of a stored media path lives
func ThumbPath(mediaPath string) string {
	dir, name := path.Split(mediaPath)
	return path.Join(dir, thumbsDir, strings.TrimSuffix(name, path.Ext(name))+".jpg")
}

// withSuffix inserts a short random segment before the extension
func withSuffix(name string) string {
	ext := path.Ext(name)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:uniqueIDLength]
	return strings.TrimSuffix(name, ext) + "_" + suffix + ext
}

// uniquePath picks a path whose file and thumbnail are both free. Another upload can still
// take it before we write, saveMedia catches that.
func uniquePath(s StorageAPI, kind MediaKind, name string) string {
	p := MediaPath(kind, name)
	for s.Exists(p) || s.Exists(ThumbPath(p)) {
		p = MediaPath(kind, withSuffix(name))
	}
	return p
}

// saveMedia writes a file and its thumbnail, removing the file again if the thumbnail fails
func saveMedia(s StorageAPI, mediaPath string, data, thumb []byte, mimeType string) error {
	if _, err := s.Save(mediaPath, bytes.NewReader(data), mimeType); err != nil {
		return fmt.Errorf("save %s: %w", mediaPath, err)
	}
	if _, err := s.Save(ThumbPath(mediaPath), bytes.NewReader(thumb), "image/jpeg"); err != nil {
		_ = s.Delete(mediaPath)
		return fmt.Errorf("save thumbnail of %s: %w", mediaPath, err)
	}
	return nil
}

// StoreUpload validates an uploaded image, saves it with a thumbnail and returns its path
// relative to the public root
func StoreUpload(s StorageAPI, file *multipart.FileHeader, kind MediaKind, maxBytes int64) (string, error) {
	if file == nil {
		return "", fmt.Errorf("%w: no file", ErrNotAnImage)
	}
	if file.Size > maxBytes {
		return "", ErrTooLarge
	}
	reader, err := file.Open()
	if err != nil {
		return "", err
	}
	defer reader.Close()
	return StoreMedia(s, file.Filename, reader, kind, maxBytes)
}

// StoreMedia is StoreUpload for any reader
func StoreMedia(s StorageAPI, filename string, reader io.Reader, kind MediaKind, maxBytes int64) (string, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(reader, maxBytes+1))
	if err != nil {
		return "", err
	}
	if n > maxBytes {
		return "", ErrTooLarge
	}
	if uint64(n) > s.GetFreeSpace() {
		return "", ErrNoSpace
	}
	mimeType := http.DetectContentType(buf.Bytes())
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, mimeType)
	}
	var thumb bytes.Buffer
	if _, err = utils.CreateThumb(thumbSize, bytes.NewReader(buf.Bytes()), &thumb); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	name := SanitizeFilename(filename)
	if path.Ext(name) == "" || strings.TrimSuffix(name, path.Ext(name)) == "" {
		name = uuid.NewString() + extensionFor(mimeType)
	}
	mediaPath := uniquePath(s, kind, name)
	for attempt := 1; ; attempt++ {
		err = saveMedia(s, mediaPath, buf.Bytes(), thumb.Bytes(), mimeType)
		if err == nil {
			return mediaPath, nil
		}
		// Lost the race for this name to a concurrent upload
		if !errors.Is(err, os.ErrExist) || attempt == maxSaveAttempts {
			return "", err
		}
		mediaPath = uniquePath(s, kind, withSuffix(name))
	}
}

// DeleteMedia removes a stored file and its thumbnail
func DeleteMedia(s StorageAPI, mediaPath string) error {
	if mediaPath == "" {
		return nil
	}
	return errors.Join(s.Delete(mediaPath), s.Delete(ThumbPath(mediaPath)))
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ".jpg"
}
