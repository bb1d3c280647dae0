package validate

import (
	"encoding/base64"
	"errors"
	"net/http"
	"regexp"
	"strings"
)

var (
	reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

	ErrNoImage       = errors.New("no image data provided")
	ErrBadImage      = errors.New("image is not valid base64")
	ErrImageTooLarge = errors.New("image too large")
)

// ID validates a simple resource identifier (history entry ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// StripDataURL drops a "data:<mime>;base64," prefix if present.
func StripDataURL(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.IndexByte(s, ','); i >= 0 {
			return s[i+1:]
		}
	}
	return s
}

// ImageBase64 decodes an uploaded image given as base64 (optionally as a data
// URL) and enforces maxBytes on the decoded size. maxBytes <= 0 disables the
// limit.
func ImageBase64(s string, maxBytes int) ([]byte, error) {
	s = StripDataURL(s)
	if s == "" {
		return nil, ErrNoImage
	}
	if maxBytes > 0 && base64.StdEncoding.DecodedLen(len(s)) > maxBytes+3 {
		return nil, ErrImageTooLarge
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// browsers occasionally drop padding
		b, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
		if err != nil {
			return nil, ErrBadImage
		}
	}
	if len(b) == 0 {
		return nil, ErrNoImage
	}
	if maxBytes > 0 && len(b) > maxBytes {
		return nil, ErrImageTooLarge
	}
	return b, nil
}

// DataURL renders image bytes as a data URL for the hand-off slot and for
// inline display.
func DataURL(b []byte) string {
	return "data:" + http.DetectContentType(b) + ";base64," + base64.StdEncoding.EncodeToString(b)
}

// IsImage reports whether the sniffed content type is an image.
func IsImage(b []byte) bool {
	return strings.HasPrefix(http.DetectContentType(b), "image/")
}
