// Package photos stores photos of doctors uploaded by administrators.
package photos

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	kcf "github.com/daariikk/myhelp-web/pkg/configs/frontend"
)

var (
	// ErrMissing is returned when the photo to be deleted does not exist.
	ErrMissing = errors.New("photos: photo not found")

	// ErrForbidden is returned when the public path points outside of the store.
	ErrForbidden = errors.New("photos: access denied")

	// ErrNotImage is returned when the uploaded content is not an image.
	ErrNotImage = errors.New("photos: not an image")
)

// Store keeps photo files and tells their public path.
type Store interface {
	// Save stores content read from r as name.
	//
	// # Returns
	//
	// - string: public path of the photo, like "/doctors/<name>".
	//
	// - error
	Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error)

	// Delete removes the photo at the public path.
	//
	// It returns ErrForbidden when publicPath is not in this store,
	// and ErrMissing when no photo is there.
	Delete(ctx context.Context, publicPath string) error
}

// sniffLength is how many bytes are read to detect content type.
const sniffLength = 3072

// Sniff detects the type of content in r.
//
// # Returns
//
// - io.Reader: reads the whole content, including the part read to detect type.
//
// - string: the detected MIME type.
//
// - string: file extension for the type, with leading dot.
//
// - error: ErrNotImage when content is not image/*.
func Sniff(r io.Reader) (io.Reader, string, string, error) {
	head := make([]byte, sniffLength)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", "", err
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, "", "", fmt.Errorf("%w: %s", ErrNotImage, mt.String())
	}
	return io.MultiReader(bytes.NewReader(head), r), mt.String(), mt.Extension(), nil
}

// NewName returns a unique file name with the extension.
func NewName(ext string) string {
	return uuid.NewString() + ext
}

// Open creates the Store configured.
func Open(ctx context.Context, conf kcf.PhotosConfig) (Store, error) {
	switch conf.Driver {
	case kcf.PhotoDriverS3:
		return NewS3(ctx, conf)
	case kcf.PhotoDriverLocal, "":
		return NewLocal(conf.PublicDir, conf.URLPrefix)
	default:
		return nil, fmt.Errorf("photos: unknown driver: %s", conf.Driver)
	}
}
