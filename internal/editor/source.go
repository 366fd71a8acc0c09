package editor

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Source is an opaque handle to encoded image bytes supplied by the host.
type Source interface {
	Open(ctx context.Context) ([]byte, error)
	String() string
}

// BytesSource serves an in-memory encoded image.
type BytesSource struct {
	Name string
	Data []byte
}

func (b BytesSource) Open(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.Data, nil
}

func (b BytesSource) String() string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("%d bytes", len(b.Data))
}

// FileSource reads an encoded image from disk each time it is opened.
type FileSource string

func (f FileSource) Open(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(string(f))
}

func (f FileSource) String() string { return string(f) }

// DataURISource parses an RFC 2397 data URI such as
// "data:image/png;base64,iVBORw0...".
type DataURISource string

func (d DataURISource) Open(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return parseDataURI(string(d))
}

func (d DataURISource) String() string {
	s := string(d)
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[:i]
	}
	return "data URI"
}

func parseDataURI(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "data:") {
		return nil, errors.New("missing data: scheme")
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return nil, errors.New("data URI has no payload")
	}
	if strings.HasSuffix(header, ";base64") {
		payload = strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
				return -1
			}
			return r
		}, payload)
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// Some producers strip the padding.
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return nil, fmt.Errorf("base64 payload: %w", err)
		}
		return data, nil
	}
	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("percent-encoded payload: %w", err)
	}
	return []byte(data), nil
}

// decodeSource reads and decodes src. Every failure is a *DecodeError.
func decodeSource(ctx context.Context, src Source) (image.Image, error) {
	if src == nil {
		return nil, &DecodeError{Source: "<nil>", Err: errors.New("no source")}
	}
	data, err := src.Open(ctx)
	if err != nil {
		return nil, &DecodeError{Source: src.String(), Err: err}
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, &DecodeError{Source: src.String(), Err: err}
	}
	if kind == filetype.Unknown || kind.MIME.Type != "image" {
		return nil, &DecodeError{Source: src.String(), Err: fmt.Errorf("not an image (detected %q)", kind.MIME.Value)}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Source: src.String(), Err: fmt.Errorf("%s: %w", kind.MIME.Value, err)}
	}
	if img.Bounds().Empty() {
		return nil, &DecodeError{Source: src.String(), Err: errors.New("image has no pixels")}
	}
	return img, nil
}
