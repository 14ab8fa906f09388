package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	_ "golang.org/x/image/webp"
)

// ErrImageLoad wraps every failure to fetch or decode a remote image.
var ErrImageLoad = errors.New("failed to load image")

// maxImageBytes bounds a single remote image.
const maxImageBytes = 20 << 20

// Loader fetches and decodes an image by URL.
type Loader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, url string) (image.Image, error)

func (f LoaderFunc) Load(ctx context.Context, url string) (image.Image, error) {
	return f(ctx, url)
}

// HTTPLoader loads png, jpeg, gif and webp images over HTTP.
type HTTPLoader struct {
	Client *http.Client
}

func NewHTTPLoader(timeout time.Duration) *HTTPLoader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPLoader{Client: &http.Client{Timeout: timeout}}
}

func (l *HTTPLoader) Load(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageLoad, url, err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageLoad, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", ErrImageLoad, url, resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageLoad, url, err)
	}
	return img, nil
}
