package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// recordingLoader serves images by URL and records every attempt.
type recordingLoader struct {
	mu       sync.Mutex
	images   map[string]image.Image
	attempts []string
}

func (l *recordingLoader) Load(_ context.Context, url string) (image.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts = append(l.attempts, url)
	if img, ok := l.images[url]; ok {
		return img, nil
	}
	return nil, ErrImageLoad
}

func (l *recordingLoader) tried(url string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range l.attempts {
		if a == url {
			return true
		}
	}
	return false
}

func TestEncodeGIF(t *testing.T) {
	data, err := EncodeGIF([]image.Image{
		solid(40, 30, color.RGBA{R: 255, A: 255}),
		solid(80, 10, color.RGBA{B: 255, A: 255}),
	}, 300*time.Millisecond)
	require.NoError(t, err)

	anim, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, anim.Image, 2)
	assert.Equal(t, []int{30, 30}, anim.Delay)
	assert.Equal(t, 0, anim.LoopCount)
	for _, frame := range anim.Image {
		assert.Equal(t, 40, frame.Bounds().Dx())
		assert.Equal(t, 30, frame.Bounds().Dy())
	}
}

func TestEncodeGIF_DefaultDelayAndNoFrames(t *testing.T) {
	data, err := EncodeGIF([]image.Image{solid(2, 2, color.White)}, 0)
	require.NoError(t, err)
	anim, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []int{50}, anim.Delay)

	_, err = EncodeGIF(nil, 0)
	require.ErrorIs(t, err, ErrNoFrames)
}

func TestAssembler_DirectLoad(t *testing.T) {
	loader := &recordingLoader{images: map[string]image.Image{
		"https://a/1.png": solid(4, 4, color.Black),
		"https://a/2.png": solid(4, 4, color.White),
	}}
	a := &Assembler{Loader: loader, Candidates: DefaultCandidates("https://res", "demo")}

	data, err := a.Build(context.Background(), []string{"https://a/1.png", "https://a/2.png"}, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Len(t, loader.attempts, 2)
}

func TestAssembler_FallsBackToCandidates(t *testing.T) {
	loader := &recordingLoader{images: map[string]image.Image{
		"https://res/demo/image/upload/first":         solid(4, 4, color.Black),
		"https://res/demo/image/upload/f_auto/second": solid(4, 4, color.White),
	}}
	a := &Assembler{Loader: loader, Candidates: DefaultCandidates("https://res", "demo")}

	data, err := a.Build(context.Background(), []string{"first", "https://old/upload/v3/second.jpg"}, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.True(t, loader.tried("https://res/demo/image/upload/second"))
	assert.True(t, loader.tried("https://res/demo/image/upload/f_auto/second"))
}

func TestAssembler_TriesEveryCandidateBeforeFailing(t *testing.T) {
	loader := &recordingLoader{images: map[string]image.Image{}}
	a := &Assembler{Loader: loader, Candidates: DefaultCandidates("https://res", "demo")}

	_, err := a.Build(context.Background(), []string{"a", "b"}, 0)
	require.ErrorIs(t, err, ErrNoCandidate)

	for _, id := range []string{"a", "b"} {
		assert.True(t, loader.tried("https://res/demo/image/upload/"+id), id)
		assert.True(t, loader.tried("https://res/demo/image/upload/f_auto/"+id), id)
	}
}

func TestResolve_FirstSuccessWins(t *testing.T) {
	calls := 0
	loader := LoaderFunc(func(_ context.Context, url string) (image.Image, error) {
		calls++
		return solid(1, 1, color.White), nil
	})
	img, err := Resolve(context.Background(), loader, DefaultCandidates("https://res", "demo"), "x")
	require.NoError(t, err)
	assert.NotNil(t, img)
	assert.Equal(t, 1, calls)

	_, err = Resolve(context.Background(), loader, nil, "")
	require.ErrorIs(t, err, ErrNoCandidate)
}

func TestHTTPLoader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/ok.png"):
			w.Header().Set("Content-Type", "image/png")
			_ = png.Encode(w, solid(3, 2, color.Black))
		case strings.HasSuffix(r.URL.Path, "/text"):
			_, _ = w.Write([]byte("not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	loader := NewHTTPLoader(time.Second)
	img, err := loader.Load(context.Background(), srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	_, err = loader.Load(context.Background(), srv.URL+"/missing.png")
	assert.True(t, errors.Is(err, ErrImageLoad))

	_, err = loader.Load(context.Background(), srv.URL+"/text")
	assert.True(t, errors.Is(err, ErrImageLoad))
}
