package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"log"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// DefaultFrameDelay is the time each frame of an animated GIF is shown.
const DefaultFrameDelay = 500 * time.Millisecond

// ErrNoFrames is returned by Build and EncodeGIF when there is nothing to encode.
var ErrNoFrames = errors.New("animated gif needs at least one frame")

// Assembler turns image references into a looping animated GIF.
type Assembler struct {
	Loader     Loader
	Candidates []Candidate
}

// Build loads every input and encodes them as frames in order. Inputs are
// first loaded as given; only if that fails is each one resolved through the
// candidates. Running out of candidates for any input is terminal.
func (a *Assembler) Build(ctx context.Context, inputs []string, delay time.Duration) ([]byte, error) {
	if len(inputs) == 0 {
		return nil, ErrNoFrames
	}
	frames, err := a.loadDirect(ctx, inputs)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("WARN: Direct image load failed, trying candidate urls: %v", err)
		frames, err = a.loadCandidates(ctx, inputs)
		if err != nil {
			return nil, err
		}
	}
	return EncodeGIF(frames, delay)
}

func (a *Assembler) loadDirect(ctx context.Context, inputs []string) ([]image.Image, error) {
	frames := make([]image.Image, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			img, err := a.Loader.Load(gctx, in)
			if err != nil {
				return err
			}
			frames[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

func (a *Assembler) loadCandidates(ctx context.Context, inputs []string) ([]image.Image, error) {
	frames := make([]image.Image, len(inputs))
	// No shared cancellation: every input exhausts its own candidates.
	var g errgroup.Group
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			img, err := Resolve(ctx, a.Loader, a.Candidates, in)
			if err != nil {
				return fmt.Errorf("image %d: %w", i+1, err)
			}
			frames[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

// EncodeGIF draws every frame scaled onto a white canvas the size of the
// first frame and encodes an infinitely looping GIF.
func EncodeGIF(frames []image.Image, delay time.Duration) ([]byte, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if delay <= 0 {
		delay = DefaultFrameDelay
	}
	first := frames[0].Bounds()
	canvas := image.Rect(0, 0, first.Dx(), first.Dy())
	if canvas.Empty() {
		return nil, fmt.Errorf("%w: first frame has no area", ErrImageLoad)
	}

	pal := color.Palette(palette.Plan9)
	anim := &gif.GIF{
		Config:          image.Config{ColorModel: pal, Width: canvas.Dx(), Height: canvas.Dy()},
		LoopCount:       0,
		BackgroundIndex: uint8(pal.Index(color.White)),
	}
	centis := int(delay / (10 * time.Millisecond))

	for _, frame := range frames {
		rgba := image.NewRGBA(canvas)
		draw.Draw(rgba, canvas, image.White, image.Point{}, draw.Src)
		draw.ApproxBiLinear.Scale(rgba, canvas, frame, frame.Bounds(), draw.Over, nil)

		paletted := image.NewPaletted(canvas, pal)
		draw.FloydSteinberg.Draw(paletted, canvas, rgba, image.Point{})

		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, centis)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, fmt.Errorf("encode gif: %w", err)
	}
	return buf.Bytes(), nil
}
