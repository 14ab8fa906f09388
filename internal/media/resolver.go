package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
)

// ErrNoCandidate means every candidate URL of an image failed to load.
var ErrNoCandidate = errors.New("no candidate url could be loaded")

// Candidate derives one URL to try for a public id.
type Candidate struct {
	Name string
	URL  func(publicID string) string
}

// DefaultCandidates tries the raw delivery URL first, then the auto-format one.
func DefaultCandidates(deliveryBase, cloud string) []Candidate {
	return []Candidate{
		{Name: "raw", URL: func(id string) string {
			return DeliveryURL(deliveryBase, cloud, id, Transform{})
		}},
		{Name: "auto-format", URL: func(id string) string {
			return DeliveryURL(deliveryBase, cloud, id, Transform{Format: "auto"})
		}},
	}
}

// Resolve loads the first candidate for input that succeeds. Candidates are
// tried in order; every attempt is listed in the error when all fail.
func Resolve(ctx context.Context, loader Loader, candidates []Candidate, input string) (image.Image, error) {
	publicID, ok := ExtractPublicID(input)
	if !ok {
		return nil, fmt.Errorf("%w: empty image reference", ErrNoCandidate)
	}

	attempts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		url := c.URL(publicID)
		img, err := loader.Load(ctx, url)
		if err == nil {
			return img, nil
		}
		attempts = append(attempts, fmt.Sprintf("%s %s: %v", c.Name, url, err))
	}
	return nil, fmt.Errorf("%w for %q: %s", ErrNoCandidate, publicID, strings.Join(attempts, "; "))
}
