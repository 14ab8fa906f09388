// Package media addresses hosted images and assembles animated GIFs from them.
package media

import (
	"path"
	"regexp"
	"strings"
)

const uploadMarker = "/upload/"

var versionSegment = regexp.MustCompile(`^v\d+$`)

// transformSegment matches any comma-joined list of transformation tokens,
// e.g. "w_100,c_fill". It is trusted only in front of a version segment.
var transformSegment = regexp.MustCompile(`^` + transformToken + `(,` + transformToken + `)*$`)

const transformToken = `(w|h|c|q|f|fl|g|x|y|r|e|a|o|b|t|l|ar|dpr|z|d)_[^/,]+`

// deliverySegment matches the tokens Transform.Segment emits with their value
// shapes. Without a version it is the only segment skipped, so folders such as
// "e_commerce" or "b_roll" stay part of the id.
var deliverySegment = regexp.MustCompile(`^` + deliveryToken + `(,` + deliveryToken + `)*$`)

const deliveryToken = `(w_\d+|h_\d+` +
	`|c_(fill|fit|scale|crop|thumb|pad|limit|lfill|lpad|mfit|mpad|fill_pad)` +
	`|q_(auto(:[a-z]+)?|\d+)` +
	`|f_(auto|jpg|jpeg|png|gif|webp|avif)` +
	`|fl_(progressive|lossy|attachment|animated|awebp|preserve_transparency|strip_profile))`

// ExtractPublicID returns the bare public id of input. input may be a public
// id already or a full delivery URL. Empty input yields ("", false); input
// without the upload marker is returned unchanged.
func ExtractPublicID(input string) (string, bool) {
	if input == "" {
		return "", false
	}
	i := strings.Index(input, uploadMarker)
	if i < 0 {
		return input, true
	}

	rest := input[i+len(uploadMarker):]
	if q := strings.IndexAny(rest, "?#"); q >= 0 {
		rest = rest[:q]
	}

	segments := strings.Split(rest, "/")
	// A version only ever follows the transformation, so skip them in order.
	if len(segments) > 2 && transformSegment.MatchString(segments[0]) && versionSegment.MatchString(segments[1]) {
		segments = segments[1:]
	} else if len(segments) > 1 && deliverySegment.MatchString(segments[0]) {
		segments = segments[1:]
	}
	if len(segments) > 1 && versionSegment.MatchString(segments[0]) {
		segments = segments[1:]
	}

	id := strings.Join(segments, "/")
	if ext := path.Ext(id); ext != "" {
		id = strings.TrimSuffix(id, ext)
	}
	if id == "" {
		return "", false
	}
	return id, true
}
