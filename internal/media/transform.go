package media

import (
	"strconv"
	"strings"
)

// Transform holds the delivery-time transformations of an image URL. Zero
// fields are left out.
type Transform struct {
	Width   int    `json:"width,omitempty" form:"width"`
	Height  int    `json:"height,omitempty" form:"height"`
	Crop    string `json:"crop,omitempty" form:"crop"`
	Quality string `json:"quality,omitempty" form:"quality"`
	Format  string `json:"format,omitempty" form:"format"`
	Flags   string `json:"flags,omitempty" form:"flags"`
}

// Segment returns the tokens in w, h, c, q, f, fl order joined by commas.
func (t Transform) Segment() string {
	var tokens []string
	if t.Width > 0 {
		tokens = append(tokens, "w_"+strconv.Itoa(t.Width))
	}
	if t.Height > 0 {
		tokens = append(tokens, "h_"+strconv.Itoa(t.Height))
	}
	if t.Crop != "" {
		tokens = append(tokens, "c_"+t.Crop)
	}
	if t.Quality != "" {
		tokens = append(tokens, "q_"+t.Quality)
	}
	if t.Format != "" {
		tokens = append(tokens, "f_"+t.Format)
	}
	if t.Flags != "" {
		tokens = append(tokens, "fl_"+t.Flags)
	}
	return strings.Join(tokens, ",")
}

// DeliveryURL builds {base}/{cloud}/image/upload/{segment/}{publicID}.
// cloud may be empty for hosts that serve a single bucket.
func DeliveryURL(base, cloud, publicID string, t Transform) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(base, "/"))
	if cloud != "" {
		b.WriteString("/")
		b.WriteString(cloud)
	}
	b.WriteString("/image/upload/")
	if seg := t.Segment(); seg != "" {
		b.WriteString(seg)
		b.WriteString("/")
	}
	b.WriteString(strings.TrimPrefix(publicID, "/"))
	return b.String()
}
