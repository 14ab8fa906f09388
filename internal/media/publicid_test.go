package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPublicID(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"empty", "", "", false},
		{"bare id", "bare-id", "bare-id", true},
		{"bare id with folder", "exercises/squat", "exercises/squat", true},
		{"versioned url", "https://host/cloud/image/upload/v123/folder/name.jpg", "folder/name", true},
		{"unversioned url", "https://host/cloud/image/upload/name.png", "name", true},
		{"transformed url", "https://host/cloud/image/upload/w_100,h_50,c_fill/v99/a/b.webp", "a/b", true},
		{"transformed without version", "https://host/cloud/image/upload/f_auto/plans/cover.jpg", "plans/cover", true},
		{"folder with underscore kept", "https://host/cloud/image/upload/my_folder/pic.jpg", "my_folder/pic", true},
		{"ecommerce folder kept", "https://host/cloud/image/upload/e_commerce/item.jpg", "e_commerce/item", true},
		{"b-roll folder kept", "https://host/cloud/image/upload/b_roll/clip.png", "b_roll/clip", true},
		{"crop-like folder kept", "https://host/cloud/image/upload/c_section/pic.jpg", "c_section/pic", true},
		{"effect before version", "https://host/cloud/image/upload/e_grayscale/v5/pic.jpg", "pic", true},
		{"delivery segment", "https://host/cloud/image/upload/w_320,h_180,c_fill,q_auto:good,f_webp/plans/cover.jpg", "plans/cover", true},
		{"query string dropped", "https://host/cloud/image/upload/v1/pic.jpg?x=1", "pic", true},
		{"non-url text unchanged", "https://example.com/pic.jpg", "https://example.com/pic.jpg", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPublicID(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
