package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryURL_TokenOrder(t *testing.T) {
	url := DeliveryURL("https://res.example.com", "demo", "id", Transform{Crop: "fill", Height: 50, Width: 100})
	assert.Contains(t, url, "w_100,h_50,c_fill/id")
	assert.Equal(t, "https://res.example.com/demo/image/upload/w_100,h_50,c_fill/id", url)
}

func TestDeliveryURL_AllTokens(t *testing.T) {
	tr := Transform{Flags: "progressive", Format: "webp", Quality: "auto", Crop: "thumb", Height: 2, Width: 1}
	assert.Equal(t, "w_1,h_2,c_thumb,q_auto,f_webp,fl_progressive", tr.Segment())
}

func TestDeliveryURL_NoTransformAndLeadingSlash(t *testing.T) {
	assert.Equal(t, "https://res.example.com/demo/image/upload/folder/pic",
		DeliveryURL("https://res.example.com/", "demo", "/folder/pic", Transform{}))
	assert.Equal(t, "https://cdn.example.com/image/upload/pic",
		DeliveryURL("https://cdn.example.com", "", "pic", Transform{}))
}
