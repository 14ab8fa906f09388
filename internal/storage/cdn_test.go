package storage

import (
	"alcyxob/fitness-admin/internal/config"
	"alcyxob/fitness-admin/internal/media"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCDN(t *testing.T, handler http.HandlerFunc, preset, apiKey, apiSecret string) *cdnHost {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	host, err := NewCDNHost(config.MediaConfig{
		UploadURL:    srv.URL,
		DeliveryURL:  "https://res.example.com",
		CloudName:    "demo",
		UploadPreset: preset,
		APIKey:       apiKey,
		APISecret:    apiSecret,
		HTTPTimeout:  5 * time.Second,
	})
	require.NoError(t, err)
	return host.(*cdnHost)
}

// formValues parses either a multipart or an urlencoded body.
func formValues(t *testing.T, r *http.Request) map[string]string {
	t.Helper()
	if err := r.ParseMultipartForm(1 << 20); err != nil && err != http.ErrNotMultipart {
		require.NoError(t, err)
	}
	out := map[string]string{}
	for k, v := range r.Form {
		out[k] = v[0]
	}
	return out
}

func TestCDNHost_UploadWithPreset(t *testing.T) {
	var got map[string]string
	var path, fileBody string
	h := newTestCDN(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		got = formValues(t, r)
		if f, _, err := r.FormFile("file"); err == nil {
			b, _ := io.ReadAll(f)
			fileBody = string(b)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"secure_url": "https://res.example.com/demo/image/upload/v1/plans/cover.png",
			"public_id":  "plans/cover",
			"bytes":      4,
			"format":     "png",
		})
	}, "preset-1", "", "")

	res, err := h.Upload(context.Background(), UploadInput{
		Filename: "cover.png",
		Data:     []byte("data"),
		Folder:   "plans",
		Tags:     []string{"a", "b"},
		PublicID: "cover",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://res.example.com/demo/image/upload/v1/plans/cover.png", res.URL)
	assert.Equal(t, "plans/cover", res.PublicID)
	assert.Equal(t, int64(4), res.Bytes)
	assert.Equal(t, "png", res.Format)

	assert.Contains(t, path, "/demo/image/upload")
	assert.Equal(t, "data", fileBody)
	assert.Equal(t, "preset-1", got["upload_preset"])
	assert.Equal(t, "plans", got["folder"])
	assert.Equal(t, "a,b", got["tags"])
	assert.Equal(t, "cover", got["public_id"])
	assert.Empty(t, got["signature"])
}

func TestCDNHost_UploadErrors(t *testing.T) {
	h := newTestCDN(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Upload preset not found"}}`))
	}, "preset-1", "", "")

	_, err := h.Upload(context.Background(), UploadInput{Data: []byte("x")})
	require.ErrorIs(t, err, ErrUploadFailed)

	_, err = h.Upload(context.Background(), UploadInput{})
	require.ErrorIs(t, err, ErrEmptyUpload)
}

func TestCDNHost_DeleteNeedsCredentials(t *testing.T) {
	h := newTestCDN(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}, "preset-1", "", "")
	require.ErrorIs(t, h.Delete(context.Background(), "x"), ErrDeleteUnsupported)
}

func TestCDNHost_DeleteIsSigned(t *testing.T) {
	var form map[string]string
	var path string
	h := newTestCDN(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		form = formValues(t, r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"ok"}`))
	}, "", "key-1", "secret-1")

	require.NoError(t, h.Delete(context.Background(), "plans/cover"))
	assert.Contains(t, path, "/demo/image/destroy")
	assert.Equal(t, "plans/cover", form["public_id"])
	assert.Equal(t, "key-1", form["api_key"])
	assert.NotEmpty(t, form["timestamp"])
	assert.NotEmpty(t, form["signature"])
}

func TestCDNHost_DeleteReportsHostResult(t *testing.T) {
	h := newTestCDN(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"error"}`))
	}, "", "key-1", "secret-1")

	require.ErrorIs(t, h.Delete(context.Background(), "plans/cover"), ErrDeleteFailed)
}

func TestCDNHost_URLAndCandidates(t *testing.T) {
	h := newTestCDN(t, func(http.ResponseWriter, *http.Request) {}, "preset-1", "", "")
	assert.Equal(t, "https://res.example.com/demo/image/upload/w_100,h_50,c_fill/id",
		h.URL("id", media.Transform{Width: 100, Height: 50, Crop: "fill"}))

	c := h.Candidates()
	require.Len(t, c, 2)
	assert.Equal(t, "https://res.example.com/demo/image/upload/id", c[0].URL("id"))
	assert.Equal(t, "https://res.example.com/demo/image/upload/f_auto/id", c[1].URL("id"))
}

func TestNewCDNHost_Validation(t *testing.T) {
	_, err := NewCDNHost(config.MediaConfig{UploadPreset: "p"})
	require.Error(t, err)
	_, err = NewCDNHost(config.MediaConfig{CloudName: "demo"})
	require.Error(t, err)
}
