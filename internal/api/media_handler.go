package api

import (
	"alcyxob/fitness-admin/internal/media"
	"alcyxob/fitness-admin/internal/service"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// MediaHandler exposes the image pipeline.
type MediaHandler struct {
	mediaService  service.MediaService
	maxUploadSize int64
}

func NewMediaHandler(mediaService service.MediaService, maxUploadSize int64) *MediaHandler {
	return &MediaHandler{mediaService: mediaService, maxUploadSize: maxUploadSize}
}

// UploadResponse is the outcome of every upload. URL is set on success,
// Error otherwise.
type UploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url,omitempty"`
	PublicID string `json:"publicId,omitempty"`
	Error    string `json:"error,omitempty"`
}

type animatedGIFRequest struct {
	FirstImage   string   `json:"firstImage" binding:"required"`
	SecondImage  string   `json:"secondImage" binding:"required"`
	Folder       string   `json:"folder"`
	Tags         []string `json:"tags"`
	PublicID     string   `json:"publicId"`
	FrameDelayMS int      `json:"frameDelayMs" binding:"omitempty,min=10"`
}

// Upload godoc
// @Summary Upload an image
// @Accept multipart/form-data
// @Param file formData file true "Image file"
// @Param folder formData string false "Target folder"
// @Param tags formData string false "Comma separated tags"
// @Router /admin/media/upload [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	if h.maxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	}
	header, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, UploadResponse{Error: fmt.Sprintf("Validation error: %v", err)})
		return
	}
	f, err := header.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, UploadResponse{Error: "Could not read uploaded file"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, UploadResponse{Error: "Could not read uploaded file"})
		return
	}

	asset, err := h.mediaService.UploadImage(c.Request.Context(), service.FileInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, service.UploadOptions{
		Folder:     c.PostForm("folder"),
		Tags:       splitTags(c.PostForm("tags")),
		PublicID:   c.PostForm("publicId"),
		UploadedBy: uploaderID(c),
	})
	if err != nil {
		c.AbortWithStatusJSON(statusFor(err), UploadResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, UploadResponse{Success: true, URL: asset.URL, PublicID: asset.PublicID})
}

// AnimatedGIF assembles two images into a looping GIF and uploads it.
func (h *MediaHandler) AnimatedGIF(c *gin.Context) {
	var req animatedGIFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, UploadResponse{Error: fmt.Sprintf("Validation error: %v", err)})
		return
	}

	asset, err := h.mediaService.UploadAnimatedGIF(c.Request.Context(), req.FirstImage, req.SecondImage, service.GIFOptions{
		UploadOptions: service.UploadOptions{
			Folder:     req.Folder,
			Tags:       req.Tags,
			PublicID:   req.PublicID,
			UploadedBy: uploaderID(c),
		},
		FrameDelay: time.Duration(req.FrameDelayMS) * time.Millisecond,
	})
	if err != nil {
		c.AbortWithStatusJSON(statusFor(err), UploadResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, UploadResponse{Success: true, URL: asset.URL, PublicID: asset.PublicID})
}

// URL builds a delivery URL. ?ref takes a public id or a hosted URL; the
// transformation comes from width, height, crop, quality, format and flags.
func (h *MediaHandler) URL(c *gin.Context) {
	var t media.Transform
	if err := c.ShouldBindQuery(&t); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	url, err := h.mediaService.ImageURL(c.Query("ref"), t)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Delete removes an image. The public id may contain folder slashes, so the
// route uses a catch-all parameter.
func (h *MediaHandler) Delete(c *gin.Context) {
	ref := strings.TrimPrefix(c.Param("publicId"), "/")
	if err := h.mediaService.DeleteImage(c.Request.Context(), ref); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *MediaHandler) List(c *gin.Context) {
	assets, err := h.mediaService.ListAssets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func uploaderID(c *gin.Context) string {
	identity, err := identityFromContext(c)
	if err != nil {
		return ""
	}
	return identity.UID
}
