package domain

import (
	"time"
)

const MediaAssetCollection = "mediaAssets"

// MediaAsset stores metadata about an image pushed to the image host.
// The bytes themselves live on the host; only the address is kept here.
type MediaAsset struct {
	ID          string    `json:"id"`
	PublicID    string    `json:"publicId"`
	URL         string    `json:"url"`
	Folder      string    `json:"folder"`
	Tags        []string  `json:"tags"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedBy  string    `json:"uploadedBy"` // uid of the admin
	UploadedAt  time.Time `json:"uploadedAt"`
}

func MediaAssetFromDocument(id string, doc Document) MediaAsset {
	return MediaAsset{
		ID:          id,
		PublicID:    doc.String("publicId"),
		URL:         doc.String("url"),
		Folder:      doc.String("folder"),
		Tags:        doc.Strings("tags"),
		ContentType: doc.String("contentType"),
		Size:        int64(doc.Int("size")),
		UploadedBy:  doc.String("uploadedBy"),
		UploadedAt:  doc.Time("uploadedAt"),
	}
}

func (m MediaAsset) ToDocument() Document {
	return Document{
		"publicId":    m.PublicID,
		"url":         m.URL,
		"folder":      m.Folder,
		"tags":        stringsOrEmpty(m.Tags),
		"contentType": m.ContentType,
		"size":        m.Size,
		"uploadedBy":  m.UploadedBy,
		"uploadedAt":  createdOrNow(m.UploadedAt),
	}
}
