package entity

import "time"

const ContentTypeJPEG = "image/jpeg"

// StoredImage is an encoded image payload kept by the image store.
// Neither field changes after creation.
type StoredImage struct {
	ContentType string
	Data        []byte
}

type UploadResponse struct {
	Src string `json:"src"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Images  int    `json:"images"`
}

// ImageStoredEvent is published after an upload has been stored.
type ImageStoredEvent struct {
	ImageID     string    `json:"image_id"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	Src         string    `json:"src"`
	CreatedAt   time.Time `json:"created_at"`
}
