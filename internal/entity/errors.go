package entity

import "errors"

var (
	// Upload errors
	ErrDecode         = errors.New("image decode failed")
	ErrTransform      = errors.New("image transform failed")
	ErrEmptyUpload    = errors.New("empty upload body")
	ErrUploadTooLarge = errors.New("upload body too large")
	ErrImageTooLarge  = errors.New("image dimensions too large")
	ErrIDCollision    = errors.New("image id already in use")

	// Retrieval errors
	ErrInvalidID     = errors.New("invalid image identifier")
	ErrImageNotFound = errors.New("image not found")

	// Template errors
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateCompile  = errors.New("template compile failed")
)
