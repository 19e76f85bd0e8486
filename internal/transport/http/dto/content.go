package dto

import (
	"nonprofit_cms/internal/domain/models"
)

// PageContentResponse is the body of GET /api/content/:pageName.
type PageContentResponse struct {
	Content models.PageDocument `json:"content"`
}

type UploadImageResponse struct {
	ImagePath string `json:"imagePath"`
}
