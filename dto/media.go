package dto

type MediaUploadResponse struct {
	RecipeID string `json:"recipe_id"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}
