package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/halvard/skald/internal/poststore"
)

// LoginRequest is the request body for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate validates the login request.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// TokenResponse is returned after a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	Excerpt         string   `json:"excerpt"`
	FeaturedImage   string   `json:"featured_image"`
	Published       bool     `json:"published"`
	Tags            []string `json:"tags"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
}

// Validate validates the create request.
func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Excerpt, validation.Required),
	)
}

// Draft converts the request into a store draft.
func (r CreatePostRequest) Draft() poststore.Draft {
	return poststore.Draft{
		Title:           r.Title,
		Content:         r.Content,
		Excerpt:         r.Excerpt,
		FeaturedImage:   r.FeaturedImage,
		Published:       r.Published,
		Tags:            r.Tags,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
	}
}

// UpdatePostRequest is the request body for a partial post update.
// Absent fields stay nil and leave the stored value unchanged.
type UpdatePostRequest struct {
	Title           *string   `json:"title"`
	Content         *string   `json:"content"`
	Excerpt         *string   `json:"excerpt"`
	FeaturedImage   *string   `json:"featured_image"`
	Published       *bool     `json:"published"`
	Tags            *[]string `json:"tags"`
	MetaTitle       *string   `json:"meta_title"`
	MetaDescription *string   `json:"meta_description"`
}

// Patch converts the request into a store patch.
func (r UpdatePostRequest) Patch() poststore.Patch {
	return poststore.Patch{
		Title:           r.Title,
		Content:         r.Content,
		Excerpt:         r.Excerpt,
		FeaturedImage:   r.FeaturedImage,
		Published:       r.Published,
		Tags:            r.Tags,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
	}
}

// ImageURLRequest is the request body for registering an external image.
type ImageURLRequest struct {
	ImageURL string `json:"image_url"`
}

// Validate validates the image URL request.
func (r ImageURLRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ImageURL, validation.Required),
	)
}

// UploadResponse is returned after registering an image.
type UploadResponse struct {
	URL string `json:"url"`
}

// TagsResponse wraps the aggregate tag listing.
type TagsResponse struct {
	Tags []string `json:"tags"`
}
