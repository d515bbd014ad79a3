package dto

import "io"

// ProjectFilter represents filter criteria for projects
type ProjectFilter struct {
	Category string
	Status   string
	// FeaturedOnly restricts the listing to featured projects
	FeaturedOnly bool
	// AllStatuses skips the published-only default
	AllStatuses bool
}

// ProjectInput carries the writable project fields. Nil pointers mean
// "not submitted" so updates only touch what the client sent.
type ProjectInput struct {
	Title            *string `json:"title" form:"title"`
	Description      *string `json:"description" form:"description"`
	ShortDescription *string `json:"shortDescription" form:"shortDescription"`
	Category         *string `json:"category" form:"category"`
	Technologies     *string `json:"technologies" form:"technologies"`
	LiveURL          *string `json:"liveUrl" form:"liveUrl"`
	GithubURL        *string `json:"githubUrl" form:"githubUrl"`
	Featured         *bool   `json:"featured" form:"featured"`
	Status           *string `json:"status" form:"status"`
	Order            *int    `json:"order" form:"order"`
}

// ProjectUploads holds the files attached to a project write
type ProjectUploads struct {
	Thumbnail *FileUpload
	Images    []FileUpload
}

// FileUpload is an opened multipart file
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
