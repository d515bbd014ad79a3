package dto

// TestimonyFilter represents filter criteria for testimonies
type TestimonyFilter struct {
	FeaturedOnly bool
}

// TestimonyInput carries the writable testimony fields; nil means not submitted
type TestimonyInput struct {
	Name     *string `json:"name" form:"name"`
	Role     *string `json:"role" form:"role"`
	Company  *string `json:"company" form:"company"`
	Content  *string `json:"content" form:"content"`
	Rating   *int    `json:"rating" form:"rating"`
	Featured *bool   `json:"featured" form:"featured"`
	Order    *int    `json:"order" form:"order"`
}
