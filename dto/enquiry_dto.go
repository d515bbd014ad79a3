package dto

// CreateEnquiryRequest is the public contact form payload
type CreateEnquiryRequest struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required"`
	Phone   string `json:"phone" form:"phone"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message" binding:"required"`
}

// UpdateEnquiryStatusRequest carries the new review status
type UpdateEnquiryStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new read replied"`
}

// EnquiryCreatedResponse is returned to the contact form
type EnquiryCreatedResponse struct {
	ID string `json:"id"`
}

// EnquiryStats counts enquiries per status
type EnquiryStats struct {
	Total   int64 `json:"total"`
	New     int64 `json:"new"`
	Read    int64 `json:"read"`
	Replied int64 `json:"replied"`
}
