package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/services"
)

// EnquiryController handles contact enquiry endpoints
type EnquiryController struct {
	responder
	enquiryService *services.EnquiryService
}

// NewEnquiryController creates a new enquiry controller
func NewEnquiryController(enquiryService *services.EnquiryService, r responder) *EnquiryController {
	return &EnquiryController{responder: r, enquiryService: enquiryService}
}

// RegisterRoutes registers enquiry routes; everything but create is guarded
func (ec *EnquiryController) RegisterRoutes(router *gin.RouterGroup, guard ...gin.HandlerFunc) {
	enquiries := router.Group("/enquiries")
	{
		enquiries.POST("", ec.CreateEnquiry)
	}

	admin := router.Group("/enquiries", guard...)
	{
		admin.GET("", ec.ListEnquiries)
		admin.GET("/stats", ec.GetStats)
		admin.GET("/:id", ec.GetEnquiry)
		admin.PATCH("/:id/status", ec.UpdateStatus)
		admin.DELETE("/:id", ec.DeleteEnquiry)
	}
}

// CreateEnquiry stores a contact form submission
func (ec *EnquiryController) CreateEnquiry(c *gin.Context) {
	var req dto.CreateEnquiryRequest
	if err := c.ShouldBind(&req); err != nil {
		ec.bindFailed(c, err, "Name, email, and message are required")
		return
	}

	enquiry, err := ec.enquiryService.Create(c.Request.Context(), req)
	if err != nil {
		ec.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Message: "Enquiry submitted successfully",
		Data:    dto.EnquiryCreatedResponse{ID: enquiry.ID},
	})
}

// ListEnquiries returns enquiries newest first, optionally filtered by status
func (ec *EnquiryController) ListEnquiries(c *gin.Context) {
	enquiries, err := ec.enquiryService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		ec.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.List(enquiries, len(enquiries)))
}

// GetStats returns the enquiry count per status
func (ec *EnquiryController) GetStats(c *gin.Context) {
	stats, err := ec.enquiryService.Stats(c.Request.Context())
	if err != nil {
		ec.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(stats))
}

// GetEnquiry returns a single enquiry without marking it read
func (ec *EnquiryController) GetEnquiry(c *gin.Context) {
	enquiry, err := ec.enquiryService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ec.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(enquiry))
}

// UpdateStatus moves an enquiry to another status
func (ec *EnquiryController) UpdateStatus(c *gin.Context) {
	var req dto.UpdateEnquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ec.bindFailed(c, err, services.InvalidStatusMessage())
		return
	}

	enquiry, err := ec.enquiryService.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		ec.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(enquiry))
}

// DeleteEnquiry removes an enquiry
func (ec *EnquiryController) DeleteEnquiry(c *gin.Context) {
	if err := ec.enquiryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ec.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Message("Enquiry deleted"))
}
