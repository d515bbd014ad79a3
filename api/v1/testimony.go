package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/services"
)

// TestimonyController handles testimony endpoints
type TestimonyController struct {
	responder
	testimonyService *services.TestimonyService
}

// NewTestimonyController creates a new testimony controller
func NewTestimonyController(testimonyService *services.TestimonyService, r responder) *TestimonyController {
	return &TestimonyController{responder: r, testimonyService: testimonyService}
}

// RegisterRoutes registers testimony routes; writes are guarded
func (tc *TestimonyController) RegisterRoutes(router *gin.RouterGroup, guard ...gin.HandlerFunc) {
	testimonies := router.Group("/testimonies")
	{
		testimonies.GET("", tc.ListTestimonies)
		testimonies.GET("/:id", tc.GetTestimony)
	}

	admin := router.Group("/testimonies", guard...)
	{
		admin.POST("", tc.CreateTestimony)
		admin.PUT("/:id", tc.UpdateTestimony)
		admin.DELETE("/:id", tc.DeleteTestimony)
	}
}

// ListTestimonies returns testimonies, optionally featured only
func (tc *TestimonyController) ListTestimonies(c *gin.Context) {
	filter := dto.TestimonyFilter{FeaturedOnly: c.Query("featured") == "true"}
	testimonies, err := tc.testimonyService.List(c.Request.Context(), filter)
	if err != nil {
		tc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.List(testimonies, len(testimonies)))
}

// GetTestimony returns a single testimony
func (tc *TestimonyController) GetTestimony(c *gin.Context) {
	testimony, err := tc.testimonyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		tc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(testimony))
}

// CreateTestimony stores a testimony with its optional avatar
func (tc *TestimonyController) CreateTestimony(c *gin.Context) {
	input, avatar, closeFile, ok := tc.readTestimony(c)
	if !ok {
		return
	}
	defer closeFile()

	testimony, err := tc.testimonyService.Create(c.Request.Context(), input, avatar)
	if err != nil {
		tc.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(testimony))
}

// UpdateTestimony applies the submitted fields and avatar
func (tc *TestimonyController) UpdateTestimony(c *gin.Context) {
	input, avatar, closeFile, ok := tc.readTestimony(c)
	if !ok {
		return
	}
	defer closeFile()

	testimony, err := tc.testimonyService.Update(c.Request.Context(), c.Param("id"), input, avatar)
	if err != nil {
		tc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(testimony))
}

// DeleteTestimony purges the avatar and removes the testimony
func (tc *TestimonyController) DeleteTestimony(c *gin.Context) {
	if err := tc.testimonyService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		tc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Message("Testimony deleted"))
}

func (tc *TestimonyController) readTestimony(c *gin.Context) (dto.TestimonyInput, *dto.FileUpload, func(), bool) {
	var input dto.TestimonyInput
	if err := bindInput(c, &input); err != nil {
		tc.bindFailed(c, err, "Invalid testimony data")
		return input, nil, nil, false
	}

	avatar, closeFile, err := singleFile(c, "avatar")
	if err != nil {
		tc.fail(c, err)
		return input, nil, nil, false
	}
	return input, avatar, closeFile, true
}
