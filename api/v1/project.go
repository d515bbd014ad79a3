package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/services"
)

// ProjectController handles portfolio project endpoints
type ProjectController struct {
	responder
	projectService *services.ProjectService
}

// NewProjectController creates a new project controller
func NewProjectController(projectService *services.ProjectService, r responder) *ProjectController {
	return &ProjectController{responder: r, projectService: projectService}
}

// RegisterRoutes registers project routes; writes and /all are guarded
func (pc *ProjectController) RegisterRoutes(router *gin.RouterGroup, guard ...gin.HandlerFunc) {
	projects := router.Group("/projects")
	{
		projects.GET("", pc.ListProjects)
		projects.GET("/:id", pc.GetProject)
	}

	admin := router.Group("/projects", guard...)
	{
		admin.GET("/all", pc.ListAllProjects)
		admin.POST("", pc.CreateProject)
		admin.PUT("/:id", pc.UpdateProject)
		admin.DELETE("/:id", pc.DeleteProject)
		admin.DELETE("/:id/images/:assetId", pc.RemoveImage)
	}
}

// ListProjects returns published projects unless a status is requested
func (pc *ProjectController) ListProjects(c *gin.Context) {
	pc.list(c, projectFilter(c))
}

// ListAllProjects returns projects of every status
func (pc *ProjectController) ListAllProjects(c *gin.Context) {
	filter := projectFilter(c)
	filter.AllStatuses = true
	pc.list(c, filter)
}

func (pc *ProjectController) list(c *gin.Context, filter dto.ProjectFilter) {
	projects, err := pc.projectService.List(c.Request.Context(), filter)
	if err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.List(projects, len(projects)))
}

// GetProject returns a single project
func (pc *ProjectController) GetProject(c *gin.Context) {
	project, err := pc.projectService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(project))
}

// CreateProject stores a project with its uploaded thumbnail and images
func (pc *ProjectController) CreateProject(c *gin.Context) {
	input, uploads, closeFiles, ok := pc.readProject(c)
	if !ok {
		return
	}
	defer closeFiles()

	project, err := pc.projectService.Create(c.Request.Context(), input, uploads)
	if err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(project))
}

// UpdateProject applies the submitted fields and files to a project
func (pc *ProjectController) UpdateProject(c *gin.Context) {
	input, uploads, closeFiles, ok := pc.readProject(c)
	if !ok {
		return
	}
	defer closeFiles()

	project, err := pc.projectService.Update(c.Request.Context(), c.Param("id"), input, uploads)
	if err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(project))
}

// DeleteProject purges the project's assets and removes it
func (pc *ProjectController) DeleteProject(c *gin.Context) {
	if err := pc.projectService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Message("Project deleted"))
}

// RemoveImage purges one gallery image. Asset ids contain slashes, so
// clients send them percent-encoded.
func (pc *ProjectController) RemoveImage(c *gin.Context) {
	project, err := pc.projectService.RemoveImage(c.Request.Context(), c.Param("id"), c.Param("assetId"))
	if err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(project))
}

func (pc *ProjectController) readProject(c *gin.Context) (dto.ProjectInput, dto.ProjectUploads, func(), bool) {
	var (
		input   dto.ProjectInput
		uploads dto.ProjectUploads
	)
	if err := bindInput(c, &input); err != nil {
		pc.bindFailed(c, err, "Invalid project data")
		return input, uploads, nil, false
	}

	thumbnail, closeThumb, err := singleFile(c, "thumbnail")
	if err != nil {
		pc.fail(c, err)
		return input, uploads, nil, false
	}
	images, closeImages, err := multipartFiles(c, "images", services.MaxProjectImages)
	if err != nil {
		closeThumb()
		pc.fail(c, err)
		return input, uploads, nil, false
	}

	uploads.Thumbnail = thumbnail
	uploads.Images = images
	return input, uploads, func() {
		closeThumb()
		closeImages()
	}, true
}

func projectFilter(c *gin.Context) dto.ProjectFilter {
	return dto.ProjectFilter{
		Category:     c.Query("category"),
		Status:       c.Query("status"),
		FeaturedOnly: c.Query("featured") == "true",
	}
}
