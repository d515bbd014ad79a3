package v1

import (
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/services"
)

func isMultipart(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEMultipartPOSTForm
}

// bindInput decodes the writable fields from a multipart form or a JSON body.
// An empty body leaves obj untouched.
func bindInput(c *gin.Context, obj interface{}) error {
	if isMultipart(c) {
		return c.ShouldBindWith(obj, binding.FormMultipart)
	}
	if c.Request.ContentLength == 0 {
		return nil
	}
	if strings.HasPrefix(c.ContentType(), "application/x-www-form-urlencoded") {
		return c.ShouldBindWith(obj, binding.Form)
	}
	return c.ShouldBindJSON(obj)
}

// multipartFiles opens up to max files of a form field. The returned close
// function must be called once the files have been consumed.
func multipartFiles(c *gin.Context, field string, max int) ([]dto.FileUpload, func(), error) {
	noop := func() {}
	if !isMultipart(c) {
		return nil, noop, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, noop, err
	}
	headers := form.File[field]
	if len(headers) > max {
		return nil, noop, &services.ValidationError{Message: "Too many files in field " + field}
	}

	opened := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	uploads := make([]dto.FileUpload, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			closeAll()
			return nil, noop, err
		}
		opened = append(opened, f)
		uploads = append(uploads, dto.FileUpload{
			Filename:    h.Filename,
			ContentType: h.Header.Get("Content-Type"),
			Size:        h.Size,
			Body:        f,
		})
	}
	return uploads, closeAll, nil
}

// singleFile is multipartFiles for fields taking at most one file
func singleFile(c *gin.Context, field string) (*dto.FileUpload, func(), error) {
	files, closeFn, err := multipartFiles(c, field, 1)
	if err != nil || len(files) == 0 {
		return nil, closeFn, err
	}
	return &files[0], closeFn, nil
}
