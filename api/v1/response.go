package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/lib/analytics"
	"github.com/opsvix-api/lib/storage"
	"github.com/opsvix-api/services"
)

// Error codes let the dashboard tell failures apart without parsing messages
const (
	CodeAnalyticsNotConfigured = "analytics_not_configured"
	CodeAnalyticsQueryFailed   = "analytics_query_failed"
	CodeAssetPurgeFailed       = "asset_purge_failed"
	CodeStorageNotConfigured   = "storage_not_configured"
)

// responder translates service errors into the response envelope
type responder struct {
	logger       hclog.Logger
	exposeErrors bool
}

func (r responder) fail(c *gin.Context, err error) {
	status, body := r.classify(err)
	if status >= http.StatusInternalServerError {
		r.logger.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

func (r responder) classify(err error) (int, dto.Response) {
	var (
		validation *services.ValidationError
		notFound   *services.NotFoundError
		purge      *services.AssetPurgeError
		query      *analytics.QueryError
		tooLarge   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, dto.Fail(validation.Message)
	case errors.As(err, &notFound):
		return http.StatusNotFound, dto.Fail(notFound.Error())
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized, dto.Fail(err.Error())
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, dto.Fail("Request body too large")
	case errors.As(err, &purge):
		resp := dto.Fail(purge.Error())
		resp.Code = CodeAssetPurgeFailed
		return http.StatusInternalServerError, resp
	case errors.Is(err, analytics.ErrNotConfigured):
		resp := dto.Fail(analytics.ErrNotConfigured.Error())
		resp.Code = CodeAnalyticsNotConfigured
		return http.StatusInternalServerError, resp
	case errors.As(err, &query):
		resp := dto.Fail(query.Error())
		resp.Code = CodeAnalyticsQueryFailed
		return http.StatusInternalServerError, resp
	case errors.Is(err, storage.ErrNotConfigured):
		resp := dto.Fail("Media storage is not configured")
		resp.Code = CodeStorageNotConfigured
		return http.StatusInternalServerError, resp
	}

	msg := "Server error"
	if r.exposeErrors {
		msg = err.Error()
	}
	return http.StatusInternalServerError, dto.Fail(msg)
}

// bindFailed answers a request whose body could not be decoded
func (r responder) bindFailed(c *gin.Context, err error, msg string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		r.fail(c, err)
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.Fail(msg))
}
