package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"

	"github.com/opsvix-api/config"
	"github.com/opsvix-api/database/dbtest"
	"github.com/opsvix-api/lib/analytics"
	"github.com/opsvix-api/lib/storage/storagetest"
	"github.com/opsvix-api/models"
	"github.com/opsvix-api/repositories"
	"github.com/opsvix-api/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testAuth = config.AuthConfig{
	AdminEmail:    "admin@opsvix.test",
	AdminPassword: "hunter2",
	JWTSecret:     "router-test-secret",
	TokenTTL:      time.Hour,
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	store  *storagetest.Fake
	auth   *services.AuthService
	token  string
}

func newTestAPI(t *testing.T, provider *analytics.Provider) *testAPI {
	t.Helper()
	logger := hclog.NewNullLogger()
	db := dbtest.New(t)
	store := storagetest.New()
	if provider == nil {
		provider = analytics.NewProvider(config.AnalyticsConfig{}, logger)
	}

	auth := services.NewAuthService(testAuth, logger)
	svc := Services{
		Auth:        auth,
		Enquiries:   services.NewEnquiryService(repositories.NewEnquiryRepository(db), logger),
		Projects:    services.NewProjectService(repositories.NewProjectRepository(db), store, logger),
		Testimonies: services.NewTestimonyService(repositories.NewTestimonyRepository(db), store, logger),
		Analytics:   services.NewAnalyticsService(provider, logger),
	}
	router := NewRouter(RouterConfig{
		AllowedOrigins: []string{"http://localhost:3000", ""},
		ExposeErrors:   true,
	}, svc, logger)

	token, _, err := auth.IssueToken(testAuth.AdminEmail, models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	return &testAPI{t: t, router: router, db: db, store: store, auth: auth, token: token}
}

func (a *testAPI) do(method, path string, body io.Reader, contentType, token string) (*httptest.ResponseRecorder, gjson.Result) {
	a.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec, gjson.Parse(rec.Body.String())
}

func (a *testAPI) json(method, path string, payload interface{}, token string) (*httptest.ResponseRecorder, gjson.Result) {
	a.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(a.t, err)
		body = bytes.NewReader(raw)
	}
	return a.do(method, path, body, "application/json", token)
}

func (a *testAPI) admin(method, path string, payload interface{}) (*httptest.ResponseRecorder, gjson.Result) {
	return a.json(method, path, payload, a.token)
}

type part struct {
	field, filename, value string
}

func multipartBody(t *testing.T, parts ...part) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		if p.filename == "" {
			require.NoError(t, w.WriteField(p.field, p.value))
			continue
		}
		fw, err := w.CreateFormFile(p.field, p.filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(p.value))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (a *testAPI) count(model interface{}) int64 {
	a.t.Helper()
	var n int64
	require.NoError(a.t, a.db.Model(model).Count(&n).Error)
	return n
}

func TestHealthAndNotFound(t *testing.T) {
	api := newTestAPI(t, nil)

	rec, body := api.json(http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, body.Get("success").Bool())
	require.NotEmpty(t, body.Get("timestamp").String())
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec, body = api.json(http.MethodGet, "/api/nope", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Route not found", body.Get("message").String())
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	api := newTestAPI(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t, nil)

	rec, body := api.json(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "admin@opsvix.test", "password": "hunter2",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, body.Get("success").Bool())
	require.Equal(t, "admin@opsvix.test", body.Get("admin.email").String())
	require.Equal(t, "admin", body.Get("admin.role").String())
	token := body.Get("token").String()
	require.NotEmpty(t, token)

	rec, body = api.json(http.MethodGet, "/api/auth/verify", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "admin@opsvix.test", body.Get("admin.email").String())

	rec, body = api.json(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "admin@opsvix.test", "password": "wrong",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, body.Get("success").Bool())
	require.Equal(t, "Invalid credentials", body.Get("message").String())

	rec, body = api.json(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@opsvix.test"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Please provide email and password", body.Get("message").String())

	rec, _ = api.json(http.MethodGet, "/api/auth/verify", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesRejectBadTokens(t *testing.T) {
	api := newTestAPI(t, nil)

	existing := models.Enquiry{Name: "a", Email: "a@b.c", Message: "m"}
	require.NoError(t, api.db.Create(&existing).Error)
	project := models.Project{Title: "Kept", Thumbnail: api.store.Put("projects/kept.png")}
	require.NoError(t, api.db.Create(&project).Error)

	expired, _, err := api.auth.IssueToken(testAuth.AdminEmail, models.RoleAdmin, -time.Minute)
	require.NoError(t, err)
	otherCfg := testAuth
	otherCfg.JWTSecret = "someone-else"
	foreign, _, err := services.NewAuthService(otherCfg, hclog.NewNullLogger()).IssueToken(testAuth.AdminEmail, models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/enquiries"},
		{http.MethodGet, "/api/enquiries/stats"},
		{http.MethodGet, "/api/enquiries/" + existing.ID},
		{http.MethodPatch, "/api/enquiries/" + existing.ID + "/status"},
		{http.MethodDelete, "/api/enquiries/" + existing.ID},
		{http.MethodGet, "/api/projects/all"},
		{http.MethodPost, "/api/projects"},
		{http.MethodPut, "/api/projects/" + project.ID},
		{http.MethodDelete, "/api/projects/" + project.ID},
		{http.MethodDelete, "/api/projects/" + project.ID + "/images/projects%2Fkept.png"},
		{http.MethodPost, "/api/testimonies"},
		{http.MethodPut, "/api/testimonies/x"},
		{http.MethodDelete, "/api/testimonies/x"},
		{http.MethodGet, "/api/analytics/realtime"},
		{http.MethodGet, "/api/analytics/overview"},
		{http.MethodGet, "/api/analytics/daily-trend"},
	}
	payload := map[string]interface{}{"status": "replied", "title": "Hijacked", "name": "n", "content": "c"}

	for _, token := range []string{"", expired, foreign} {
		for _, route := range routes {
			rec, body := api.json(route.method, route.path, payload, token)
			require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
			require.False(t, body.Get("success").Bool())
		}
	}

	var stored models.Enquiry
	require.NoError(t, api.db.First(&stored, "id = ?", existing.ID).Error)
	require.Equal(t, models.EnquiryStatusNew, stored.Status)
	require.Equal(t, int64(1), api.count(&models.Project{}))
	require.Equal(t, int64(0), api.count(&models.Testimony{}))
	require.Empty(t, api.store.Destroyed())
	require.True(t, api.store.Has("projects/kept.png"))
}

func TestEnquiryFlow(t *testing.T) {
	api := newTestAPI(t, nil)

	rec, body := api.json(http.MethodPost, "/api/enquiries", map[string]string{
		"name": "Jane", "email": "jane@example.com", "message": "Hello there",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Enquiry submitted successfully", body.Get("message").String())
	id := body.Get("data.id").String()
	require.NotEmpty(t, id)

	rec, body = api.json(http.MethodPost, "/api/enquiries", map[string]string{"name": "Jane"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Name, email, and message are required", body.Get("message").String())
	require.Equal(t, int64(1), api.count(&models.Enquiry{}))

	rec, body = api.admin(http.MethodGet, "/api/enquiries", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(1), body.Get("count").Int())
	require.Equal(t, "new", body.Get("data.0.status").String())

	rec, body = api.admin(http.MethodGet, "/api/enquiries/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "new", body.Get("data.status").String())

	rec, body = api.admin(http.MethodPatch, "/api/enquiries/"+id+"/status", map[string]string{"status": "archived"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Status must be one of: new, read, replied", body.Get("message").String())

	for i := 0; i < 2; i++ {
		rec, body = api.admin(http.MethodPatch, "/api/enquiries/"+id+"/status", map[string]string{"status": "replied"})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "replied", body.Get("data.status").String())
	}

	rec, body = api.admin(http.MethodGet, "/api/enquiries/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"total":1,"new":0,"read":0,"replied":1}`, body.Get("data").Raw)

	rec, body = api.admin(http.MethodGet, "/api/enquiries?status=new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(0), body.Get("count").Int())
	require.True(t, body.Get("data").IsArray())

	rec, _ = api.admin(http.MethodPatch, "/api/enquiries/missing/status", map[string]string{"status": "read"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = api.admin(http.MethodDelete, "/api/enquiries/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Enquiry deleted", body.Get("message").String())

	rec, body = api.admin(http.MethodDelete, "/api/enquiries/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Enquiry not found", body.Get("message").String())
}
