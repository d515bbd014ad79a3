package v1

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opsvix-api/models"
)

func TestCreateProjectMultipart(t *testing.T) {
	api := newTestAPI(t, nil)

	body, contentType := multipartBody(t,
		part{field: "title", value: "Opsvix Landing"},
		part{field: "technologies", value: "React, Node.js,  MongoDB"},
		part{field: "featured", value: "true"},
		part{field: "order", value: "3"},
		part{field: "thumbnail", filename: "cover.png", value: "png"},
		part{field: "images", filename: "one.jpg", value: "jpg"},
		part{field: "images", filename: "two.webp", value: "webp"},
	)
	rec, resp := api.do(http.MethodPost, "/api/projects", body, contentType, api.token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := resp.Get("data")
	require.Equal(t, "opsvix-landing", data.Get("slug").String())
	require.JSONEq(t, `["React","Node.js","MongoDB"]`, data.Get("technologies").Raw)
	require.True(t, data.Get("featured").Bool())
	require.Equal(t, int64(3), data.Get("order").Int())
	require.Equal(t, "published", data.Get("status").String())
	require.NotEmpty(t, data.Get("thumbnail.url").String())
	require.Len(t, data.Get("images").Array(), 2)
	require.Equal(t, 3, api.store.Stored())
}

func TestCreateProjectRejectsBadUploads(t *testing.T) {
	api := newTestAPI(t, nil)

	body, contentType := multipartBody(t,
		part{field: "title", value: "Bad"},
		part{field: "thumbnail", filename: "cover.exe", value: "x"},
	)
	rec, _ := api.do(http.MethodPost, "/api/projects", body, contentType, api.token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body, contentType = multipartBody(t,
		part{field: "title", value: "Two thumbs"},
		part{field: "thumbnail", filename: "a.png", value: "x"},
		part{field: "thumbnail", filename: "b.png", value: "x"},
	)
	rec, _ = api.do(http.MethodPost, "/api/projects", body, contentType, api.token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	require.Zero(t, api.store.Stored())
	require.Zero(t, api.count(&models.Project{}))
}

func TestPublicProjectListing(t *testing.T) {
	api := newTestAPI(t, nil)
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, p := range []models.Project{
		{Title: "Hidden draft", Status: models.ProjectStatusDraft, CreatedAt: base},
		{Title: "B", Order: 1, CreatedAt: base},
		{Title: "C", Order: 1, CreatedAt: base.Add(time.Hour), Category: "mobile", Featured: true},
		{Title: "A", Order: 0, CreatedAt: base},
	} {
		p := p
		require.NoError(t, api.db.Create(&p).Error)
	}

	rec, body := api.json(http.MethodGet, "/api/projects", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(3), body.Get("count").Int())
	var titles []string
	for _, p := range body.Get("data").Array() {
		require.Equal(t, "published", p.Get("status").String())
		titles = append(titles, p.Get("title").String())
	}
	require.Equal(t, []string{"A", "C", "B"}, titles)

	_, body = api.json(http.MethodGet, "/api/projects?featured=true&category=mobile", nil, "")
	require.Equal(t, int64(1), body.Get("count").Int())
	require.Equal(t, "C", body.Get("data.0.title").String())

	_, body = api.json(http.MethodGet, "/api/projects?status=draft", nil, "")
	require.Equal(t, int64(1), body.Get("count").Int())

	rec, body = api.admin(http.MethodGet, "/api/projects/all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(4), body.Get("count").Int())
}

func TestProjectUpdateAndImageRemoval(t *testing.T) {
	api := newTestAPI(t, nil)

	body, contentType := multipartBody(t,
		part{field: "title", value: "Gallery"},
		part{field: "thumbnail", filename: "old.png", value: "x"},
		part{field: "images", filename: "1.png", value: "x"},
		part{field: "images", filename: "2.png", value: "x"},
	)
	rec, resp := api.do(http.MethodPost, "/api/projects", body, contentType, api.token)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := resp.Get("data.id").String()
	oldThumb := resp.Get("data.thumbnail.publicId").String()
	firstImage := resp.Get("data.images.0.publicId").String()

	body, contentType = multipartBody(t,
		part{field: "thumbnail", filename: "new.png", value: "x"},
		part{field: "images", filename: "3.png", value: "x"},
	)
	rec, resp = api.do(http.MethodPut, "/api/projects/"+id, body, contentType, api.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Gallery", resp.Get("data.title").String())
	require.Len(t, resp.Get("data.images").Array(), 3)
	require.Equal(t, []string{oldThumb}, api.store.Destroyed())

	rec, resp = api.admin(http.MethodPut, "/api/projects/"+id, map[string]interface{}{"status": "draft", "technologies": "Go"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "draft", resp.Get("data.status").String())
	require.JSONEq(t, `["Go"]`, resp.Get("data.technologies").Raw)

	rec, resp = api.admin(http.MethodDelete, "/api/projects/"+id+"/images/"+url.PathEscape(firstImage), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, resp.Get("data.images").Array(), 2)
	require.Contains(t, api.store.Destroyed(), firstImage)

	rec, _ = api.admin(http.MethodDelete, "/api/projects/"+id+"/images/"+url.PathEscape(firstImage), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProjectPurgesAssetsOnce(t *testing.T) {
	api := newTestAPI(t, nil)
	project := models.Project{
		Title:     "Doomed",
		Thumbnail: api.store.Put("projects/t.png"),
		Images:    models.AssetList{api.store.Put("projects/1.png"), api.store.Put("projects/2.png")},
	}
	require.NoError(t, api.db.Create(&project).Error)

	rec, body := api.admin(http.MethodDelete, "/api/projects/"+project.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Project deleted", body.Get("message").String())
	require.ElementsMatch(t, []string{"projects/t.png", "projects/1.png", "projects/2.png"}, api.store.Destroyed())
	require.Zero(t, api.store.Stored())

	rec, _ = api.admin(http.MethodDelete, "/api/projects/"+project.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Len(t, api.store.Destroyed(), 3)
}

func TestDeleteProjectReportsPurgeFailure(t *testing.T) {
	api := newTestAPI(t, nil)
	project := models.Project{Title: "Sticky", Thumbnail: api.store.Put("projects/t.png")}
	require.NoError(t, api.db.Create(&project).Error)
	api.store.FailDestroy["projects/t.png"] = true

	rec, body := api.admin(http.MethodDelete, "/api/projects/"+project.ID, nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, CodeAssetPurgeFailed, body.Get("code").String())
	require.Contains(t, body.Get("message").String(), "projects/t.png")
	require.Equal(t, int64(1), api.count(&models.Project{}))
}

func TestTestimonyEndpoints(t *testing.T) {
	api := newTestAPI(t, nil)

	body, contentType := multipartBody(t,
		part{field: "name", value: "Ana"},
		part{field: "content", value: "Brilliant team"},
		part{field: "featured", value: "true"},
		part{field: "avatar", filename: "ana.jpg", value: "x"},
	)
	rec, resp := api.do(http.MethodPost, "/api/testimonies", body, contentType, api.token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, int64(5), resp.Get("data.rating").Int())
	id := resp.Get("data.id").String()
	avatar := resp.Get("data.avatar.publicId").String()

	rec, resp = api.json(http.MethodGet, "/api/testimonies?featured=true", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(1), resp.Get("count").Int())

	rec, resp = api.admin(http.MethodPut, "/api/testimonies/"+id, map[string]interface{}{"rating": 9})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Rating must be between 1 and 5", resp.Get("message").String())

	rec, _ = api.json(http.MethodGet, "/api/testimonies/"+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = api.admin(http.MethodDelete, "/api/testimonies/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{avatar}, api.store.Destroyed())

	rec, resp = api.json(http.MethodGet, "/api/testimonies/"+id, nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Testimony not found", resp.Get("message").String())
}
