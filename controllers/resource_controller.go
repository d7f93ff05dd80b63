package controllers

import (
	"io"
	"net/http"
	"strconv"

	"cms-backend/services"
	"cms-backend/utils"

	"github.com/gin-gonic/gin"
)

// ResourceController serves every content table through the registry, for
// the admin console and the read-only public site.
type ResourceController struct {
	Registry *services.Registry
}

func NewResourceController(reg *services.Registry) *ResourceController {
	return &ResourceController{Registry: reg}
}

func parseListQuery(c *gin.Context) (services.ListQuery, bool) {
	q := services.ListQuery{
		Search:  c.Query("search"),
		Filters: c.QueryMap("filter"),
	}
	var err error
	if raw := c.Query("page"); raw != "" {
		if q.Page, err = strconv.Atoi(raw); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "page must be a number")
			return q, false
		}
	}
	if raw := c.Query("page_size"); raw != "" {
		if q.PageSize, err = strconv.Atoi(raw); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "page_size must be a number")
			return q, false
		}
	}
	if raw := c.Query("active_only"); raw != "" {
		if q.ActiveOnly, err = strconv.ParseBool(raw); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "active_only must be a boolean")
			return q, false
		}
	}
	return q, true
}

func (rc *ResourceController) lookup(c *gin.Context) (services.Resource, bool) {
	res, err := rc.Registry.Lookup(c.Param("resource"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return res, true
}

// GET /api/admin/resources
func (rc *ResourceController) Resources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"resources": rc.Registry.Descriptors()})
}

// GET /api/admin/resources/:resource
func (rc *ResourceController) List(c *gin.Context) {
	res, ok := rc.lookup(c)
	if !ok {
		return
	}
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	page, err := res.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/content/:resource returns the active rows in display order.
func (rc *ResourceController) PublicList(c *gin.Context) {
	res, err := rc.Registry.LookupPublic(c.Param("resource"))
	if err != nil {
		respondError(c, err)
		return
	}
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	q.ActiveOnly = true

	page, err := res.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/admin/resources/:resource/:id
func (rc *ResourceController) Get(c *gin.Context) {
	res, ok := rc.lookup(c)
	if !ok {
		return
	}
	item, err := res.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

// POST /api/admin/resources/:resource
func (rc *ResourceController) Create(c *gin.Context) {
	res, ok := rc.lookup(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil || len(body) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "request body required")
		return
	}
	item, err := res.Create(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": item})
}

// PUT|PATCH /api/admin/resources/:resource/:id
func (rc *ResourceController) Update(c *gin.Context) {
	res, ok := rc.lookup(c)
	if !ok {
		return
	}
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	item, err := res.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

// DELETE /api/admin/resources/:resource/:id
func (rc *ResourceController) Delete(c *gin.Context) {
	res, ok := rc.lookup(c)
	if !ok {
		return
	}
	if err := res.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// DELETE /api/admin/resources/:resource?confirm=true empties the table.
func (rc *ResourceController) Clear(c *gin.Context) {
	res, ok := rc.lookup(c)
	if !ok {
		return
	}
	if c.Query("confirm") != "true" {
		utils.JSONError(c, http.StatusBadRequest, "confirm=true required")
		return
	}
	removed, err := res.Clear(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
