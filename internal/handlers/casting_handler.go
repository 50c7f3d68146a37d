package handlers

import (
	"net/http"

	"castlink_backend/internal/middleware"
	"castlink_backend/internal/models"
	"castlink_backend/internal/services"
	"castlink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CastingHandler struct {
	*BaseHandler
	castingService     services.CastingService
	applicationService services.ApplicationService
}

func NewCastingHandler(base *BaseHandler, castingService services.CastingService, applicationService services.ApplicationService) *CastingHandler {
	return &CastingHandler{
		BaseHandler:        base,
		castingService:     castingService,
		applicationService: applicationService,
	}
}

func (h *CastingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Лента и карточка кастинга публичные, без токена.
	castings := rg.Group("/castings")
	{
		castings.GET("", h.Search)
		castings.GET("/:id", h.Get)
	}

	protected := rg.Group("/castings")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/:id/applications", h.ListApplications)

		directorOnly := protected.Group("")
		directorOnly.Use(middleware.RequireRoles(models.UserRoleDirector))
		{
			directorOnly.POST("", h.Create)
			directorOnly.PUT("/:id", h.Update)
			directorOnly.DELETE("/:id", h.Delete)
		}
	}

	my := rg.Group("/my/castings")
	my.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleDirector))
	{
		my.GET("", h.ListMy)
	}
}

func (h *CastingHandler) Create(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	var req dto.CreateCastingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.castingService.CreateCasting(c.Request.Context(), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *CastingHandler) Get(c *gin.Context) {
	resp, err := h.castingService.GetCasting(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CastingHandler) Search(c *gin.Context) {
	var req dto.SearchCastingsRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}
	req.Page, req.PageSize = ParsePagination(c)

	items, total, err := h.castingService.SearchCastings(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":     items,
		"total":     total,
		"page":      req.Page,
		"page_size": req.PageSize,
	})
}

func (h *CastingHandler) ListMy(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	items, err := h.castingService.GetMyCastings(c.Request.Context(), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *CastingHandler) Update(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateCastingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.castingService.UpdateCasting(c.Request.Context(), c.Param("id"), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CastingHandler) Delete(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	if err := h.castingService.DeleteCasting(c.Request.Context(), c.Param("id"), actor); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Casting deleted"})
}

// ListApplications - заявки по конкретному кастингу, только владельцу.
func (h *CastingHandler) ListApplications(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	items, err := h.applicationService.GetApplicationsForCasting(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
