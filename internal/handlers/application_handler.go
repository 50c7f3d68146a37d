package handlers

import (
	"net/http"

	"castlink_backend/internal/appErrors"
	"castlink_backend/internal/middleware"
	"castlink_backend/internal/models"
	"castlink_backend/internal/services"
	"castlink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	apps := rg.Group("/applications")
	apps.Use(middleware.AuthMiddleware())
	{
		talentOnly := apps.Group("")
		talentOnly.Use(middleware.RequireRoles(models.UserRoleTalent))
		{
			talentOnly.POST("", h.Apply)
			talentOnly.GET("/my", h.ListMy)
			talentOnly.PATCH("/:id", h.UpdateMy)
			talentOnly.DELETE("/:id", h.Withdraw)
			talentOnly.POST("/:id/portfolio", h.UploadPortfolio)
		}

		directorOnly := apps.Group("")
		directorOnly.Use(middleware.RequireRoles(models.UserRoleDirector))
		{
			directorOnly.GET("/incoming", h.ListIncoming)
			directorOnly.PATCH("/:id/status", h.UpdateStatus)
		}
	}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.applicationService.Apply(c.Request.Context(), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ApplicationHandler) ListMy(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	items, err := h.applicationService.GetMyApplications(c.Request.Context(), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ApplicationHandler) ListIncoming(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	items, err := h.applicationService.GetIncomingApplications(c.Request.Context(), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.applicationService.UpdateStatus(c.Request.Context(), c.Param("id"), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) UpdateMy(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateMyApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.applicationService.UpdateMyApplication(c.Request.Context(), c.Param("id"), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	if err := h.applicationService.Withdraw(c.Request.Context(), c.Param("id"), actor); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application withdrawn"})
}

func (h *ApplicationHandler) UploadPortfolio(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		appErrors.HandleError(c, appErrors.NewBadRequestError("Missing file field: file"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	ref, err := h.applicationService.UploadPortfolio(c.Request.Context(), c.Param("id"), actor, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ref": ref})
}
