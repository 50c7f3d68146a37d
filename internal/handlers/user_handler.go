package handlers

import (
	"net/http"

	"castlink_backend/internal/appErrors"
	"castlink_backend/internal/middleware"
	"castlink_backend/internal/services"
	"castlink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService      services.UserService
	lifecycleService services.LifecycleService
}

func NewUserHandler(base *BaseHandler, userService services.UserService, lifecycleService services.LifecycleService) *UserHandler {
	return &UserHandler{
		BaseHandler:      base,
		userService:      userService,
		lifecycleService: lifecycleService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", h.GetCurrentUser)
		users.PATCH("/me", h.UpdateProfile)
		users.DELETE("/me", h.DeleteAccount)
		users.POST("/me/avatar", h.UploadAvatar)
		users.POST("/me/intro-video", h.UploadIntroVideo)

		users.GET("/talents/:id", h.GetTalentProfile)
		users.GET("/directors/:id", h.GetDirectorProfile)
	}
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	resp, err := h.userService.GetCurrentUser(c.Request.Context(), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.UpdateProfile(c.Request.Context(), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteAccount - деактивация своего аккаунта с каскадом по роли.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	if err := h.lifecycleService.DeactivateAccount(c.Request.Context(), actor); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deactivated"})
}

func (h *UserHandler) GetTalentProfile(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	resp, err := h.userService.GetTalentProfile(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetDirectorProfile(c *gin.Context) {
	if _, ok := h.RequireActor(c); !ok {
		return
	}

	resp, err := h.userService.GetDirectorProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	h.uploadUserMedia(c, "avatar", h.userService.UploadAvatar)
}

func (h *UserHandler) UploadIntroVideo(c *gin.Context) {
	h.uploadUserMedia(c, "video", h.userService.UploadIntroVideo)
}

func (h *UserHandler) uploadUserMedia(c *gin.Context, field string, upload services.MediaUploadFunc) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile(field)
	if err != nil {
		appErrors.HandleError(c, appErrors.NewBadRequestError("Missing file field: "+field))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	ref, err := upload(c.Request.Context(), actor, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ref": ref})
}
