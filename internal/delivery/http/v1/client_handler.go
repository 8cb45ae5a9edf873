package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-totl-backend/internal/delivery/http/response"
	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
)

type ClientHandler struct {
	clientUC     domain.ClientUsecase
	onboardingUC domain.OnboardingUsecase
}

// NewClientHandler registers the client profile routes under /client and the
// client-access application routes under /talent (talents file them).
func NewClientHandler(client *gin.RouterGroup, talent *gin.RouterGroup, clientUC domain.ClientUsecase, onboardingUC domain.OnboardingUsecase) {
	handler := &ClientHandler{clientUC: clientUC, onboardingUC: onboardingUC}

	client.GET("/profile", handler.GetProfile)
	client.PUT("/profile", handler.UpdateProfile)

	talent.POST("/client-application", handler.ApplyForAccess)
	talent.GET("/client-application", handler.MyApplication)
}

// GetProfile godoc
// @Summary      Client profile
// @Description  Own profile by default; admins may pass userId to view another user's row
// @Tags         clients
// @Produce      json
// @Param        userId  query     string  false  "Target user ID (admin only)"
// @Success      200     {object}  response.Response{data=domain.ClientProfile}
// @Failure      404     {object}  response.Response
// @Router       /client/profile [get]
// @Security     BearerAuth
func (h *ClientHandler) GetProfile(c *gin.Context) {
	profile, err := h.clientUC.GetProfileForViewer(c.Request.Context(), c.Query("userId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Client profile retrieved", profile)
}

// UpdateProfile godoc
// @Summary      Update client profile
// @Description  Same payload as profile setup; company name stays required
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ClientProfileRequest  true  "Profile fields"
// @Success      200      {object}  response.Response
// @Router       /client/profile [put]
// @Security     BearerAuth
func (h *ClientHandler) UpdateProfile(c *gin.Context) {
	var req domain.ClientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	nextPath, err := h.onboardingUC.CompleteClientProfile(c.Request.Context(), userID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Client profile saved", gin.H{"next_path": nextPath})
}

// ApplyForAccess godoc
// @Summary      Apply for client access
// @Description  Files a promotion request; one pending application at a time
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ClientAccessRequest  true  "Application"
// @Success      201      {object}  response.Response{data=domain.ClientApplication}
// @Failure      409      {object}  response.Response  "Application already pending"
// @Router       /talent/client-application [post]
// @Security     BearerAuth
func (h *ClientHandler) ApplyForAccess(c *gin.Context) {
	var req domain.ClientAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	app, err := h.clientUC.ApplyForClientAccess(c.Request.Context(), userID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Client application submitted", app)
}

// MyApplication godoc
// @Summary      My pending client application
// @Tags         clients
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ClientApplication}
// @Failure      404  {object}  response.Response  "No pending application"
// @Router       /talent/client-application [get]
// @Security     BearerAuth
func (h *ClientHandler) MyApplication(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	app, err := h.clientUC.MyApplication(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Client application retrieved", app)
}
