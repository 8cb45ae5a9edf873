package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-totl-backend/internal/delivery/http/middleware"
	"go-totl-backend/internal/delivery/http/response"
	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
)

type OnboardingHandler struct {
	onboardingUC domain.OnboardingUsecase
	bootUC       domain.BootStateUsecase
}

func NewOnboardingHandler(protected *gin.RouterGroup, onboardingUC domain.OnboardingUsecase, bootUC domain.BootStateUsecase) {
	handler := &OnboardingHandler{onboardingUC: onboardingUC, bootUC: bootUC}

	onboarding := protected.Group("/onboarding")
	{
		onboarding.GET("/status", handler.Status)
		onboarding.POST("/complete", handler.Complete)
		onboarding.POST("/client-profile", handler.ClientProfile)
	}
}

// Status godoc
// @Summary      Onboarding status
// @Description  Returns the boot state, which carries the onboarding flags and next path
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.BootState}
// @Router       /onboarding/status [get]
// @Security     BearerAuth
func (h *OnboardingHandler) Status(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.Error(apperror.Unauthorized("Authorization required"))
		return
	}

	state, err := h.bootUC.GetBootState(c.Request.Context(), claims)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Onboarding status retrieved", state)
}

// Complete godoc
// @Summary      Complete talent onboarding
// @Description  Saves the talent onboarding form and returns the next path
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request  body      domain.FinishOnboardingRequest  true  "Onboarding form"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /onboarding/complete [post]
// @Security     BearerAuth
func (h *OnboardingHandler) Complete(c *gin.Context) {
	var req domain.FinishOnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	nextPath, err := h.onboardingUC.FinishOnboarding(c.Request.Context(), userID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Onboarding completed", gin.H{"next_path": nextPath})
}

// ClientProfile godoc
// @Summary      Complete client profile setup
// @Description  Saves the client profile form (company name is the gate) and returns the next path
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ClientProfileRequest  true  "Client profile form"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /onboarding/client-profile [post]
// @Security     BearerAuth
func (h *OnboardingHandler) ClientProfile(c *gin.Context) {
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
