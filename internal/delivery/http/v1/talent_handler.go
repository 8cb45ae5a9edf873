package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-totl-backend/internal/delivery/http/response"
	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
)

type TalentHandler struct {
	talentUC domain.TalentUsecase
}

// NewTalentHandler registers the public directory route and the talent-side
// profile routes.
func NewTalentHandler(public *gin.RouterGroup, talent *gin.RouterGroup, talentUC domain.TalentUsecase) {
	handler := &TalentHandler{talentUC: talentUC}

	public.GET("/talents", handler.Directory)

	talent.GET("/profile", handler.GetProfile)
	talent.PUT("/profile", handler.UpdateProfile)
}

// Directory godoc
// @Summary      Public talent directory
// @Description  Talent profiles with completed onboarding, newest first
// @Tags         talents
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /talents [get]
func (h *TalentHandler) Directory(c *gin.Context) {
	page, pageSize := pageParams(c)

	talents, total, err := h.talentUC.ListDirectory(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Talents retrieved", paginated(talents, total, page, pageSize))
}

// GetProfile godoc
// @Summary      My talent profile
// @Tags         talents
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.TalentProfile}
// @Failure      404  {object}  response.Response
// @Router       /talent/profile [get]
// @Security     BearerAuth
func (h *TalentHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	profile, err := h.talentUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Talent profile retrieved", profile)
}

type UpdateTalentProfileRequest struct {
	FirstName       string   `json:"first_name" binding:"required"`
	LastName        string   `json:"last_name" binding:"required"`
	Location        string   `json:"location"`
	HeightCM        *int     `json:"height_cm"`
	Specialties     []string `json:"specialties"`
	ExperienceLevel string   `json:"experience_level"`
	InstagramURL    string   `json:"instagram_url"`
	PortfolioURL    string   `json:"portfolio_url"`
}

// UpdateProfile godoc
// @Summary      Update my talent profile
// @Tags         talents
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateTalentProfileRequest  true  "Profile fields"
// @Success      200      {object}  response.Response
// @Router       /talent/profile [put]
// @Security     BearerAuth
func (h *TalentHandler) UpdateProfile(c *gin.Context) {
	var req UpdateTalentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	profile := &domain.TalentProfile{
		UserID:          userID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Location:        req.Location,
		HeightCM:        req.HeightCM,
		Specialties:     req.Specialties,
		ExperienceLevel: req.ExperienceLevel,
		InstagramURL:    req.InstagramURL,
		PortfolioURL:    req.PortfolioURL,
	}
	if err := h.talentUC.UpdateProfile(c.Request.Context(), profile); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Talent profile updated", profile)
}
