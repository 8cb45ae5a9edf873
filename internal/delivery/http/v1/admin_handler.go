package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-totl-backend/internal/delivery/http/response"
	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(admin *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin.GET("/stats", handler.Stats)
	admin.GET("/users", handler.ListUsers)
	admin.POST("/users/:id/suspend", handler.Suspend)
	admin.POST("/gigs/:id/hide", handler.HideGig)
	admin.GET("/client-applications", handler.ListClientApplications)
	admin.POST("/client-applications/:id/review", handler.ReviewClientApplication)
}

// Stats godoc
// @Summary      Dashboard counters
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.AdminStats}
// @Router       /admin/stats [get]
// @Security     BearerAuth
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUC.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Stats retrieved", stats)
}

// ListUsers godoc
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Param        role       query     string  false  "Role filter (talent, client, admin)"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /admin/users [get]
// @Security     BearerAuth
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := pageParams(c)
	filter := domain.UserFilter{
		Role:     c.Query("role"),
		Page:     page,
		PageSize: pageSize,
	}

	users, total, err := h.adminUC.ListUsers(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved", paginated(users, total, page, pageSize))
}

type SuspendRequest struct {
	Suspended bool `json:"suspended"`
}

// Suspend godoc
// @Summary      Suspend or unsuspend a user
// @Description  Admin accounts cannot be suspended
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "User ID"
// @Param        request  body      SuspendRequest  true  "Suspension flag"
// @Success      200      {object}  response.Response
// @Router       /admin/users/{id}/suspend [post]
// @Security     BearerAuth
func (h *AdminHandler) Suspend(c *gin.Context) {
	var req SuspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.adminUC.SetSuspended(c.Request.Context(), c.Param("id"), req.Suspended); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User suspension updated", nil)
}

// HideGig godoc
// @Summary      Hide a gig
// @Description  Moderation action; hidden gigs disappear from public listings
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "Gig ID"
// @Success      200  {object}  response.Response
// @Router       /admin/gigs/{id}/hide [post]
// @Security     BearerAuth
func (h *AdminHandler) HideGig(c *gin.Context) {
	gigID, err := idParam(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid gig ID"))
		return
	}

	if err := h.adminUC.HideGig(c.Request.Context(), gigID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Gig hidden", nil)
}

// ListClientApplications godoc
// @Summary      List client access applications
// @Tags         admin
// @Produce      json
// @Param        status     query     string  false  "Status filter (pending, approved, rejected)"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /admin/client-applications [get]
// @Security     BearerAuth
func (h *AdminHandler) ListClientApplications(c *gin.Context) {
	page, pageSize := pageParams(c)
	status := domain.ClientApplicationStatus(c.Query("status"))

	apps, total, err := h.adminUC.ListClientApplications(c.Request.Context(), status, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Client applications retrieved", paginated(apps, total, page, pageSize))
}

type ReviewClientApplicationRequest struct {
	Approve bool `json:"approve"`
}

// ReviewClientApplication godoc
// @Summary      Review a client access application
// @Description  Approval grants client account access; the role is never rewritten
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      int                             true  "Application ID"
// @Param        request  body      ReviewClientApplicationRequest  true  "Decision"
// @Success      200      {object}  response.Response
// @Router       /admin/client-applications/{id}/review [post]
// @Security     BearerAuth
func (h *AdminHandler) ReviewClientApplication(c *gin.Context) {
	appID, err := idParam(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req ReviewClientApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.adminUC.ReviewClientApplication(c.Request.Context(), appID, req.Approve); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Client application reviewed", nil)
}
