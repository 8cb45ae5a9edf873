package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-totl-backend/internal/delivery/http/response"
	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
)

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

// NewApplicationHandler registers the talent-side routes under /talent and
// the review routes under /client.
func NewApplicationHandler(talent *gin.RouterGroup, client *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	apps := talent.Group("/applications")
	{
		apps.POST("", handler.Apply)
		apps.GET("", handler.ListMine)
		apps.POST("/:id/withdraw", handler.Withdraw)
	}

	client.GET("/gigs/:id/applications", handler.ListForGig)
	client.POST("/applications/:id/review", handler.Review)
}

// Apply godoc
// @Summary      Apply to a gig
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ApplyRequest  true  "Application"
// @Success      201      {object}  response.Response{data=domain.Application}
// @Failure      409      {object}  response.Response  "Already applied"
// @Router       /talent/applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req domain.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	talentID := c.GetString(string(domain.KeyUserID))
	app, err := h.appUC.Apply(c.Request.Context(), talentID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListMine godoc
// @Summary      List my applications
// @Tags         applications
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /talent/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	page, pageSize := pageParams(c)
	talentID := c.GetString(string(domain.KeyUserID))

	apps, total, err := h.appUC.ListMine(c.Request.Context(), talentID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", paginated(apps, total, page, pageSize))
}

// Withdraw godoc
// @Summary      Withdraw an application
// @Description  Pending and shortlisted applications can be withdrawn; accepted cannot
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Router       /talent/applications/{id}/withdraw [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	appID, err := idParam(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	talentID := c.GetString(string(domain.KeyUserID))
	if err := h.appUC.Withdraw(c.Request.Context(), talentID, appID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application withdrawn", nil)
}

// ListForGig godoc
// @Summary      List applications for a gig
// @Description  Applications to one of the caller's gigs
// @Tags         applications
// @Produce      json
// @Param        id         path      int  true   "Gig ID"
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /client/gigs/{id}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListForGig(c *gin.Context) {
	gigID, err := idParam(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid gig ID"))
		return
	}

	page, pageSize := pageParams(c)
	clientID := c.GetString(string(domain.KeyUserID))

	apps, total, err := h.appUC.ListForGig(c.Request.Context(), clientID, gigID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", paginated(apps, total, page, pageSize))
}

type ReviewApplicationRequest struct {
	Status string `json:"status" binding:"required,oneof=shortlisted accepted rejected"`
}

// Review godoc
// @Summary      Review an application
// @Description  Shortlist, accept, or reject. Accepting creates a confirmed booking.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Application ID"
// @Param        request  body      ReviewApplicationRequest  true  "New status"
// @Success      200      {object}  response.Response{data=domain.Application}
// @Router       /client/applications/{id}/review [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Review(c *gin.Context) {
	appID, err := idParam(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	clientID := c.GetString(string(domain.KeyUserID))
	app, err := h.appUC.Review(c.Request.Context(), clientID, appID, domain.ApplicationStatus(req.Status))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application reviewed", app)
}
