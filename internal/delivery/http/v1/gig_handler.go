package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-totl-backend/internal/delivery/http/response"
	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
)

type GigHandler struct {
	gigUC domain.GigUsecase
}

// NewGigHandler registers the public browse routes and the client-side
// management routes. Management routes sit under /client so the route gate
// enforces client access.
func NewGigHandler(public *gin.RouterGroup, client *gin.RouterGroup, gigUC domain.GigUsecase) {
	handler := &GigHandler{gigUC: gigUC}

	gigs := public.Group("/gigs")
	{
		gigs.GET("", handler.ListOpen)
		gigs.GET("/:id", handler.Get)
	}

	manage := client.Group("/gigs")
	{
		manage.POST("", handler.Create)
		manage.GET("", handler.ListMine)
		manage.PUT("/:id", handler.Update)
		manage.POST("/:id/close", handler.Close)
	}
}

// ListOpen godoc
// @Summary      Browse open gigs
// @Description  Public listing of open gigs, filterable by category and location
// @Tags         gigs
// @Produce      json
// @Param        category   query     string  false  "Category filter"
// @Param        location   query     string  false  "Location substring filter"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size (max 100)"
// @Success      200        {object}  response.Response
// @Router       /gigs [get]
func (h *GigHandler) ListOpen(c *gin.Context) {
	page, pageSize := pageParams(c)
	filter := domain.GigFilter{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Page:     page,
		PageSize: pageSize,
	}

	gigs, total, err := h.gigUC.ListOpen(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Gigs retrieved", paginated(gigs, total, page, pageSize))
}

// Get godoc
// @Summary      Gig detail
// @Tags         gigs
// @Produce      json
// @Param        id   path      int  true  "Gig ID"
// @Success      200  {object}  response.Response{data=domain.Gig}
// @Failure      404  {object}  response.Response
// @Router       /gigs/{id} [get]
func (h *GigHandler) Get(c *gin.Context) {
	gigID, err := idParam(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid gig ID"))
		return
	}

	gig, err := h.gigUC.Get(c.Request.Context(), gigID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Gig retrieved", gig)
}

// Create godoc
// @Summary      Create a gig
// @Description  Creates a draft gig, or an open one when publish is set
// @Tags         gigs
// @Accept       json
// @Produce      json
// @Param        request  body      domain.GigRequest  true  "Gig details"
// @Success      201      {object}  response.Response{data=domain.Gig}
// @Failure      400      {object}  response.Response
// @Router       /client/gigs [post]
// @Security     BearerAuth
func (h *GigHandler) Create(c *gin.Context) {
	var req domain.GigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	clientID := c.GetString(string(domain.KeyUserID))
	gig, err := h.gigUC.Create(c.Request.Context(), clientID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Gig created", gig)
}

// Update godoc
// @Summary      Update a gig
// @Tags         gigs
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "Gig ID"
// @Param        request  body      domain.GigRequest  true  "Gig details"
// @Success      200      {object}  response.Response{data=domain.Gig}
// @Router       /client/gigs/{id} [put]
// @Security     BearerAuth
func (h *GigHandler) Update(c *gin.Context) {
	gigID, err := idParam(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid gig ID"))
		return
	}

	var req domain.GigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	clientID := c.GetString(string(domain.KeyUserID))
	gig, err := h.gigUC.Update(c.Request.Context(), clientID, gigID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Gig updated", gig)
}

// Close godoc
// @Summary      Close a gig
// @Tags         gigs
// @Produce      json
// @Param        id   path      int  true  "Gig ID"
// @Success      200  {object}  response.Response
// @Router       /client/gigs/{id}/close [post]
// @Security     BearerAuth
func (h *GigHandler) Close(c *gin.Context) {
	gigID, err := idParam(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid gig ID"))
		return
	}

	clientID := c.GetString(string(domain.KeyUserID))
	if err := h.gigUC.Close(c.Request.Context(), clientID, gigID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Gig closed", nil)
}

// ListMine godoc
// @Summary      List my gigs
// @Description  All gigs owned by the authenticated client, every status
// @Tags         gigs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /client/gigs [get]
// @Security     BearerAuth
func (h *GigHandler) ListMine(c *gin.Context) {
	page, pageSize := pageParams(c)
	clientID := c.GetString(string(domain.KeyUserID))

	gigs, total, err := h.gigUC.ListMine(c.Request.Context(), clientID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Gigs retrieved", paginated(gigs, total, page, pageSize))
}
