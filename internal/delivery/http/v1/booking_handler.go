package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-totl-backend/internal/delivery/http/response"
	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
)

type BookingHandler struct {
	bookingUC domain.BookingUsecase
}

func NewBookingHandler(talent *gin.RouterGroup, client *gin.RouterGroup, bookingUC domain.BookingUsecase) {
	handler := &BookingHandler{bookingUC: bookingUC}

	talent.GET("/bookings", handler.ListForTalent)
	talent.POST("/bookings/:id/cancel", handler.Cancel)

	client.GET("/bookings", handler.ListForClient)
	client.POST("/bookings/:id/complete", handler.Complete)
	client.POST("/bookings/:id/cancel", handler.Cancel)
}

// ListForTalent godoc
// @Summary      List my bookings (talent)
// @Tags         bookings
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /talent/bookings [get]
// @Security     BearerAuth
func (h *BookingHandler) ListForTalent(c *gin.Context) {
	page, pageSize := pageParams(c)
	talentID := c.GetString(string(domain.KeyUserID))

	bookings, total, err := h.bookingUC.ListForTalent(c.Request.Context(), talentID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Bookings retrieved", paginated(bookings, total, page, pageSize))
}

// ListForClient godoc
// @Summary      List my bookings (client)
// @Tags         bookings
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /client/bookings [get]
// @Security     BearerAuth
func (h *BookingHandler) ListForClient(c *gin.Context) {
	page, pageSize := pageParams(c)
	clientID := c.GetString(string(domain.KeyUserID))

	bookings, total, err := h.bookingUC.ListForClient(c.Request.Context(), clientID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Bookings retrieved", paginated(bookings, total, page, pageSize))
}

// Complete godoc
// @Summary      Mark a booking completed
// @Tags         bookings
// @Produce      json
// @Param        id   path      int  true  "Booking ID"
// @Success      200  {object}  response.Response
// @Router       /client/bookings/{id}/complete [post]
// @Security     BearerAuth
func (h *BookingHandler) Complete(c *gin.Context) {
	bookingID, err := idParam(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid booking ID"))
		return
	}

	clientID := c.GetString(string(domain.KeyUserID))
	if err := h.bookingUC.Complete(c.Request.Context(), clientID, bookingID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Booking completed", nil)
}

// Cancel godoc
// @Summary      Cancel a booking
// @Description  Either party may cancel a confirmed booking
// @Tags         bookings
// @Produce      json
// @Param        id   path      int  true  "Booking ID"
// @Success      200  {object}  response.Response
// @Router       /client/bookings/{id}/cancel [post]
// @Security     BearerAuth
func (h *BookingHandler) Cancel(c *gin.Context) {
	bookingID, err := idParam(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid booking ID"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.bookingUC.Cancel(c.Request.Context(), userID, bookingID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Booking cancelled", nil)
}
