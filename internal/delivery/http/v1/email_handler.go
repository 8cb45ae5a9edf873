package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-totl-backend/internal/delivery/http/middleware"
	"go-totl-backend/internal/delivery/http/response"
	"go-totl-backend/pkg/apperror"
	"go-totl-backend/pkg/email"
	"go-totl-backend/pkg/logger"
)

type EmailHandler struct {
	mailer *email.Service
}

// NewEmailHandler registers the internal email routes. They are meant for
// trusted backend callers (cron jobs, admin scripts) and sit behind the
// shared-key middleware, not user auth.
func NewEmailHandler(r *gin.RouterGroup, mailer *email.Service, internalKey string) {
	handler := &EmailHandler{mailer: mailer}

	internal := r.Group("/internal/email", middleware.InternalKey(internalKey))
	{
		internal.POST("/send", handler.Send)
	}
}

type SendEmailRequest struct {
	Kind string `json:"kind" binding:"required,oneof=welcome application_received booking_confirmed"`
	To   string `json:"to" binding:"required,email"`
	Data struct {
		RecipientName string `json:"recipient_name"`
		GigTitle      string `json:"gig_title"`
		CompanyName   string `json:"company_name"`
		ActionURL     string `json:"action_url"`
	} `json:"data"`
}

func (h *EmailHandler) Send(c *gin.Context) {
	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if h.mailer == nil || !h.mailer.IsConfigured() {
		c.Error(apperror.New(http.StatusServiceUnavailable, "Email delivery is not configured", nil))
		return
	}

	err := h.mailer.Send(email.TemplateKind(req.Kind), req.To, email.TemplateData{
		RecipientName: req.Data.RecipientName,
		GigTitle:      req.Data.GigTitle,
		CompanyName:   req.Data.CompanyName,
		ActionURL:     req.Data.ActionURL,
	})
	if err != nil {
		logger.Log.Error("internal email send failed", "kind", req.Kind, "error", err)
		c.Error(apperror.New(http.StatusInternalServerError, "Email delivery failed", err))
		return
	}

	response.Success(c, http.StatusOK, "Email sent", nil)
}
