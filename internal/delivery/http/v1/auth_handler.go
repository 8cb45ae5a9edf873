package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"go-totl-backend/config"
	"go-totl-backend/internal/delivery/http/middleware"
	"go-totl-backend/internal/delivery/http/response"
	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
	"go-totl-backend/pkg/logger"
)

type AuthHandler struct {
	bootUC   domain.BootStateUsecase
	profiles domain.ProfileRepository
	config   *config.Config
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, bootUC domain.BootStateUsecase, profiles domain.ProfileRepository, cfg *config.Config) {
	handler := &AuthHandler{bootUC: bootUC, profiles: profiles, config: cfg}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig()), handler.Login)
		publicAuth.POST("/register", middleware.StrictRateLimitMiddleware(), handler.Register)
		publicAuth.POST("/forgot-password", middleware.StrictRateLimitMiddleware(), handler.ForgotPassword)
		publicAuth.POST("/reset-password", middleware.StrictRateLimitMiddleware(), handler.ResetPassword)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.GET("/boot-state", handler.BootState)
		protectedAuth.POST("/post-auth", handler.PostAuth)
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=talent client"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register godoc
// @Summary      User Registration
// @Description  Register a new account with email, password, and role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      201    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	// Direct HTTP call to the GoTrue signup endpoint. The role and name land
	// in user_metadata, which the signup trigger (and our lazy repair) read.
	signupURL := fmt.Sprintf("%s/auth/v1/signup", h.config.SupabaseUrl)
	emailRedirectTo := h.config.FrontendURL + "/auth/callback"

	reqBody := map[string]interface{}{
		"email":    req.Email,
		"password": req.Password,
		"data": map[string]interface{}{
			"role":       req.Role,
			"first_name": req.FirstName,
			"last_name":  req.LastName,
		},
		"options": map[string]interface{}{
			"emailRedirectTo": emailRedirectTo,
		},
	}
	jsonBody, _ := json.Marshal(reqBody)

	httpReq, err := http.NewRequest("POST", signupURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("apikey", h.config.SupabaseKey)
	httpReq.Header.Set("X-Forwarded-For", c.ClientIP())
	httpReq.Header.Set("User-Agent", c.Request.UserAgent())

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		logger.Log.Error("supabase signup request failed", "error", err)
		c.Error(apperror.New(http.StatusInternalServerError, "Registration service unavailable", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)

		msg := "Registration failed"
		if m, ok := errResp["msg"].(string); ok {
			msg = m
		} else if m, ok := errResp["error_description"].(string); ok {
			msg = m
		}
		c.Error(apperror.BadRequest(msg))
		return
	}

	var supabaseUser struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&supabaseUser); err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Failed to parse response", err))
		return
	}

	msg := "Registration successful. Please check your email to confirm."
	var data interface{}

	if supabaseUser.AccessToken != "" {
		// Auto-confirmed account: repair the profile row immediately instead
		// of waiting for the first boot-state call.
		claims := &domain.AuthClaims{
			UserID:    supabaseUser.ID,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      domain.Role(req.Role),
		}
		profile, err := h.bootUC.EnsureProfile(c.Request.Context(), claims)
		if err != nil {
			c.Error(err)
			return
		}
		msg = "Registration successful"
		data = gin.H{
			"token":   supabaseUser.AccessToken,
			"profile": profile,
		}
	}

	response.Success(c, http.StatusCreated, msg, data)
}

// Login godoc
// @Summary      User Login
// @Description  Login with email and password via Supabase
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login Credentials"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	loginURL := fmt.Sprintf("%s/auth/v1/token?grant_type=password", h.config.SupabaseUrl)

	reqBody := map[string]interface{}{
		"email":    req.Email,
		"password": req.Password,
	}
	jsonBody, _ := json.Marshal(reqBody)

	httpReq, err := http.NewRequest("POST", loginURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("apikey", h.config.SupabaseKey)
	httpReq.Header.Set("X-Forwarded-For", c.ClientIP())
	httpReq.Header.Set("User-Agent", c.Request.UserAgent())

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		logger.Log.Error("supabase login request failed", "error", err)
		c.Error(apperror.New(http.StatusInternalServerError, "Login service unavailable", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)

		// Keep credential failures generic; pass through the confirmations
		// the user can act on.
		msg := "Wrong password or account not found"
		if m, ok := errResp["msg"].(string); ok && m == "Email not confirmed" {
			msg = m
		}
		c.Error(apperror.Unauthorized(msg))
		return
	}

	var loginResp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID           string `json:"id"`
			Email        string `json:"email"`
			UserMetadata struct {
				FirstName string `json:"first_name"`
				LastName  string `json:"last_name"`
				Role      string `json:"role"`
			} `json:"user_metadata"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Failed to parse login response", err))
		return
	}

	// Repair-on-login: make sure the profile row exists before the frontend
	// asks for a boot state.
	claims := &domain.AuthClaims{
		UserID:    loginResp.User.ID,
		Email:     loginResp.User.Email,
		FirstName: loginResp.User.UserMetadata.FirstName,
		LastName:  loginResp.User.UserMetadata.LastName,
		Role:      domain.Role(loginResp.User.UserMetadata.Role),
	}
	profile, err := h.bootUC.EnsureProfile(c.Request.Context(), claims)
	if err != nil {
		c.Error(err)
		return
	}

	state, err := h.bootUC.GetBootState(c.Request.Context(), claims)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token":      loginResp.AccessToken,
		"profile":    profile,
		"boot_state": state,
	})
}

// Me godoc
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Profile}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	profile, err := h.profiles.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.Error(apperror.NotFound("Profile not found"))
			return
		}
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// BootState godoc
// @Summary      Routing snapshot for the current user
// @Description  Computes profile/onboarding state and the next path, fresh on every call
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.BootState}
// @Failure      401  {object}  response.Response
// @Router       /auth/boot-state [get]
// @Security     BearerAuth
func (h *AuthHandler) BootState(c *gin.Context) {
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
	if state == nil {
		c.Error(apperror.Unauthorized("Authorization required"))
		return
	}

	response.Success(c, http.StatusOK, "Boot state computed", state)
}

type PostAuthRequest struct {
	Path      string `json:"path" binding:"required"`
	ReturnURL string `json:"return_url"`
	SignedOut bool   `json:"signed_out"`
}

// PostAuth godoc
// @Summary      Post-auth redirect decision
// @Description  Decides where to send the user after landing on an auth page
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      PostAuthRequest  true  "Current path and optional return URL"
// @Success      200      {object}  response.Response
// @Router       /auth/post-auth [post]
// @Security     BearerAuth
func (h *AuthHandler) PostAuth(c *gin.Context) {
	var req PostAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	claims, _ := middleware.CurrentClaims(c)
	state, decision, err := h.bootUC.ResolvePostAuth(c.Request.Context(), claims, req.Path, req.ReturnURL, req.SignedOut)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Post-auth decision computed", gin.H{
		"boot_state": state,
		"decision":   decision,
	})
}

// buildRecoveryURL builds the GoTrue /recover endpoint with the frontend
// redirect as a query parameter (required by GoTrue).
func (h *AuthHandler) buildRecoveryURL() string {
	u, _ := url.Parse(h.config.SupabaseUrl + "/auth/v1/recover")
	q := u.Query()
	q.Set("redirect_to", h.config.FrontendURL+"/auth/update-password")
	u.RawQuery = q.Encode()
	return u.String()
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword godoc
// @Summary      Request Password Reset
// @Description  Send password reset email; always responds success to prevent email enumeration
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      ForgotPasswordRequest  true  "Email address"
// @Success      200      {object}  response.Response
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	// Constant-time response: all paths take at least targetDuration so
	// response timing cannot be used to enumerate emails.
	start := time.Now()
	const targetDuration = 2 * time.Second

	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	successMessage := "If an account with that email exists, a password reset link has been sent."

	if _, err := h.profiles.GetByEmail(c.Request.Context(), req.Email); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Log.Warn("forgot-password lookup failed", "error", err)
		}
		simulateDelay(start, targetDuration)
		response.Success(c, http.StatusOK, successMessage, nil)
		return
	}

	reqBody, _ := json.Marshal(map[string]interface{}{"email": req.Email})
	httpReq, err := http.NewRequest("POST", h.buildRecoveryURL(), bytes.NewBuffer(reqBody))
	if err != nil {
		simulateDelay(start, targetDuration)
		response.Success(c, http.StatusOK, successMessage, nil)
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("apikey", h.config.SupabaseKey)
	httpReq.Header.Set("X-Forwarded-For", c.ClientIP())
	httpReq.Header.Set("User-Agent", c.Request.UserAgent())

	client := &http.Client{Timeout: 10 * time.Second}
	if resp, err := client.Do(httpReq); err != nil {
		logger.Log.Warn("supabase recovery request failed", "error", err)
	} else {
		resp.Body.Close()
	}

	simulateDelay(start, targetDuration)
	response.Success(c, http.StatusOK, successMessage, nil)
}

// simulateDelay pads the response so every path takes at least targetDuration.
func simulateDelay(start time.Time, targetDuration time.Duration) {
	if elapsed := time.Since(start); elapsed < targetDuration {
		time.Sleep(targetDuration - elapsed)
	}
}

type ResetPasswordRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword godoc
// @Summary      Reset Password
// @Description  Set new password using the reset token from the email link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      ResetPasswordRequest  true  "Reset password details"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	updateURL := fmt.Sprintf("%s/auth/v1/user", h.config.SupabaseUrl)
	reqBody, _ := json.Marshal(map[string]interface{}{"password": req.NewPassword})

	httpReq, err := http.NewRequest("PUT", updateURL, bytes.NewBuffer(reqBody))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("apikey", h.config.SupabaseKey)
	httpReq.Header.Set("Authorization", "Bearer "+req.AccessToken)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Password update service unavailable", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)

		msg := "Password reset failed"
		if m, ok := errResp["msg"].(string); ok {
			msg = m
		} else if m, ok := errResp["error_description"].(string); ok {
			msg = m
		}
		c.Error(apperror.BadRequest(msg))
		return
	}

	response.Success(c, http.StatusOK, "Password has been reset successfully. You can now login with your new password.", nil)
}
