package v1

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	"github.com/gin-gonic/gin"
	"golang.org/x/image/draw"

	"go-totl-backend/config"
	"go-totl-backend/internal/delivery/http/middleware"
	"go-totl-backend/internal/delivery/http/response"
	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/apperror"
	"go-totl-backend/pkg/logger"
)

const (
	portfolioBucket   = "portfolio"
	maxUploadBytes    = 10 << 20 // 10 MiB before compression
	uploadMaxDim      = 1200
	uploadJpegQuality = 80
)

type PortfolioHandler struct {
	portfolioUC domain.PortfolioUsecase
	config      *config.Config
}

func NewPortfolioHandler(talent *gin.RouterGroup, portfolioUC domain.PortfolioUsecase, cfg *config.Config) {
	handler := &PortfolioHandler{portfolioUC: portfolioUC, config: cfg}

	portfolio := talent.Group("/portfolio")
	{
		portfolio.GET("", handler.List)
		portfolio.POST("", handler.Add)
		portfolio.DELETE("/:id", handler.Remove)
		portfolio.POST("/upload", middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig()), handler.Upload)
	}
}

// List godoc
// @Summary      List my portfolio items
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.PortfolioItem}
// @Router       /talent/portfolio [get]
// @Security     BearerAuth
func (h *PortfolioHandler) List(c *gin.Context) {
	talentID := c.GetString(string(domain.KeyUserID))
	items, err := h.portfolioUC.List(c.Request.Context(), talentID)
	if err != nil {
		c.Error(err)
		return
	}
	if items == nil {
		items = []domain.PortfolioItem{}
	}
	response.Success(c, http.StatusOK, "Portfolio retrieved", items)
}

// Add godoc
// @Summary      Add a portfolio item
// @Description  Registers an already-uploaded image URL as a portfolio item
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Param        request  body      domain.PortfolioItemRequest  true  "Portfolio item"
// @Success      201      {object}  response.Response{data=domain.PortfolioItem}
// @Failure      400      {object}  response.Response  "Validation error or portfolio full"
// @Router       /talent/portfolio [post]
// @Security     BearerAuth
func (h *PortfolioHandler) Add(c *gin.Context) {
	var req domain.PortfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	talentID := c.GetString(string(domain.KeyUserID))
	item, err := h.portfolioUC.Add(c.Request.Context(), talentID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Portfolio item added", item)
}

// Remove godoc
// @Summary      Remove a portfolio item
// @Tags         portfolio
// @Produce      json
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  response.Response
// @Router       /talent/portfolio/{id} [delete]
// @Security     BearerAuth
func (h *PortfolioHandler) Remove(c *gin.Context) {
	itemID, err := idParam(c, "id")
	if err != nil {
		c.Error(apperror.BadRequest("Invalid item ID"))
		return
	}

	talentID := c.GetString(string(domain.KeyUserID))
	if err := h.portfolioUC.Remove(c.Request.Context(), talentID, itemID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Portfolio item removed", nil)
}

// Upload godoc
// @Summary      Upload a portfolio image
// @Description  Compresses the image and stores it in Supabase Storage, returning the public URL
// @Tags         portfolio
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image file"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /talent/portfolio/upload [post]
// @Security     BearerAuth
func (h *PortfolioHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("No file uploaded"))
		return
	}

	if h.config.SupabaseUrl == "" || h.config.SupabaseServiceKey == "" {
		c.Error(apperror.New(http.StatusServiceUnavailable, "Storage is not configured", nil))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	// Detect from content, not the client-supplied header.
	contentType := http.DetectContentType(fileBytes)
	if !strings.HasPrefix(contentType, "image/") {
		c.Error(apperror.BadRequest("Only image files are accepted"))
		return
	}

	finalBytes := fileBytes
	if compressed, err := compressImage(fileBytes, uploadMaxDim, uploadJpegQuality); err != nil {
		logger.Log.Warn("image compression failed, uploading original", "error", err)
	} else {
		finalBytes = compressed
	}

	// Supabase Storage requires ASCII-only object names.
	filename := fmt.Sprintf("%d_%s.jpg", time.Now().UnixNano(), sanitizeFilename(file.Filename))
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", h.config.SupabaseUrl, portfolioBucket, filename)

	req, err := http.NewRequest("POST", uploadURL, bytes.NewReader(finalBytes))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	req.Header.Set("Authorization", "Bearer "+h.config.SupabaseServiceKey)
	req.Header.Set("Content-Type", "image/jpeg")
	req.Header.Set("x-upsert", "true")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Upload failed", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		logger.Log.Error("storage upload rejected", "status", resp.StatusCode, "body", string(respBody))
		c.Error(apperror.New(http.StatusInternalServerError, "Upload failed", nil))
		return
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", h.config.SupabaseUrl, portfolioBucket, filename)
	response.Success(c, http.StatusOK, "File uploaded", gin.H{"url": publicURL})
}

// compressImage resizes to maxDim on the longest side and re-encodes as JPEG.
func compressImage(data []byte, maxDim, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	newWidth, newHeight := width, height
	if width >= height && width > maxDim {
		newWidth = maxDim
		newHeight = int(float64(height) * float64(maxDim) / float64(width))
	} else if height > width && height > maxDim {
		newHeight = maxDim
		newWidth = int(float64(width) * float64(maxDim) / float64(height))
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeFilename strips the extension and keeps ASCII alphanumerics,
// underscores, and dashes.
func sanitizeFilename(filename string) string {
	base := filename
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		base = filename[:idx]
	}
	base = strings.ReplaceAll(base, " ", "_")

	var result strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			result.WriteRune(r)
		}
	}
	if result.Len() == 0 {
		return "image"
	}
	return result.String()
}
