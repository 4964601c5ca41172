package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	"cat-exhibition/internal/auth"
	_ "cat-exhibition/internal/docs"
	"cat-exhibition/internal/service"
)

const (
	claimsKey       = "claims"
	requestIDHeader = "X-Request-ID"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth          service.AuthService
	breeds        service.BreedService
	cats          service.CatService
	votes         service.VoteService
	logger        logrus.FieldLogger
	maxPhotoBytes int64
}

func NewHandler(authSvc service.AuthService, breeds service.BreedService, cats service.CatService, votes service.VoteService, logger logrus.FieldLogger, maxPhotoBytes int64) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	if maxPhotoBytes <= 0 {
		maxPhotoBytes = 5 << 20
	}
	return &Handler{
		auth:          authSvc,
		breeds:        breeds,
		cats:          cats,
		votes:         votes,
		logger:        logger,
		maxPhotoBytes: maxPhotoBytes,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestLogger(), corsMiddleware())

	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))

	account := router.Group("/api-auth")
	{
		account.POST("/signup/", h.signUp)
		account.POST("/login/", h.login)
		account.POST("/token/", h.login)
		account.POST("/token/refresh/", h.refresh)
		account.POST("/logout/", h.logout)
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.GET("/cats/", h.listCats)
		api.GET("/cats/:id/", h.getCat)
		api.GET("/cats/:id/photo/", h.getCatPhoto)
	}

	protected := api.Group("", h.authRequired())
	{
		protected.POST("/cats/", h.createCat)
		protected.PUT("/cats/:id/", h.updateCat)
		protected.PATCH("/cats/:id/", h.patchCat)
		protected.DELETE("/cats/:id/", h.deleteCat)
		protected.PUT("/cats/:id/photo/", h.uploadCatPhoto)

		protected.GET("/breeds/", h.listBreeds)
		protected.POST("/breeds/", h.createBreed)
		protected.GET("/breeds/:id/", h.getBreed)

		protected.GET("/voting/:cat_id/", h.listVotes)
		protected.POST("/voting/:cat_id/", h.vote)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, Location")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()

		entry := h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start),
			"client_ip":  c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request")
		case status >= http.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// authRequired rejects requests without a valid access token and stores its claims.
func (h *Handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication credentials were not provided"})
			return
		}

		claims, err := h.auth.Authorize(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired access token"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// currentUserID returns the authenticated user. Only valid behind authRequired.
func currentUserID(c *gin.Context) int64 {
	claims, ok := c.MustGet(claimsKey).(*auth.Claims)
	if !ok {
		return 0
	}
	id, _ := claims.UserID()
	return id
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return id, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyVoted):
		return http.StatusConflict
	case errors.Is(err, service.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		h.logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"route":  c.FullPath(),
		}).Error("request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
	case http.StatusNotFound:
		c.JSON(status, gin.H{"error": "not found"})
	default:
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

// respondBindError turns JSON decoding and validator failures into a short client message.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
}

func bindErrorMessage(err error) string {
	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs) && len(verrs) > 0:
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return field + " is required"
		case "gte":
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		default:
			return field + " is invalid"
		}
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return "request body must be a JSON object"
		}
		return fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.String())
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return "malformed JSON body"
	case errors.Is(err, io.EOF):
		return "request body is required"
	default:
		return "invalid request body"
	}
}
