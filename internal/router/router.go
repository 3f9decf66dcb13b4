package router

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"newsroom/internal/auth"
	"newsroom/internal/config"
	"newsroom/internal/errors"
	"newsroom/internal/handler"
	"newsroom/internal/logging"
	"newsroom/internal/metrics"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Article *handler.ArticleHandler
	Review  *handler.ReviewHandler
	Like    *handler.LikeHandler
	Paper   *handler.PaperHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger *slog.Logger,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	h Handlers,
) {
	e.Validator = NewValidator()

	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(metrics.Middleware())

	e.GET("/status", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Server is up and running"})
	})
	e.GET("/api-docs/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	users := e.Group("/users")
	users.POST("/signup", h.Auth.Signup)
	users.POST("/login", h.Auth.Login, loginLimiter(cfg.LoginRateLimit))

	// Everything below requires a valid, unrevoked bearer token.
	secured := e.Group("", requireToken(jwtService), rejectRevoked(tokenStore))

	secured.POST("/users/logout", h.Auth.Logout)
	secured.GET("/users", h.User.ListUsers)
	secured.GET("/users/profile", h.User.Profile)
	secured.GET("/users/:id", h.User.GetUser)
	secured.GET("/users/:id/reviews", h.User.ListUserReviews)
	secured.PUT("/users/:id", h.User.UpdateUser)
	secured.DELETE("/users/:id", h.User.DeleteUser)

	secured.GET("/articles", h.Article.ListArticles)
	secured.GET("/articles/:date", h.Article.GetArticles)
	secured.POST("/articles", h.Article.CreateArticle)
	secured.PUT("/articles/:id", h.Article.UpdateArticle)
	secured.DELETE("/articles/:id", h.Article.DeleteArticle)

	secured.GET("/reviews", h.Review.ListReviews)
	secured.GET("/reviews/:id", h.Review.GetReview)
	secured.POST("/reviews", h.Review.CreateReview)
	secured.PUT("/reviews/:id", h.Review.UpdateReview)
	secured.DELETE("/reviews/:id", h.Review.DeleteReview)

	secured.POST("/articlelikes", h.Like.Like)
	secured.GET("/articlelikes/:articleId", h.Like.ListLikes)
	secured.DELETE("/articlelikes/:articleId", h.Like.Unlike)

	secured.GET("/papers", h.Paper.ListPapers)
	secured.GET("/papers/:id", h.Paper.GetPaper)
	secured.POST("/papers", h.Paper.CreatePaper)
	secured.PUT("/papers/:id", h.Paper.UpdatePaper)
	secured.DELETE("/papers/:id", h.Paper.DeletePaper)
}

func unauthorized(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Message: message,
		Code:    "UNAUTHORIZED",
	})
}

// requireToken verifies the bearer token and stores its *auth.Claims under
// handler.ClaimsContextKey.
func requireToken(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ClaimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			slog.DebugContext(c.Request().Context(), "token rejected", slog.Any("error", err))
			return unauthorized("missing or invalid token")
		},
	})
}

// rejectRevoked refuses tokens that were logged out. A failing revocation
// store lets the request through.
func rejectRevoked(store auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(handler.ClaimsContextKey).(*auth.Claims)
			if !ok || claims.RegisteredClaims.ID == "" {
				return next(c)
			}
			revoked, err := store.IsRevoked(c.Request().Context(), claims.RegisteredClaims.ID)
			if err != nil {
				slog.WarnContext(c.Request().Context(), "revocation check failed", slog.Any("error", err))
				return next(c)
			}
			if revoked {
				return unauthorized("token has been revoked")
			}
			return next(c)
		}
	}
}

func loginLimiter(perSecond int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		perSecond = 10
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     perSecond,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, errors.ErrorResponse{
				Message: "too many login attempts",
				Code:    "RATE_LIMITED",
			})
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator reports struct fields by their JSON names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
