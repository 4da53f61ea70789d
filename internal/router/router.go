package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"github.com/Rafael-Rueda/academic-manager-api/internal/config"
	"github.com/Rafael-Rueda/academic-manager-api/internal/handler"
	"github.com/Rafael-Rueda/academic-manager-api/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	courseHandler *handler.CourseHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public auth routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/verify", authHandler.Verify)

	// Course catalog
	e.GET("/courses", courseHandler.ListCourses)
	e.GET("/courses/:id", courseHandler.GetCourse)
	e.POST("/courses", courseHandler.CreateCourse)

	// Session-protected routes. Every failure mode (missing header, bad
	// signature, expiry, unknown user) degrades to a single 401.
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthorized(c)
		},
	}), loadSessionUser(userRepo))

	secured.GET("/me", func(c echo.Context) error {
		user := c.Get(currentUserKey)
		return c.JSON(http.StatusOK, user)
	})
}

const currentUserKey = "currentUser"

// loadSessionUser resolves the session token's subject to a user row and
// stashes it in the request context.
func loadSessionUser(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwtv5.Token)
			if !ok {
				return unauthorized(c)
			}
			claims, ok := token.Claims.(jwtv5.MapClaims)
			if !ok {
				return unauthorized(c)
			}
			subject, ok := claims["userId"].(string)
			if !ok {
				return unauthorized(c)
			}
			userID, err := uuid.Parse(subject)
			if err != nil {
				return unauthorized(c)
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return unauthorized(c)
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}

			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
