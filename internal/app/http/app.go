package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"nonprofit_cms/internal/lib/jwt"
	"nonprofit_cms/internal/lib/logger/sl"
	appmw "nonprofit_cms/internal/middleware"
	httprouters "nonprofit_cms/internal/transport/http"
	"nonprofit_cms/internal/transport/http/dto/response"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/echoprometheus"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Options struct {
	Host            string
	Port            string
	JWTSecret       string
	UploadDir       string
	MaxUploadSize   int64
	ShutdownTimeout time.Duration
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	opts    Options
}

// maxDocumentSize bounds PUT bodies. Documents are small JSON objects.
const maxDocumentSize = "2M"

func New(log *slog.Logger, opts Options, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(appmw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		log.Info("Statsviz start with error", sl.Err(err))
	}

	s := &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		opts:    opts,
	}

	s.BuildRouters()

	return s
}

// Handler exposes the routed echo instance, used by tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) authMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		// tokens come from the organisation's auth service and share its HS256 secret
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwt.ParseToken(auth, s.opts.JWTSecret)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			s.log.Warn("rejected bearer token", slog.String("path", c.Path()), sl.Err(err))
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		},
	})
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echoprometheus.NewHandler())

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	if s.opts.UploadDir != "" {
		s.e.Static("/uploads", s.opts.UploadDir)
	}

	api := s.e.Group("/api/content")
	{
		api.GET("/pages", s.routers.ListPages)
		api.GET("/:pageName", s.routers.GetPage)

		auth := s.authMiddleware()

		api.PUT("/:pageName", s.routers.PutPage, auth, middleware.BodyLimit(maxDocumentSize))

		uploadLimit := middleware.BodyLimit(bodyLimitFor(s.opts.MaxUploadSize))
		api.POST("/upload-image", s.routers.UploadImage, auth, uploadLimit)
	}
}

// bodyLimitFor leaves room for multipart framing around the image itself.
func bodyLimitFor(maxUploadSize int64) string {
	if maxUploadSize <= 0 {
		return "32M"
	}

	return fmt.Sprintf("%dK", maxUploadSize/1024+64)
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) addr() string {
	return net.JoinHostPort(s.opts.Host, s.opts.Port)
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	optCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}
