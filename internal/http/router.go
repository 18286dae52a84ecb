package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zettel-todo/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	limiter RateLimiter,
	userH *UserHandler,
	taskH *TaskHandler,
	healthH *HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery, JSON content-type y rate limit.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware(), rateLimitMiddleware(limiter))

	health := r.Group("/health")
	health.GET("/healthcheck", healthH.Healthcheck)
	health.GET("/s3", healthH.S3Healthcheck)

	user := r.Group("/user")
	user.POST("/signup", userH.Signup)
	user.POST("/login", userH.Login)
	user.POST("/verify", userH.Verify)

	userAuth := user.Group("", JWTAuthMiddleware(jwtSvc))
	userAuth.GET("/me", userH.Me)
	userAuth.POST("/avatar", userH.UploadAvatar)
	userAuth.DELETE("/avatar", userH.DeleteAvatar)

	task := r.Group("/task", JWTAuthMiddleware(jwtSvc))
	task.POST("", taskH.CreateTask)
	task.GET("", taskH.ListTasks)
	task.PATCH("/:task_id", taskH.UpdateTask)
	task.DELETE("/:task_id", taskH.DeleteTask)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
