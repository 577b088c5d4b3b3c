package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"video-profile-extractor/config"
	"video-profile-extractor/internal/delivery/http/middleware"
	"video-profile-extractor/internal/delivery/http/response"
	"video-profile-extractor/internal/domain"
)

type RouterDeps struct {
	VideoUC  domain.VideoUsecase
	PromptUC domain.PromptUsecase
	Config   *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	// Uploads are streamed to scratch storage, keep the in-memory part small.
	r.MaxMultipartMemory = 8 << 20

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	NewVideoHandler(v1, deps.VideoUC)
	NewPromptHandler(v1, deps.PromptUC)

	return r
}
