package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	httpapi "github.com/AngoraSix/projects.core/internal/api/http"
	"github.com/AngoraSix/projects.core/internal/auth"
	"github.com/AngoraSix/projects.core/internal/events"
	projectshttp "github.com/AngoraSix/projects.core/internal/projects/http"
	"github.com/AngoraSix/projects.core/internal/projects/repository"
	"github.com/AngoraSix/projects.core/internal/projects/service"
)

type RouterDeps struct {
	ServiceName       string
	Version           string
	BasePath          string
	ContributorHeader string
	EventsChannel     string
	AllowedOrigins    []string
	DB                *mongo.Database
	Redis             *redis.Client
	Logger            *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(dep.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = dep.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, dep.ContributorHeader)
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB.Client())
	healthHandler.RegisterRoutes(r)

	projectRepo := repository.NewProjectRepository(dep.DB)
	publisher := events.NewRedisPublisher(dep.Redis, dep.EventsChannel)
	projectService := service.NewProjectService(projectRepo, publisher, dep.Logger)

	api := r.Group(dep.BasePath)
	api.Use(auth.RequestingContributor(dep.ContributorHeader))

	projectshttp.Register(api.Group("/projects"), projectService, dep.BasePath)

	return r
}
