// Package httpapi serves the catalog back office over HTTP with gin.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/alexanderramin/roastery/internal/service"
)

// Deps is everything the router serves. Import may be nil, in which case
// the import endpoint answers 500.
type Deps struct {
	Import      service.ImportService
	Coffees     service.CoffeeService
	Regions     service.RegionService
	BrewMethods service.BrewMethodService
	RoastLevels service.RoastLevelService
	Flavors     service.FlavorService
	Images      service.ImageService
	Chat        service.ChatService
	Content     service.ContentService

	Log            logrus.FieldLogger
	AllowedOrigins []string
	MaxUploadBytes int64
	MetricsPath    string
}

type handler struct {
	Deps
}

func NewRouter(d Deps) *gin.Engine {
	if d.MaxUploadBytes <= 0 {
		d.MaxUploadBytes = 10 << 20
	}
	h := &handler{Deps: d}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(d.Log), requestMetrics())
	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(d.AllowedOrigins)))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.MetricsPath != "" {
		r.GET(d.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api")
	api.POST("/import-csv", h.importCSV)
	api.GET("/flavor-wheel", h.flavorWheel)
	api.POST("/images", h.uploadImage)
	api.DELETE("/images", h.deleteImage)
	api.POST("/chat", h.chat)
	api.POST("/admin/generate-coffee-content", h.generateContent)

	coffees := api.Group("/coffees")
	{
		coffees.GET("", h.listCoffees)
		coffees.GET("/slug/:slug", h.getCoffeeBySlug)
		coffees.GET("/:id", h.getCoffee)
		coffees.POST("", h.createCoffee)
		coffees.PUT("/:id", h.updateCoffee)
		coffees.DELETE("/:id", h.deleteCoffee)
	}

	mountCRUD(api.Group("/regions"), h, crud[*domain.Region, []*domain.Region, service.RegionInput]{
		list: d.Regions.List, get: d.Regions.Get, create: d.Regions.Create,
		update: d.Regions.Update, remove: d.Regions.Delete,
	})
	mountCRUD(api.Group("/brew-methods"), h, crud[*domain.BrewMethod, []*domain.BrewMethod, service.BrewMethodInput]{
		list: d.BrewMethods.List, get: d.BrewMethods.Get, create: d.BrewMethods.Create,
		update: d.BrewMethods.Update, remove: d.BrewMethods.Delete,
	})
	mountCRUD(api.Group("/roast-levels"), h, crud[*domain.RoastLevel, []*domain.RoastLevel, service.RoastLevelInput]{
		list: d.RoastLevels.List, get: d.RoastLevels.Get, create: d.RoastLevels.Create,
		update: d.RoastLevels.Update, remove: d.RoastLevels.Delete,
	})
	mountCRUD(api.Group("/flavor-categories"), h, crud[*domain.FlavorCategory, []domain.FlavorCategory, service.FlavorCategoryInput]{
		list: d.Flavors.ListCategories, get: d.Flavors.GetCategory, create: d.Flavors.CreateCategory,
		update: d.Flavors.UpdateCategory, remove: d.Flavors.DeleteCategory,
	})
	mountCRUD(api.Group("/flavor-notes"), h, crud[*domain.FlavorNote, []domain.FlavorNote, service.FlavorNoteInput]{
		list: d.Flavors.ListNotes, get: d.Flavors.GetNote, create: d.Flavors.CreateNote,
		update: d.Flavors.UpdateNote, remove: d.Flavors.DeleteNote,
	})

	return r
}

// corsConfig allows the listed origins, or every origin for "*".
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
