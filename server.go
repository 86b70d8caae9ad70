package main

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ttpr0/isomap/generator"
	"golang.org/x/exp/slog"
)

//go:embed web/templates/*.html
var web_fs embed.FS

// Builds the router serving the upload page, map endpoints and the json api.
func NewRouter(manager *MapManager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = int64(manager.GetConfig().Server.MaxUploadMB) << 20

	cors_config := cors.DefaultConfig()
	cors_config.AllowAllOrigins = true
	cors_config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(cors_config))

	router.SetHTMLTemplate(template.Must(template.New("").ParseFS(web_fs, "web/templates/*.html")))

	router.GET("/", HandleIndex(manager))
	router.POST("/v0/map", HandleMapRequest(manager))
	router.GET("/v0/map/:id", HandleMapDocument(manager))
	MapPost(router, "/v0/isochrone", HandleIsochroneRequest(manager))
	MapGet(router, "/health", func(c *gin.Context) Result {
		return OK(HealthResponse{Status: "healthy"})
	})
	return router
}

func HandleIndex(manager *MapManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := NewPageData(manager.GetConfig().DefaultSettings())
		page.Info = "Upload CSV or Excel files to generate the map."
		c.HTML(http.StatusOK, "index.html", page)
	}
}

//**********************************************************
// map handlers
//**********************************************************

func HandleMapRequest(manager *MapManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		slog.Info("POST /v0/map")
		defaults := manager.GetConfig().DefaultSettings()
		settings, err := ParseSettingsForm(c, defaults)
		if err != nil {
			page := NewPageData(defaults)
			page.Errors = []string{err.Error()}
			c.HTML(http.StatusBadRequest, "index.html", page)
			return
		}
		page := NewPageData(settings)

		form, err := c.MultipartForm()
		if err != nil || len(form.File["files"]) == 0 {
			page.Info = "Upload CSV or Excel files to generate the map."
			c.HTML(http.StatusOK, "index.html", page)
			return
		}
		files, err := ReadUploadedFiles(form.File["files"])
		if err != nil {
			page.Errors = []string{err.Error()}
			c.HTML(http.StatusBadRequest, "index.html", page)
			return
		}
		if err := settings.Validate(); err != nil {
			page.Errors = []string{err.Error()}
			c.HTML(http.StatusBadRequest, "index.html", page)
			return
		}

		artifact, err := manager.Generate(c.Request.Context(), files, settings)
		page.Warnings = WarningMessages(artifact.Warnings)
		if errors.Is(err, generator.ErrNoValidRoutes) {
			page.Errors = []string{"No valid routes uploaded. Please upload files with 'lat' and 'lon' columns."}
			c.HTML(http.StatusUnprocessableEntity, "index.html", page)
			return
		}
		if err != nil {
			slog.Error("failed to generate map: " + err.Error())
			page.Errors = []string{fmt.Sprintf("Map generation failed: %v", err)}
			c.HTML(http.StatusInternalServerError, "index.html", page)
			return
		}

		page.MapID = artifact.ID
		page.RouteCount = artifact.Routes
		page.StopCount = artifact.Stops
		page.Info = "Map generation completed."
		c.HTML(http.StatusOK, "result.html", page)
	}
}

// Serves a generated map, ?download=true delivers it as attachment.
func HandleMapDocument(manager *MapManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		artifact := manager.GetArtifact(c.Param("id"))
		if !artifact.HasValue() {
			c.JSON(http.StatusNotFound, NewErrorResponse(c.Request.URL.Path, "map not found or expired"))
			return
		}
		if c.Query("download") == "true" {
			c.Header("Content-Disposition", `attachment; filename="isochrone_map.html"`)
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", artifact.Value.HTML)
	}
}
