package aggregator

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kulshreya03/NewsAggregatorAws/internal/models"
	"github.com/kulshreya03/NewsAggregatorAws/internal/sources"
)

// Router returns the HTTP handler for the service. News routes always answer
// with transport status 200; the envelope's status field carries the outcome.
func (a *Aggregator) Router() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), a.requestLogger(), cors.Default())

	r.GET("/health", a.healthHandler)
	r.GET("/all-news", a.allNewsHandler)
	r.GET("/country/:iso", a.countryHandler)
	r.GET("/top-headlines", a.topHeadlinesHandler)

	return r
}

func (a *Aggregator) allNewsHandler(c *gin.Context) {
	page := sources.ParsePage(c.Query("page"))
	pageSize := sources.ParsePageSize(c.Query("pageSize"))

	a.respond(c, a.source.EverythingURL(page, pageSize), models.DefaultCategory)
}

func (a *Aggregator) countryHandler(c *gin.Context) {
	page := sources.ParsePage(c.Query("page"))
	pageSize := sources.ParsePageSize(c.Query("pageSize"))

	a.respond(c, a.source.CountryURL(c.Param("iso"), page, pageSize), models.DefaultCategory)
}

func (a *Aggregator) topHeadlinesHandler(c *gin.Context) {
	page := sources.ParsePage(c.Query("page"))
	pageSize := sources.ParsePageSize(c.Query("pageSize"))
	category := c.Query("category")
	if category == "" {
		category = models.DefaultCategory
	}

	a.respond(c, a.source.HeadlinesURL(category, page, pageSize), category)
}

func (a *Aggregator) respond(c *gin.Context, url, category string) {
	c.JSON(http.StatusOK, a.FetchNews(c.Request.Context(), url, category))
}

func (a *Aggregator) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
