package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gcbaptista/go-geocoder/geo"
)

// API holds the dependencies for the geocoder's HTTP handlers.
type API struct {
	geocoder      *geo.Geocoder
	maxResultsCap int
}

// NewAPI creates a new API handler structure. maxResultsCap bounds the
// max_results a caller may request.
func NewAPI(geocoder *geo.Geocoder, maxResultsCap int) *API {
	return &API{geocoder: geocoder, maxResultsCap: maxResultsCap}
}

// maxGeocodeRequestBytes bounds the size of a POST /geocode body. A
// free-text query has no legitimate reason to be anywhere near this large.
const maxGeocodeRequestBytes = 1 << 20 // 1 MiB

// SetupRoutes defines the geocoder's HTTP routes.
func SetupRoutes(router *gin.Engine, geocoder *geo.Geocoder, maxResultsCap int) {
	apiHandler := NewAPI(geocoder, maxResultsCap)

	router.Use(CORSMiddleware())

	router.GET("/healthz", apiHandler.HealthCheckHandler)
	router.POST("/geocode", RequestSizeLimitMiddleware(maxGeocodeRequestBytes), apiHandler.GeocodeHandler)
}

// HealthCheckHandler reports service liveness.
func (a *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GeocodeRequest is the body of POST /geocode.
type GeocodeRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

// GeocodeResultDTO is one ranked match in a GeocodeResponse.
type GeocodeResultDTO struct {
	OsmID     string  `json:"osm_id"`
	Certainty float64 `json:"certainty"`
}

// GeocodeResponse is the body of a successful POST /geocode.
type GeocodeResponse struct {
	QueryID string              `json:"query_id"`
	Results []GeocodeResultDTO `json:"results"`
}

// GeocodeHandler runs a free-text query through the geocoder and returns the
// ranked matches. It never surfaces a 500 from the geocoder itself: query-time
// processing cannot fail (spec §7), so the only error paths here are request
// validation.
func (a *API) GeocodeHandler(c *gin.Context) {
	var req GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = a.maxResultsCap
	}

	if result := ValidateGeocodeRequest(&req, a.maxResultsCap); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	results := a.geocoder.ProcessQuery(req.Query)
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	dtos := make([]GeocodeResultDTO, len(results))
	for i, r := range results {
		dtos[i] = GeocodeResultDTO{OsmID: r.OsmId.String(), Certainty: r.Certainty}
	}

	c.JSON(http.StatusOK, GeocodeResponse{
		QueryID: uuid.New().String(),
		Results: dtos,
	})
}
