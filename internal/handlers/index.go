package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// EndpointInfo describes one route of the service.
type EndpointInfo struct {
	Method  string `json:"method"`
	URL     string `json:"url"`
	Details string `json:"details"`
}

// IndexResponse is the service metadata returned at the root URL.
type IndexResponse struct {
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []EndpointInfo `json:"endpoints"`
}

// Index godoc
// @Summary      Service index
// @Description  Returns service metadata and the list of available endpoints
// @Tags         index
// @Produce      json
// @Success      200  {object}  IndexResponse
// @Router       / [get]
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, IndexResponse{
		Version:     "1.0.0",
		Description: "A RESTful API for managing promotions. Supports create, read, update, delete, list, activate and deactivate operations.",
		Endpoints: []EndpointInfo{
			{Method: "POST", URL: "/promotions", Details: "Create a new promotion"},
			{Method: "GET", URL: "/promotions", Details: "List all the promotions"},
			{Method: "GET", URL: "/promotions/{promotion_id}", Details: "Read the promotion with id promotion_id"},
			{Method: "PUT", URL: "/promotions/{promotion_id}", Details: "Update the promotion with id promotion_id"},
			{Method: "DELETE", URL: "/promotions/{promotion_id}", Details: "Delete the promotion with id promotion_id"},
			{Method: "PUT", URL: "/promotions/{promotion_id}/activate", Details: "Activate the promotion with id promotion_id"},
			{Method: "PUT", URL: "/promotions/{promotion_id}/deactivate", Details: "Deactivate the promotion with id promotion_id"},
		},
	})
}
