package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func rootHandler(c *gin.Context) {
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write([]byte("ClinicCare API")); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// SetupRootRoute registers the root health route.
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", rootHandler)
}
