package handlers

import (
	"ClinicCare/middlewares"
	"strconv"

	"github.com/gin-gonic/gin"
)

// callerUserID resolves the authenticated user ID stored in the request
// context by the token middleware.
func callerUserID(c *gin.Context) (int64, error) {
	value, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}
