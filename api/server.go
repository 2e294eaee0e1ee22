package api

import (
	"github.com/gin-gonic/gin"

	"simscreen/similarity"
)

// Dependencies carries the engine components the API serves. Screener may
// hold a nil provider, in which case check requests report "not checked".
type Dependencies struct {
	Screener *similarity.Screener
	Scanner  *similarity.Scanner
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterScreeningRoutes(r, deps)
	RegisterHealthRoutes(r)
	return r
}
