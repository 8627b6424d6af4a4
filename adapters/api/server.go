// Package api exposes the vetting service over HTTP.
package api

import (
	"github.com/gin-gonic/gin"

	"modshift/app"
	"modshift/ports"
)

// Server wires the HTTP routes to the vetting service.
type Server struct {
	engine  *gin.Engine
	handler *VetHandler
}

// NewServer creates the HTTP server. ledger may be nil when the deployment
// runs without persistence; the report routes then return 404s.
func NewServer(service *app.VetService, batch *app.BatchVetter, ledger ports.ReportLedger, mode string) *Server {
	gin.SetMode(mode)
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	handler := NewVetHandler(service, batch, ledger)

	engine.GET("/healthz", handler.HandleHealth)
	engine.POST("/vet", handler.HandleVet)
	engine.POST("/vet/batch", handler.HandleVetBatch)
	engine.GET("/reports", handler.HandleListReports)
	engine.GET("/reports/:id", handler.HandleGetReport)

	return &Server{engine: engine, handler: handler}
}

// Run starts the server on the given port.
func (s *Server) Run(port string) error {
	return s.engine.Run(":" + port)
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
