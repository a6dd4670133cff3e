package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

func (s *Server) setupRoutes() {
	s.app.Get("/", s.indexHandler)
	s.app.Get("/health", s.healthCheckHandler)

	s.app.Post("/api/runs", s.createRunHandler)
	s.app.Get("/api/runs", s.listRunsHandler)
	s.app.Get("/api/runs/:id/report.csv", s.downloadReportHandler)

	if s.metrics != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics))
	}
}
