package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the QAOA handlers under /qaoa.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/qaoa", func(r chi.Router) {
		r.Post("/optimize", h.HandleOptimize)
		r.Post("/tune", h.HandleTune)
		r.Get("/tune/stream", h.HandleTuneStream)
		r.Get("/sample", h.HandleSample)
		r.Get("/history", h.HandleHistory)
	})
}
