package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler, limiter *RateLimiter, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	for _, middleware := range SetupMiddleware(requestTimeout) {
		r.Use(middleware)
	}

	// JSON content type
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/parameters", handler.GetParameters)

		r.Get("/clouds", handler.ListClouds)
		r.Get("/clouds/{name}", handler.GetCloud)
		r.Get("/clouds/{name}/buffer", handler.GetCloudBuffer)

		r.Get("/presets", handler.ListPresets)
		r.Get("/presets/{name}", handler.GetPreset)

		// Anything that regenerates or writes is throttled per client
		r.With(limiter.Middleware).Group(func(r chi.Router) {
			r.Patch("/parameters", handler.PatchParameters)
			r.Post("/clouds/{name}/regenerate", handler.RegenerateCloud)
			r.Post("/presets", handler.SavePreset)
			r.Delete("/presets/{name}", handler.DeletePreset)
			r.Post("/presets/{name}/apply", handler.ApplyPreset)
		})
	})

	return r
}
