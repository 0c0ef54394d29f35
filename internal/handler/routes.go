package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tfield/travel-planner/spec"
)

// Routes mounts every API endpoint on a fresh router. Middleware is the
// caller's concern; main wires the full chain around this.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/plans", func(r chi.Router) {
		r.Post("/", s.CreatePlan)
		r.Get("/", s.ListPlans)

		r.Route("/{planID}", func(r chi.Router) {
			r.Get("/", s.GetPlan)
			r.Patch("/", s.UpdatePlan)
			r.Delete("/", s.DeletePlan)

			r.Get("/export", s.GetExport)
			r.Post("/drag-over", s.DragOver)
			r.Post("/activities/move", s.MoveActivity)

			r.Route("/days", func(r chi.Router) {
				r.Post("/", s.AddDay)
				r.Route("/{dayID}", func(r chi.Router) {
					r.Delete("/", s.RemoveDay)
					r.Post("/activities", s.AddActivity)
					r.Post("/activities/reorder", s.ReorderActivities)
					r.Patch("/activities/{activityID}", s.UpdateActivity)
					r.Delete("/activities/{activityID}", s.DeleteActivity)
				})
			})
		})
	})

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(spec.OpenAPI)
}
