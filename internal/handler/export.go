package handler

import (
	"fmt"
	"net/http"
)

// GetExport handles GET /plans/{planID}/export.
// Use ?format=text or ?format=html to pick a rendering; default is JSON.
// All formats reflect the stored activity order of each day.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "planID")
	if err != nil {
		s.unprocessable(w, "invalid plan id")
		return
	}

	plan, err := s.plans.GetByID(r.Context(), id)
	if err != nil {
		s.serviceError(w, err, "plan not found")
		return
	}

	format := r.URL.Query().Get("format")
	var (
		body        []byte
		contentType string
		ext         string
	)
	switch format {
	case "", "json":
		body, err = s.exports.JSON(plan)
		contentType = "application/json"
		ext = "json"
	case "text":
		body, err = s.exports.Text(plan)
		contentType = "text/plain; charset=utf-8"
		ext = "txt"
	case "html":
		body, err = s.exports.HTML(plan)
		contentType = "text/html; charset=utf-8"
		ext = "html"
	default:
		s.unprocessable(w, fmt.Sprintf("unknown export format %q", format))
		return
	}
	if err != nil {
		s.serviceError(w, err, "plan not found")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(plan.City, ext)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.log.Error("write export", "error", err)
	}
}

// exportFilename builds a download name like "paris-itinerary.txt".
func exportFilename(city, ext string) string {
	slug := make([]rune, 0, len(city))
	for _, r := range city {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			slug = append(slug, r)
		case r >= 'A' && r <= 'Z':
			slug = append(slug, r+'a'-'A')
		case r == ' ' || r == '-':
			slug = append(slug, '-')
		}
	}
	if len(slug) == 0 {
		slug = []rune("plan")
	}
	return fmt.Sprintf("%s-itinerary.%s", string(slug), ext)
}
