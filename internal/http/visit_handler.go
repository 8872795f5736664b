package http

import (
	"context"
	"encoding/json"
	"net/http"
)

type VisitTracker interface {
	Track(ctx context.Context, pageURL, referrer, userAgent string)
}

type VisitHandler struct {
	tracker VisitTracker
}

func NewVisitHandler(tracker VisitTracker) *VisitHandler {
	return &VisitHandler{
		tracker: tracker,
	}
}

// Track always answers 204; a broken body or a failed insert is never
// reported to the page.
func (h *VisitHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req VisitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		h.tracker.Track(r.Context(), req.PageURL, req.Referrer, r.UserAgent())
	}

	w.WriteHeader(http.StatusNoContent)
}
