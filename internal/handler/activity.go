package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tfield/travel-planner/internal/domain"
	"github.com/tfield/travel-planner/internal/service"
)

// addActivityRequest is the body for POST /plans/{planID}/days/{dayID}/activities.
type addActivityRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Time        string          `json:"time"`
	Duration    *int            `json:"duration"`
	Location    string          `json:"location"`
	Category    domain.Category `json:"category"`
	Notes       string          `json:"notes"`
}

// updateActivityRequest is the body for PATCH .../activities/{activityID}.
// Absent fields are left untouched.
type updateActivityRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Time        *string          `json:"time"`
	Duration    *int             `json:"duration"`
	Location    *string          `json:"location"`
	Category    *domain.Category `json:"category"`
	Notes       *string          `json:"notes"`
}

// moveActivityRequest is the body for POST /plans/{planID}/activities/move.
type moveActivityRequest struct {
	ActivityID  uuid.UUID `json:"activityId"`
	SourceDayID uuid.UUID `json:"sourceDayId"`
	TargetDayID uuid.UUID `json:"targetDayId"`
	TargetIndex int       `json:"targetIndex"`
}

// reorderActivitiesRequest is the body for POST .../days/{dayID}/activities/reorder.
type reorderActivitiesRequest struct {
	ActiveID uuid.UUID `json:"activeId"`
	OverID   uuid.UUID `json:"overId"`
}

// dragOverRequest is the body for POST /plans/{planID}/drag-over.
type dragOverRequest struct {
	ActiveID uuid.UUID `json:"activeId"`
	OverID   uuid.UUID `json:"overId"`
	OverKind string    `json:"overKind"`
}

// AddActivity handles POST /plans/{planID}/days/{dayID}/activities.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	planID, err := pathID(r, "planID")
	if err != nil {
		s.unprocessable(w, "invalid plan id")
		return
	}
	dayID, err := pathID(r, "dayID")
	if err != nil {
		s.unprocessable(w, "invalid day id")
		return
	}
	var req addActivityRequest
	if err := decodeBody(r, &req); err != nil {
		s.unprocessable(w, "invalid request body")
		return
	}

	created, err := s.activities.Add(r.Context(), planID, dayID, service.ActivityForm{
		Title:       req.Title,
		Description: req.Description,
		Time:        req.Time,
		Duration:    req.Duration,
		Location:    req.Location,
		Category:    req.Category,
		Notes:       req.Notes,
	})
	if err != nil {
		s.serviceError(w, err, "plan or day not found")
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

// UpdateActivity handles PATCH /plans/{planID}/days/{dayID}/activities/{activityID}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	planID, err := pathID(r, "planID")
	if err != nil {
		s.unprocessable(w, "invalid plan id")
		return
	}
	dayID, err := pathID(r, "dayID")
	if err != nil {
		s.unprocessable(w, "invalid day id")
		return
	}
	activityID, err := pathID(r, "activityID")
	if err != nil {
		s.unprocessable(w, "invalid activity id")
		return
	}
	var req updateActivityRequest
	if err := decodeBody(r, &req); err != nil {
		s.unprocessable(w, "invalid request body")
		return
	}

	updated, err := s.activities.Update(r.Context(), planID, dayID, activityID, service.ActivityPatch{
		Title:       req.Title,
		Description: req.Description,
		Time:        req.Time,
		Duration:    req.Duration,
		Location:    req.Location,
		Category:    req.Category,
		Notes:       req.Notes,
	})
	if err != nil {
		s.serviceError(w, err, "activity not found")
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

// DeleteActivity handles DELETE /plans/{planID}/days/{dayID}/activities/{activityID}.
// Deleting an absent activity still returns 204.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	planID, err := pathID(r, "planID")
	if err != nil {
		s.unprocessable(w, "invalid plan id")
		return
	}
	dayID, err := pathID(r, "dayID")
	if err != nil {
		s.unprocessable(w, "invalid day id")
		return
	}
	activityID, err := pathID(r, "activityID")
	if err != nil {
		s.unprocessable(w, "invalid activity id")
		return
	}

	if err := s.activities.Delete(r.Context(), planID, dayID, activityID); err != nil {
		s.serviceError(w, err, "plan or day not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveActivity handles POST /plans/{planID}/activities/move.
// The move either fully applies or leaves the plan untouched; a 204 with an
// unknown activity id means the move was silently skipped.
func (s *Server) MoveActivity(w http.ResponseWriter, r *http.Request) {
	planID, err := pathID(r, "planID")
	if err != nil {
		s.unprocessable(w, "invalid plan id")
		return
	}
	var req moveActivityRequest
	if err := decodeBody(r, &req); err != nil {
		s.unprocessable(w, "invalid request body")
		return
	}

	err = s.activities.Move(r.Context(), planID, req.SourceDayID, req.TargetDayID, req.ActivityID, req.TargetIndex)
	if err != nil {
		s.serviceError(w, err, "plan or day not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderActivities handles POST /plans/{planID}/days/{dayID}/activities/reorder.
func (s *Server) ReorderActivities(w http.ResponseWriter, r *http.Request) {
	planID, err := pathID(r, "planID")
	if err != nil {
		s.unprocessable(w, "invalid plan id")
		return
	}
	dayID, err := pathID(r, "dayID")
	if err != nil {
		s.unprocessable(w, "invalid day id")
		return
	}
	var req reorderActivitiesRequest
	if err := decodeBody(r, &req); err != nil {
		s.unprocessable(w, "invalid request body")
		return
	}

	if err := s.activities.Reorder(r.Context(), planID, dayID, req.ActiveID, req.OverID); err != nil {
		s.serviceError(w, err, "plan or day not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DragOver handles POST /plans/{planID}/drag-over.
// Events arrive while a drag is still in progress and are applied
// immediately; entities that vanished mid-gesture make the call a no-op.
func (s *Server) DragOver(w http.ResponseWriter, r *http.Request) {
	planID, err := pathID(r, "planID")
	if err != nil {
		s.unprocessable(w, "invalid plan id")
		return
	}
	var req dragOverRequest
	if err := decodeBody(r, &req); err != nil {
		s.unprocessable(w, "invalid request body")
		return
	}

	err = s.drags.DragOver(r.Context(), planID, service.DragOverEvent{
		ActiveID: req.ActiveID,
		OverID:   req.OverID,
		OverKind: service.DropKind(req.OverKind),
	})
	if err != nil {
		s.serviceError(w, err, "plan not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
