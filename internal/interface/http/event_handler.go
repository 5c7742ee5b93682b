package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/chinmayajanata/backend/internal/application"
	"github.com/chinmayajanata/backend/internal/domain/entity"
	"github.com/chinmayajanata/backend/pkg/response"
	"github.com/chinmayajanata/backend/pkg/validation"
)

type EventHandler struct {
	Svc    *app.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *app.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

type createEventRequest struct {
	CenterID    int64     `json:"center_id" binding:"required"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Date        time.Time `json:"date" binding:"required"`
	Category    int       `json:"category" binding:"omitempty,oneof=91 92"`
	Description string    `json:"description"`
	Endorsers   []string  `json:"endorsers"`
}

type updateEventRequest struct {
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

type attendeeRequest struct {
	Username string `json:"username" binding:"required"`
}

func eventID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid event id", nil)
		return 0, false
	}
	return id, true
}

func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.Create(c.Request.Context(), req.CenterID, entity.Location{Latitude: req.Latitude, Longitude: req.Longitude}, req.Date, req.Category, req.Description, req.Endorsers)
	if err != nil {
		response.Fail(c, statusFor(err), "failed to create event", nil)
		return
	}
	response.Success(c, http.StatusCreated, e, "event created", nil)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	e, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, statusFor(err), "event not found", nil)
		return
	}
	response.Success(c, http.StatusOK, e, "event", nil)
}

func (h *EventHandler) ByCenter(c *gin.Context) {
	centerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid center id", nil)
		return
	}
	events, sErr := h.Svc.ByCenter(c.Request.Context(), centerID)
	if sErr != nil {
		response.Fail(c, statusFor(sErr), "failed to list events", nil)
		return
	}
	response.Success(c, http.StatusOK, events, "events", map[string]any{"count": len(events)})
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.UpdateDetails(c.Request.Context(), id, entity.Location{Latitude: req.Latitude, Longitude: req.Longitude}, req.Date, req.Description)
	if err != nil {
		response.Fail(c, statusFor(err), "failed to update event", nil)
		return
	}
	response.Success(c, http.StatusOK, e, "event updated", nil)
}

func (h *EventHandler) Remove(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	if err := h.Svc.Remove(c.Request.Context(), id); err != nil {
		response.Fail(c, statusFor(err), "removal failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"event_id": id, "removed": true}, "event removed", nil)
}

// Attend adds the named user to the event's attendee list. The operation is
// idempotent so retried requests cannot inflate the count.
func (h *EventHandler) Attend(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	var req attendeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.AttachAttendee(c.Request.Context(), id, req.Username); err != nil {
		response.Fail(c, statusFor(err), "failed to attach attendee", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"event_id": id, "username": req.Username}, "attendee attached", nil)
}

func (h *EventHandler) Unattend(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	var req attendeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.DetachAttendee(c.Request.Context(), id, req.Username); err != nil {
		response.Fail(c, statusFor(err), "failed to detach attendee", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"event_id": id, "username": req.Username}, "attendee detached", nil)
}

// Endorse records the named user as an endorser of the event.
func (h *EventHandler) Endorse(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	var req attendeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.AttachEndorser(c.Request.Context(), id, req.Username); err != nil {
		response.Fail(c, statusFor(err), "failed to attach endorser", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"event_id": id, "username": req.Username}, "endorser attached", nil)
}

// Attendees resolves the event's attendee usernames to user records.
func (h *EventHandler) Attendees(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	users, err := h.Svc.AttendingUsers(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, statusFor(err), "failed to list attendees", nil)
		return
	}
	response.Success(c, http.StatusOK, users, "attendees", map[string]any{"count": len(users)})
}

// Search runs a text query over the event index.
func (h *EventHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	events, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		response.Fail(c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, events, "search results", map[string]any{"count": len(events)})
}
