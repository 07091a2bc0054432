package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"roompla/internal/middleware"
	"roompla/internal/model"
	"roompla/internal/queue"
	"roompla/internal/repository"
	"roompla/internal/service"
)

// OccupancyHandler exposes the room and occupancy endpoints. All methods
// assume JWT authentication has already been performed by middleware and
// return 401 when no claims are present in the context.
type OccupancyHandler struct {
	Service *service.OccupancyService
}

// NewOccupancyHandler constructs an OccupancyHandler. The service must be
// non-nil.
func NewOccupancyHandler(s *service.OccupancyService) *OccupancyHandler {
	if s == nil {
		panic("nil service passed to NewOccupancyHandler")
	}
	return &OccupancyHandler{Service: s}
}

type timeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// caller extracts the booking identity from the verified claims.
func caller(c echo.Context) (service.Caller, bool) {
	claims := middleware.CallerClaims(c)
	if claims == nil {
		return service.Caller{}, false
	}
	return service.Caller{
		ID:      claims.Subject,
		Name:    claims.Name,
		Contact: claims.ContactInfo,
	}, true
}

// bookingError translates the service error taxonomy into a response.
// Conflicts and validation failures are expected outcomes; only unknown
// errors are logged and reported as server faults.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrBadTimestamp), errors.Is(err, service.ErrInvalidRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case errors.Is(err, service.ErrRoomFull):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room already full"})
	default:
		c.Logger().Errorf("occupancy: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// ListRooms handles GET /rooms. Any authenticated caller may list rooms;
// they carry no personal data.
func (h *OccupancyHandler) ListRooms(c echo.Context) error {
	rooms, err := h.Service.Rooms(c.Request().Context())
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// Create handles PUT /rooms/:room/occupancies. The body carries the
// requested RFC3339 time range; both bounds are rounded to full hours
// before the capacity check. A successful booking also emits a best-effort
// occupancy.booked event.
func (h *OccupancyHandler) Create(c echo.Context) error {
	who, ok := caller(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body timeRange
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	created, err := h.Service.Create(c.Request().Context(), c.Param("room"), who, body.Start, body.End)
	if err != nil {
		return bookingError(c, err)
	}

	go publishBooked(created)
	return c.JSON(http.StatusCreated, created)
}

// List handles GET /rooms/:room/occupancies with optional start/end query
// filters. Entries owned by other users come back anonymized.
func (h *OccupancyHandler) List(c echo.Context) error {
	who, ok := caller(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	occupancies, err := h.Service.List(c.Request().Context(),
		c.Param("room"), who.ID, c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, occupancies)
}

// Update handles PUT /rooms/:room/occupancies/:id. Moving an occupancy the
// caller does not own matches zero rows and still reports success; the
// response does not disclose whether the occupancy exists.
func (h *OccupancyHandler) Update(c echo.Context) error {
	who, ok := caller(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid occupancy id"})
	}
	var body timeRange
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	if err := h.Service.Update(c.Request().Context(), c.Param("room"), id, who, body.Start, body.End); err != nil {
		return bookingError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// Delete handles DELETE /rooms/:room/occupancies/:id. Deletion is
// idempotent; deleting a missing or foreign occupancy reports success.
func (h *OccupancyHandler) Delete(c echo.Context) error {
	who, ok := caller(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid occupancy id"})
	}

	if err := h.Service.Delete(c.Request().Context(), c.Param("room"), id, who); err != nil {
		return bookingError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// publishBooked emits the occupancy.booked event for a committed booking.
// Failures are already logged by the publisher and deliberately ignored;
// the booking itself has committed.
func publishBooked(o *model.Occupancy) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queue.PublishOccupancyBooked(ctx, queue.OccupancyBookedEvent{
		OccupancyID: o.ID,
		Room:        o.Room,
		UserID:      o.UserID,
		UserName:    o.UserName,
		Start:       o.Start.Format(time.RFC3339),
		End:         o.End.Format(time.RFC3339),
		BookedAt:    time.Now().UTC().Format(time.RFC3339),
	})
}
