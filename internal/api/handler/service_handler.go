package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/localtalent/console/internal/booking"
	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/pkg/validate"
)

// ServiceHandler serves the public catalogue and the booking form.
type ServiceHandler struct {
	listings ports.ListingService
	bookings ports.BookingService
	now      func() time.Time
}

func NewServiceHandler(listings ports.ListingService, bookings ports.BookingService, now func() time.Time) *ServiceHandler {
	if now == nil {
		now = time.Now
	}
	return &ServiceHandler{listings: listings, bookings: bookings, now: now}
}

func (h *ServiceHandler) listing(c echo.Context) (*domain.Listing, error) {
	l, ok := h.listings.Get(c.Request().Context(), domain.ID(c.Param("id")))
	if !ok || l == nil {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

// Browse lists the public catalogue.
//
// @Summary      Browse services
// @Tags         services
// @Produce      json
// @Param        q         query     string  false  "Title search term"
// @Param        category  query     string  false  "Category, or all"
// @Success      200       {object}  ports.BrowseResult
// @Failure      502       {object}  map[string]string
// @Router       /services [get]
func (h *ServiceHandler) Browse(c echo.Context) error {
	var q browseQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid query"})
	}
	res, ok := h.listings.Browse(c.Request().Context(), ports.BrowseFilter{Term: q.Term, Category: q.Category})
	if !ok {
		return domain.ErrRequestFailed
	}
	return c.JSON(http.StatusOK, res)
}

// Show returns one listing with its booking options.
//
// @Summary      Service details
// @Tags         services
// @Produce      json
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /services/{id} [get]
func (h *ServiceHandler) Show(c echo.Context) error {
	l, err := h.listing(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"service":   l,
		"timeSlots": domain.TimeSlots,
		"durations": booking.DurationOptions(),
	})
}

// Quote prices a booking of the listing for the given duration.
//
// @Summary      Booking quote
// @Tags         services
// @Produce      json
// @Param        id        path      string  true  "Service ID"
// @Param        duration  query     int     true  "Hours: 1, 2, 3, 4, 6 or 8"
// @Success      200       {object}  booking.Summary
// @Failure      400       {object}  map[string]string
// @Router       /services/{id}/quote [get]
func (h *ServiceHandler) Quote(c echo.Context) error {
	var q quoteQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	l, err := h.listing(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking.Summarize(l, q.Duration))
}

// Book submits the booking form for the listing.
//
// @Summary      Book a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Service ID"
// @Param        body  body      bookingRequest  true  "Booking form"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /services/{id}/bookings [post]
func (h *ServiceHandler) Book(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	now := h.now()
	date, err := time.ParseInLocation(time.DateOnly, req.Date, now.Location())
	if err != nil {
		return validate.Fail("date", "date must be YYYY-MM-DD")
	}
	form := booking.Form{Date: date, Time: req.Time, Duration: req.Duration, Notes: req.Notes}
	if err := booking.Submit(c.Request().Context(), h.bookings, domain.ID(c.Param("id")), form, now); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "booking requested"})
}
