package handler

import (
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/core/service"
	"github.com/localtalent/console/internal/pkg/validate"
	"github.com/localtalent/console/internal/table"
)

// maxImageSize bounds the image accepted by the service form.
const maxImageSize = 5 << 20

// AdminHandler serves the admin area: the three resource tables, their row
// actions and the service form. One table controller is kept per endpoint
// and identity so row busy flags span requests.
type AdminHandler struct {
	listings ports.ListingService
	users    ports.UserService
	tables   service.Tables
	log      zerolog.Logger

	mu          sync.Mutex
	controllers map[string]*table.Controller
}

func NewAdminHandler(listings ports.ListingService, bookings ports.BookingService, users ports.UserService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		listings:    listings,
		users:       users,
		tables:      service.Tables{Listings: listings, Bookings: bookings, Users: users},
		log:         log,
		controllers: make(map[string]*table.Controller),
	}
}

func (h *AdminHandler) controller(endpoint table.Endpoint, user domain.User) *table.Controller {
	key := string(endpoint) + "|" + user.ID.String() + "|" + string(user.Role)

	h.mu.Lock()
	defer h.mu.Unlock()
	if ctrl, ok := h.controllers[key]; ok {
		return ctrl
	}
	ctrl := table.NewController(service.TableTitle(endpoint), endpoint, user.Role, h.tables.Updater(), h.log)
	h.controllers[key] = ctrl
	return ctrl
}

func endpointParam(c echo.Context, session *domain.Session) (table.Endpoint, error) {
	endpoint := table.Endpoint(c.Param("endpoint"))
	if !endpoint.Valid() {
		return "", domain.ErrNotFound
	}
	if endpoint == table.EndpointUser && session.User.Role != domain.RoleAdmin {
		return "", domain.ErrForbidden
	}
	return endpoint, nil
}

// Table returns one page of a resource table.
//
// @Summary      Resource table
// @Tags         admin
// @Produce      json
// @Param        endpoint  path      string  true   "service, booking or user"
// @Param        search    query     string  false  "Search term"
// @Param        page      query     int     false  "Page, from 1"
// @Param        size      query     int     false  "Page size: 5, 10, 20 or 50"
// @Success      200       {object}  table.View
// @Failure      401       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /admin/tables/{endpoint} [get]
func (h *AdminHandler) Table(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	endpoint, err := endpointParam(c, session)
	if err != nil {
		return err
	}
	return h.render(c, session, endpoint)
}

// Users is the admin-only alias of the user table.
func (h *AdminHandler) Users(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return h.render(c, session, table.EndpointUser)
}

func (h *AdminHandler) render(c echo.Context, session *domain.Session, endpoint table.Endpoint) error {
	var q tableQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid query"})
	}

	records, err := h.tables.Fetch(c.Request().Context(), endpoint, session.User.Role)
	if err != nil {
		return err
	}
	ctrl := h.controller(endpoint, session.User)
	ctrl.Load(records)
	if err := ctrl.Configure(q.Search, q.Size, q.Page); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ctrl.View())
}

// RowAction runs a row action and returns the updated page.
//
// @Summary      Row action
// @Tags         admin
// @Produce      json
// @Param        endpoint  path      string  true  "service, booking or user"
// @Param        id        path      string  true  "Row ID"
// @Param        action    path      string  true  "approve, reject, accept, decline or delete"
// @Success      200       {object}  table.View
// @Failure      400       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /admin/tables/{endpoint}/{id}/{action} [post]
func (h *AdminHandler) RowAction(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	endpoint, err := endpointParam(c, session)
	if err != nil {
		return err
	}

	ctrl := h.controller(endpoint, session.User)
	if !ctrl.Loaded() {
		records, err := h.tables.Fetch(c.Request().Context(), endpoint, session.User.Role)
		if err != nil {
			return err
		}
		ctrl.Load(records)
	}
	if err := ctrl.Run(c.Request().Context(), c.Param("id"), table.Action(c.Param("action"))); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ctrl.View())
}

// DeleteUser removes an account. Admin only.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if !h.users.Delete(c.Request().Context(), domain.ID(c.Param("id"))) {
		return domain.ErrRequestFailed
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) listingInput(c echo.Context) (ports.ListingInput, error) {
	var req listingRequest
	if err := c.Bind(&req); err != nil {
		return ports.ListingInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	rate, err := decimal.NewFromString(req.Rate.String())
	if err != nil {
		return ports.ListingInput{}, validate.Fail("rate", "rate must be a number")
	}
	in := ports.ListingInput{
		Title:        req.Title,
		Description:  req.Description,
		Rate:         rate,
		Availability: req.Availability,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
	}

	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return in, nil
	}
	if err != nil {
		return ports.ListingInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid image")
	}
	if fh.Size > maxImageSize {
		return ports.ListingInput{}, validate.Fail("image", "image must be at most 5 MB")
	}
	f, err := fh.Open()
	if err != nil {
		return ports.ListingInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid image")
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return ports.ListingInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid image")
	}
	in.Image = &ports.Upload{Filename: fh.Filename, Content: content}
	return in, nil
}

// CreateService saves a new listing from the service form.
//
// @Summary      Create service
// @Tags         admin
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      listingRequest  true  "Service form"
// @Success      201   {object}  domain.Listing
// @Failure      400   {object}  map[string]string
// @Router       /admin/services [post]
func (h *AdminHandler) CreateService(c echo.Context) error {
	in, err := h.listingInput(c)
	if err != nil {
		return err
	}
	l, err := h.listings.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, l)
}

// UpdateService saves the service form over an existing listing.
//
// @Summary      Update service
// @Tags         admin
// @Accept       json,mpfd
// @Produce      json
// @Param        id    path      string          true  "Service ID"
// @Param        body  body      listingRequest  true  "Service form"
// @Success      200   {object}  domain.Listing
// @Failure      400   {object}  map[string]string
// @Router       /admin/services/{id} [put]
func (h *AdminHandler) UpdateService(c echo.Context) error {
	in, err := h.listingInput(c)
	if err != nil {
		return err
	}
	l, err := h.listings.Update(c.Request().Context(), domain.ID(c.Param("id")), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

// DeleteService removes a listing.
//
// @Summary      Delete service
// @Tags         admin
// @Param        id   path  string  true  "Service ID"
// @Success      204
// @Failure      502  {object}  map[string]string
// @Router       /admin/services/{id} [delete]
func (h *AdminHandler) DeleteService(c echo.Context) error {
	if !h.listings.Delete(c.Request().Context(), domain.ID(c.Param("id"))) {
		return domain.ErrRequestFailed
	}
	return c.NoContent(http.StatusNoContent)
}
