package table

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/infrastructure/metrics"
)

// Updater performs row actions against the remote API. Each method reports
// whether the call succeeded; failures are surfaced by the request layer.
type Updater interface {
	SetApproval(ctx context.Context, id domain.ID, status domain.ApprovalStatus) bool
	SetBookingStatus(ctx context.Context, id domain.ID, status domain.BookingStatus) bool
	Delete(ctx context.Context, endpoint Endpoint, id domain.ID) bool
}

// ServiceUpdater routes row actions to the resource services.
type ServiceUpdater struct {
	Listings ports.ListingService
	Bookings ports.BookingService
	Users    ports.UserService
}

func (u ServiceUpdater) SetApproval(ctx context.Context, id domain.ID, status domain.ApprovalStatus) bool {
	return u.Listings.SetApproval(ctx, id, status)
}

func (u ServiceUpdater) SetBookingStatus(ctx context.Context, id domain.ID, status domain.BookingStatus) bool {
	return u.Bookings.SetStatus(ctx, id, status)
}

func (u ServiceUpdater) Delete(ctx context.Context, endpoint Endpoint, id domain.ID) bool {
	switch endpoint {
	case EndpointService:
		return u.Listings.Delete(ctx, id)
	case EndpointUser:
		return u.Users.Delete(ctx, id)
	}
	return false
}

// statusAfter is the status written into a row once action succeeds.
var statusAfter = map[Action]string{
	ActionApprove: string(domain.ApprovalApproved),
	ActionReject:  string(domain.ApprovalRejected),
	ActionAccept:  string(domain.BookingAccepted),
	ActionDecline: string(domain.BookingRejected),
}

// Controller owns one table: its rows, search and pagination state, and
// the per-row busy flags of running actions. It is safe for concurrent use.
type Controller struct {
	title    string
	endpoint Endpoint
	role     domain.Role
	updater  Updater
	log      zerolog.Logger

	mu      sync.Mutex
	records []*Record
	columns []string
	state   *State
	busy    map[string]bool
	loaded  bool
}

func NewController(title string, endpoint Endpoint, role domain.Role, updater Updater, log zerolog.Logger) *Controller {
	return &Controller{
		title:    title,
		endpoint: endpoint,
		role:     role,
		updater:  updater,
		log:      log,
		state:    NewState(),
		busy:     make(map[string]bool),
	}
}

// Load replaces the row set. Columns are inferred again.
func (c *Controller) Load(records []*Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = records
	c.loaded = true
	c.columns = InferColumns(records)
	c.state.SetPage(c.state.Page(), len(c.filtered()))
}

// Configure sets the search term, then the page size when size is non-zero,
// then the page when page is positive. The page is clamped to the filtered
// row count.
func (c *Controller) Configure(search string, size, page int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SetSearch(search)
	if size != 0 {
		if err := c.state.SetPageSize(size); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
	}
	if page > 0 {
		c.state.SetPage(page, len(c.filtered()))
	}
	return nil
}

// Loaded reports whether Load has been called.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Busy reports whether an action is running on the row with id.
func (c *Controller) Busy(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy[id]
}

// Run executes action on the row with id. A row whose action is still in
// flight refuses further actions with domain.ErrRowBusy. On success only
// that row is patched locally; nothing is refetched.
func (c *Controller) Run(ctx context.Context, id string, action Action) error {
	if action == ActionEdit || !slices.Contains(ActionsFor(c.endpoint, c.role), action) {
		return fmt.Errorf("%w: %s on %s", domain.ErrUnknownAction, action, c.endpoint)
	}

	c.mu.Lock()
	if c.index(id) < 0 {
		c.mu.Unlock()
		return fmt.Errorf("row %s: %w", id, domain.ErrNotFound)
	}
	if c.busy[id] {
		c.mu.Unlock()
		metrics.RowActionsTotal.WithLabelValues(string(c.endpoint), string(action), "busy").Inc()
		return fmt.Errorf("row %s: %w", id, domain.ErrRowBusy)
	}
	c.busy[id] = true
	c.mu.Unlock()

	ok := c.call(ctx, domain.ID(id), action)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.busy, id)

	result := "ok"
	if !ok {
		result = "failed"
	}
	metrics.RowActionsTotal.WithLabelValues(string(c.endpoint), string(action), result).Inc()
	if !ok {
		return fmt.Errorf("%s row %s: %w", action, id, domain.ErrRequestFailed)
	}

	i := c.index(id)
	if i < 0 {
		return nil
	}
	if action == ActionDelete {
		c.records = slices.Delete(slices.Clone(c.records), i, i+1)
		c.state.SetPage(c.state.Page(), len(c.filtered()))
		return nil
	}
	patched := c.records[i].Clone()
	patched.Set("status", String(statusAfter[action]))
	c.records = slices.Clone(c.records)
	c.records[i] = patched

	c.log.Debug().Str("endpoint", string(c.endpoint)).Str("id", id).Str("action", string(action)).Msg("row updated")
	return nil
}

func (c *Controller) call(ctx context.Context, id domain.ID, action Action) bool {
	switch action {
	case ActionApprove:
		return c.updater.SetApproval(ctx, id, domain.ApprovalApproved)
	case ActionReject:
		return c.updater.SetApproval(ctx, id, domain.ApprovalRejected)
	case ActionAccept:
		return c.updater.SetBookingStatus(ctx, id, domain.BookingAccepted)
	case ActionDecline:
		return c.updater.SetBookingStatus(ctx, id, domain.BookingRejected)
	case ActionDelete:
		return c.updater.Delete(ctx, c.endpoint, id)
	}
	return false
}

// index finds a row by id. Callers hold mu.
func (c *Controller) index(id string) int {
	return slices.IndexFunc(c.records, func(r *Record) bool { return r.ID() == id })
}

// filtered applies the search term. Callers hold mu.
func (c *Controller) filtered() []*Record {
	return Filter(c.records, c.columns, c.state.Search())
}

// View renders the current page.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := c.filtered()
	page := c.state.Slice(rows)
	actions := ActionsFor(c.endpoint, c.role)

	v := View{
		Title:        c.title,
		Endpoint:     c.endpoint,
		Columns:      slices.Clone(c.columns),
		ActionColumn: HasActionColumn(c.endpoint, c.role),
		CanCreate:    CanCreate(c.endpoint, c.role),
		Search:       c.state.Search(),
		Page:         c.state.Page(),
		PageSize:     c.state.PageSize(),
		TotalPages:   TotalPages(len(rows), c.state.PageSize()),
		Total:        len(rows),
		HasPrev:      c.state.CanPrev(),
		HasNext:      c.state.CanNext(len(rows)),
		Window:       c.state.Window(len(rows)),
	}
	for _, col := range c.columns {
		v.Headers = append(v.Headers, FormatHeader(col))
	}
	for _, r := range page {
		row := Row{ID: r.ID()}
		for _, col := range c.columns {
			row.Cells = append(row.Cells, FormatCell(Lookup(r, col), col))
		}
		for _, a := range actions {
			row.Actions = append(row.Actions, ActionState{Action: a, Label: a.Label(), Disabled: c.busy[row.ID]})
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}
