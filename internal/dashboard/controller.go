// Package dashboard holds the state and flows of the SIGx operator dashboard.
// Renderers (the web UI) read immutable View snapshots and call the
// Controller operations; the Controller is the only writer of UI state.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"sigx-cli/internal/client"
	"sigx-cli/internal/config"
	"sigx-cli/pkg/models"
)

// Backend is the subset of the SIGx API the dashboard consumes.
// *client.SigxClient satisfies it.
type Backend interface {
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	ListEventTypes(ctx context.Context) ([]models.EventType, error)
	GetImportExample(ctx context.Context) (*models.ImportExample, error)
	GetEventStats(ctx context.Context, vehicleID int64) (*models.EventStatsResponse, error)
	ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	UpdateEvent(ctx context.Context, id int64, payload models.EventUpdatePayload) (*models.Event, error)
	ApproveEvent(ctx context.Context, id int64, user string) (*models.Event, error)
	ClassifyPositions(ctx context.Context, vehicleID int64) (*models.ClassifyResult, error)
	GetPositionStats(ctx context.Context, vehicleID int64) (*models.PositionStatsResponse, error)
	ListPositions(ctx context.Context, vehicleID int64, filter models.PositionFilter) ([]models.Position, error)
	ImportPositions(ctx context.Context, payload models.ImportPayload, classify bool) (*models.ImportResult, error)
}

// Options tune a Controller. Zero values fall back to defaults.
type Options struct {
	// Approver is the fixed actor identity sent with approvals.
	Approver       string
	PositionsLimit int
	RecentEvents   int
	Logger         *slog.Logger
	Now            func() time.Time
}

const (
	defaultRecentEvents = 5

	vehicleFilterID   = "filter-vehicle"
	statusFilterID    = "filter-status"
	positionVehicleID = "positions-vehicle"
	eventTypeSelectID = "event-type"
)

// Controller owns all dashboard state. It is safe for concurrent use; the
// lock is never held across a backend call.
type Controller struct {
	backend Backend
	opts    Options
	log     *slog.Logger

	mu sync.Mutex

	// reference data, written once by LoadReferenceData
	vehicles   []models.Vehicle
	eventTypes []models.EventType
	example    string

	activeTab Tab

	vehicleFilter   Select
	statusFilter    Select
	positionVehicle Select
	eventTypeSelect Select

	eventFilter       models.EventFilter
	positionVehicleID int64

	counters      Counters
	typeChart     *Chart
	timelineChart *Chart
	recent        *KeyedList[int64, EventCard]
	events        *KeyedList[int64, EventCard]
	vehicleCards  *KeyedList[int64, VehicleCard]
	positions     *KeyedList[int64, PositionRow]
	posSummary    *PositionSummary

	importFile    *ImportFile
	importSummary *ImportSummary

	modalOpen bool
	form      EditForm

	loading int
	toasts  []Toast
}

func New(backend Backend, opts Options) *Controller {
	if opts.Approver == "" {
		opts.Approver = config.DefaultApprover
	}
	if opts.PositionsLimit <= 0 {
		opts.PositionsLimit = client.DefaultPositionLimit
	}
	if opts.RecentEvents <= 0 {
		opts.RecentEvents = defaultRecentEvents
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cardKey := func(c EventCard) int64 { return c.ID }
	c := &Controller{
		backend:      backend,
		opts:         opts,
		log:          opts.Logger,
		recent:       NewKeyedList(cardKey),
		events:       NewKeyedList(cardKey),
		vehicleCards: NewKeyedList(func(v VehicleCard) int64 { return v.ID }),
		positions:    NewKeyedList(func(p PositionRow) int64 { return p.ID }),
		statusFilter: Select{
			ID: statusFilterID,
			Options: []SelectOption{
				{Value: "", Label: "All statuses"},
				{Value: "false", Label: "Pending"},
				{Value: "true", Label: "Approved"},
			},
		},
	}
	c.populateSelects()
	return c
}

// Bootstrap loads the reference data and opens the dashboard tab.
func (c *Controller) Bootstrap(ctx context.Context) error {
	c.LoadReferenceData(ctx)
	return c.ShowTab(ctx, TabDashboard)
}

// LoadReferenceData fetches vehicles, event types and the import example
// concurrently. A failed fetch is logged and leaves that resource empty.
func (c *Controller) LoadReferenceData(ctx context.Context) {
	var (
		g          errgroup.Group
		vehicles   []models.Vehicle
		eventTypes []models.EventType
		example    string
	)

	g.Go(func() error {
		v, err := c.backend.ListVehicles(ctx)
		if err != nil {
			c.log.Error("failed to load vehicles", "err", err)
			return nil
		}
		vehicles = v
		return nil
	})
	g.Go(func() error {
		t, err := c.backend.ListEventTypes(ctx)
		if err != nil {
			c.log.Error("failed to load event types", "err", err)
			return nil
		}
		eventTypes = t
		return nil
	})
	g.Go(func() error {
		ex, err := c.backend.GetImportExample(ctx)
		if err != nil {
			c.log.Error("failed to load import example", "err", err)
			return nil
		}
		example = prettyJSON(ex.Example)
		return nil
	})
	_ = g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.vehicles = vehicles
	c.eventTypes = eventTypes
	c.example = example
	c.populateSelects()

	c.log.Info("reference data loaded", "vehicles", len(vehicles), "event_types", len(eventTypes))
}

// populateSelects rebuilds every selection widget from the in-memory
// reference arrays. Callers hold c.mu (or own c exclusively).
func (c *Controller) populateSelects() {
	vehicleOptions := func(blank string) []SelectOption {
		opts := []SelectOption{{Value: "", Label: blank}}
		for _, v := range c.vehicles {
			opts = append(opts, SelectOption{
				Value: strconv.FormatInt(v.ID, 10),
				Label: vehicleOptionLabel(v),
			})
		}
		return opts
	}

	c.vehicleFilter = Select{ID: vehicleFilterID, Options: vehicleOptions("All vehicles"), Selected: c.vehicleFilter.Selected}
	c.positionVehicle = Select{ID: positionVehicleID, Options: vehicleOptions("Select a vehicle"), Selected: c.positionVehicle.Selected}

	typeOptions := make([]SelectOption, 0, len(c.eventTypes))
	for _, t := range c.eventTypes {
		typeOptions = append(typeOptions, SelectOption{
			Value: strconv.FormatInt(t.ID, 10),
			Label: t.Name,
		})
	}
	c.eventTypeSelect = Select{ID: eventTypeSelectID, Options: typeOptions, Selected: c.eventTypeSelect.Selected}
}

// View returns a snapshot of the current state. Expired toasts are dropped.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.toasts = pruneToasts(c.toasts, c.opts.Now())
	nav, panels := navFor(c.activeTab)

	v := View{
		ActiveTab:       c.activeTab,
		Nav:             nav,
		Panels:          panels,
		VehicleFilter:   cloneSelect(c.vehicleFilter),
		StatusFilter:    cloneSelect(c.statusFilter),
		PositionVehicle: cloneSelect(c.positionVehicle),
		EventTypeSelect: cloneSelect(c.eventTypeSelect),
		Counters:        c.counters,
		TypeChart:       c.typeChart,
		TimelineChart:   c.timelineChart,
		RecentEvents:    items(c.recent.Rows()),
		Events:          items(c.events.Rows()),
		Vehicles:        items(c.vehicleCards.Rows()),
		Positions:       items(c.positions.Rows()),
		PositionSummary: c.posSummary,
		ImportExample:   c.example,
		ImportEnabled:   c.importFile != nil,
		ImportSummary:   c.importSummary,
		ModalOpen:       c.modalOpen,
		Form:            c.form,
		Loading:         c.loading > 0,
		Toasts:          append([]Toast(nil), c.toasts...),
	}
	if c.importFile != nil {
		v.ImportFile = c.importFile.Name
	}
	return v
}

// Vehicles returns the in-memory vehicle list.
func (c *Controller) Vehicles() []models.Vehicle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Vehicle(nil), c.vehicles...)
}

// EventTypes returns the in-memory event taxonomy.
func (c *Controller) EventTypes() []models.EventType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.EventType(nil), c.eventTypes...)
}

func (c *Controller) notify(kind ToastKind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toasts = append(pruneToasts(c.toasts, c.opts.Now()), newToast(kind, message, c.opts.Now()))
}

func (c *Controller) showSuccess(message string) {
	c.notify(ToastSuccess, message)
}

func (c *Controller) showError(message string) {
	c.notify(ToastError, message)
}

func (c *Controller) showLoading() {
	c.mu.Lock()
	c.loading++
	c.mu.Unlock()
}

func (c *Controller) hideLoading() {
	c.mu.Lock()
	if c.loading > 0 {
		c.loading--
	}
	c.mu.Unlock()
}

func items[K comparable, T comparable](rows []Row[K, T]) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Item)
	}
	return out
}

func cloneSelect(s Select) Select {
	s.Options = append([]SelectOption(nil), s.Options...)
	return s
}

func prettyJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
