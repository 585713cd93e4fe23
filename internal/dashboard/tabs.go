package dashboard

import (
	"context"
	"fmt"
	"strconv"

	"sigx-cli/internal/client"
	"sigx-cli/pkg/models"
)

// ShowTab switches the active panel and loads its data.
func (c *Controller) ShowTab(ctx context.Context, tab Tab) error {
	if _, err := ParseTab(string(tab)); err != nil {
		return err
	}

	c.mu.Lock()
	c.activeTab = tab
	c.mu.Unlock()

	switch tab {
	case TabDashboard:
		c.loadDashboard(ctx)
	case TabEvents:
		c.LoadEvents(ctx)
	case TabVehicles:
		c.loadVehicles()
	case TabPositions:
		c.LoadPositions(ctx)
	}
	return nil
}

// ActiveTab reports the tab currently shown.
func (c *Controller) ActiveTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTab
}

func (c *Controller) loadDashboard(ctx context.Context) {
	stats, err := c.backend.GetEventStats(ctx, 0)
	if err != nil {
		c.log.Error("failed to load dashboard", "err", err)
		c.showError("Failed to load dashboard")
		return
	}

	c.mu.Lock()
	c.counters = Counters{
		Total:     stats.Stats.Total,
		Approved:  stats.Stats.Approved,
		Pending:   stats.Stats.Pending,
		Automatic: stats.Stats.Automatic,
	}
	c.typeChart = typeDistributionChart(stats.ByType)
	c.timelineChart = timelineChart()
	c.mu.Unlock()

	c.loadRecentEvents(ctx)
}

func (c *Controller) loadRecentEvents(ctx context.Context) {
	events, err := c.backend.ListEvents(ctx, models.EventFilter{})
	if err != nil {
		c.log.Error("failed to load recent events", "err", err)
		c.showError("Failed to load recent events")
		return
	}
	if len(events) > c.opts.RecentEvents {
		events = events[:c.opts.RecentEvents]
	}

	cards := make([]EventCard, 0, len(events))
	for _, e := range events {
		cards = append(cards, NewEventCard(e))
	}

	c.mu.Lock()
	patch := c.recent.Reconcile(cards)
	c.mu.Unlock()
	c.log.Debug("recent events rendered", "added", len(patch.Added), "updated", len(patch.Updated), "removed", len(patch.Removed))
}

// ParseEventFilter converts the raw filter control values. Blank values
// leave the corresponding parameter out of the query.
func ParseEventFilter(vehicleID, approved string) (models.EventFilter, error) {
	var filter models.EventFilter
	if vehicleID != "" {
		id, err := strconv.ParseInt(vehicleID, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid vehicle id %q", vehicleID)
		}
		filter.VehicleID = id
	}
	if approved != "" {
		b, err := strconv.ParseBool(approved)
		if err != nil {
			return filter, fmt.Errorf("invalid status %q", approved)
		}
		filter.Approved = &b
	}
	return filter, nil
}

// SetEventFilter stores the filter selection and reloads the events list.
func (c *Controller) SetEventFilter(ctx context.Context, filter models.EventFilter) {
	c.mu.Lock()
	c.eventFilter = filter
	c.vehicleFilter.Selected = ""
	if filter.VehicleID != 0 {
		c.vehicleFilter.Selected = strconv.FormatInt(filter.VehicleID, 10)
	}
	c.statusFilter.Selected = ""
	if filter.Approved != nil {
		c.statusFilter.Selected = strconv.FormatBool(*filter.Approved)
	}
	c.mu.Unlock()

	c.LoadEvents(ctx)
}

// LoadEvents fetches the events matching the current filter.
func (c *Controller) LoadEvents(ctx context.Context) {
	c.mu.Lock()
	filter := c.eventFilter
	c.mu.Unlock()

	events, err := c.backend.ListEvents(ctx, filter)
	if err != nil {
		c.log.Error("failed to load events", "err", err)
		c.showError("Failed to load events")
		return
	}

	cards := make([]EventCard, 0, len(events))
	for _, e := range events {
		cards = append(cards, NewEventCard(e))
	}

	c.mu.Lock()
	patch := c.events.Reconcile(cards)
	c.mu.Unlock()
	c.log.Debug("events rendered", "count", len(cards), "added", len(patch.Added), "updated", len(patch.Updated), "removed", len(patch.Removed))
}

// loadVehicles renders the in-memory vehicle list; no fetch.
func (c *Controller) loadVehicles() {
	c.mu.Lock()
	defer c.mu.Unlock()

	cards := make([]VehicleCard, 0, len(c.vehicles))
	for _, v := range c.vehicles {
		cards = append(cards, vehicleCard(v))
	}
	c.vehicleCards.Reconcile(cards)
}

// SelectPositionsVehicle changes the vehicle of the positions panel and reloads it.
// Zero clears the selection.
func (c *Controller) SelectPositionsVehicle(ctx context.Context, vehicleID int64) {
	c.mu.Lock()
	c.positionVehicleID = vehicleID
	c.positionVehicle.Selected = ""
	if vehicleID != 0 {
		c.positionVehicle.Selected = strconv.FormatInt(vehicleID, 10)
	}
	c.mu.Unlock()

	c.LoadPositions(ctx)
}

// LoadPositions fetches statistics and recent positions of the selected
// vehicle. Without a selection it does nothing. A vehicle without stored
// positions answers 404 for its statistics; that leaves the summary empty
// and the list is still loaded. Any other failure clears both.
func (c *Controller) LoadPositions(ctx context.Context) {
	c.mu.Lock()
	vehicleID := c.positionVehicleID
	c.mu.Unlock()
	if vehicleID == 0 {
		return
	}

	var summary *PositionSummary
	stats, err := c.backend.GetPositionStats(ctx, vehicleID)
	switch {
	case client.IsNotFound(err):
		c.log.Debug("no position statistics", "vehicle_id", vehicleID)
	case err != nil:
		c.log.Error("failed to load position statistics", "vehicle_id", vehicleID, "err", err)
		c.clearPositions()
		c.showError("Failed to load positions")
		return
	default:
		summary = &PositionSummary{
			Total:           stats.Stats.Total,
			Processed:       stats.Stats.Processed,
			DistanceKm:      stats.Stats.DistanceKm,
			AverageSpeedKmh: stats.Stats.AverageSpeedKmh,
		}
	}

	positions, err := c.backend.ListPositions(ctx, vehicleID, models.PositionFilter{Limit: c.opts.PositionsLimit})
	if err != nil && !client.IsNotFound(err) {
		c.log.Error("failed to load positions", "vehicle_id", vehicleID, "err", err)
		c.clearPositions()
		c.showError("Failed to load positions")
		return
	}

	rows := make([]PositionRow, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, positionRow(p))
	}

	c.mu.Lock()
	c.posSummary = summary
	c.positions.Reconcile(rows)
	c.mu.Unlock()
}

func (c *Controller) clearPositions() {
	c.mu.Lock()
	c.posSummary = nil
	c.positions.Reconcile(nil)
	c.mu.Unlock()
}
