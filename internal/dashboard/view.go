package dashboard

import (
	"sigx-cli/pkg/models"
)

const (
	fallbackColor = "#6B7280"
	unassigned    = "Unassigned"
)

// SelectOption is one <option> of a selection widget.
type SelectOption struct {
	Value string
	Label string
}

// Select is a selection widget rebuilt from the reference data.
type Select struct {
	ID       string
	Options  []SelectOption
	Selected string
}

// Counters are the four dashboard figures.
type Counters struct {
	Total     int
	Approved  int
	Pending   int
	Automatic int
}

// EventCard is the rendered form of an event in the events and recent lists.
type EventCard struct {
	ID         int64
	Color      string
	TypeName   string
	Plate      string
	DriverName string
	Start      string
	End        string
	Duration   string
	Approved   bool
	Automatic  bool
	CanApprove bool
	Notes      string
}

// VehicleCard is the rendered form of a vehicle.
type VehicleCard struct {
	ID         int64
	Plate      string
	Identifier string
	Active     bool
	DriverName string
}

// PositionRow is the rendered form of a tracker position.
type PositionRow struct {
	ID        int64
	Timestamp string
	Address   string
	Speed     float64
	Processed bool
}

// PositionSummary is the per-vehicle statistics block.
type PositionSummary struct {
	Total           int
	Processed       int
	DistanceKm      float64
	AverageSpeedKmh float64
}

// EditForm mirrors the event edit modal fields.
type EditForm struct {
	EventID     int64
	EventTypeID int64
	Approved    bool
	Start       string
	End         string
	Notes       string
}

// ImportSummary is shown after a successful import.
type ImportSummary struct {
	Imported   int
	Duplicates int
	Classified *int
}

// View is an immutable snapshot of the dashboard, handed to renderers.
type View struct {
	ActiveTab Tab
	Nav       []NavEntry
	Panels    []Panel

	VehicleFilter   Select
	StatusFilter    Select
	PositionVehicle Select
	EventTypeSelect Select

	Counters      Counters
	TypeChart     *Chart
	TimelineChart *Chart
	RecentEvents  []EventCard

	Events          []EventCard
	Vehicles        []VehicleCard
	Positions       []PositionRow
	PositionSummary *PositionSummary

	ImportExample string
	ImportFile    string
	ImportEnabled bool
	ImportSummary *ImportSummary

	ModalOpen bool
	Form      EditForm

	Loading bool
	Toasts  []Toast
}

// NewEventCard renders an event with the list fallbacks applied.
func NewEventCard(e models.Event) EventCard {
	card := EventCard{
		ID:         e.ID,
		Color:      fallbackColor,
		TypeName:   notAvailable,
		Plate:      notAvailable,
		DriverName: notAvailable,
		Start:      FormatDateTime(e.Start.Time),
		End:        FormatDateTime(e.End.Time),
		Duration:   formatDuration(e.DurationMinutes),
		Approved:   e.Approved,
		Automatic:  e.Automatic,
		CanApprove: !e.Approved,
		Notes:      e.Notes,
	}
	if e.EventType != nil {
		if e.EventType.Color != "" {
			card.Color = e.EventType.Color
		}
		if e.EventType.Name != "" {
			card.TypeName = e.EventType.Name
		}
	}
	if e.Vehicle != nil && e.Vehicle.Plate != "" {
		card.Plate = e.Vehicle.Plate
	}
	if e.Driver != nil && e.Driver.Name != "" {
		card.DriverName = e.Driver.Name
	}
	return card
}

func vehicleCard(v models.Vehicle) VehicleCard {
	card := VehicleCard{
		ID:         v.ID,
		Plate:      v.Plate,
		Identifier: v.Identifier,
		Active:     v.Active,
		DriverName: unassigned,
	}
	if card.Identifier == "" {
		card.Identifier = notAvailable
	}
	if v.Driver != nil && v.Driver.Name != "" {
		card.DriverName = v.Driver.Name
	}
	return card
}

func positionRow(p models.Position) PositionRow {
	row := PositionRow{
		ID:        p.ID,
		Timestamp: FormatDateTime(p.Timestamp.Time),
		Address:   p.Address,
		Speed:     p.Speed,
		Processed: p.Processed,
	}
	if row.Address == "" {
		row.Address = notAvailable
	}
	return row
}

func vehicleOptionLabel(v models.Vehicle) string {
	id := v.Identifier
	if id == "" {
		id = notAvailable
	}
	return v.Plate + " - " + id
}
