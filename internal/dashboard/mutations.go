package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"sigx-cli/internal/client"
	"sigx-cli/pkg/models"
)

// ImportFile is a user-selected position batch.
type ImportFile struct {
	Name string
	Body io.Reader
}

// EditEvent fetches an event, fills the edit form and opens the modal.
func (c *Controller) EditEvent(ctx context.Context, id int64) {
	event, err := c.backend.GetEvent(ctx, id)
	if err != nil {
		c.log.Error("failed to load event", "event_id", id, "err", err)
		c.showError("Failed to load event")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = EditForm{
		EventID:     event.ID,
		EventTypeID: event.EventTypeID,
		Approved:    event.Approved,
		Start:       FormatDateTimeInput(event.Start.Time),
		End:         FormatDateTimeInput(event.End.Time),
		Notes:       event.Notes,
	}
	c.eventTypeSelect.Selected = fmt.Sprint(event.EventTypeID)
	c.modalOpen = true
}

// CloseModal hides the edit modal. The form keeps its last values.
func (c *Controller) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modalOpen = false
}

// SaveEvent submits the edited fields. When the form marks the event as
// approved, the approval is issued after the update succeeds; the two calls
// are not atomic and a failed approval leaves the update in place.
func (c *Controller) SaveEvent(ctx context.Context, form EditForm) error {
	c.showLoading()
	defer c.hideLoading()

	if _, err := c.backend.UpdateEvent(ctx, form.EventID, updatePayload(form)); err != nil {
		c.log.Error("failed to save event", "event_id", form.EventID, "err", err)
		c.showError("Failed to save event")
		return err
	}

	c.mu.Lock()
	c.form = form
	c.modalOpen = false
	c.mu.Unlock()

	c.LoadEvents(ctx)
	c.showSuccess("Event updated successfully")

	if form.Approved {
		return c.ApproveEvent(ctx, form.EventID)
	}
	return nil
}

func updatePayload(form EditForm) models.EventUpdatePayload {
	payload := models.EventUpdatePayload{
		Notes: &form.Notes,
	}
	if form.EventTypeID != 0 {
		typeID := form.EventTypeID
		payload.EventTypeID = &typeID
	}
	if form.Start != "" {
		start := form.Start
		payload.Start = &start
	}
	if form.End != "" {
		end := form.End
		payload.End = &end
	}
	return payload
}

// ApproveEvent approves the event as the configured actor.
func (c *Controller) ApproveEvent(ctx context.Context, id int64) error {
	c.showLoading()
	defer c.hideLoading()

	if _, err := c.backend.ApproveEvent(ctx, id, c.opts.Approver); err != nil {
		c.log.Error("failed to approve event", "event_id", id, "err", err)
		c.showError("Failed to approve event")
		return err
	}

	c.LoadEvents(ctx)
	c.showSuccess("Event approved successfully")
	return nil
}

// ErrNoVehicleSelected is returned by flows that need a positions vehicle.
var ErrNoVehicleSelected = errors.New("no vehicle selected")

// ErrNoFileSelected is returned by Import without a selected file.
var ErrNoFileSelected = errors.New("no file selected")

// Classify triggers server-side classification of the selected vehicle's
// unprocessed positions. Without a selection no request is made.
func (c *Controller) Classify(ctx context.Context) error {
	c.mu.Lock()
	vehicleID := c.positionVehicleID
	c.mu.Unlock()

	if vehicleID == 0 {
		c.showError("Select a vehicle")
		return ErrNoVehicleSelected
	}

	c.showLoading()
	defer c.hideLoading()

	result, err := c.backend.ClassifyPositions(ctx, vehicleID)
	if err != nil {
		c.log.Error("classification failed", "vehicle_id", vehicleID, "err", err)
		c.showError(client.ErrorMessage(err, "Automatic classification failed"))
		return err
	}

	c.showSuccess(fmt.Sprintf("%d events classified automatically", result.EventsClassified))
	c.LoadPositions(ctx)
	return nil
}

// SelectImportFile records the file picked for import; nil clears it.
func (c *Controller) SelectImportFile(f *ImportFile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.importFile = f
}

// Import reads the selected file, parses it as a JSON document, sets the
// classification flag and submits it. The selection is consumed by the
// attempt, so a retry needs the file picked again.
func (c *Controller) Import(ctx context.Context, classify bool) error {
	c.mu.Lock()
	file := c.importFile
	c.importFile = nil
	c.mu.Unlock()

	if file == nil {
		c.showError("Select a file")
		return ErrNoFileSelected
	}

	c.showLoading()
	defer c.hideLoading()

	result, err := c.submitImport(ctx, file, classify)
	if err != nil {
		c.log.Error("import failed", "file", file.Name, "err", err)
		c.showError("Import failed: " + client.ErrorMessage(err, err.Error()))
		return err
	}

	c.mu.Lock()
	c.importSummary = &ImportSummary{
		Imported:   result.Imported,
		Duplicates: result.Duplicates,
		Classified: result.EventsClassified,
	}
	c.mu.Unlock()

	c.log.Info("positions imported", "file", file.Name, "imported", result.Imported, "duplicates", result.Duplicates)
	return nil
}

func (c *Controller) submitImport(ctx context.Context, file *ImportFile, classify bool) (*models.ImportResult, error) {
	text, err := io.ReadAll(file.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Name, err)
	}

	var payload models.ImportPayload
	if err := json.Unmarshal(text, &payload); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file.Name, err)
	}

	return c.backend.ImportPositions(ctx, payload, classify)
}
