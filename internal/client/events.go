package client

import (
	"context"
	"strconv"

	"sigx-cli/pkg/models"
)

// ListEventTypes fetches the active event taxonomy.
func (c *SigxClient) ListEventTypes(ctx context.Context) ([]models.EventType, error) {
	var respData models.EventTypeListResponse

	resp, err := c.request(ctx).
		SetResult(&respData).
		Get("/api/eventos/tipos")
	if err := check("list event types", resp, err); err != nil {
		return nil, err
	}

	return respData.EventTypes, nil
}

// ListEvents fetches events, newest first. Unset filter fields are not sent.
func (c *SigxClient) ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	var respData models.EventListResponse

	req := c.request(ctx)
	if filter.VehicleID != 0 {
		req.SetQueryParam("veiculo_id", strconv.FormatInt(filter.VehicleID, 10))
	}
	if filter.DriverID != 0 {
		req.SetQueryParam("motorista_id", strconv.FormatInt(filter.DriverID, 10))
	}
	if filter.EventTypeID != 0 {
		req.SetQueryParam("tipo_evento_id", strconv.FormatInt(filter.EventTypeID, 10))
	}
	if filter.Approved != nil {
		req.SetQueryParam("aprovado", strconv.FormatBool(*filter.Approved))
	}
	if filter.Automatic != nil {
		req.SetQueryParam("classificacao_automatica", strconv.FormatBool(*filter.Automatic))
	}
	if filter.From != "" {
		req.SetQueryParam("data_inicio", filter.From)
	}
	if filter.To != "" {
		req.SetQueryParam("data_fim", filter.To)
	}

	resp, err := req.
		SetResult(&respData).
		Get("/api/eventos/listar")
	if err := check("list events", resp, err); err != nil {
		return nil, err
	}

	return respData.Events, nil
}

// GetEvent fetches a single event with its type, vehicle and driver embedded.
func (c *SigxClient) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event

	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(&event).
		Get("/api/eventos/{id}")
	if err := check("get event", resp, err); err != nil {
		return nil, err
	}

	return &event, nil
}

// UpdateEvent sends a partial update. The backend clears the approval of
// manually classified events on every update.
func (c *SigxClient) UpdateEvent(ctx context.Context, id int64, payload models.EventUpdatePayload) (*models.Event, error) {
	var respData models.EventMutationResponse

	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(payload).
		SetResult(&respData).
		Put("/api/eventos/{id}/atualizar")
	if err := check("update event", resp, err); err != nil {
		return nil, err
	}

	return respData.Event, nil
}

// CreateEvent registers a journey event and returns it as stored.
func (c *SigxClient) CreateEvent(ctx context.Context, payload models.EventCreatePayload) (*models.Event, error) {
	var respData models.EventMutationResponse

	resp, err := c.request(ctx).
		SetBody(payload).
		SetResult(&respData).
		Post("/api/eventos/criar")
	if err := check("create event", resp, err); err != nil {
		return nil, err
	}

	return respData.Event, nil
}

// ApproveEvent marks the event as approved by user.
func (c *SigxClient) ApproveEvent(ctx context.Context, id int64, user string) (*models.Event, error) {
	var respData models.EventMutationResponse

	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(models.ApprovePayload{User: user}).
		SetResult(&respData).
		Post("/api/eventos/{id}/aprovar")
	if err := check("approve event", resp, err); err != nil {
		return nil, err
	}

	return respData.Event, nil
}

// RejectEvent removes a previous approval.
func (c *SigxClient) RejectEvent(ctx context.Context, id int64) (*models.Event, error) {
	var respData models.EventMutationResponse

	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(&respData).
		Post("/api/eventos/{id}/reprovar")
	if err := check("reject event", resp, err); err != nil {
		return nil, err
	}

	return respData.Event, nil
}

// DeleteEvent removes an event. The backend refuses events already synced to SIGx.
func (c *SigxClient) DeleteEvent(ctx context.Context, id int64) error {
	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/api/eventos/{id}/excluir")
	return check("delete event", resp, err)
}

// GetEventStats fetches the aggregate counters shown on the dashboard.
func (c *SigxClient) GetEventStats(ctx context.Context, vehicleID int64) (*models.EventStatsResponse, error) {
	var respData models.EventStatsResponse

	req := c.request(ctx)
	if vehicleID != 0 {
		req.SetQueryParam("veiculo_id", strconv.FormatInt(vehicleID, 10))
	}

	resp, err := req.
		SetResult(&respData).
		Get("/api/eventos/estatisticas")
	if err := check("get event statistics", resp, err); err != nil {
		return nil, err
	}

	return &respData, nil
}
