package client

import (
	"context"
	"encoding/json"
	"strconv"

	"sigx-cli/pkg/models"
)

// DefaultPositionLimit is how many recent positions the dashboard asks for.
const DefaultPositionLimit = 50

// GetImportExample fetches the sample import document.
func (c *SigxClient) GetImportExample(ctx context.Context) (*models.ImportExample, error) {
	var respData models.ImportExample

	resp, err := c.request(ctx).
		SetResult(&respData).
		Get("/api/posicoes/exemplo-importacao")
	if err := check("get import example", resp, err); err != nil {
		return nil, err
	}

	return &respData, nil
}

// ListPositions fetches the most recent positions of a vehicle.
func (c *SigxClient) ListPositions(ctx context.Context, vehicleID int64, filter models.PositionFilter) ([]models.Position, error) {
	var respData models.PositionListResponse

	req := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(vehicleID, 10))
	if filter.Limit > 0 {
		req.SetQueryParam("limite", strconv.Itoa(filter.Limit))
	}
	if filter.Processed != nil {
		req.SetQueryParam("processado", strconv.FormatBool(*filter.Processed))
	}
	if filter.From != "" {
		req.SetQueryParam("data_inicio", filter.From)
	}
	if filter.To != "" {
		req.SetQueryParam("data_fim", filter.To)
	}

	resp, err := req.
		SetResult(&respData).
		Get("/api/posicoes/veiculo/{id}")
	if err := check("list positions", resp, err); err != nil {
		return nil, err
	}

	return respData.Positions, nil
}

// GetPositionStats fetches count, distance and speed figures for a vehicle.
// The backend answers 404 when the vehicle has no positions at all.
func (c *SigxClient) GetPositionStats(ctx context.Context, vehicleID int64) (*models.PositionStatsResponse, error) {
	var respData models.PositionStatsResponse

	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(vehicleID, 10)).
		SetResult(&respData).
		Get("/api/posicoes/estatisticas/{id}")
	if err := check("get position statistics", resp, err); err != nil {
		return nil, err
	}

	return &respData, nil
}

// ClassifyPositions asks the backend to derive events from the vehicle's unprocessed positions.
func (c *SigxClient) ClassifyPositions(ctx context.Context, vehicleID int64) (*models.ClassifyResult, error) {
	var respData models.ClassifyResult

	resp, err := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(vehicleID, 10)).
		SetBody(map[string]any{}).
		SetResult(&respData).
		Post("/api/posicoes/classificar/{id}")
	if err := check("classify positions", resp, err); err != nil {
		return nil, err
	}

	return &respData, nil
}

// ImportPositions submits an import document. The classification flag
// overrides whatever the document carried.
func (c *SigxClient) ImportPositions(ctx context.Context, payload models.ImportPayload, classify bool) (*models.ImportResult, error) {
	var respData models.ImportResult

	body := make(models.ImportPayload, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	flag, err := json.Marshal(classify)
	if err != nil {
		return nil, err
	}
	body["classificar_automaticamente"] = flag

	resp, err := c.request(ctx).
		SetBody(body).
		SetResult(&respData).
		Post("/api/posicoes/importar")
	if err := check("import positions", resp, err); err != nil {
		return nil, err
	}

	return &respData, nil
}
