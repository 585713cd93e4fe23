package client

import (
	"context"

	"sigx-cli/pkg/models"
)

// ListVehicles fetches every registered vehicle, ordered by plate.
func (c *SigxClient) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var respData models.VehicleListResponse

	resp, err := c.request(ctx).
		SetResult(&respData).
		Get("/api/veiculos/listar")
	if err := check("list vehicles", resp, err); err != nil {
		return nil, err
	}

	return respData.Vehicles, nil
}

// ListDrivers fetches the driver registry.
func (c *SigxClient) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	var respData models.DriverListResponse

	resp, err := c.request(ctx).
		SetResult(&respData).
		Get("/api/motoristas/listar")
	if err := check("list drivers", resp, err); err != nil {
		return nil, err
	}

	return respData.Drivers, nil
}
