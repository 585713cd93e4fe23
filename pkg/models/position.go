package models

import "encoding/json"

// PositionListResponse wraps GET /api/posicoes/veiculo/{id}
type PositionListResponse struct {
	Positions []Position `json:"posicoes"`
	Total     int        `json:"total"`
}

// Position is a single raw tracker fix.
type Position struct {
	ID             int64    `json:"id" yaml:"id"`
	VehicleID      int64    `json:"veiculo_id" yaml:"vehicle_id"`
	Timestamp      Time     `json:"data_hora" yaml:"timestamp"`
	Latitude       *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Speed          float64  `json:"velocidade" yaml:"speed"`
	Address        string   `json:"endereco,omitempty" yaml:"address,omitempty"`
	ReferencePoint string   `json:"ponto_referencia,omitempty" yaml:"reference_point,omitempty"`
	Processed      bool     `json:"processado" yaml:"processed"`
}

// PositionFilter narrows GET /api/posicoes/veiculo/{id}.
type PositionFilter struct {
	Limit     int
	Processed *bool
	From      string
	To        string
}

// PositionStatsResponse wraps GET /api/posicoes/estatisticas/{id}
type PositionStatsResponse struct {
	VehicleID int64         `json:"veiculo_id" yaml:"vehicle_id"`
	Period    *StatsPeriod  `json:"periodo,omitempty" yaml:"period,omitempty"`
	Stats     PositionStats `json:"estatisticas" yaml:"stats"`
}

type StatsPeriod struct {
	Start         Time    `json:"inicio" yaml:"start"`
	End           Time    `json:"fim" yaml:"end"`
	DurationHours float64 `json:"duracao_horas" yaml:"duration_hours"`
}

type PositionStats struct {
	Total           int     `json:"total_posicoes" yaml:"total"`
	Processed       int     `json:"posicoes_processadas" yaml:"processed"`
	Pending         int     `json:"posicoes_pendentes" yaml:"pending"`
	Stopped         int     `json:"posicoes_parado" yaml:"stopped"`
	Moving          int     `json:"posicoes_movimento" yaml:"moving"`
	DistanceKm      float64 `json:"distancia_total_km" yaml:"distance_km"`
	MovingHours     float64 `json:"tempo_movimento_horas" yaml:"moving_hours"`
	StoppedHours    float64 `json:"tempo_parado_horas" yaml:"stopped_hours"`
	AverageSpeedKmh float64 `json:"velocidade_media_kmh" yaml:"average_speed_kmh"`
}

// ClassifyResult is returned by POST /api/posicoes/classificar/{id}
type ClassifyResult struct {
	Success          bool `json:"sucesso" yaml:"success"`
	EventsClassified int  `json:"eventos_classificados" yaml:"events_classified"`
}

// ImportResult is returned by POST /api/posicoes/importar.
// EventsClassified is nil when classification did not run.
type ImportResult struct {
	Success           bool     `json:"sucesso" yaml:"success"`
	Imported          int      `json:"posicoes_importadas" yaml:"imported"`
	Duplicates        int      `json:"posicoes_duplicadas" yaml:"duplicates"`
	EventsClassified  *int     `json:"eventos_classificados,omitempty" yaml:"events_classified,omitempty"`
	ClassificationErr string   `json:"erro_classificacao,omitempty" yaml:"classification_error,omitempty"`
	Vehicle           *Vehicle `json:"veiculo,omitempty" yaml:"vehicle,omitempty"`
}

// ImportPayload is an arbitrary import document plus the classification flag.
// The document is kept as raw JSON so unknown tracker fields reach the backend untouched.
type ImportPayload map[string]json.RawMessage

// ImportExample wraps GET /api/posicoes/exemplo-importacao
type ImportExample struct {
	Example      json.RawMessage   `json:"exemplo"`
	Instructions map[string]string `json:"instrucoes,omitempty"`
}

// Status is returned by GET /api/status
type Status struct {
	Status  string            `json:"status" yaml:"status"`
	System  string            `json:"sistema" yaml:"system"`
	Version string            `json:"versao" yaml:"version"`
	Modules map[string]string `json:"modulos,omitempty" yaml:"modules,omitempty"`
}

// ErrorResponse is the backend's error body.
type ErrorResponse struct {
	Message string `json:"erro"`
}
