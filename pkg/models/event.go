package models

// EventTypeListResponse wraps GET /api/eventos/tipos
type EventTypeListResponse struct {
	EventTypes []EventType `json:"tipos_evento"`
	Total      int         `json:"total"`
}

// EventType is an entry of the journey event taxonomy (lunch, fueling, driving...).
type EventType struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"nome" yaml:"name"`
	Description string `json:"descricao,omitempty" yaml:"description,omitempty"`
	Color       string `json:"cor_hex,omitempty" yaml:"color,omitempty"`
	MinMinutes  *int   `json:"duracao_minima,omitempty" yaml:"min_minutes,omitempty"`
	MaxMinutes  *int   `json:"duracao_maxima,omitempty" yaml:"max_minutes,omitempty"`
	Automatic   bool   `json:"automatico" yaml:"automatic"`
	Active      bool   `json:"ativo" yaml:"active"`
}

// EventListResponse wraps GET /api/eventos/listar
type EventListResponse struct {
	Events []Event `json:"eventos"`
	Total  int     `json:"total"`
}

// Event is a classified journey occurrence awaiting or having received approval.
type Event struct {
	ID              int64      `json:"id" yaml:"id"`
	VehicleID       int64      `json:"veiculo_id" yaml:"vehicle_id"`
	DriverID        int64      `json:"motorista_id" yaml:"driver_id"`
	EventTypeID     int64      `json:"tipo_evento_id" yaml:"event_type_id"`
	Start           Time       `json:"data_inicio" yaml:"start"`
	End             Time       `json:"data_fim" yaml:"end"`
	DurationMinutes *int       `json:"duracao_minutos,omitempty" yaml:"duration_minutes,omitempty"`
	StartAddress    string     `json:"endereco_inicio,omitempty" yaml:"start_address,omitempty"`
	EndAddress      string     `json:"endereco_fim,omitempty" yaml:"end_address,omitempty"`
	Notes           string     `json:"observacoes,omitempty" yaml:"notes,omitempty"`
	Automatic       bool       `json:"classificacao_automatica" yaml:"automatic"`
	Approved        bool       `json:"aprovado" yaml:"approved"`
	ApprovedBy      string     `json:"usuario_aprovacao,omitempty" yaml:"approved_by,omitempty"`
	ApprovedAt      Time       `json:"data_aprovacao" yaml:"approved_at"`
	SyncedSigx      bool       `json:"sincronizado_sigx" yaml:"synced_sigx"`
	EventType       *EventType `json:"tipo_evento,omitempty" yaml:"event_type,omitempty"`
	Vehicle         *Vehicle   `json:"veiculo,omitempty" yaml:"vehicle,omitempty"`
	Driver          *Driver    `json:"motorista,omitempty" yaml:"driver,omitempty"`
}

// EventMutationResponse is returned by update/approve/reject.
type EventMutationResponse struct {
	Success bool   `json:"sucesso"`
	Event   *Event `json:"evento,omitempty"`
}

// EventUpdatePayload is the partial body for PUT /api/eventos/{id}/atualizar.
// Nil pointers are left out so the backend keeps the stored value.
type EventUpdatePayload struct {
	EventTypeID *int64  `json:"tipo_evento_id,omitempty"`
	Start       *string `json:"data_inicio,omitempty"`
	End         *string `json:"data_fim,omitempty"`
	Notes       *string `json:"observacoes,omitempty"`
}

// EventCreatePayload is the body for POST /api/eventos/criar. Vehicle, driver,
// type and start are required by the backend.
type EventCreatePayload struct {
	VehicleID    int64    `json:"veiculo_id"`
	DriverID     int64    `json:"motorista_id"`
	EventTypeID  int64    `json:"tipo_evento_id"`
	Start        string   `json:"data_inicio"`
	End          string   `json:"data_fim,omitempty"`
	StartLat     *float64 `json:"latitude_inicio,omitempty"`
	StartLon     *float64 `json:"longitude_inicio,omitempty"`
	EndLat       *float64 `json:"latitude_fim,omitempty"`
	EndLon       *float64 `json:"longitude_fim,omitempty"`
	StartAddress string   `json:"endereco_inicio,omitempty"`
	EndAddress   string   `json:"endereco_fim,omitempty"`
	Notes        string   `json:"observacoes,omitempty"`
	Automatic    bool     `json:"classificacao_automatica,omitempty"`
}

// ApprovePayload is the body for POST /api/eventos/{id}/aprovar
type ApprovePayload struct {
	User string `json:"usuario"`
}

// EventFilter narrows GET /api/eventos/listar. Zero values are omitted from the query.
type EventFilter struct {
	VehicleID   int64
	DriverID    int64
	EventTypeID int64
	Approved    *bool
	Automatic   *bool
	From        string
	To          string
}

// EventStatsResponse wraps GET /api/eventos/estatisticas
type EventStatsResponse struct {
	Stats  EventStats     `json:"estatisticas" yaml:"stats"`
	ByType map[string]int `json:"por_tipo" yaml:"by_type"`
}

type EventStats struct {
	Total            int     `json:"total_eventos" yaml:"total"`
	Approved         int     `json:"eventos_aprovados" yaml:"approved"`
	Pending          int     `json:"eventos_pendentes" yaml:"pending"`
	Automatic        int     `json:"eventos_automaticos" yaml:"automatic"`
	Manual           int     `json:"eventos_manuais" yaml:"manual"`
	Synced           int     `json:"eventos_sincronizados" yaml:"synced"`
	ApprovedPercent  float64 `json:"percentual_aprovados" yaml:"approved_percent"`
	AutomaticPercent float64 `json:"percentual_automaticos" yaml:"automatic_percent"`
}
