package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigx-cli/pkg/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *SigxClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(ClientConfig{BaseURL: srv.URL + "/"})
}

func TestListEvents_QueryParams(t *testing.T) {
	approved := true
	pending := false
	tests := map[string]struct {
		filter   models.EventFilter
		expected string
	}{
		"no filters": {
			filter:   models.EventFilter{},
			expected: "",
		},
		"vehicle only": {
			filter:   models.EventFilter{VehicleID: 7},
			expected: "veiculo_id=7",
		},
		"status only": {
			filter:   models.EventFilter{Approved: &pending},
			expected: "aprovado=false",
		},
		"vehicle and status": {
			filter:   models.EventFilter{VehicleID: 3, Approved: &approved},
			expected: "aprovado=true&veiculo_id=3",
		},
		"extended filters": {
			filter:   models.EventFilter{DriverID: 2, EventTypeID: 5, Automatic: &approved, From: "2025-06-21T00:00:00"},
			expected: "classificacao_automatica=true&data_inicio=2025-06-21T00%3A00%3A00&motorista_id=2&tipo_evento_id=5",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var gotQuery string
			api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/eventos/listar", r.URL.Path)
				gotQuery = r.URL.Query().Encode()
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, `{"eventos": [{"id": 1, "aprovado": true}], "total": 1}`)
			})

			events, err := api.ListEvents(context.Background(), test.filter)
			require.NoError(t, err)
			assert.Len(t, events, 1)
			assert.Equal(t, test.expected, gotQuery)
		})
	}
}

func TestGetEvent_DecodesNaiveTimestamps(t *testing.T) {
	api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/eventos/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": 42, "tipo_evento_id": 2, "aprovado": false,
			"data_inicio": "2025-06-21T11:56:00", "data_fim": null,
			"duracao_minutos": 194,
			"tipo_evento": {"id": 2, "nome": "Almoço", "cor_hex": "#A23B72"},
			"veiculo": {"id": 1, "placa": "QXT1F69"}
		}`)
	})

	event, err := api.GetEvent(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), event.ID)
	assert.Equal(t, "2025-06-21T11:56:00", event.Start.Format(models.SigxTimeFormat))
	assert.True(t, event.End.IsZero())
	require.NotNil(t, event.DurationMinutes)
	assert.Equal(t, 194, *event.DurationMinutes)
	assert.Equal(t, "QXT1F69", event.Vehicle.Plate)
}

func TestUpdateEvent_SendsPartialBody(t *testing.T) {
	api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/eventos/9/atualizar", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"tipo_evento_id": float64(4),
			"observacoes":    "descarga",
		}, body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"sucesso": true, "evento": {"id": 9}}`)
	})

	typeID := int64(4)
	notes := "descarga"
	event, err := api.UpdateEvent(context.Background(), 9, models.EventUpdatePayload{EventTypeID: &typeID, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, int64(9), event.ID)
}

func TestCreateEvent(t *testing.T) {
	api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/eventos/criar", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"veiculo_id":      float64(1),
			"motorista_id":    float64(3),
			"tipo_evento_id":  float64(2),
			"data_inicio":     "2025-06-21T11:56:00",
			"latitude_inicio": -20.3911,
			"observacoes":     "Descarga na Aperam",
		}, body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"sucesso": true, "evento": {"id": 42, "veiculo_id": 1, "data_inicio": "2025-06-21T11:56:00"}}`)
	})

	lat := -20.3911
	event, err := api.CreateEvent(context.Background(), models.EventCreatePayload{
		VehicleID:   1,
		DriverID:    3,
		EventTypeID: 2,
		Start:       "2025-06-21T11:56:00",
		StartLat:    &lat,
		Notes:       "Descarga na Aperam",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), event.ID)
}

func TestCreateEvent_MissingReference(t *testing.T) {
	api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"erro": "Motorista não encontrado"}`)
	})

	_, err := api.CreateEvent(context.Background(), models.EventCreatePayload{VehicleID: 1, DriverID: 99, EventTypeID: 2, Start: "2025-06-21T11:56:00"})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Motorista não encontrado", ErrorMessage(err, ""))
}

func TestApproveEvent_SendsActor(t *testing.T) {
	api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/eventos/5/aprovar", r.URL.Path)

		var body models.ApprovePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Sistema", body.User)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"sucesso": true, "evento": {"id": 5, "aprovado": true}}`)
	})

	event, err := api.ApproveEvent(context.Background(), 5, "Sistema")
	require.NoError(t, err)
	assert.True(t, event.Approved)
}

func TestClassifyPositions_SurfacesServerError(t *testing.T) {
	api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posicoes/classificar/3", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"erro": "Erro interno: sem posições"}`)
	})

	_, err := api.ClassifyPositions(context.Background(), 3)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Erro interno: sem posições", apiErr.Message)
	assert.Equal(t, "Erro interno: sem posições", ErrorMessage(err, "fallback"))
}

func TestErrorMessage_FallsBack(t *testing.T) {
	api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	})

	_, err := api.ListVehicles(context.Background())
	require.Error(t, err)
	assert.Equal(t, "fallback", ErrorMessage(err, "fallback"))
	assert.Contains(t, err.Error(), "upstream down")
	assert.Equal(t, "fallback", ErrorMessage(errors.New("dial tcp: refused"), "fallback"))
}

func TestListPositions_Limit(t *testing.T) {
	api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posicoes/veiculo/8", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limite"))
		assert.Empty(t, r.URL.Query().Get("processado"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"posicoes": [{"id": 1, "data_hora": "2025-06-21T15:10:00", "velocidade": 45, "processado": true}], "total": 1}`)
	})

	positions, err := api.ListPositions(context.Background(), 8, models.PositionFilter{Limit: DefaultPositionLimit})
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, 45.0, positions[0].Speed)
	assert.True(t, positions[0].Processed)
}

func TestImportPositions_OverridesClassifyFlag(t *testing.T) {
	api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posicoes/importar", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["classificar_automaticamente"])
		assert.Equal(t, "QXT1F69", body["veiculo_placa"])
		assert.Len(t, body["posicoes"], 2)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"sucesso": true, "posicoes_importadas": 1, "posicoes_duplicadas": 1, "eventos_classificados": 3}`)
	})

	payload := models.ImportPayload{
		"veiculo_placa":               json.RawMessage(`"QXT1F69"`),
		"posicoes":                    json.RawMessage(`[{"data_hora": "2025-06-21T11:56:00"}, {"data_hora": "2025-06-21T15:10:00"}]`),
		"classificar_automaticamente": json.RawMessage(`false`),
	}
	result, err := api.ImportPositions(context.Background(), payload, true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Duplicates)
	require.NotNil(t, result.EventsClassified)
	assert.Equal(t, 3, *result.EventsClassified)
	assert.Equal(t, json.RawMessage(`false`), payload["classificar_automaticamente"], "caller payload must not be mutated")
}

func TestDeleteEvent(t *testing.T) {
	api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/eventos/11/excluir", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"erro": "Não é possível excluir evento já sincronizado com o SIGx"}`)
	})

	err := api.DeleteEvent(context.Background(), 11)
	require.Error(t, err)
	assert.Equal(t, "Não é possível excluir evento já sincronizado com o SIGx", ErrorMessage(err, ""))
}
