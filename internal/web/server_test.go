package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigx-cli/internal/client"
	"sigx-cli/internal/dashboard"
)

// sigxBackend is an in-memory stand-in for the SIGx REST API.
type sigxBackend struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string]map[string]any
}

func (b *sigxBackend) log(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry := r.Method + " " + r.URL.Path
	if r.URL.RawQuery != "" {
		entry += "?" + r.URL.RawQuery
	}
	b.requests = append(b.requests, entry)

	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			b.bodies[r.Method+" "+r.URL.Path] = body
		}
	}
}

func (b *sigxBackend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *sigxBackend) Body(key string) map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[key]
}

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func (b *sigxBackend) handler() http.Handler {
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			b.log(req)
			next.ServeHTTP(w, req)
		})
	})

	r.HandleFunc("/api/veiculos/listar", reply(`{"veiculos": [
		{"id": 1, "placa": "QXT1F69", "identificador": "CAM-01", "ativo": true, "motorista": {"id": 3, "nome": "João"}},
		{"id": 2, "placa": "ABC1D23", "ativo": false}
	], "total": 2}`))
	r.HandleFunc("/api/eventos/tipos", reply(`{"tipos_evento": [
		{"id": 1, "nome": "Almoço", "cor_hex": "#A23B72"},
		{"id": 2, "nome": "Condução", "cor_hex": "#27AE60"}
	]}`))
	r.HandleFunc("/api/posicoes/exemplo-importacao", reply(`{"exemplo": {"veiculo_placa": "QXT1F69", "posicoes": []}}`))
	r.HandleFunc("/api/eventos/estatisticas", reply(`{"estatisticas": {"total_eventos": 10, "eventos_aprovados": 4,
		"eventos_pendentes": 6, "eventos_automaticos": 7}, "por_tipo": {"Almoço": 4, "Condução": 6}}`))
	r.HandleFunc("/api/eventos/listar", reply(`{"eventos": [
		{"id": 10, "tipo_evento_id": 1, "data_inicio": "2025-06-21T11:56:00", "data_fim": "2025-06-21T12:40:00",
		 "duracao_minutos": 44, "aprovado": false, "classificacao_automatica": true, "observacoes": "almoço",
		 "tipo_evento": {"id": 1, "nome": "Almoço", "cor_hex": "#A23B72"}, "veiculo": {"id": 1, "placa": "QXT1F69"}}
	], "total": 1}`))
	r.HandleFunc("/api/eventos/{id}", reply(`{"id": 10, "tipo_evento_id": 1, "data_inicio": "2025-06-21T11:56:00",
		"data_fim": "2025-06-21T12:40:00", "aprovado": false, "observacoes": "almoço"}`)).Methods(http.MethodGet)
	r.HandleFunc("/api/eventos/{id}/atualizar", reply(`{"sucesso": true}`)).Methods(http.MethodPut)
	r.HandleFunc("/api/eventos/{id}/aprovar", reply(`{"sucesso": true}`)).Methods(http.MethodPost)
	r.HandleFunc("/api/posicoes/estatisticas/{id}", reply(`{"veiculo_id": 1, "estatisticas": {"total_posicoes": 2,
		"posicoes_processadas": 1, "distancia_total_km": 12.5, "velocidade_media_kmh": 41.2}}`))
	r.HandleFunc("/api/posicoes/veiculo/{id}", reply(`{"posicoes": [
		{"id": 100, "data_hora": "2025-06-21T11:56:00", "velocidade": 0, "processado": true, "endereco": "Timóteo/MG"}
	], "total": 1}`))
	r.HandleFunc("/api/posicoes/classificar/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"erro": "Nenhuma posição para classificar"}`)
	}).Methods(http.MethodPost)
	r.HandleFunc("/api/posicoes/importar", reply(`{"sucesso": true, "posicoes_importadas": 5,
		"posicoes_duplicadas": 2, "eventos_classificados": 3}`)).Methods(http.MethodPost)
	return r
}

type fixture struct {
	backend *sigxBackend
	ctrl    *dashboard.Controller
	server  *Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := &sigxBackend{bodies: map[string]map[string]any{}}
	api := httptest.NewServer(backend.handler())
	t.Cleanup(api.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := dashboard.New(client.New(client.ClientConfig{BaseURL: api.URL}), dashboard.Options{Logger: logger})
	require.NoError(t, ctrl.Bootstrap(context.Background()))

	return &fixture{
		backend: backend,
		ctrl:    ctrl,
		server:  NewServer(ctrl, Options{Logger: logger}),
	}
}

func (f *fixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndex_RendersDashboard(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `<a href="/tabs/dashboard" class="active">Dashboard</a>`)
	assert.Contains(t, body, `<div class="val" id="total-eventos">10</div>`)
	assert.Contains(t, body, `id="panel-dashboard">`)
	assert.Contains(t, body, `id="panel-events" hidden>`)
	assert.Contains(t, body, `"labels":["Almoço","Condução"]`)
	assert.Contains(t, body, `id="event-10"`)
}

func TestTab_SwitchesPanel(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/tabs/vehicles", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `id="panel-vehicles">`)
	assert.Contains(t, body, `id="panel-dashboard" hidden>`)
	assert.Contains(t, body, "Unassigned")
	assert.Equal(t, 1, strings.Count(body, `class="active"`))

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/tabs/reports", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEvents_FilterQuery(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/events?veiculo_id=1&aprovado=false", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	reqs := f.backend.Requests()
	assert.Equal(t, "GET /api/eventos/listar?aprovado=false&veiculo_id=1", reqs[len(reqs)-1])
	assert.Contains(t, rec.Body.String(), `<option value="1" selected>QXT1F69 - CAM-01</option>`)

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/events?veiculo_id=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditAndSave(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/events/10/edit", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="edit-modal"`)
	assert.Contains(t, rec.Body.String(), `value="2025-06-21T11:56"`)

	form := url.Values{
		"tipo_evento_id": {"2"},
		"data_inicio":    {"2025-06-21T11:50"},
		"data_fim":       {""},
		"observacoes":    {"ok"},
		"aprovado":       {"on"},
	}
	req := httptest.NewRequest(http.MethodPost, "/events/10/save", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = f.do(t, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tabs/dashboard", rec.Header().Get("Location"))
	assert.False(t, f.ctrl.View().ModalOpen)

	update := f.backend.Body("PUT /api/eventos/10/atualizar")
	require.NotNil(t, update)
	assert.Equal(t, float64(2), update["tipo_evento_id"])
	assert.Equal(t, "2025-06-21T11:50", update["data_inicio"])
	assert.NotContains(t, update, "data_fim")
	assert.Equal(t, map[string]any{"usuario": "Sistema"}, f.backend.Body("POST /api/eventos/10/aprovar"))
}

func TestCloseModal(t *testing.T) {
	f := newFixture(t)
	f.do(t, httptest.NewRequest(http.MethodGet, "/events/10/edit", nil))
	require.True(t, f.ctrl.View().ModalOpen)

	rec := f.do(t, httptest.NewRequest(http.MethodPost, "/modal/close", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.False(t, f.ctrl.View().ModalOpen)
}

func TestClassify_ShowsServerError(t *testing.T) {
	f := newFixture(t)
	f.do(t, httptest.NewRequest(http.MethodGet, "/positions?veiculo_id=1", nil))

	rec := f.do(t, httptest.NewRequest(http.MethodPost, "/positions/classify", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tabs/positions", rec.Header().Get("Location"))

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/tabs/positions", nil))
	body := rec.Body.String()
	assert.Contains(t, body, "Nenhuma posição para classificar")
	assert.Contains(t, body, `id="position-100"`)
	assert.Contains(t, body, "12.50 km")
}

func TestImport_Multipart(t *testing.T) {
	f := newFixture(t)
	f.do(t, httptest.NewRequest(http.MethodGet, "/tabs/positions", nil))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("arquivo", "posicoes.json")
	require.NoError(t, err)
	_, _ = io.WriteString(part, `{"veiculo_placa": "QXT1F69", "posicoes": [{"data_hora": "2025-06-21T11:56:00"}]}`)
	require.NoError(t, mw.WriteField("classificar", "on"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/positions/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := f.do(t, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	body := f.backend.Body("POST /api/posicoes/importar")
	require.NotNil(t, body)
	assert.Equal(t, true, body["classificar_automaticamente"])
	assert.Equal(t, "QXT1F69", body["veiculo_placa"])

	summary := f.ctrl.View().ImportSummary
	require.NotNil(t, summary)
	assert.Equal(t, 5, summary.Imported)
	assert.Equal(t, 2, summary.Duplicates)
	require.NotNil(t, summary.Classified)
	assert.Equal(t, 3, *summary.Classified)
}

func TestImport_WithoutFile(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, httptest.NewRequest(http.MethodPost, "/positions/import", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	toasts := f.ctrl.View().Toasts
	require.NotEmpty(t, toasts)
	assert.Equal(t, "Select a file", toasts[len(toasts)-1].Message)
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sigx_dashboard_http_requests_total{code="200",method="GET",route="/healthz"} 1`)
}
