package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"sigx-cli/internal/dashboard"
)

// maxImportSize bounds the multipart body of a position import.
const maxImportSize = 32 << 20

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.ctrl.ActiveTab() == dashboard.TabNone {
		if err := s.ctrl.ShowTab(r.Context(), dashboard.TabDashboard); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	s.render(w)
}

func (s *Server) handleTab(w http.ResponseWriter, r *http.Request) {
	tab, err := dashboard.ParseTab(mux.Vars(r)["tab"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err := s.ctrl.ShowTab(r.Context(), tab); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := dashboard.ParseEventFilter(q.Get("veiculo_id"), q.Get("aprovado"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if s.ctrl.ActiveTab() != dashboard.TabEvents {
		_ = s.ctrl.ShowTab(r.Context(), dashboard.TabEvents)
	}
	s.ctrl.SetEventFilter(r.Context(), filter)
	s.render(w)
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	var vehicleID int64
	if raw := r.URL.Query().Get("veiculo_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid vehicle id %q", raw), http.StatusBadRequest)
			return
		}
		vehicleID = id
	}

	if s.ctrl.ActiveTab() != dashboard.TabPositions {
		_ = s.ctrl.ShowTab(r.Context(), dashboard.TabPositions)
	}
	s.ctrl.SelectPositionsVehicle(r.Context(), vehicleID)
	s.render(w)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	s.ctrl.EditEvent(r.Context(), id)
	s.render(w)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	form := dashboard.EditForm{
		EventID: id,
		Start:   r.PostForm.Get("data_inicio"),
		End:     r.PostForm.Get("data_fim"),
		Notes:   r.PostForm.Get("observacoes"),
	}
	if raw := r.PostForm.Get("tipo_evento_id"); raw != "" {
		typeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid event type %q", raw), http.StatusBadRequest)
			return
		}
		form.EventTypeID = typeID
	}
	form.Approved = checked(r.PostForm.Get("aprovado"))

	// failures are reported through toasts
	_ = s.ctrl.SaveEvent(r.Context(), form)
	s.redirect(w, r)
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	_ = s.ctrl.ApproveEvent(r.Context(), id)
	s.redirect(w, r)
}

func (s *Server) handleCloseModal(w http.ResponseWriter, r *http.Request) {
	s.ctrl.CloseModal()
	s.redirect(w, r)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	_ = s.ctrl.Classify(r.Context())
	s.redirect(w, r)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("arquivo")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		s.ctrl.SelectImportFile(nil)
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	default:
		defer file.Close()
		s.ctrl.SelectImportFile(&dashboard.ImportFile{Name: header.Filename, Body: file})
	}

	_ = s.ctrl.Import(r.Context(), checked(r.FormValue("classificar")))
	s.redirect(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// redirect sends the browser back to the active tab after a form post.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request) {
	tab := s.ctrl.ActiveTab()
	if tab == dashboard.TabNone {
		tab = dashboard.TabDashboard
	}
	http.Redirect(w, r, "/tabs/"+string(tab), http.StatusSeeOther)
}

func eventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func checked(v string) bool {
	switch v {
	case "on", "true", "1":
		return true
	}
	return false
}
