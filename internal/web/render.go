package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"sigx-cli/internal/dashboard"
)

var funcMap = template.FuncMap{
	"visible": func(panels []dashboard.Panel, tab string) bool {
		for _, p := range panels {
			if string(p.Tab) == tab {
				return p.Visible
			}
		}
		return false
	},
	"speed": func(kmh float64) string {
		return fmt.Sprintf("%.1f km/h", kmh)
	},
	"km": func(km float64) string {
		return fmt.Sprintf("%.2f km", km)
	},
	"positive": func(n *int) bool {
		return n != nil && *n > 0
	},
	"toastClass": func(kind dashboard.ToastKind) string {
		if kind == dashboard.ToastError {
			return "toast err"
		}
		return "toast ok"
	},
}

// Templates are parsed once; a broken template aborts startup.
var pageTmpl = template.Must(template.New("page").Funcs(funcMap).Parse(tmplBase + tmplPanels + tmplModal))

func (s *Server) render(w http.ResponseWriter) {
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "base", s.ctrl.View()); err != nil {
		s.log.Error("template error", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
