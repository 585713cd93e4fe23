package dashboard

import "fmt"

// Tab identifies one content panel of the dashboard.
type Tab string

const (
	TabNone      Tab = ""
	TabDashboard Tab = "dashboard"
	TabEvents    Tab = "events"
	TabVehicles  Tab = "vehicles"
	TabPositions Tab = "positions"
)

// Tabs lists the navigable tabs in display order.
var Tabs = []Tab{TabDashboard, TabEvents, TabVehicles, TabPositions}

var tabLabels = map[Tab]string{
	TabDashboard: "Dashboard",
	TabEvents:    "Events",
	TabVehicles:  "Vehicles",
	TabPositions: "Positions",
}

func (t Tab) Label() string {
	return tabLabels[t]
}

// ParseTab validates a tab name coming from a route or a flag.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return TabNone, fmt.Errorf("unknown tab %q", s)
}

// NavEntry is one navigation affordance.
type NavEntry struct {
	Tab    Tab
	Label  string
	Active bool
}

// Panel is one content panel; exactly one is visible once a tab was shown.
type Panel struct {
	Tab     Tab
	Visible bool
}

func navFor(active Tab) ([]NavEntry, []Panel) {
	nav := make([]NavEntry, 0, len(Tabs))
	panels := make([]Panel, 0, len(Tabs))
	for _, t := range Tabs {
		nav = append(nav, NavEntry{Tab: t, Label: t.Label(), Active: t == active})
		panels = append(panels, Panel{Tab: t, Visible: t == active})
	}
	return nav, panels
}
