package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"sigx-cli/internal/config"
	"sigx-cli/internal/dashboard"
	"sigx-cli/pkg/models"
)

var (
	eventID        int64
	eventVehicle   int64
	eventDriver    int64
	eventType      int64
	eventStatus    string
	eventAutomatic string
	eventFrom      string
	eventTo        string
	eventStart     string
	eventEnd       string
	eventNotes     string
	eventApprove   bool
	eventUser      string
	eventConfirm   bool

	eventStartAddr string
	eventEndAddr   string
	eventStartLat  string
	eventStartLon  string
	eventEndLat    string
	eventEndLon    string
	eventIsAuto    bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Review journey events",
	Long:  `List, inspect, create, edit and approve the events classified from vehicle positions.`,
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events, newest first",
	Example: `  sigx-cli events list --vehicle 1 --status pending
  sigx-cli events list --from 2025-06-21T00:00 --to 2025-06-22T00:00 --json`,
	Run: func(cmd *cobra.Command, args []string) {
		filter, err := eventFilterFromFlags()
		if err != nil {
			fail("parsing filters", err)
		}

		api := getClient()
		events, err := api.ListEvents(cmd.Context(), filter)
		if err != nil {
			fail("fetching events", err)
		}

		if printStructured(events) {
			return
		}

		if len(events) == 0 {
			fmt.Println("No events found.")
			return
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tTYPE\tVEHICLE\tDRIVER\tSTART\tEND\tDURATION\tAPPROVED\tAUTO")
		fmt.Fprintln(w, "--\t----\t-------\t------\t-----\t---\t--------\t--------\t----")

		for _, e := range events {
			card := dashboard.NewEventCard(e)
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				e.ID,
				card.TypeName,
				card.Plate,
				card.DriverName,
				card.Start,
				card.End,
				orDash(card.Duration),
				yesNo(e.Approved),
				yesNo(e.Automatic),
			)
		}
		w.Flush()
	},
}

var eventsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a single event",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		event, err := api.GetEvent(cmd.Context(), eventID)
		if err != nil {
			fail("fetching event", err)
		}

		if printStructured(event) {
			return
		}

		card := dashboard.NewEventCard(*event)
		w := newTable()
		fmt.Fprintf(w, "ID:\t%d\n", event.ID)
		fmt.Fprintf(w, "Type:\t%s\n", card.TypeName)
		fmt.Fprintf(w, "Vehicle:\t%s\n", card.Plate)
		fmt.Fprintf(w, "Driver:\t%s\n", card.DriverName)
		fmt.Fprintf(w, "Start:\t%s\t%s\n", card.Start, orNA(event.StartAddress))
		fmt.Fprintf(w, "End:\t%s\t%s\n", card.End, orNA(event.EndAddress))
		fmt.Fprintf(w, "Duration:\t%s\n", orDash(card.Duration))
		fmt.Fprintf(w, "Automatic:\t%s\n", yesNo(event.Automatic))
		if event.Approved {
			fmt.Fprintf(w, "Approved:\tyes, by %s at %s\n", orNA(event.ApprovedBy), dashboard.FormatDateTime(event.ApprovedAt.Time))
		} else {
			fmt.Fprintln(w, "Approved:\tno")
		}
		fmt.Fprintf(w, "Synced to SIGx:\t%s\n", yesNo(event.SyncedSigx))
		if event.Notes != "" {
			fmt.Fprintf(w, "Notes:\t%s\n", event.Notes)
		}
		w.Flush()
	},
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register an event by hand",
	Example: `  sigx-cli events create --vehicle 1 --driver 3 --type 2 --start 2025-06-21T11:56 --end 2025-06-21T15:10
  sigx-cli events create --vehicle 1 --driver 3 --type 4 --start 2025-06-21T11:56 --start-lat -20.3911 --start-lon -45.5418 --notes "Descarga na Aperam"`,
	Run: func(cmd *cobra.Command, args []string) {
		payload, err := eventCreatePayloadFromFlags()
		if err != nil {
			fail("parsing flags", err)
		}

		api := getClient()
		event, err := api.CreateEvent(cmd.Context(), payload)
		if err != nil {
			fail("creating event", err)
		}

		if printStructured(event) {
			return
		}
		if event == nil {
			fmt.Println("Event created.")
			return
		}
		fmt.Printf("Event %d created.\n", event.ID)
	},
}

var eventsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Update event fields, optionally approving afterwards",
	Example: `  sigx-cli events edit --id 10 --type 2 --notes "Lunch at base"
  sigx-cli events edit --id 10 --start 2025-06-21T11:50 --approve`,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		var payload models.EventUpdatePayload
		if flags.Changed("type") {
			payload.EventTypeID = &eventType
		}
		if flags.Changed("start") {
			checkTimestamp("start", eventStart)
			payload.Start = &eventStart
		}
		if flags.Changed("end") {
			checkTimestamp("end", eventEnd)
			payload.End = &eventEnd
		}
		if flags.Changed("notes") {
			payload.Notes = &eventNotes
		}

		api := getClient()
		if _, err := api.UpdateEvent(cmd.Context(), eventID, payload); err != nil {
			fail("updating event", err)
		}
		fmt.Printf("Event %d updated.\n", eventID)

		if eventApprove {
			approveEvent(cmd, eventID)
		}
	},
}

var eventsApproveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Approve an event",
	Run: func(cmd *cobra.Command, args []string) {
		approveEvent(cmd, eventID)
	},
}

var eventsRejectCmd = &cobra.Command{
	Use:   "reject",
	Short: "Remove the approval of an event",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()
		if _, err := api.RejectEvent(cmd.Context(), eventID); err != nil {
			fail("rejecting event", err)
		}
		fmt.Printf("Approval of event %d removed.\n", eventID)
	},
}

var eventsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an event",
	Long:  `Delete an event. Events already synced to SIGx are refused by the backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !eventConfirm {
			fmt.Printf("Refusing to delete event %d without --yes.\n", eventID)
			os.Exit(1)
		}

		api := getClient()
		if err := api.DeleteEvent(cmd.Context(), eventID); err != nil {
			fail("deleting event", err)
		}
		fmt.Printf("Event %d deleted.\n", eventID)
	},
}

var eventsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate event statistics",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		stats, err := api.GetEventStats(cmd.Context(), eventVehicle)
		if err != nil {
			fail("fetching statistics", err)
		}

		if printStructured(stats) {
			return
		}

		s := stats.Stats
		w := newTable()
		fmt.Fprintf(w, "Total:\t%d\n", s.Total)
		fmt.Fprintf(w, "Approved:\t%d\t(%.1f%%)\n", s.Approved, s.ApprovedPercent)
		fmt.Fprintf(w, "Pending:\t%d\n", s.Pending)
		fmt.Fprintf(w, "Automatic:\t%d\t(%.1f%%)\n", s.Automatic, s.AutomaticPercent)
		fmt.Fprintf(w, "Manual:\t%d\n", s.Manual)
		fmt.Fprintf(w, "Synced:\t%d\n", s.Synced)

		if len(stats.ByType) > 0 {
			fmt.Fprintln(w, "\nBY TYPE\tCOUNT")
			names := make([]string, 0, len(stats.ByType))
			for name := range stats.ByType {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(w, "%s\t%d\n", name, stats.ByType[name])
			}
		}
		w.Flush()
	},
}

func approveEvent(cmd *cobra.Command, id int64) {
	user := eventUser
	if user == "" {
		user = config.Load().Approver
	}

	api := getClient()
	if _, err := api.ApproveEvent(cmd.Context(), id, user); err != nil {
		fail("approving event", err)
	}
	fmt.Printf("Event %d approved by %s.\n", id, user)
}

// eventCreatePayloadFromFlags builds the create body. Timestamps are
// normalised to the backend layout.
func eventCreatePayloadFromFlags() (models.EventCreatePayload, error) {
	payload := models.EventCreatePayload{
		VehicleID:    eventVehicle,
		DriverID:     eventDriver,
		EventTypeID:  eventType,
		StartAddress: eventStartAddr,
		EndAddress:   eventEndAddr,
		Notes:        eventNotes,
		Automatic:    eventIsAuto,
	}
	if payload.VehicleID <= 0 || payload.DriverID <= 0 || payload.EventTypeID <= 0 {
		return payload, fmt.Errorf("--vehicle, --driver and --type must be positive IDs")
	}

	start, err := models.ParseTime(eventStart)
	if err != nil {
		return payload, fmt.Errorf("invalid --start: %w", err)
	}
	payload.Start = start.Format(models.SigxTimeFormat)

	if eventEnd != "" {
		end, err := models.ParseTime(eventEnd)
		if err != nil {
			return payload, fmt.Errorf("invalid --end: %w", err)
		}
		if end.Before(start) {
			return payload, fmt.Errorf("--end %s is before --start %s", eventEnd, eventStart)
		}
		payload.End = end.Format(models.SigxTimeFormat)
	}

	coords := []struct {
		flag string
		raw  string
		dst  **float64
	}{
		{"start-lat", eventStartLat, &payload.StartLat},
		{"start-lon", eventStartLon, &payload.StartLon},
		{"end-lat", eventEndLat, &payload.EndLat},
		{"end-lon", eventEndLon, &payload.EndLon},
	}
	for _, c := range coords {
		if c.raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(c.raw, 64)
		if err != nil {
			return payload, fmt.Errorf("invalid --%s %q", c.flag, c.raw)
		}
		*c.dst = &v
	}
	return payload, nil
}

// eventFilterFromFlags maps the list flags onto the backend filter.
func eventFilterFromFlags() (models.EventFilter, error) {
	filter := models.EventFilter{
		VehicleID:   eventVehicle,
		DriverID:    eventDriver,
		EventTypeID: eventType,
		From:        eventFrom,
		To:          eventTo,
	}

	switch eventStatus {
	case "":
	case "approved":
		filter.Approved = boolRef(true)
	case "pending":
		filter.Approved = boolRef(false)
	default:
		return filter, fmt.Errorf("invalid status %q (want approved or pending)", eventStatus)
	}

	if eventAutomatic != "" {
		b, err := strconv.ParseBool(eventAutomatic)
		if err != nil {
			return filter, fmt.Errorf("invalid --automatic %q", eventAutomatic)
		}
		filter.Automatic = &b
	}

	for _, ts := range []string{filter.From, filter.To} {
		if ts == "" {
			continue
		}
		if _, err := models.ParseTime(ts); err != nil {
			return filter, err
		}
	}
	return filter, nil
}

func checkTimestamp(name, value string) {
	if _, err := models.ParseTime(value); err != nil {
		fmt.Printf("Error: invalid --%s: %v\n", name, err)
		os.Exit(1)
	}
}

func boolRef(b bool) *bool { return &b }

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListCmd, eventsShowCmd, eventsCreateCmd, eventsEditCmd, eventsApproveCmd, eventsRejectCmd, eventsDeleteCmd, eventsStatsCmd)

	eventsListCmd.Flags().Int64Var(&eventVehicle, "vehicle", 0, "Only events of this vehicle ID")
	eventsListCmd.Flags().Int64Var(&eventDriver, "driver", 0, "Only events of this driver ID")
	eventsListCmd.Flags().Int64Var(&eventType, "type", 0, "Only events of this event type ID")
	eventsListCmd.Flags().StringVar(&eventStatus, "status", "", "approved or pending")
	eventsListCmd.Flags().StringVar(&eventAutomatic, "automatic", "", "true for automatic classifications, false for manual")
	eventsListCmd.Flags().StringVar(&eventFrom, "from", "", "Events starting at or after (2006-01-02T15:04)")
	eventsListCmd.Flags().StringVar(&eventTo, "to", "", "Events starting at or before (2006-01-02T15:04)")

	for _, c := range []*cobra.Command{eventsShowCmd, eventsEditCmd, eventsApproveCmd, eventsRejectCmd, eventsDeleteCmd} {
		c.Flags().Int64Var(&eventID, "id", 0, "Event ID")
		_ = c.MarkFlagRequired("id")
	}

	eventsCreateCmd.Flags().Int64Var(&eventVehicle, "vehicle", 0, "Vehicle ID")
	eventsCreateCmd.Flags().Int64Var(&eventDriver, "driver", 0, "Driver ID")
	eventsCreateCmd.Flags().Int64Var(&eventType, "type", 0, "Event type ID")
	eventsCreateCmd.Flags().StringVar(&eventStart, "start", "", "Start (2006-01-02T15:04)")
	eventsCreateCmd.Flags().StringVar(&eventEnd, "end", "", "End (2006-01-02T15:04)")
	eventsCreateCmd.Flags().StringVar(&eventStartLat, "start-lat", "", "Start latitude")
	eventsCreateCmd.Flags().StringVar(&eventStartLon, "start-lon", "", "Start longitude")
	eventsCreateCmd.Flags().StringVar(&eventEndLat, "end-lat", "", "End latitude")
	eventsCreateCmd.Flags().StringVar(&eventEndLon, "end-lon", "", "End longitude")
	eventsCreateCmd.Flags().StringVar(&eventStartAddr, "start-address", "", "Start address")
	eventsCreateCmd.Flags().StringVar(&eventEndAddr, "end-address", "", "End address")
	eventsCreateCmd.Flags().StringVar(&eventNotes, "notes", "", "Notes")
	eventsCreateCmd.Flags().BoolVar(&eventIsAuto, "automatic", false, "Mark the event as automatically classified")
	for _, name := range []string{"vehicle", "driver", "type", "start"} {
		_ = eventsCreateCmd.MarkFlagRequired(name)
	}

	eventsEditCmd.Flags().Int64Var(&eventType, "type", 0, "New event type ID")
	eventsEditCmd.Flags().StringVar(&eventStart, "start", "", "New start (2006-01-02T15:04)")
	eventsEditCmd.Flags().StringVar(&eventEnd, "end", "", "New end (2006-01-02T15:04)")
	eventsEditCmd.Flags().StringVar(&eventNotes, "notes", "", "New notes")
	eventsEditCmd.Flags().BoolVar(&eventApprove, "approve", false, "Approve the event after updating it")
	eventsEditCmd.Flags().StringVar(&eventUser, "user", "", "Approver name (default from config)")

	eventsApproveCmd.Flags().StringVar(&eventUser, "user", "", "Approver name (default from config)")
	eventsDeleteCmd.Flags().BoolVar(&eventConfirm, "yes", false, "Confirm deletion")

	eventsStatsCmd.Flags().Int64Var(&eventVehicle, "vehicle", 0, "Restrict statistics to a vehicle ID")
}
