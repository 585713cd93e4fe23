// Package exporter exposes SIGx event and position statistics as
// Prometheus metrics.
package exporter

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"sigx-cli/internal/client"
	"sigx-cli/pkg/models"
)

// Source is the part of the SIGx API scraped by the collector.
type Source interface {
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	GetEventStats(ctx context.Context, vehicleID int64) (*models.EventStatsResponse, error)
	GetPositionStats(ctx context.Context, vehicleID int64) (*models.PositionStatsResponse, error)
}

var (
	upDesc = prometheus.NewDesc(
		"sigx_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"sigx_scrape_duration_seconds", "Time taken to scrape the API.", nil, nil,
	)
	eventsDesc = prometheus.NewDesc(
		"sigx_events", "Events grouped by approval state.", []string{"state"}, nil,
	)
	eventsClassificationDesc = prometheus.NewDesc(
		"sigx_events_by_classification", "Events grouped by classification origin.", []string{"origin"}, nil,
	)
	eventsSyncedDesc = prometheus.NewDesc(
		"sigx_events_synced", "Events already sent to SIGx.", nil, nil,
	)
	eventsByTypeDesc = prometheus.NewDesc(
		"sigx_events_by_type", "Events grouped by event type.", []string{"type"}, nil,
	)
	vehiclesDesc = prometheus.NewDesc(
		"sigx_vehicles", "Vehicles grouped by state.", []string{"state"}, nil,
	)
	vehiclePositionsDesc = prometheus.NewDesc(
		"sigx_vehicle_positions", "Positions of a vehicle grouped by processing state.", []string{"vehicle_id", "plate", "state"}, nil,
	)
	vehicleDistanceDesc = prometheus.NewDesc(
		"sigx_vehicle_distance_km", "Distance covered in the stored positions.", []string{"vehicle_id", "plate"}, nil,
	)
	vehicleSpeedDesc = prometheus.NewDesc(
		"sigx_vehicle_average_speed_kmh", "Average speed over the stored positions.", []string{"vehicle_id", "plate"}, nil,
	)
)

// Collector scrapes the backend on every Prometheus collection.
type Collector struct {
	Source Source
	Logger *slog.Logger
	// Timeout bounds one scrape. Zero means 10s.
	Timeout time.Duration
	// Concurrency caps parallel per-vehicle requests. Zero means 4.
	Concurrency int

	mu sync.Mutex
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- eventsDesc
	ch <- eventsClassificationDesc
	ch <- eventsSyncedDesc
	ch <- eventsByTypeDesc
	ch <- vehiclesDesc
	ch <- vehiclePositionsDesc
	ch <- vehicleDistanceDesc
	ch <- vehicleSpeedDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	success := 1.0

	// 1. Events
	if stats, err := c.Source.GetEventStats(ctx, 0); err == nil {
		s := stats.Stats
		ch <- prometheus.MustNewConstMetric(eventsDesc, prometheus.GaugeValue, float64(s.Approved), "approved")
		ch <- prometheus.MustNewConstMetric(eventsDesc, prometheus.GaugeValue, float64(s.Pending), "pending")
		ch <- prometheus.MustNewConstMetric(eventsClassificationDesc, prometheus.GaugeValue, float64(s.Automatic), "automatic")
		ch <- prometheus.MustNewConstMetric(eventsClassificationDesc, prometheus.GaugeValue, float64(s.Manual), "manual")
		ch <- prometheus.MustNewConstMetric(eventsSyncedDesc, prometheus.GaugeValue, float64(s.Synced))
		for name, n := range stats.ByType {
			ch <- prometheus.MustNewConstMetric(eventsByTypeDesc, prometheus.GaugeValue, float64(n), name)
		}
	} else {
		success = 0.0
		c.logger().Error("error scraping event statistics", "err", err)
	}

	// 2. Vehicles and their positions
	if vehicles, err := c.Source.ListVehicles(ctx); err == nil {
		active := 0.0
		for _, v := range vehicles {
			if v.Active {
				active++
			}
		}
		ch <- prometheus.MustNewConstMetric(vehiclesDesc, prometheus.GaugeValue, active, "active")
		ch <- prometheus.MustNewConstMetric(vehiclesDesc, prometheus.GaugeValue, float64(len(vehicles))-active, "inactive")

		if err := c.collectPositions(ctx, ch, vehicles); err != nil {
			success = 0.0
			c.logger().Error("error scraping position statistics", "err", err)
		}
	} else {
		success = 0.0
		c.logger().Error("error scraping vehicles", "err", err)
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

// collectPositions fetches per-vehicle statistics concurrently. Vehicles
// without any stored position answer 404 and are skipped.
func (c *Collector) collectPositions(ctx context.Context, ch chan<- prometheus.Metric, vehicles []models.Vehicle) error {
	limit := c.Concurrency
	if limit <= 0 {
		limit = 4
	}

	results := make([]*models.PositionStatsResponse, len(vehicles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, v := range vehicles {
		i, v := i, v
		g.Go(func() error {
			stats, err := c.Source.GetPositionStats(gctx, v.ID)
			if client.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = stats
			return nil
		})
	}
	err := g.Wait()

	for i, stats := range results {
		if stats == nil {
			continue
		}
		id := strconv.FormatInt(vehicles[i].ID, 10)
		plate := vehicles[i].Plate
		s := stats.Stats
		ch <- prometheus.MustNewConstMetric(vehiclePositionsDesc, prometheus.GaugeValue, float64(s.Processed), id, plate, "processed")
		ch <- prometheus.MustNewConstMetric(vehiclePositionsDesc, prometheus.GaugeValue, float64(s.Pending), id, plate, "pending")
		ch <- prometheus.MustNewConstMetric(vehicleDistanceDesc, prometheus.GaugeValue, s.DistanceKm, id, plate)
		ch <- prometheus.MustNewConstMetric(vehicleSpeedDesc, prometheus.GaugeValue, s.AverageSpeedKmh, id, plate)
	}
	return err
}

func (c *Collector) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

