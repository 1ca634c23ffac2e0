// Package app wires the scheduling engines together behind the synchronous
// surface that request-handling code calls. Transport, persistence and the
// ML subsystems live outside this module.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/swasthya/scheduling/config"
	"github.com/swasthya/scheduling/core/duration"
	"github.com/swasthya/scheduling/core/erqueue"
	"github.com/swasthya/scheduling/core/logger"
	coremetrics "github.com/swasthya/scheduling/core/metrics"
	"github.com/swasthya/scheduling/core/model"
	"github.com/swasthya/scheduling/core/orschedule"
	"github.com/swasthya/scheduling/core/roster"
	infralogger "github.com/swasthya/scheduling/infra/logger"
	inframetrics "github.com/swasthya/scheduling/infra/metrics"
)

// Service owns the long-lived ER queue and creates one engine instance per
// scheduling run.
type Service struct {
	Queue *erqueue.Queue

	cfg  *config.Config
	log  logger.Logger
	sink coremetrics.Sink
	or   *orschedule.Scheduler
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := infralogger.New("service")
	sink, err := inframetrics.BuildSink(cfg.Metrics, logg)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	est := duration.NewEstimator(cfg.Duration)
	return &Service{
		Queue: erqueue.New(cfg.ER, infralogger.New("er-queue"), sink),
		cfg:   cfg,
		log:   logg,
		sink:  sink,
		or:    orschedule.New(cfg.OR, est, infralogger.New("or-scheduler"), sink),
	}, nil
}

// Run blocks until the context is canceled, serving the Prometheus endpoint
// when enabled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := inframetrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	<-ctx.Done()
	return nil
}

// AddPatient admits a patient to the ER queue.
func (s *Service) AddPatient(id string, acuity int, arrival time.Time) error {
	return s.Queue.Enqueue(id, acuity, arrival)
}

// NextPatient returns the highest-priority waiting patient.
func (s *Service) NextPatient() (*model.WaitingPatient, error) {
	return s.Queue.Dequeue()
}

// Retriage updates a waiting patient's acuity.
func (s *Service) Retriage(id string, acuity int) error {
	return s.Queue.Reprioritize(id, acuity)
}

// QueueStatus reports current ER queue statistics.
func (s *Service) QueueStatus() erqueue.QueueStatus {
	return s.Queue.Status()
}

// ORScheduleRequest is one batch of cases to place.
type ORScheduleRequest struct {
	Cases     []model.SurgicalCase `json:"cases"`
	Rooms     int                  `json:"available_ors"`
	StartTime string               `json:"start_time,omitempty"`
	EndTime   string               `json:"end_time,omitempty"`
}

// ScheduleOR runs one OR scheduling batch.
func (s *Service) ScheduleOR(ctx context.Context, req ORScheduleRequest) (*orschedule.Result, error) {
	var hz *orschedule.Horizon
	if req.StartTime != "" || req.EndTime != "" {
		hz = &orschedule.Horizon{Open: req.StartTime, Close: req.EndTime}
	}
	return s.or.Schedule(ctx, req.Cases, req.Rooms, hz)
}

// StaffScheduleRequest describes one rostering run.
type StaffScheduleRequest struct {
	Staff              []model.StaffMember `json:"staff_list"`
	StartDate          string              `json:"start_date,omitempty"`
	Days               int                 `json:"duration_days"`
	ShiftTypes         []string            `json:"shift_types,omitempty"`
	ShiftDurationHours int                 `json:"shift_duration_hours,omitempty"`
	MinStaffPerShift   map[string]int      `json:"min_staff_per_shift,omitempty"`
}

// ScheduleStaff runs one rostering optimization. Each call owns a fresh
// optimizer instance, so concurrent runs need no coordination.
func (s *Service) ScheduleStaff(ctx context.Context, req StaffScheduleRequest) (*roster.Result, error) {
	if req.Days == 0 {
		req.Days = 7
	}
	start := time.Now()
	if req.StartDate != "" {
		var err error
		start, err = time.Parse(model.DateLayout, req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start date %q", model.ErrInvalidInput, req.StartDate)
		}
	}
	opt := roster.New(s.cfg.Roster, infralogger.New("roster-optimizer"), s.sink)
	if err := opt.Initialize(req.Staff, start, req.Days, req.ShiftTypes, req.ShiftDurationHours); err != nil {
		return nil, err
	}
	return opt.Optimize(ctx, req.MinStaffPerShift)
}
