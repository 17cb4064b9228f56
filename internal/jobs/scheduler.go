// Package jobs tareas periódicas del servicio (resumen diario y precarga de comisiones).
package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/ventas-dashboard-api/pkg/logger"
)

// Scheduler registra tareas por nombre sobre robfig/cron con campo de segundos.
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
	mu   sync.Mutex
	jobs map[string]cron.EntryID
}

// NewScheduler una ejecución solapada se salta y un panic no tumba el proceso.
func NewScheduler(log *logger.Logger) *Scheduler {
	log = log.Component("jobs")
	zl := log.Zerolog()
	cl := cron.PrintfLogger(&zl)
	return &Scheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithChain(
			cron.SkipIfStillRunning(cl),
			cron.Recover(cl),
		)),
		log:  log,
		jobs: make(map[string]cron.EntryID),
	}
}

// Start arranca el cron y deja constancia de las tareas registradas.
func (s *Scheduler) Start() {
	s.log.Info().Strs("jobs", s.JobNames()).Msg("scheduler iniciado")
	s.cron.Start()
}

// Stop el contexto devuelto se cierra cuando terminan las tareas en curso.
func (s *Scheduler) Stop() context.Context {
	s.log.Info().Msg("deteniendo scheduler")
	return s.cron.Stop()
}

// AddJob expresión de 6 campos ("0 0 8 * * *") o descriptores (@every 5m).
func (s *Scheduler) AddJob(name, expr string, job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("job %s ya registrado", name)
	}
	id, err := s.cron.AddFunc(expr, func() {
		s.log.Debug().Str("job", name).Msg("ejecutando")
		job()
	})
	if err != nil {
		return fmt.Errorf("registrar job %s: %w", name, err)
	}
	s.jobs[name] = id
	s.log.Info().Str("job", name).Str("cron", expr).Msg("job registrado")
	return nil
}

// JobNames nombres registrados, ordenados.
func (s *Scheduler) JobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
