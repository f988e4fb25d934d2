package scheduler

import (
	"log"
	"time"

	"emailsmart-backend/internal/report/repository"
)

// SnoozeSweeper clears snoozed_until timestamps that have lapsed. A lapsed
// snooze already classifies as active, so the sweep changes no derived state;
// it keeps stored reports from accumulating stale snooze timestamps.
type SnoozeSweeper struct {
	reportRepo repository.ReportRepository
	interval   time.Duration
	stopChan   chan struct{}
}

// NewSnoozeSweeper creates a new sweeper
func NewSnoozeSweeper(reportRepo repository.ReportRepository, interval time.Duration) *SnoozeSweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SnoozeSweeper{
		reportRepo: reportRepo,
		interval:   interval,
		stopChan:   make(chan struct{}),
	}
}

// Start begins the sweeper loop
func (s *SnoozeSweeper) Start() {
	log.Printf("[SnoozeSweeper] Starting snooze sweeper (interval: %s)", s.interval)

	go func() {
		// Run immediately on start
		s.sweep()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopChan:
				log.Println("[SnoozeSweeper] Sweeper stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the sweeper
func (s *SnoozeSweeper) Stop() {
	close(s.stopChan)
}

// sweep loads stored reports and replaces any whose snoozes have lapsed.
// Each changed report is written back as a whole value.
func (s *SnoozeSweeper) sweep() {
	now := time.Now()

	reports, _, err := s.reportRepo.FindAll(1000, 0)
	if err != nil {
		log.Printf("[SnoozeSweeper] Error loading reports: %v", err)
		return
	}

	cleared := 0
	for _, report := range reports {
		updated, changed := report.ClearLapsedSnoozes(now)
		if !changed {
			continue
		}
		if err := s.reportRepo.Replace(updated); err != nil {
			log.Printf("[SnoozeSweeper] Error replacing report %s: %v", report.ID, err)
			continue
		}
		cleared++
	}

	if cleared > 0 {
		log.Printf("[SnoozeSweeper] Cleared lapsed snoozes on %d reports", cleared)
	}
}
