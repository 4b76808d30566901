package services

import (
	"context"
	"log"

	"bankerdir/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// decidedRetentionDays is how long decided review submissions are kept
const decidedRetentionDays = 90

// CronService runs nightly maintenance jobs
type CronService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	reviewRepo       repositories.ReviewRepository
	cron             *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(
	refreshTokenRepo repositories.RefreshTokenRepository,
	reviewRepo repositories.ReviewRepository,
) *CronService {
	return &CronService{
		refreshTokenRepo: refreshTokenRepo,
		reviewRepo:       reviewRepo,
		cron:             cron.New(),
	}
}

// Start schedules and launches the maintenance jobs (03:00 daily)
func (s *CronService) Start() {
	s.cron.AddFunc("0 3 * * *", s.runMaintenance)
	s.cron.Start()
	log.Println("🚀 CronService started (maintenance at 03:00 daily)")
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) runMaintenance() {
	ctx := context.Background()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Maintenance: delete expired refresh tokens: %v", err)
	}

	removed, err := s.reviewRepo.DeleteDecidedBefore(ctx, decidedRetentionDays)
	if err != nil {
		log.Printf("❌ Maintenance: purge decided submissions: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("🗑️ Maintenance: purged %d decided submissions older than %d days", removed, decidedRetentionDays)
	}
}
