package services

import (
	"context"
	"log"
	"time"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance jobs
type CronService struct {
	cron             *cron.Cron
	projectRepo      repositories.ProjectRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(
	projectRepo repositories.ProjectRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *CronService {
	return &CronService{
		cron:             cron.New(),
		projectRepo:      projectRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// Start registers and launches the scheduled jobs
func (s *CronService) Start() {
	// 00:30 daily: hide projects whose application window has closed
	s.cron.AddFunc("30 0 * * *", s.hideClosedProjects)

	// 03:00 daily: purge expired refresh tokens
	s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens)

	s.cron.Start()
	log.Println("Cron service started")
}

// Stop stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("Cron service stopped")
}

func (s *CronService) hideClosedProjects() {
	ctx := context.Background()

	projects, err := s.projectRepo.ListVisibleClosedBefore(ctx, time.Now().Truncate(24*time.Hour))
	if err != nil {
		log.Printf("Cron: failed to list closed projects: %v", err)
		return
	}

	for _, project := range projects {
		project.Visible = false
		if err := s.projectRepo.Update(ctx, project); err != nil {
			log.Printf("Cron: failed to hide project %s: %v", project.Name, err)
			continue
		}
		log.Printf("Cron: project %s hidden (window closed)", project.Name)
	}
}

func (s *CronService) purgeExpiredTokens() {
	if err := s.refreshTokenRepo.DeleteExpired(context.Background()); err != nil {
		log.Printf("Cron: failed to purge expired tokens: %v", err)
	}
}
