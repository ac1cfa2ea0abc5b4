// Package complaint provides the core logic for handling user complaints
// and applying temporary bans.
package complaint

import (
	"log"
	"time"

	"duochat/backend/internal/analysis"
	"duochat/backend/internal/config"
	"duochat/backend/internal/models"
	"duochat/backend/internal/storage"
)

// Service handles the business logic for complaints.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new complaint service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// HandleComplaint processes a new complaint: weights it, persists it and
// checks whether the reported user crossed the ban threshold.
func (s *Service) HandleComplaint(complaint *models.Complaint) error {
	complaint.Weight = analysis.GetWeight(complaint.Reason)
	if err := s.Storage.SaveComplaint(complaint); err != nil {
		return err
	}

	return s.checkForBan(complaint.TargetID)
}

// checkForBan bans a user once the summed weight of complaints against them
// within the trailing window crosses the threshold.
func (s *Service) checkForBan(userID string) error {
	sum, err := s.Storage.SumRecentComplaintWeight(userID, time.Now().Add(-config.BanScoreWindow))
	if err != nil {
		return err
	}

	if sum >= config.BanThresholdScore {
		log.Printf("INFO: Banning user %s (complaint score %d)", userID, sum)
		return s.Storage.BanUser(userID, config.BanDuration)
	}
	return nil
}
