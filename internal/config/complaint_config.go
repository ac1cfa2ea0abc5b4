package config

import "time"

const (
	// Ban
	BanThresholdScore = 250
	BanScoreWindow    = 24 * time.Hour
	BanDuration       = 24 * time.Hour

	// DefaultComplaintWeight застосовується до невідомих причин.
	DefaultComplaintWeight = 5
)

var ComplaintWeights = map[string]int{
	"Low":      5,
	"Medium":   50,
	"Critical": 250,
}
