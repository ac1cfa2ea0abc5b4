// Package analysis provides functionalities for analyzing user complaints.
// It includes logic for determining the severity of a complaint and its
// contribution toward an automatic ban.
package analysis

import "duochat/backend/internal/config"

// GetWeight returns the weight (penalty) for a given complaint reason.
// Unrecognized reasons fall back to the default weight.
func GetWeight(reason string) int {
	if w, ok := config.ComplaintWeights[reason]; ok {
		return w
	}
	return config.DefaultComplaintWeight
}
