package geometry

import (
	"math"

	"github.com/noah-isme/exam-seat-finder/internal/models"
)

// NearbyThreshold is the grid distance below which a landmark counts as near a seat.
const NearbyThreshold = 3.0

// Distance is the Euclidean grid distance between a seat and a landmark.
func Distance(seat models.Seat, landmark models.Landmark) float64 {
	dx := landmark.Position.X - float64(seat.Column)
	dy := landmark.Position.Y - float64(seat.Row)
	return math.Sqrt(dx*dx + dy*dy)
}

// NearbyLandmarks returns the landmarks strictly closer than NearbyThreshold,
// in input order. The result is never nil.
func NearbyLandmarks(seat models.Seat, landmarks []models.Landmark) []models.Landmark {
	return Within(seat, landmarks, NearbyThreshold)
}

// Within returns the landmarks whose distance to seat is strictly below radius, in input order.
func Within(seat models.Seat, landmarks []models.Landmark, radius float64) []models.Landmark {
	result := make([]models.Landmark, 0, len(landmarks))
	for _, landmark := range landmarks {
		if Distance(seat, landmark) < radius {
			result = append(result, landmark)
		}
	}
	return result
}
