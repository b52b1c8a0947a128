package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/exam-seat-finder/internal/models"
)

func landmarkAt(id string, x, y float64) models.Landmark {
	return models.Landmark{ID: id, Type: models.LandmarkOther, Position: models.Position{X: x, Y: y}}
}

func TestNearbyLandmarksBoardAboveFirstRow(t *testing.T) {
	seat := models.Seat{ID: "s", Row: 1, Column: 3}
	board := models.Landmark{ID: "board", Type: models.LandmarkBoard, Position: models.Position{X: 2, Y: -0.8}}

	assert.InDelta(t, 2.0591, Distance(seat, board), 0.0001)
	assert.Equal(t, []models.Landmark{board}, NearbyLandmarks(seat, []models.Landmark{board}))
}

func TestNearbyLandmarksThresholdIsStrict(t *testing.T) {
	seat := models.Seat{ID: "s", Row: 1, Column: 1}
	onColumnAxis := landmarkAt("exact-x", 4, 1)
	onRowAxis := landmarkAt("exact-y", 1, 4)
	justInside := landmarkAt("inside", 3.999, 1)

	assert.Equal(t, 3.0, Distance(seat, onColumnAxis))
	result := NearbyLandmarks(seat, []models.Landmark{onColumnAxis, onRowAxis, justInside})

	assert.Equal(t, []models.Landmark{justInside}, result)
}

func TestNearbyLandmarksPreservesInputOrder(t *testing.T) {
	seat := models.Seat{ID: "s", Row: 3, Column: 3}
	far := landmarkAt("far", 10, 10)
	second := landmarkAt("second", 3, 2)
	first := landmarkAt("first", 3, 3)

	result := NearbyLandmarks(seat, []models.Landmark{second, far, first})

	assert.Equal(t, []string{"second", "first"}, ids(result))
}

func TestNearbyLandmarksUsesColumnForXAndRowForY(t *testing.T) {
	seat := models.Seat{ID: "s", Row: 5, Column: 1}

	assert.Len(t, NearbyLandmarks(seat, []models.Landmark{landmarkAt("l", 1, 5)}), 1)
	assert.Empty(t, NearbyLandmarks(seat, []models.Landmark{landmarkAt("l", 5, 1)}))
}

func TestNearbyLandmarksNegativePositions(t *testing.T) {
	seat := models.Seat{ID: "s", Row: 1, Column: 1}
	outside := landmarkAt("outside", -0.5, -0.5)

	assert.Len(t, NearbyLandmarks(seat, []models.Landmark{outside}), 1)
}

func TestNearbyLandmarksEmpty(t *testing.T) {
	result := NearbyLandmarks(models.Seat{Row: 1, Column: 1}, nil)

	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func ids(landmarks []models.Landmark) []string {
	out := make([]string, 0, len(landmarks))
	for _, l := range landmarks {
		out = append(out, l.ID)
	}
	return out
}
