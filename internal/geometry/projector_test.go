package geometry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seat-finder/internal/models"
)

func newTestProjector(t *testing.T) *Projector {
	t.Helper()
	p, err := NewProjector(5, 6, DefaultConfig())
	require.NoError(t, err)
	return p
}

func gridClassroom(rows, columns int, landmarks ...models.Landmark) models.Classroom {
	room := models.Classroom{ID: "room", Rows: rows, Columns: columns, Landmarks: landmarks}
	for r := 1; r <= rows; r++ {
		for c := 1; c <= columns; c++ {
			room.Seats = append(room.Seats, models.Seat{ID: fmt.Sprintf("seat-%d-%d", r, c), Row: r, Column: c})
		}
	}
	return room
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, Config{CellSize: 20, Padding: 0}.Validate())
	assert.Error(t, Config{CellSize: 10, Padding: 40}.Validate())
	assert.Error(t, Config{CellSize: 60, Padding: -1}.Validate())
}

func TestNewProjectorRejectsEmptyRoom(t *testing.T) {
	_, err := NewProjector(0, 6, DefaultConfig())
	assert.Error(t, err)
}

func TestCanvas(t *testing.T) {
	width, height := newTestProjector(t).Canvas()

	assert.Equal(t, 440.0, width)
	assert.Equal(t, 380.0, height)
}

func TestProjectSeat(t *testing.T) {
	g := ProjectSeat(models.Seat{ID: "s", Row: 2, Column: 3}, DefaultConfig())

	assert.Equal(t, KindSeat, g.Kind)
	assert.Equal(t, ShapeRect, g.Shape)
	assert.Equal(t, 160.0, g.X)
	assert.Equal(t, 100.0, g.Y)
	assert.Equal(t, 50.0, g.Width)
	assert.Equal(t, 50.0, g.Height)
	assert.Equal(t, 8.0, g.CornerRadius)
	assert.Equal(t, "2-3", g.Label)
}

func TestProjectedSeatsNeverOverlap(t *testing.T) {
	layout, err := Project(gridClassroom(5, 6), DefaultConfig())
	require.NoError(t, err)

	seen := make(map[Point]string, len(layout.Seats))
	for _, seat := range layout.Seats {
		origin := Point{X: seat.X, Y: seat.Y}
		_, dup := seen[origin]
		require.False(t, dup, "seat %s shares origin with %s", seat.ID, seen[origin])
		seen[origin] = seat.ID
	}
	assert.Len(t, seen, 30)
}

func TestProjectLandmarkFrontGroup(t *testing.T) {
	p := newTestProjector(t)

	board, err := p.ProjectLandmark(models.Landmark{
		ID:        "board",
		Type:      models.LandmarkBoard,
		Position:  models.Position{X: 2, Y: -0.8},
		Dimension: &models.Dimension{Width: 2, Height: 0.25},
	})
	require.NoError(t, err)
	assert.Equal(t, PlacementFront, board.Placement)
	assert.Equal(t, 160.0, board.X)
	assert.Equal(t, 21.0, board.Y)
	assert.Equal(t, 120.0, board.Width)
	assert.Equal(t, 15.0, board.Height)

	teacher, err := p.ProjectLandmark(models.Landmark{ID: "desk", Type: models.LandmarkTeacher, Position: models.Position{X: 5, Y: 0}})
	require.NoError(t, err)
	assert.Equal(t, 340.0, teacher.X)
	assert.Equal(t, 16.0, teacher.Y)
	assert.Equal(t, 30.0, teacher.Width)
	assert.Equal(t, 20.0, teacher.Height)

	dais, err := p.ProjectLandmark(models.Landmark{ID: "dais", Type: models.LandmarkDais, Position: models.Position{X: 1, Y: -0.5}})
	require.NoError(t, err)
	assert.Equal(t, 50.0, dais.Width)
	assert.Equal(t, 20.0, dais.Y)
}

func TestProjectLandmarkFrontClampsToCanvas(t *testing.T) {
	p, err := NewProjector(5, 6, Config{CellSize: 60, Padding: 10})
	require.NoError(t, err)

	board, err := p.ProjectLandmark(models.Landmark{ID: "b", Type: models.LandmarkBoard, Position: models.Position{X: 1, Y: -0.8}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, board.Y)
}

func TestProjectLandmarkWalls(t *testing.T) {
	p := newTestProjector(t)

	left, err := p.ProjectLandmark(models.Landmark{ID: "door", Type: models.LandmarkDoor, Orientation: models.OrientationLeft, Position: models.Position{X: 0, Y: 1}})
	require.NoError(t, err)
	assert.Equal(t, Geometry{
		ID: "door", Kind: KindLandmark, Shape: ShapeRect,
		X: 4, Y: 85, Width: 20, Height: 30, CornerRadius: 2,
		LandmarkType: models.LandmarkDoor, Placement: PlacementWall, Orientation: models.OrientationLeft,
	}, left)

	right, err := p.ProjectLandmark(models.Landmark{ID: "win", Type: models.LandmarkWindow, Orientation: models.OrientationRight, Position: models.Position{X: 7, Y: 2.5}})
	require.NoError(t, err)
	assert.Equal(t, 421.0, right.X)
	assert.Equal(t, 175.0, right.Y)
	assert.Equal(t, 15.0, right.Width)
	assert.Equal(t, 30.0, right.Height)

	bottom, err := p.ProjectLandmark(models.Landmark{ID: "exit", Type: models.LandmarkDoor, Orientation: models.OrientationBottom, Position: models.Position{X: 6, Y: 6}})
	require.NoError(t, err)
	assert.Equal(t, 385.0, bottom.X)
	assert.Equal(t, 356.0, bottom.Y)
	assert.Equal(t, 30.0, bottom.Width)
	assert.Equal(t, 20.0, bottom.Height)
}

func TestProjectLandmarkTopOrientationBehavesLikeFront(t *testing.T) {
	p := newTestProjector(t)

	door, err := p.ProjectLandmark(models.Landmark{ID: "d", Type: models.LandmarkDoor, Orientation: models.OrientationTop, Position: models.Position{X: 3, Y: 0}})
	require.NoError(t, err)
	assert.Equal(t, PlacementFront, door.Placement)
	assert.Equal(t, 220.0, door.X)
	assert.Equal(t, 6.0, door.Y)
}

func TestProjectLandmarkInfersWall(t *testing.T) {
	p := newTestProjector(t)
	cases := []struct {
		name string
		pos  models.Position
		want models.Orientation
	}{
		{name: "left of grid", pos: models.Position{X: 0, Y: 3}, want: models.OrientationLeft},
		{name: "right of grid", pos: models.Position{X: 7, Y: 3}, want: models.OrientationRight},
		{name: "behind last row", pos: models.Position{X: 3, Y: 6}, want: models.OrientationBottom},
		{name: "front", pos: models.Position{X: 3, Y: 0.5}, want: models.OrientationTop},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := p.ProjectLandmark(models.Landmark{ID: "w", Type: models.LandmarkWindow, Position: tc.pos})
			require.NoError(t, err)
			assert.Equal(t, tc.want, g.Orientation)
		})
	}
}

func TestProjectLandmarkMarker(t *testing.T) {
	g, err := newTestProjector(t).ProjectLandmark(models.Landmark{ID: "bin", Type: models.LandmarkOther, Description: "Bin", Position: models.Position{X: 1.5, Y: 2}})
	require.NoError(t, err)

	assert.Equal(t, ShapeCircle, g.Shape)
	assert.Equal(t, PlacementMarker, g.Placement)
	assert.Equal(t, 130.0, g.X)
	assert.Equal(t, 160.0, g.Y)
	assert.Equal(t, 8.0, g.Radius)
	assert.Equal(t, "Bin", g.Title)
}

func TestProjectLandmarkRejectsUnknownTags(t *testing.T) {
	p := newTestProjector(t)

	_, err := p.ProjectLandmark(models.Landmark{ID: "x", Type: "pillar"})
	assert.Error(t, err)

	_, err = p.ProjectLandmark(models.Landmark{ID: "y", Type: models.LandmarkDoor, Orientation: "diagonal"})
	assert.Error(t, err)
}

func TestProjectClassroomIsDeterministicAndIgnoresOccupancy(t *testing.T) {
	landmarks := []models.Landmark{
		{ID: "door", Type: models.LandmarkDoor, Position: models.Position{X: 0, Y: 1}, Orientation: models.OrientationLeft},
		{ID: "board", Type: models.LandmarkBoard, Position: models.Position{X: 2, Y: -0.8}},
	}
	empty := gridClassroom(5, 6, landmarks...)
	busy := gridClassroom(5, 6, landmarks...)
	for i := range busy.Seats {
		busy.Seats[i].IsOccupied = true
		busy.Seats[i].StudentID = "someone"
	}

	first, err := Project(empty, DefaultConfig())
	require.NoError(t, err)
	second, err := Project(empty, DefaultConfig())
	require.NoError(t, err)
	occupied, err := Project(busy, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Landmarks, occupied.Landmarks)
	assert.Equal(t, []string{"door", "board"}, []string{first.Landmarks[0].ID, first.Landmarks[1].ID})
}

func TestProjectClassroomGridLines(t *testing.T) {
	layout, err := Project(gridClassroom(5, 6), DefaultConfig())
	require.NoError(t, err)

	require.Len(t, layout.GridLines, 11)
	assert.Equal(t, Line{X1: 20, Y1: 40, X2: 420, Y2: 40}, layout.GridLines[0])
	assert.Equal(t, Line{X1: 40, Y1: 20, X2: 40, Y2: 360}, layout.GridLines[5])
	assert.Equal(t, Point{X: 220, Y: 20}, layout.FrontLabel)
}
