package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/exam-seat-finder/pkg/errors"
)

func TestExamServiceListSortsByDate(t *testing.T) {
	svc := NewExamService(newFixture(), nil)

	exams := svc.List(context.Background())
	require.Len(t, exams, 2)
	assert.Equal(t, "exam-1", exams[0].ID)
	assert.Equal(t, "exam-2", exams[1].ID)
}

func TestExamServiceGet(t *testing.T) {
	svc := NewExamService(newFixture(), nil)

	exam, err := svc.Get(context.Background(), "exam-2")
	require.NoError(t, err)
	assert.Equal(t, "Physics", exam.Name)

	_, err = svc.Get(context.Background(), "exam-9")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestExamServiceRosterOrdering(t *testing.T) {
	svc := NewExamService(newFixture(), nil)

	roster, err := svc.Roster(context.Background(), "exam-1")
	require.NoError(t, err)
	assert.Equal(t, "Mathematics", roster.Exam.Name)
	require.Len(t, roster.Entries, 3)

	// seat 1 before seat 3, unresolved seat last
	assert.Equal(t, "student-3", roster.Entries[0].StudentID)
	assert.Equal(t, "student-1", roster.Entries[1].StudentID)
	assert.Equal(t, 3, roster.Entries[1].Column)
	assert.Equal(t, "student-2", roster.Entries[2].StudentID)
	assert.Empty(t, roster.Entries[2].ClassroomID)
}

func TestExamServiceRosterEmptyAndUnknown(t *testing.T) {
	svc := NewExamService(newFixture(), nil)

	roster, err := svc.Roster(context.Background(), "exam-2")
	require.NoError(t, err)
	assert.NotNil(t, roster.Entries)
	assert.Empty(t, roster.Entries)

	_, err = svc.Roster(context.Background(), "exam-9")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}
