package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamsyntaxerror/selyo-api/internal/models"
	appErrors "github.com/teamsyntaxerror/selyo-api/pkg/errors"
)

type announcementRepoStub struct {
	rows []models.Announcement
	err  error
}

func (s announcementRepoStub) ListActive(ctx context.Context) ([]models.Announcement, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func TestAnnouncementServiceList(t *testing.T) {
	repo := announcementRepoStub{rows: []models.Announcement{
		{ID: "a-1", Type: models.AnnouncementUrgent, Title: "Enrollment deadline", Message: "Friday"},
	}}
	svc := NewAnnouncementService(repo, nil, time.Minute, nil)

	announcements, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, announcements, 1)
	assert.Equal(t, models.AnnouncementUrgent, announcements[0].Type)
}

func TestAnnouncementServiceListEmptyIsNotNil(t *testing.T) {
	svc := NewAnnouncementService(announcementRepoStub{}, nil, time.Minute, nil)

	announcements, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, announcements)
	assert.Empty(t, announcements)
}

func TestAnnouncementServiceListStoreFailure(t *testing.T) {
	svc := NewAnnouncementService(announcementRepoStub{err: errors.New("down")}, nil, time.Minute, nil)

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
