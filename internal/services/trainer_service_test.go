package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/trainerdesk/internal/errors"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/services"
	"github.com/vytor/trainerdesk/internal/testutil/mocks"
)

func TestTrainerService_Profile(t *testing.T) {
	repo := new(mocks.MockTrainerRepository)
	repo.On("Get", mock.Anything, "t1").Return(&models.Trainer{ID: "t1", Username: "coach"}, nil)
	repo.On("Get", mock.Anything, "t2").Return(nil, nil)
	svc := services.NewTrainerService(repo)

	got, err := svc.Profile(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "coach", got.Username)

	fresh, err := svc.Profile(context.Background(), "t2")
	require.NoError(t, err)
	assert.Equal(t, &models.Trainer{ID: "t2"}, fresh)

	_, err = svc.Profile(context.Background(), "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotAuthenticated))
	repo.AssertExpectations(t)
}

func TestTrainerService_ProfileFetchFailure(t *testing.T) {
	repo := new(mocks.MockTrainerRepository)
	repo.On("Get", mock.Anything, "t1").Return(nil, stderrors.New("offline"))

	_, err := services.NewTrainerService(repo).Profile(context.Background(), "t1")
	assert.True(t, errors.HasCode(err, errors.ErrCodeRemoteFetch))
}

func TestTrainerService_UpdateUsername(t *testing.T) {
	repo := new(mocks.MockTrainerRepository)
	repo.On("Upsert", mock.Anything, models.Trainer{ID: "t1", Username: "coach"}).Return(nil)
	svc := services.NewTrainerService(repo)

	got, err := svc.UpdateUsername(context.Background(), "t1", "  coach ")
	require.NoError(t, err)
	assert.Equal(t, "coach", got.Username)

	_, err = svc.UpdateUsername(context.Background(), "t1", "   ")
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ReasonRequiredField, appErr.Fields["username"])

	repo.AssertNumberOfCalls(t, "Upsert", 1)
}
