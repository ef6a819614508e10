package progress_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_progress "github.com/at-ishikawa/vocato/internal/mocks/progress"
	"github.com/at-ishikawa/vocato/internal/progress"
)

func TestTracker_End(t *testing.T) {
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		started   bool
		elapsed   time.Duration
		setupMock func(m *mock_progress.MockStudyLog)
		wantErr   bool
	}{
		{
			name:    "records whole seconds",
			started: true,
			elapsed: 95*time.Second + 400*time.Millisecond,
			setupMock: func(m *mock_progress.MockStudyLog) {
				m.EXPECT().AddStudySeconds(gomock.Any(), start.Add(95*time.Second+400*time.Millisecond), 95).Return(nil)
			},
		},
		{
			name:      "without start does nothing",
			setupMock: func(m *mock_progress.MockStudyLog) {},
		},
		{
			name:    "store failure",
			started: true,
			elapsed: time.Minute,
			setupMock: func(m *mock_progress.MockStudyLog) {
				m.EXPECT().AddStudySeconds(gomock.Any(), gomock.Any(), 60).Return(errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			log := mock_progress.NewMockStudyLog(ctrl)
			tt.setupMock(log)
			clock := clockwork.NewFakeClockAt(start)

			tracker := progress.NewTracker(log, clock)
			if tt.started {
				tracker.Start()
			}
			clock.Advance(tt.elapsed)

			err := tracker.End(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			// A second End without Start is a no-op.
			require.NoError(t, tracker.End(context.Background()))
		})
	}
}

func TestTracker_Today(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	ctrl := gomock.NewController(t)
	log := mock_progress.NewMockStudyLog(ctrl)
	log.EXPECT().StudySeconds(gomock.Any(), now).Return(300, nil)

	got, err := progress.NewTracker(log, clockwork.NewFakeClockAt(now)).Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 300, got)
}
