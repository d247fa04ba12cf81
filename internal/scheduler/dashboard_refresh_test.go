package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/traffic-dashboard-api/internal/config"
	"github.com/vfg2006/traffic-dashboard-api/internal/scheduler/mocks"
	"github.com/vfg2006/traffic-dashboard-api/internal/store"
)

func newTestService(refresher Refresher, enabled, onStartup bool) *DashboardRefreshService {
	return NewDashboardRefreshService(refresher, &config.Config{
		Refresh: config.Refresh{
			CronSchedule: "*/15 * * * *",
			Enabled:      enabled,
			OnStartup:    onStartup,
		},
	})
}

func TestDashboardRefreshService_refreshDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRefresher := mocks.NewMockRefresher(ctrl)
	service := newTestService(mockRefresher, false, false)

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, status map[string]any)
	}{
		{
			name: "Recarga com sucesso",
			setup: func() {
				mockRefresher.EXPECT().Refresh(gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, 1, status["runs"])
				assert.Equal(t, "", status["last_run_error"])
				assert.Equal(t, false, status["running"])
			},
		},
		{
			name: "Falha registra o erro",
			setup: func() {
				mockRefresher.EXPECT().Refresh(gomock.Any()).Return(errors.Wrap(store.ErrLoadFailed, "timeout"))
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, 2, status["runs"])
				assert.Contains(t, status["last_run_error"], store.LoadFailedMessage)
			},
		},
		{
			name: "Carga substituída não é tratada como erro",
			setup: func() {
				mockRefresher.EXPECT().Refresh(gomock.Any()).Return(store.ErrSuperseded)
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, 3, status["runs"])
				assert.Equal(t, "", status["last_run_error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			service.refreshDashboard(context.Background())
			tt.validate(t, service.GetStatus())
		})
	}
}

func TestDashboardRefreshService_IgnoresConcurrentRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRefresher := mocks.NewMockRefresher(ctrl)
	service := newTestService(mockRefresher, false, false)

	started := make(chan struct{})
	release := make(chan struct{})

	mockRefresher.EXPECT().Refresh(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}).Times(1)

	done := make(chan struct{})
	go func() {
		service.refreshDashboard(context.Background())
		close(done)
	}()

	<-started
	assert.True(t, service.IsRunning())
	assert.False(t, service.TriggerManualSync())

	service.refreshDashboard(context.Background())

	close(release)
	<-done

	assert.False(t, service.IsRunning())
	assert.Equal(t, 1, service.GetStatus()["runs"])
}

func TestDashboardRefreshService_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Carga inicial quando habilitada", func(t *testing.T) {
		mockRefresher := mocks.NewMockRefresher(ctrl)
		called := make(chan struct{})
		mockRefresher.EXPECT().Refresh(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
			close(called)
			return nil
		})

		service := newTestService(mockRefresher, false, true)
		require.NoError(t, service.Start(context.Background()))

		select {
		case <-called:
		case <-time.After(2 * time.Second):
			t.Fatal("carga inicial não executada")
		}
	})

	t.Run("Cron inválido retorna erro", func(t *testing.T) {
		mockRefresher := mocks.NewMockRefresher(ctrl)
		service := newTestService(mockRefresher, true, false)
		service.config.CronSchedule = "not a cron"

		assert.Error(t, service.Start(context.Background()))
	})

	t.Run("Agendador inicia e para com o contexto", func(t *testing.T) {
		mockRefresher := mocks.NewMockRefresher(ctrl)
		service := newTestService(mockRefresher, true, false)

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, service.Start(ctx))
		assert.True(t, service.scheduler.IsRunning())
		cancel()
	})
}
