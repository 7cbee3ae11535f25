package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/mocks"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "service-test-secret-at-least-32-bytes"

var baseTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// fakeClock advances by one second on every read so creation order is total.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

type fixture struct {
	uow    *mocks.MemoryUnitOfWork
	tokens auth.TokenService
	events *mocks.MockAuthEventRecorder
	auth   service.AuthService
	tasks  service.TaskService
	logs   *logger.TestLogBuffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log, buf := logger.GetTestLogger(t)
	tokens, err := auth.NewTokenService(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	uow := mocks.NewMemoryUnitOfWork()
	events := &mocks.MockAuthEventRecorder{}
	clock := &fakeClock{now: baseTime}

	return &fixture{
		uow:    uow,
		tokens: tokens,
		events: events,
		auth: service.NewAuthService(uow, auth.NewBcryptHasher(bcrypt.MinCost), tokens, log,
			service.WithAuthEvents(events), service.WithQueryTimeout(time.Second)),
		tasks: service.NewTaskService(uow, log, service.WithClock(clock.Now)),
		logs:  buf,
	}
}

func (f *fixture) register(t *testing.T, username string) *service.AuthResult {
	t.Helper()
	res, err := f.auth.Register(context.Background(), service.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return res
}
