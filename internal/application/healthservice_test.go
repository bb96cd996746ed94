package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adalabs/parent-dashboard/internal/application"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error {
	return m.err
}

func TestHealthCheck_OK(t *testing.T) {
	svc := application.NewHealthService(&mockPinger{})

	status := svc.Check(context.Background())

	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "ok", status.Database)
	assert.GreaterOrEqual(t, status.Uptime.Seconds(), 0.0)
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	svc := application.NewHealthService(&mockPinger{err: errors.New("locked")})

	status := svc.Check(context.Background())

	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "unreachable", status.Database)
}
