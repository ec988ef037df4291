package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fundwatch/internal/config"
	"fundwatch/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceListingHTML = `
<html><body>
<article class="ecl-content-item">
  <div class="ecl-content-block__title"><a href="/funding/calls/1">First Call</a></div>
</article>
<article class="ecl-content-item">
  <div class="ecl-content-block__title"><a href="/funding/calls/2">Second Call</a></div>
</article>
</body></html>`

func newTestService(t *testing.T, sourceHTML string, notifier Notifier, opts ServiceOptions) (*Service, string) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sourceHTML))
	}))
	t.Cleanup(server.Close)

	statePath := filepath.Join(t.TempDir(), "state.json")

	cfg := config.NewDefaultGlobalConfig()
	cfg.SourceConfig.URL = server.URL + "/funding/calls"
	cfg.MonitorConfig.StateFile = statePath

	if opts.Now == nil {
		opts.Now = func() time.Time { return wednesday }
	}

	service, err := NewService(cfg, notifier, zerolog.Nop(), opts)
	require.NoError(t, err)
	return service, statePath
}

func TestServiceRun_EndToEnd(t *testing.T) {
	notifier := &fakeNotifier{}
	service, statePath := newTestService(t, serviceListingHTML, notifier, ServiceOptions{})

	require.NoError(t, service.Run(context.Background()))

	// Two new entries plus the first heartbeat.
	assert.Len(t, notifier.eventsOfKind(models.EventNew), 2)
	assert.Len(t, notifier.eventsOfKind(models.EventHeartbeat), 1)
	assert.FileExists(t, statePath)

	// Second run over the same content: only state already carries
	// everything, so nothing fires (heartbeat included, same day).
	require.NoError(t, service.Run(context.Background()))
	assert.Len(t, notifier.eventsOfKind(models.EventNew), 2)
	assert.Len(t, notifier.eventsOfKind(models.EventHeartbeat), 1)
}

func TestServiceRun_ContractChangeRaisesAlert(t *testing.T) {
	notifier := &fakeNotifier{}
	service, _ := newTestService(t, "<html><body><p>site redesigned</p></body></html>", notifier, ServiceOptions{})

	err := service.Run(context.Background())
	require.Error(t, err)

	alerts := notifier.eventsOfKind(models.EventAlert)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].AlertMessage, "upstream contract changed")
	assert.Empty(t, notifier.eventsOfKind(models.EventNew))
}

func TestServiceRun_FetchFailureRaisesAlert(t *testing.T) {
	notifier := &fakeNotifier{}

	cfg := config.NewDefaultGlobalConfig()
	cfg.SourceConfig.URL = "http://127.0.0.1:1/unreachable"
	cfg.MonitorConfig.StateFile = filepath.Join(t.TempDir(), "state.json")

	service, err := NewService(cfg, notifier, zerolog.Nop(), ServiceOptions{})
	require.NoError(t, err)

	err = service.Run(context.Background())
	require.Error(t, err)
	require.Len(t, notifier.eventsOfKind(models.EventAlert), 1)
	assert.Contains(t, notifier.events[0].AlertMessage, "127.0.0.1:1")
}

func TestServiceRun_DryRunPersistsNothing(t *testing.T) {
	notifier := NewDryRunNotifier(zerolog.Nop())
	service, statePath := newTestService(t, serviceListingHTML, notifier, ServiceOptions{DryRun: true})

	require.NoError(t, service.Run(context.Background()))

	_, err := os.Stat(statePath)
	assert.True(t, os.IsNotExist(err))
}
