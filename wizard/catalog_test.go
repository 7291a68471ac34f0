package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/barbearia-urbana/barberbot/domain"
)

type fakeCatalogClient struct {
	services []domain.Service
	err      error
	calls    int
}

func (f *fakeCatalogClient) Services(context.Context) ([]domain.Service, error) {
	f.calls++
	return f.services, f.err
}

func TestCatalogLoadOnce(t *testing.T) {
	client := &fakeCatalogClient{services: []domain.Service{testService}}
	c := NewCatalog(client, zap.NewNop().Sugar())

	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, 1, client.calls, "the catalog loads at most once")

	svc, ok := c.ServiceByID("svc-1")
	require.True(t, ok)
	assert.Equal(t, "Corte de Cabelo", svc.Name)

	_, ok = c.ServiceByID("nope")
	assert.False(t, ok)
}

func TestCatalogLoadFailureLeavesEmptyList(t *testing.T) {
	client := &fakeCatalogClient{err: errors.New("backend down")}
	c := NewCatalog(client, zap.NewNop().Sugar())

	err := c.Load(context.Background())
	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "services", ferr.Resource)

	assert.Empty(t, c.Services())

	// No retry path: a second Load does not refetch.
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, 1, client.calls)
}

type blockingCatalogClient struct {
	started  chan struct{}
	release  chan struct{}
	services []domain.Service
}

func (f *blockingCatalogClient) Services(context.Context) ([]domain.Service, error) {
	close(f.started)
	<-f.release
	return f.services, nil
}

func TestCatalogReadsDoNotBlockDuringLoad(t *testing.T) {
	client := &blockingCatalogClient{
		started:  make(chan struct{}),
		release:  make(chan struct{}),
		services: []domain.Service{testService},
	}
	c := NewCatalog(client, zap.NewNop().Sugar())

	loadDone := make(chan struct{})
	go func() {
		c.Load(context.Background())
		close(loadDone)
	}()
	<-client.started

	readDone := make(chan struct{})
	go func() {
		c.Services()
		c.ServiceByID("svc-1")
		close(readDone)
	}()
	select {
	case <-readDone:
	case <-time.After(2 * time.Second):
		t.Fatal("catalog reads blocked behind an in-flight load")
	}
	assert.Empty(t, c.Services(), "the catalog stays empty until the fetch lands")

	close(client.release)
	<-loadDone
	assert.Len(t, c.Services(), 1)
}

func TestCatalogServicesReturnsCopy(t *testing.T) {
	client := &fakeCatalogClient{services: []domain.Service{testService}}
	c := NewCatalog(client, zap.NewNop().Sugar())
	require.NoError(t, c.Load(context.Background()))

	got := c.Services()
	got[0].Name = "mutated"
	assert.Equal(t, "Corte de Cabelo", c.Services()[0].Name)
}
