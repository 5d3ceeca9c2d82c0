package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/britannia/pkg/dialogue"
	"github.com/jwebster45206/britannia/pkg/gamedata"
	"github.com/jwebster45206/britannia/pkg/party"
)

// MockStorage keeps everything in memory, for tests.
type MockStorage struct {
	mu        sync.RWMutex
	parties   map[uuid.UUID]*party.Spec
	people    map[string]*dialogue.PersonSpec
	tables    *gamedata.Tables
	pingError error
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		parties: make(map[uuid.UUID]*party.Spec),
		people:  make(map[string]*dialogue.PersonSpec),
	}
}

// SetPingError makes Ping fail with err. Nil restores success.
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveParty(ctx context.Context, id uuid.UUID, p *party.Spec) error {
	if p == nil {
		return errors.New("party cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parties[id] = p
	return nil
}

func (m *MockStorage) LoadParty(ctx context.Context, id uuid.UUID) (*party.Spec, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.parties[id]
	if !ok {
		return nil, fmt.Errorf("party %s: %w", id, ErrNotFound)
	}
	return p, nil
}

func (m *MockStorage) DeleteParty(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.parties, id)
	return nil
}

// SetTables sets what LoadTables returns.
func (m *MockStorage) SetTables(t *gamedata.Tables) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = t
}

func (m *MockStorage) LoadTables(ctx context.Context) (*gamedata.Tables, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tables == nil {
		return nil, fmt.Errorf("tables: %w", ErrNotFound)
	}
	return m.tables, nil
}

// AddPerson registers a person under id.
func (m *MockStorage) AddPerson(id string, spec *dialogue.PersonSpec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	spec.ID = id
	m.people[id] = spec
}

func (m *MockStorage) GetPerson(ctx context.Context, id string) (*dialogue.PersonSpec, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	spec, ok := m.people[id]
	if !ok {
		return nil, fmt.Errorf("person %s: %w", id, ErrNotFound)
	}
	return spec, nil
}

func (m *MockStorage) ListPeople(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.people))
	for id := range m.people {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
