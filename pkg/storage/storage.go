package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jwebster45206/britannia/pkg/dialogue"
	"github.com/jwebster45206/britannia/pkg/gamedata"
	"github.com/jwebster45206/britannia/pkg/party"
)

// ErrNotFound is returned when a save or resource does not exist.
var ErrNotFound = errors.New("not found")

// Storage combines saved games (Redis) with the game's static resources
// (YAML files under the data directory).
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Saved parties
	SaveParty(ctx context.Context, id uuid.UUID, p *party.Spec) error
	LoadParty(ctx context.Context, id uuid.UUID) (*party.Spec, error)
	DeleteParty(ctx context.Context, id uuid.UUID) error

	// Resources
	LoadTables(ctx context.Context) (*gamedata.Tables, error)
	GetPerson(ctx context.Context, id string) (*dialogue.PersonSpec, error)
	ListPeople(ctx context.Context) ([]string, error)
}
