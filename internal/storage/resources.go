package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jwebster45206/britannia/pkg/dialogue"
	"github.com/jwebster45206/britannia/pkg/gamedata"
	"github.com/jwebster45206/britannia/pkg/storage"
)

const peopleDir = "people"

func (r *RedisStorage) LoadTables(ctx context.Context) (*gamedata.Tables, error) {
	t, err := gamedata.Load(r.dataDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("game tables in %s: %w", r.dataDir, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load game tables: %w", err)
	}
	return t, nil
}

func (r *RedisStorage) GetPerson(ctx context.Context, id string) (*dialogue.PersonSpec, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, fmt.Errorf("invalid person id %q", id)
	}

	spec, err := dialogue.LoadPersonSpec(filepath.Join(r.dataDir, peopleDir, id+".yaml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("person %s: %w", id, storage.ErrNotFound)
		}
		return nil, err
	}
	return spec, nil
}

// ListPeople returns the IDs of every person file, sorted.
func (r *RedisStorage) ListPeople(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.dataDir, peopleDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read people directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".yaml" {
			ids = append(ids, strings.TrimSuffix(entry.Name(), ".yaml"))
		}
	}
	slices.Sort(ids)
	return ids, nil
}
