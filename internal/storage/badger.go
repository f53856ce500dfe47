package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore implements Storage on an embedded Badger database.
type BadgerStore struct {
	db  *badger.DB
	hub *Hub
}

// NewBadgerStore opens (or creates) a Badger database in dir. An empty dir
// opens an in-memory database.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable Badger's internal logging
	opts.SyncWrites = true
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	return &BadgerStore{db: db, hub: NewHub()}, nil
}

func (b *BadgerStore) Get(_ context.Context, key string) (string, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return string(value), nil
}

func (b *BadgerStore) Set(_ context.Context, key, value string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	b.hub.Publish(key)
	return nil
}

func (b *BadgerStore) Remove(_ context.Context, key string) error {
	removed := false
	err := b.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		removed = true
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	if removed {
		b.hub.Publish(key)
	}
	return nil
}

func (b *BadgerStore) Keys(_ context.Context, prefix string) ([]string, error) {
	keys := []string{}
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

func (b *BadgerStore) Watch(key string, fn WatchFunc) func() {
	return b.hub.Watch(key, fn)
}

func (b *BadgerStore) Stats(ctx context.Context) (*Stats, error) {
	keys, err := b.Keys(ctx, "")
	if err != nil {
		return nil, err
	}
	lsm, vlog := b.db.Size()
	return &Stats{Driver: "badger", TotalKeys: int64(len(keys)), SizeBytes: lsm + vlog}, nil
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}
