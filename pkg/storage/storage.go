// Package storage persists variant (metadata, value) pairs in pebble, keyed by ksuid.
package storage

import (
	"context"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/variantdb/pkg/codec"
	"github.com/ssargent/variantdb/pkg/variant"
)

// ErrNotFound is returned when no entry exists for an id.
var ErrNotFound = errors.New("variant not found")

// Entry is one stored variant.
type Entry struct {
	ID        ksuid.KSUID
	Metadata  []byte
	Value     []byte
	CreatedAt time.Time
}

// Variant returns a cursor over the stored pair.
func (e *Entry) Variant() variant.Variant {
	return variant.New(e.Value, e.Metadata)
}

// Option configures a Store.
type Option func(*Store)

// WithDecoder sets the decoder used to validate pairs on Put. A nil
// decoder keeps the default.
func WithDecoder(d *variant.Decoder) Option {
	return func(s *Store) {
		if d != nil {
			s.decoder = d
		}
	}
}

// WithSync makes every write wait for the WAL to be flushed.
func WithSync(sync bool) Option {
	return func(s *Store) {
		if sync {
			s.writeOpts = pebble.Sync
		}
	}
}

// Store is a pebble-backed variant store. It is safe for concurrent use.
type Store struct {
	db        *pebble.DB
	codec     *codec.RecordCodec
	decoder   *variant.Decoder
	logger    log.Logger
	writeOpts *pebble.WriteOptions
}

// Open opens or creates a store in dir.
func Open(dir string, logger log.Logger, opts ...Option) (*Store, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open store at %s", dir)
	}

	s := &Store{
		db:        db,
		codec:     codec.NewRecordCodec(),
		decoder:   variant.NewDecoder(),
		logger:    log.With(logger, "component", "storage"),
		writeOpts: pebble.NoSync,
	}
	for _, opt := range opts {
		opt(s)
	}

	level.Info(s.logger).Log("msg", "store opened", "dir", dir)
	return s, nil
}

// Put validates the pair and stores it under a new id.
func (s *Store) Put(ctx context.Context, metadata, value []byte) (ksuid.KSUID, error) {
	if err := ctx.Err(); err != nil {
		return ksuid.Nil, err
	}

	if _, err := s.decoder.ToJSON(value, metadata); err != nil {
		return ksuid.Nil, errors.Wrap(err, "validate variant")
	}

	data, err := s.codec.Encode(metadata, value)
	if err != nil {
		return ksuid.Nil, errors.Wrap(err, "encode record")
	}

	id := ksuid.New()
	if err := s.db.Set(id.Bytes(), data, s.writeOpts); err != nil {
		return ksuid.Nil, errors.Wrapf(err, "put %s", id)
	}

	level.Debug(s.logger).Log("msg", "variant stored", "id", id, "bytes", len(data))
	return id, nil
}

// Get returns the entry stored under id.
func (s *Store) Get(ctx context.Context, id ksuid.KSUID) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, closer, err := s.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "get %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", id)
	}
	defer closer.Close()

	// data is only valid until closer.Close
	return s.decodeEntry(id, append([]byte(nil), data...))
}

// Delete removes the entry stored under id.
func (s *Store) Delete(ctx context.Context, id ksuid.KSUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, closer, err := s.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return errors.Wrapf(ErrNotFound, "delete %s", id)
	}
	if err != nil {
		return errors.Wrapf(err, "delete %s", id)
	}
	closer.Close()

	if err := s.db.Delete(id.Bytes(), s.writeOpts); err != nil {
		return errors.Wrapf(err, "delete %s", id)
	}

	level.Debug(s.logger).Log("msg", "variant deleted", "id", id)
	return nil
}

// List returns up to limit entries in id order, oldest first. A limit
// below one returns every entry.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return nil, errors.Wrap(err, "list")
	}
	defer iter.Close()

	var entries []Entry
	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if limit > 0 && len(entries) >= limit {
			break
		}

		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			return nil, errors.Wrap(err, "list: bad key")
		}

		e, err := s.decodeEntry(id, append([]byte(nil), iter.Value()...))
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}

	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "list")
	}
	return entries, nil
}

// Close flushes and closes the store.
func (s *Store) Close() error {
	level.Info(s.logger).Log("msg", "store closed")
	return s.db.Close()
}

func (s *Store) decodeEntry(id ksuid.KSUID, data []byte) (*Entry, error) {
	rec, err := s.codec.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode record %s", id)
	}
	if err := rec.Validate(); err != nil {
		level.Warn(s.logger).Log("msg", "corrupt record", "id", id, "err", err)
		return nil, errors.Wrapf(err, "validate record %s", id)
	}

	return &Entry{
		ID:        id,
		Metadata:  rec.Metadata,
		Value:     rec.Value,
		CreatedAt: rec.Time(),
	}, nil
}
