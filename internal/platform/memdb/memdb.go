// Package memdb is a small in-process document store with all-or-nothing
// write transactions. It backs the in-memory adapters used for local runs
// and tests when no external datastore is configured.
package memdb

import (
	"errors"
	"sort"
	"sync"
)

// ErrTxClosed is returned when a transaction is used after commit or rollback.
var ErrTxClosed = errors.New("memdb: transaction closed")

// DB holds named collections of documents keyed by id. Documents are stored
// by value; callers are responsible for deep-copying reference fields.
type DB struct {
	mu          sync.RWMutex
	collections map[string]map[string]any
}

// New returns an empty store.
func New() *DB {
	return &DB{collections: map[string]map[string]any{}}
}

// View runs fn with a read-only transaction.
func (db *DB) View(fn func(tx *Tx) error) error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	tx := &Tx{db: db}
	defer tx.close()
	return fn(tx)
}

// Update runs fn with a writable transaction. Writes are staged and applied
// only when fn returns nil; any error discards all of them.
func (db *DB) Update(fn func(tx *Tx) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	tx := &Tx{db: db, writable: true, staged: map[string]map[string]*write{}}
	defer tx.close()
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

type write struct {
	value   any
	deleted bool
}

// Tx is a view of the store bound to a single View or Update call.
type Tx struct {
	db       *DB
	writable bool
	closed   bool
	staged   map[string]map[string]*write
}

// ErrReadOnly is returned when writing through a View transaction.
var ErrReadOnly = errors.New("memdb: read-only transaction")

// Get returns the document stored under id, observing staged writes.
func (tx *Tx) Get(collection, id string) (any, bool) {
	if tx.closed {
		return nil, false
	}
	if w, ok := tx.staged[collection][id]; ok {
		if w.deleted {
			return nil, false
		}
		return w.value, true
	}
	value, ok := tx.db.collections[collection][id]
	return value, ok
}

// Put stages an insert or replace.
func (tx *Tx) Put(collection, id string, value any) error {
	if err := tx.checkWritable(); err != nil {
		return err
	}
	tx.stage(collection)[id] = &write{value: value}
	return nil
}

// Delete stages a removal. It reports whether a document was visible under id.
func (tx *Tx) Delete(collection, id string) (bool, error) {
	if err := tx.checkWritable(); err != nil {
		return false, err
	}
	_, existed := tx.Get(collection, id)
	tx.stage(collection)[id] = &write{deleted: true}
	return existed, nil
}

// Scan calls fn for every visible document in id order until fn returns false.
func (tx *Tx) Scan(collection string, fn func(id string, value any) bool) {
	if tx.closed {
		return
	}
	ids := make(map[string]struct{}, len(tx.db.collections[collection]))
	for id := range tx.db.collections[collection] {
		ids[id] = struct{}{}
	}
	for id := range tx.staged[collection] {
		ids[id] = struct{}{}
	}
	ordered := make([]string, 0, len(ids))
	for id := range ids {
		ordered = append(ordered, id)
	}
	sort.Strings(ordered)
	for _, id := range ordered {
		value, ok := tx.Get(collection, id)
		if !ok {
			continue
		}
		if !fn(id, value) {
			return
		}
	}
}

func (tx *Tx) checkWritable() error {
	if tx.closed {
		return ErrTxClosed
	}
	if !tx.writable {
		return ErrReadOnly
	}
	return nil
}

func (tx *Tx) stage(collection string) map[string]*write {
	writes, ok := tx.staged[collection]
	if !ok {
		writes = map[string]*write{}
		tx.staged[collection] = writes
	}
	return writes
}

func (tx *Tx) commit() {
	for name, writes := range tx.staged {
		docs, ok := tx.db.collections[name]
		if !ok {
			docs = map[string]any{}
			tx.db.collections[name] = docs
		}
		for id, w := range writes {
			if w.deleted {
				delete(docs, id)
				continue
			}
			docs[id] = w.value
		}
	}
}

func (tx *Tx) close() {
	tx.closed = true
	tx.staged = nil
}
