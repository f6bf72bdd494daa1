// Package stmt_store caches prepared statements by their SQL text
package stmt_store

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/go-dbal/tablemodel/internal/lru"
)

// Stmt a prepared statement, readers wait on prepared until PrepareContext returned
type Stmt struct {
	*sql.Stmt
	prepared   chan struct{}
	prepareErr error
}

// Error the error PrepareContext returned, if any
func (stmt *Stmt) Error() error {
	<-stmt.prepared
	return stmt.prepareErr
}

// Close closes the statement once its preparation finished
func (stmt *Stmt) Close() error {
	<-stmt.prepared

	if stmt.Stmt != nil {
		return stmt.Stmt.Close()
	}
	return nil
}

// ConnPool prepares statements
type ConnPool interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Store prepared statement store
type Store interface {
	// New prepares key on conn and stores it, locker is held by the caller and released once the
	// placeholder is stored so concurrent callers wait on the same preparation
	New(ctx context.Context, key string, conn ConnPool, locker sync.Locker) (*Stmt, error)
	Keys() []string
	Get(key string) (*Stmt, bool)
	Delete(key string)
	Len() int
	// Purge closes and removes every statement
	Purge()
}

const (
	defaultMaxSize = 1 << 16
	defaultTTL     = time.Hour * 24
)

// New returns a store keeping at most size statements for ttl, zero values use the defaults
func New(size int, ttl time.Duration) Store {
	if size <= 0 {
		size = defaultMaxSize
	}

	if ttl <= 0 {
		ttl = defaultTTL
	}

	onEvicted := func(k string, v *Stmt) {
		if v != nil {
			go v.Close()
		}
	}
	return &lruStore{lru: lru.NewLRU[string, *Stmt](size, onEvicted, ttl)}
}

type lruStore struct {
	lru *lru.LRU[string, *Stmt]
}

func (s *lruStore) Keys() []string {
	return s.lru.Keys()
}

func (s *lruStore) Get(key string) (*Stmt, bool) {
	stmt, ok := s.lru.Get(key)
	if ok && stmt != nil {
		<-stmt.prepared
	}
	return stmt, ok
}

func (s *lruStore) Delete(key string) {
	s.lru.Remove(key)
}

func (s *lruStore) Len() int {
	return s.lru.Len()
}

func (s *lruStore) Purge() {
	s.lru.Purge()
}

func (s *lruStore) New(ctx context.Context, key string, conn ConnPool, locker sync.Locker) (_ *Stmt, err error) {
	cacheStmt := &Stmt{prepared: make(chan struct{})}
	s.lru.Add(key, cacheStmt)
	locker.Unlock()

	defer close(cacheStmt.prepared)

	cacheStmt.Stmt, err = conn.PrepareContext(ctx, key)
	if err != nil {
		cacheStmt.prepareErr = err
		s.lru.Remove(key)
		return &Stmt{}, err
	}

	return cacheStmt, nil
}
