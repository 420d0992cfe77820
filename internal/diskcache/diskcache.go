// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package diskcache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/mitchellh/go-homedir"

	"github.com/staranto/diskcache/internal/future"
	mylog "github.com/staranto/diskcache/internal/log"
)

// ErrNotImplemented is returned by Delete for every entry.
var ErrNotImplemented = errors.New("not implemented")

// Entry describes a cached artifact on disk as seen by List.
type Entry struct {
	Store   string
	Key     string
	Path    string
	Size    int64
	ModTime time.Time
}

// Cache maps (store, key) pairs to files beneath a fixed root directory. It
// holds no state beyond its configuration, so it is safe for concurrent use;
// concurrent writers to one entry race and the last write wins.
type Cache struct {
	appName string
	root    string
	logger  log.Interface
}

// Option customizes a Cache.
type Option func(*Cache)

// WithLogger sets the sink for trace output. Defaults to the Apex logger.
func WithLogger(logger log.Interface) Option {
	return func(c *Cache) { c.logger = logger }
}

// Root returns the cache root for appName beneath home: <home>/.<appName>.
func Root(home, appName string) string {
	return filepath.Join(home, "."+appName)
}

// DefaultRoot resolves the cache root beneath the user's home directory.
// DISKCACHE_HOME, if set and non-empty, replaces the home directory.
func DefaultRoot(appName string) (string, error) {
	if h, ok := os.LookupEnv("DISKCACHE_HOME"); ok && h != "" {
		return Root(h, appName), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return Root(home, appName), nil
}

// New returns a Cache rooted at root. No directories are created until an
// entry is accessed.
func New(root, appName string, opts ...Option) (*Cache, error) {
	if appName == "" {
		return nil, errors.New("app name must not be empty")
	}
	if root == "" {
		return nil, errors.New("cache root must not be empty")
	}

	c := &Cache{
		appName: appName,
		root:    root,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = mylog.OrDefault(c.logger)

	return c, nil
}

// AppName returns the application name the cache was built for.
func (c *Cache) AppName() string { return c.appName }

// RootDir returns the cache root directory.
func (c *Cache) RootDir() string { return c.root }

// PathFor returns the file backing (store, key). It creates the store
// directory if it does not exist yet, on every call.
func (c *Cache) PathFor(store, key string) (string, error) {
	dir := filepath.Join(c.root, store)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return "", err
	}
	return filepath.Join(dir, "."+key), nil
}

// Exists reports whether the entry file is present. Any failure, including
// failing to create the store directory, reads as false.
func (c *Cache) Exists(store, key string) bool {
	p, err := c.PathFor(store, key)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Get returns the raw content of the entry. Errors from the filesystem are
// returned unchanged, so errors.Is(err, fs.ErrNotExist) identifies a miss.
func (c *Cache) Get(store, key string) (string, error) {
	c.logger.Debug("cache.Get")
	p, err := c.PathFor(store, key)
	if err != nil {
		return "", err
	}

	trace := mylog.Area(c.logger, "CACHE")
	trace.Debugf("read: %s:%s", store, key)
	trace.Debug(p)

	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}

	s := string(b)
	trace.Debug(s)
	return s, nil
}

// Set replaces the entry content with value. A failed write may leave the
// file truncated.
func (c *Cache) Set(store, key, value string) error {
	c.logger.Debug("cache.Set")
	p, err := c.PathFor(store, key)
	if err != nil {
		return err
	}

	trace := mylog.Area(c.logger, "CACHE")
	trace.Debugf("write: %s:%s:%s", store, key, value)
	trace.Debug(p)

	if err := os.WriteFile(p, []byte(value), os.FileMode(0o600)); err != nil { //nolint:mnd
		return err
	}

	trace.Debug("written")
	return nil
}

// Delete is not supported and always returns ErrNotImplemented.
func (c *Cache) Delete(store, key string) error {
	return ErrNotImplemented
}

// ExistsAsync is Exists on its own goroutine.
func (c *Cache) ExistsAsync(store, key string) *future.Future[bool] {
	return future.Go(func() (bool, error) {
		return c.Exists(store, key), nil
	})
}

// GetAsync is Get on its own goroutine.
func (c *Cache) GetAsync(store, key string) *future.Future[string] {
	return future.Go(func() (string, error) {
		return c.Get(store, key)
	})
}

// SetAsync is Set on its own goroutine.
func (c *Cache) SetAsync(store, key, value string) *future.Future[struct{}] {
	return future.Go(func() (struct{}, error) {
		return struct{}{}, c.Set(store, key, value)
	})
}

// DeleteAsync returns an already-failed future.
func (c *Cache) DeleteAsync(store, key string) *future.Future[struct{}] {
	return future.Rejected[struct{}](c.Delete(store, key))
}

// List returns the entries of store sorted by key. Like every other access it
// creates the store directory when missing.
func (c *Cache) List(store string) ([]Entry, error) {
	dir := filepath.Join(c.root, store)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return nil, err
	}

	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list store %s: %w", store, err)
	}

	var entries []Entry
	for _, de := range des {
		name := de.Name()
		if de.IsDir() || !strings.HasPrefix(name, ".") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			c.logger.WithError(err).Warnf("failed to stat cache file %s", name)
			continue
		}
		entries = append(entries, Entry{
			Store:   store,
			Key:     strings.TrimPrefix(name, "."),
			Path:    filepath.Join(dir, name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries, nil
}

// Stores returns the store names beneath the root. A root that does not exist
// yet has no stores.
func (c *Cache) Stores() ([]string, error) {
	des, err := os.ReadDir(c.root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read cache root: %w", err)
	}

	var stores []string
	for _, de := range des {
		if de.IsDir() {
			stores = append(stores, de.Name())
		}
	}
	sort.Strings(stores)
	return stores, nil
}
