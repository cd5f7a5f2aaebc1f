/*
Package redisstore provides a store of named trees backed by a redis DB.
Trees are kept as JSON documents (see the tree/json package) under keys
made of a prefix and the name of the tree, and the most recently used
ones are kept decoded in memory.
*/
package redisstore

import (
	"bytes"
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pbanos/bonsai/tree"
	"github.com/pbanos/bonsai/tree/json"
	"gopkg.in/redis.v5"
)

// StoreError represents an error related with a Store
type StoreError string

// ErrTreeNotFound is returned when loading a tree that is not in the store.
const ErrTreeNotFound = StoreError("tree not found")

func (se StoreError) Error() string {
	return string(se)
}

/*
Store saves, loads and deletes trees on a redis DB.
It is safe for concurrent use by multiple goroutines.
*/
type Store struct {
	rc     *redis.Client
	prefix string
	cache  *lru.Cache[string, tree.Node]
}

/*
New takes a redis client, a prefix for the keys of the trees and the
number of decoded trees to keep in memory, and returns a Store. A
cacheSize of 0 disables the cache. An error is returned if the cacheSize
is negative.
*/
func New(rc *redis.Client, prefix string, cacheSize int) (*Store, error) {
	s := &Store{rc: rc, prefix: prefix}
	if cacheSize < 0 {
		return nil, fmt.Errorf("invalid tree cache size %d", cacheSize)
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, tree.Node](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating tree cache: %v", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Save stores the tree with the given root under the given name,
// replacing any tree previously stored with it.
func (s *Store) Save(ctx context.Context, name string, root tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	err := json.Write(buf, root)
	if err != nil {
		return fmt.Errorf("saving tree %q: %v", name, err)
	}
	err = s.rc.Set(s.keyFor(name), buf.Bytes(), 0).Err()
	if err != nil {
		return fmt.Errorf("saving tree %q in redis: %v", name, err)
	}
	if s.cache != nil {
		s.cache.Add(name, root)
	}
	return nil
}

/*
Load returns the root of the tree stored under the given name. An error
wrapping ErrTreeNotFound is returned if there is no such tree.
*/
func (s *Store) Load(ctx context.Context, name string) (tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if root, ok := s.cache.Get(name); ok {
			return root, nil
		}
	}
	data, err := s.rc.Get(s.keyFor(name)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("loading tree %q: %w", name, ErrTreeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading tree %q from redis: %v", name, err)
	}
	root, err := json.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("loading tree %q: %v", name, err)
	}
	if s.cache != nil {
		s.cache.Add(name, root)
	}
	return root, nil
}

// Delete removes the tree stored under the given name, if any.
func (s *Store) Delete(ctx context.Context, name string) error {
	if s.cache != nil {
		s.cache.Remove(name)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.rc.Del(s.keyFor(name)).Result()
	if err != nil {
		return fmt.Errorf("deleting tree %q from redis: %v", name, err)
	}
	return nil
}

func (s *Store) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", s.prefix, name)
}
