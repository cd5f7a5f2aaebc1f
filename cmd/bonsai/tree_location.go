package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/bonsai/tree"
	"github.com/pbanos/bonsai/tree/json"
	"github.com/pbanos/bonsai/tree/redisstore"
	"gopkg.in/redis.v5"
)

const (
	redisTreePrefix    = "bonsai:tree"
	redisTreeCacheSize = 8
)

// redisLocation identifies a tree stored in redis, given as
// redis://[:password@]host:port/db/name
type redisLocation struct {
	addr     string
	password string
	db       int
	name     string
}

func parseRedisLocation(location string) (*redisLocation, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parsing redis tree location: %v", err)
	}
	if u.Scheme != "redis" {
		return nil, fmt.Errorf("parsing redis tree location: unexpected scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parsing redis tree location: no host")
	}
	parts := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("parsing redis tree location: path must be /DB/NAME, got %q", u.Path)
	}
	db, err := strconv.Atoi(parts[0])
	if err != nil || db < 0 {
		return nil, fmt.Errorf("parsing redis tree location: invalid db %q", parts[0])
	}
	rl := &redisLocation{addr: u.Host, db: db, name: parts[1]}
	if u.User != nil {
		rl.password, _ = u.User.Password()
	}
	return rl, nil
}

func (rl *redisLocation) store() (*redisstore.Store, *redis.Client, error) {
	rc := redis.NewClient(&redis.Options{Addr: rl.addr, Password: rl.password, DB: rl.db})
	s, err := redisstore.New(rc, redisTreePrefix, redisTreeCacheSize)
	if err != nil {
		rc.Close()
		return nil, nil, err
	}
	return s, rc, nil
}

func isRedisLocation(location string) bool {
	return strings.HasPrefix(location, "redis://")
}

/*
loadTree reads the tree at the given location: a redis tree location or a
path to a JSON file.
*/
func (rcc *rootCmdConfig) loadTree(location string) (tree.Node, error) {
	if isRedisLocation(location) {
		rl, err := parseRedisLocation(location)
		if err != nil {
			return nil, err
		}
		rcc.Logf("Loading tree %s from redis at %s (db %d)...", rl.name, rl.addr, rl.db)
		s, rc, err := rl.store()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return s.Load(rcc.Context(), rl.name)
	}
	rcc.Logf("Reading tree from %s...", location)
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", location, err)
	}
	defer f.Close()
	root, err := json.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", location, err)
	}
	return root, nil
}

/*
saveTree writes the tree onto the given location: a redis tree location,
a path to a JSON file or "" for STDOUT.
*/
func (rcc *rootCmdConfig) saveTree(ctx context.Context, location string, root tree.Node) error {
	if isRedisLocation(location) {
		rl, err := parseRedisLocation(location)
		if err != nil {
			return err
		}
		rcc.Logf("Saving tree %s to redis at %s (db %d)...", rl.name, rl.addr, rl.db)
		s, rc, err := rl.store()
		if err != nil {
			return err
		}
		defer rc.Close()
		return s.Save(ctx, rl.name, root)
	}
	f := os.Stdout
	if location != "" {
		rcc.Logf("Writing tree to %s...", location)
		var err error
		f, err = os.Create(location)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return json.Write(f, root)
}
