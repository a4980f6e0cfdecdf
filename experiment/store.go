package experiment

import (
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/timpalpant/nashcontest/contest"
	"github.com/timpalpant/nashcontest/gameio"
	"github.com/timpalpant/nashcontest/matrixgame"
)

// GameStore serves payoff tables for the game family, generating and
// saving a table the first time it is requested and keeping recently
// used tables in memory. Tables are shared and must not be modified;
// build a fresh Matrix from one for every solve.
type GameStore struct {
	dir      string
	compress bool
	cache    *lru.Cache
}

func NewGameStore(dir string, compress bool, cacheSize int) (*GameStore, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}

	return &GameStore{
		dir:      dir,
		compress: compress,
		cache:    cache,
	}, nil
}

// Path returns the file holding the game's table.
func (s *GameStore) Path(p contest.Params) string {
	name := p.Key() + ".csv"
	if s.compress {
		name += ".gz"
	}
	return filepath.Join(s.dir, name)
}

// Load returns the payoff table for p.
func (s *GameStore) Load(p contest.Params) (*matrixgame.Table, error) {
	key := p.Key()
	if t, ok := s.cache.Get(key); ok {
		return t.(*matrixgame.Table), nil
	}

	filename := s.Path(p)
	t, err := gameio.LoadTable(filename)
	if os.IsNotExist(err) {
		glog.V(2).Infof("Generating game %v to %v", p, filename)
		t, err = contest.NewTable(p)
		if err != nil {
			return nil, err
		}
		if err := gameio.SaveTable(filename, t); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, errors.Wrapf(err, "game %v", p)
	}

	s.cache.Add(key, t)
	return t, nil
}
