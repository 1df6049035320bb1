// Package rosterstore persists committed roster snapshots as one JSON
// document per match under a configurable directory. The file layout
// mirrors how a coach's device keeps its local submission: small, whole
// documents replaced atomically on every write.
package rosterstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/grassroots-fc/matchday/internal/domain/roster"
)

type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, crerr.New("roster store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, crerr.Wrap(err, "create roster store directory")
	}

	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Get(ctx context.Context, matchID string) (roster.Snapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return roster.Snapshot{}, false, err
	}

	data, err := os.ReadFile(s.path(matchID))
	if err != nil {
		if os.IsNotExist(err) {
			return roster.Snapshot{}, false, nil
		}
		return roster.Snapshot{}, false, crerr.Wrap(err, "read roster snapshot")
	}

	var snap roster.Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return roster.Snapshot{}, false, crerr.Wrap(err, "decode roster snapshot")
	}
	if snap.MatchID == "" {
		snap.MatchID = matchID
	}

	return snap, true, nil
}

// Put writes through a temporary file and renames it into place so a crash
// mid-write never leaves a truncated snapshot behind.
func (s *FileStore) Put(ctx context.Context, snapshot roster.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(snapshot.MatchID) == "" {
		return crerr.New("snapshot match id is required")
	}

	data, err := sonic.Marshal(snapshot)
	if err != nil {
		return crerr.Wrap(err, "encode roster snapshot")
	}

	target := s.path(snapshot.MatchID)
	tmp, err := os.CreateTemp(s.dir, ".snapshot-*")
	if err != nil {
		return crerr.Wrap(err, "create temp snapshot file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return crerr.Wrap(err, "write roster snapshot")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return crerr.Wrap(err, "close roster snapshot")
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return crerr.Wrap(err, "replace roster snapshot")
	}

	return nil
}

// path flattens the match id into a safe file name; ids are slugs but a
// stray separator must not escape the directory.
func (s *FileStore) path(matchID string) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(matchID)
	return filepath.Join(s.dir, name+".json")
}
