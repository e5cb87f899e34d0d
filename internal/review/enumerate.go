// Package review reconciles pending artifacts back into the accepted set.
// A session walks the enumerated artifacts one by one; every decision is
// applied immediately, so an interrupted session leaves decided items final
// and undecided items pending for the next one.
package review

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"snapforge/internal/snap"
)

// parseWorkers bounds concurrent envelope reads during enumeration.
const parseWorkers = 8

// Item is one enumerated pending artifact.
type Item struct {
	// Path is the artifact location and doubles as the review handle.
	Path    string
	Pending *snap.Pending
}

// Enumerate collects every pending artifact under rootFilter, parses the
// envelopes in parallel, and returns the items in deterministic path order.
// Re-enumeration is safe: artifacts are stable until a session decides them.
func Enumerate(rootFilter string) ([]*Item, error) {
	var paths []string
	err := filepath.WalkDir(rootFilter, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == rootFilter {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, snap.AcceptedExt+snap.PendingSuffix) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	items := make([]*Item, len(paths))
	var g errgroup.Group
	g.SetLimit(parseWorkers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			p, err := snap.ReadPending(path)
			if err != nil {
				return err
			}
			items[i] = &Item{Path: path, Pending: p}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
