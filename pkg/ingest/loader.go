package ingest

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/model"
	"github.com/matzehuels/tldrviz/pkg/transform"
)

// Dataset file names inside a data directory.
const (
	StructureFile       = "structure.json"
	CallsFile           = "calls.json"
	ArchFile            = "arch.json"
	ClassificationsFile = "classifications.json"
)

// ClassificationSource provides previously stored classifications. It
// returns nil, nil when nothing is stored.
type ClassificationSource interface {
	Load(ctx context.Context) (*model.ClassificationsData, error)
}

// Data is everything a session starts from. Files reports each dataset
// file that was present in the directory, in structure, calls, arch order.
type Data struct {
	transform.Datasets
	Classifications *model.ClassificationsData
	Files           []Outcome
}

// Empty reports whether no dataset was loaded.
func (d Data) Empty() bool {
	return d.Structure == nil && d.Calls == nil && d.Arch == nil && d.Classifications == nil
}

// Failed returns the outcomes of dataset files that failed to load.
func (d Data) Failed() []Outcome {
	var failed []Outcome
	for _, o := range d.Files {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Err returns an INVALID_INPUT error listing the failed files, or nil.
func (d Data) Err() error { return outcomesErr(d.Files) }

// LoadDir reads the three datasets from dir and the classifications from
// src concurrently. Each dataset is optional and independent: a missing
// file leaves its field nil and produces no outcome, and a file that fails
// to read, decode or validate is reported in Files without affecting the
// others. Only a failing src or a cancelled ctx fails the load. src may be
// nil.
func LoadDir(ctx context.Context, dir string, src ClassificationSource) (Data, error) {
	var (
		d        Data
		outcomes [3]*Outcome
	)
	g, gctx := errgroup.WithContext(ctx)

	load := func(slot int, name string, cat Category, read func(path string) error) {
		g.Go(func() error {
			err := read(filepath.Join(dir, name))
			switch {
			case errors.Is(err, fs.ErrNotExist):
			case err != nil:
				outcomes[slot] = &Outcome{Name: name, Category: cat, Status: StatusFailed, Error: errs.UserMessage(err)}
			default:
				outcomes[slot] = &Outcome{Name: name, Category: cat, Status: StatusAccepted}
			}
			return nil
		})
	}
	load(0, StructureFile, CategoryStructure, func(path string) (err error) {
		d.Structure, err = readFile(path, DecodeStructure)
		return err
	})
	load(1, CallsFile, CategoryCalls, func(path string) (err error) {
		d.Calls, err = readFile(path, DecodeCalls)
		return err
	})
	load(2, ArchFile, CategoryArch, func(path string) (err error) {
		d.Arch, err = readFile(path, DecodeArch)
		return err
	})
	if src != nil {
		g.Go(func() (err error) {
			d.Classifications, err = src.Load(gctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return Data{}, err
	}
	if err := ctx.Err(); err != nil {
		return Data{}, err
	}
	for _, o := range outcomes {
		if o != nil {
			d.Files = append(d.Files, *o)
		}
	}
	return d, nil
}
