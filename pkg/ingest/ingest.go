package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/model"
	"github.com/matzehuels/tldrviz/pkg/transform"
)

// Category is the dataset a file feeds.
type Category string

const (
	CategoryStructure Category = "structure"
	CategoryCalls     Category = "calls"
	CategoryArch      Category = "arch"
)

var routes = []Category{CategoryStructure, CategoryCalls, CategoryArch}

// Route picks the category for a file name. The first category whose name
// occurs in the file's base name wins.
func Route(name string) (Category, bool) {
	base := filepath.Base(name)
	for _, c := range routes {
		if strings.Contains(base, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Status is the outcome of one ingested file.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusIgnored  Status = "ignored"
	StatusFailed   Status = "failed"
)

// File is one named input.
type File struct {
	Name string
	Data []byte
}

// Outcome reports what happened to one file.
type Outcome struct {
	Name     string   `json:"name"`
	Category Category `json:"category,omitempty"`
	Status   Status   `json:"status"`
	Error    string   `json:"error,omitempty"`
}

// Result is the outcome of a batch. Datasets holds the accepted data; when
// several files feed the same category, the last one wins.
type Result struct {
	Datasets transform.Datasets `json:"-"`
	Files    []Outcome          `json:"files"`
}

// Count returns how many files ended with status s.
func (r Result) Count(s Status) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == s {
			n++
		}
	}
	return n
}

// Err returns an INVALID_INPUT error listing the failed files, or nil.
func (r Result) Err() error { return outcomesErr(r.Files) }

func outcomesErr(files []Outcome) error {
	var failed []string
	for _, f := range files {
		if f.Status == StatusFailed {
			failed = append(failed, f.Name+": "+f.Error)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return errs.New(errs.ErrCodeInvalidInput, "%d file(s) failed: %s", len(failed), strings.Join(failed, "; "))
}

// Ingest routes, decodes and validates every file in order.
func Ingest(files []File) Result {
	res := Result{Files: make([]Outcome, 0, len(files))}
	for _, f := range files {
		out := Outcome{Name: f.Name}
		cat, ok := Route(f.Name)
		if !ok {
			out.Status = StatusIgnored
			res.Files = append(res.Files, out)
			continue
		}
		out.Category = cat

		if err := decodeInto(&res.Datasets, cat, bytes.NewReader(f.Data)); err != nil {
			out.Status = StatusFailed
			out.Error = errs.UserMessage(err)
		} else {
			out.Status = StatusAccepted
		}
		res.Files = append(res.Files, out)
	}
	return res
}

// IngestPaths reads each path from disk and ingests the batch. A file that
// cannot be read is reported as failed.
func IngestPaths(paths []string) Result {
	files := make([]File, 0, len(paths))
	var unreadable []Outcome
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			unreadable = append(unreadable, Outcome{Name: p, Status: StatusFailed, Error: err.Error()})
			continue
		}
		files = append(files, File{Name: p, Data: data})
	}
	res := Ingest(files)
	res.Files = append(res.Files, unreadable...)
	return res
}

func decodeInto(ds *transform.Datasets, cat Category, r io.Reader) error {
	switch cat {
	case CategoryStructure:
		d, err := DecodeStructure(r)
		if err != nil {
			return err
		}
		ds.Structure = d
	case CategoryCalls:
		d, err := DecodeCalls(r)
		if err != nil {
			return err
		}
		ds.Calls = d
	case CategoryArch:
		d, err := DecodeArch(r)
		if err != nil {
			return err
		}
		ds.Arch = d
	default:
		return errs.New(errs.ErrCodeInvalidDataset, "unknown category %q", cat)
	}
	return nil
}

// DecodeStructure reads and validates a structure dataset.
func DecodeStructure(r io.Reader) (*model.StructureData, error) {
	return decode[model.StructureData](r, CategoryStructure)
}

// DecodeCalls reads and validates a calls dataset.
func DecodeCalls(r io.Reader) (*model.CallsData, error) {
	return decode[model.CallsData](r, CategoryCalls)
}

// DecodeArch reads and validates an architecture dataset.
func DecodeArch(r io.Reader) (*model.ArchData, error) {
	return decode[model.ArchData](r, CategoryArch)
}

// DecodeClassifications reads and validates a stored classification result.
func DecodeClassifications(r io.Reader) (*model.ClassificationsData, error) {
	return decode[model.ClassificationsData](r, "classifications")
}

func decode[T any](r io.Reader, what Category) (*T, error) {
	v := new(T)
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode %s", what)
	}
	if err := model.Validate(v); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "validate %s", what)
	}
	return v, nil
}

func readFile[T any](path string, decodeFn func(io.Reader) (*T, error)) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	v, err := decodeFn(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return v, nil
}
