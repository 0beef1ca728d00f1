package classify

import (
	"fmt"

	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/model"
)

// MaxCallees bounds how many outgoing calls describe one entry point.
const MaxCallees = 10

// Request is the input of one classification run.
type Request struct {
	Entries []model.LayerFunction `json:"entries" validate:"required,dive"`
	Calls   []model.CallEdge      `json:"calls" validate:"required,dive"`
}

// NewRequest builds a request from the entry layer of arch and the call
// edges of calls. Both datasets are required.
func NewRequest(arch *model.ArchData, calls *model.CallsData) (Request, error) {
	if arch == nil || calls == nil {
		return Request{}, errs.New(errs.ErrCodeInvalidInput, "classification needs both the arch and calls datasets")
	}
	req := Request{
		Entries: append([]model.LayerFunction{}, arch.EntryLayer...),
		Calls:   append([]model.CallEdge{}, calls.Edges...),
	}
	return req, nil
}

// Validate checks the request against its struct tags.
func (r Request) Validate() error {
	if err := model.Validate(r); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid classification request")
	}
	return nil
}

// EntryContext is one entry point with the calls it makes.
type EntryContext struct {
	File     string
	Function string
	Callees  []string
}

// Contexts pairs each entry with its first MaxCallees outgoing calls, each
// formatted "<to_func> (<to_file>)", in call order.
func (r Request) Contexts() []EntryContext {
	out := make([]EntryContext, len(r.Entries))
	for i, e := range r.Entries {
		ec := EntryContext{File: e.File, Function: e.Function}
		for _, c := range r.Calls {
			if len(ec.Callees) == MaxCallees {
				break
			}
			if c.FromFile == e.File && c.FromFunc == e.Function {
				ec.Callees = append(ec.Callees, fmt.Sprintf("%s (%s)", c.ToFunc, c.ToFile))
			}
		}
		out[i] = ec
	}
	return out
}
