package transform

import (
	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/graph"
	"github.com/matzehuels/tldrviz/pkg/model"
)

// Datasets bundles the raw analyzer output. Any field may be nil.
type Datasets struct {
	Structure *model.StructureData
	Calls     *model.CallsData
	Arch      *model.ArchData
}

// Options holds the filters shared by all views. Each view reads the
// fields it understands.
type Options struct {
	HideTests          bool
	SelectedEntryPoint string
	HideUtilities      bool
	UtilityThreshold   int
}

// Build runs the transformer for view. A missing dataset yields an empty
// graph, not an error.
func Build(view graph.View, data Datasets, opts Options) (graph.Graph, error) {
	switch view {
	case graph.ViewCalls:
		return Calls(data.Calls, CallsOptions{
			HideTests:          opts.HideTests,
			Arch:               data.Arch,
			SelectedEntryPoint: opts.SelectedEntryPoint,
			HideUtilities:      opts.HideUtilities,
			UtilityThreshold:   opts.UtilityThreshold,
		}), nil
	case graph.ViewStructure:
		return Structure(data.Structure, StructureOptions{HideTests: opts.HideTests}), nil
	case graph.ViewArch:
		return Arch(data.Arch), nil
	default:
		return graph.Graph{}, errs.New(errs.ErrCodeInvalidView, "unknown view %q", view)
	}
}
