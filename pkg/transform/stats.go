package transform

import "github.com/matzehuels/tldrviz/pkg/model"

// StructureSummary counts the unfiltered structure dataset.
type StructureSummary struct {
	TotalFiles     int      `json:"totalFiles"`
	TotalFunctions int      `json:"totalFunctions"`
	TotalClasses   int      `json:"totalClasses"`
	TotalImports   int      `json:"totalImports"`
	Languages      []string `json:"languages"`
}

// StructureStats summarizes data.
func StructureStats(data *model.StructureData) StructureSummary {
	s := StructureSummary{Languages: []string{}}
	if data == nil {
		return s
	}
	s.TotalFiles = len(data.Files)
	if data.Languages != nil {
		s.Languages = data.Languages
	}
	for _, f := range data.Files {
		s.TotalFunctions += len(f.Functions)
		s.TotalClasses += len(f.Classes)
		s.TotalImports += len(f.Imports)
	}
	return s
}

// ArchSummary reports the architecture dataset's counters.
type ArchSummary struct {
	EntryFunctions   int `json:"entryFunctions"`
	LeafFunctions    int `json:"leafFunctions"`
	MiddleFunctions  int `json:"middleFunctions"`
	TotalDirectories int `json:"totalDirectories"`
	CircularDeps     int `json:"circularDeps"`
}

// ArchStats summarizes data.
func ArchStats(data *model.ArchData) ArchSummary {
	if data == nil {
		return ArchSummary{}
	}
	return ArchSummary{
		EntryFunctions:   len(data.EntryLayer),
		LeafFunctions:    len(data.LeafLayer),
		MiddleFunctions:  data.MiddleLayerCount,
		TotalDirectories: len(data.DirectoryLayers),
		CircularDeps:     len(data.CircularDependencies),
	}
}
