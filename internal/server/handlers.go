package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tldrviz/pkg/buildinfo"
	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/graph"
	"github.com/matzehuels/tldrviz/pkg/ingest"
	"github.com/matzehuels/tldrviz/pkg/model"
	"github.com/matzehuels/tldrviz/pkg/render/nodelink"
	"github.com/matzehuels/tldrviz/pkg/session"
	"github.com/matzehuels/tldrviz/pkg/transform"
)

const maxJSONBytes = 16 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

// viewRequest resolves the path view and the session options with any
// query overrides applied. Overrides affect this request only. An entry
// that names no known function yields an empty call graph, not an error.
func (s *Server) viewRequest(r *http.Request) (graph.View, session.Options, error) {
	opts := s.state.Options()

	view, err := graph.ParseView(chi.URLParam(r, "view"))
	if err != nil {
		return "", opts, errs.Wrap(errs.ErrCodeInvalidView, err, "invalid view")
	}

	q := r.URL.Query()
	if err := queryBool(q.Get("hideTests"), &opts.HideTests); err != nil {
		return "", opts, err
	}
	if err := queryBool(q.Get("hideUtilities"), &opts.HideUtilities); err != nil {
		return "", opts, err
	}
	if raw := q.Get("utilityThreshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return "", opts, errs.New(errs.ErrCodeInvalidInput, "utilityThreshold must be an integer, got %q", raw)
		}
		opts.UtilityThreshold = transform.ClampUtilityThreshold(n)
	}
	if q.Has("entry") {
		opts.SelectedEntryPoint = q.Get("entry")
	}
	return view, opts, nil
}

func queryBool(raw string, dst *bool) error {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return errs.New(errs.ErrCodeInvalidInput, "expected a boolean, got %q", raw)
	}
	*dst = v
	return nil
}

func (s *Server) buildGraph(r *http.Request) (graph.Graph, graph.View, error) {
	view, opts, err := s.viewRequest(r)
	if err != nil {
		return graph.Graph{}, "", err
	}
	g, err := session.BuildGraph(r.Context(), view, s.state.Datasets(), opts.TransformOptions())
	return g, view, err
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	g, _, err := s.buildGraph(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	g, view, err := s.buildGraph(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := nodelink.Options{View: view, Direction: r.URL.Query().Get("direction")}
	if err := queryBool(r.URL.Query().Get("detailed"), &opts.Detailed); err != nil {
		s.writeError(w, r, err)
		return
	}

	svg, cached, err := s.renderer.Render(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "render %s", view))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if cached {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	_, _ = w.Write(svg)
}

type statsResponse struct {
	Structure       transform.StructureSummary `json:"structure"`
	Arch            transform.ArchSummary      `json:"arch"`
	MaxCallCount    int                        `json:"maxCallCount"`
	Classifications int                        `json:"classifications"`
	UserFacing      int                        `json:"userFacing"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	data := s.state.Datasets()
	resp := statsResponse{
		Structure:    transform.StructureStats(data.Structure),
		Arch:         transform.ArchStats(data.Arch),
		MaxCallCount: transform.MaxCallCount(data.Calls),
		UserFacing:   len(s.state.Entries(true)),
	}
	if c := s.state.Classifications(); c != nil {
		resp.Classifications = len(c.Classifications)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state.Snapshot())
}

func (s *Server) handlePutState(w http.ResponseWriter, r *http.Request) {
	var u session.Update
	if err := decodeJSON(r, &u); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.state.Apply(u); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.state.Snapshot())
}

type entriesResponse struct {
	Entries    []model.EntryPointClassification `json:"entries"`
	AnalyzedAt string                           `json:"analyzedAt,omitempty"`
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	only := s.state.Options().ShowOnlyUserFacing
	if err := queryBool(r.URL.Query().Get("userFacing"), &only); err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := entriesResponse{Entries: s.state.Entries(only)}
	if c := s.state.Classifications(); c != nil {
		resp.AnalyzedAt = c.AnalyzedAt
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleEntry returns the classification stored for one function key. The
// key follows the prefix verbatim, slashes included.
func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "*")
	c, ok := s.state.Classification(id)
	if !ok {
		s.writeError(w, r, errs.New(errs.ErrCodeNotFound, "no classification for %q", id))
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if s.classifier == nil {
		s.writeError(w, r, errs.New(errs.ErrCodeUnsupported, "classification is not configured (set OPENROUTER_API_KEY or GEMINI_API_KEY)"))
		return
	}
	res, err := s.classifier.Analyze(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

type saveResponse struct {
	Saved   int    `json:"saved"`
	Backend string `json:"backend"`
}

func (s *Server) handleSaveClassifications(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errs.New(errs.ErrCodeUnsupported, "no classification store configured"))
		return
	}
	data, err := ingest.DecodeClassifications(http.MaxBytesReader(w, r.Body, maxJSONBytes))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), data); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "save classifications to %s", s.store.Name()))
		return
	}
	s.state.SetClassifications(data)
	s.writeJSON(w, http.StatusOK, saveResponse{Saved: len(data.Classifications), Backend: s.store.Name()})
}

type uploadResponse struct {
	Files    []ingest.Outcome `json:"files"`
	Accepted int              `json:"accepted"`
	Ignored  int              `json:"ignored"`
	Failed   int              `json:"failed"`
}

// handleUpload ingests every file part of a multipart body in order.
// Later files of the same category replace earlier ones. Parts whose names
// route to no dataset are reported as ignored without being read.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	mr, err := r.MultipartReader()
	if err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "expected a multipart upload"))
		return
	}

	var files []ingest.File
	var skipped []ingest.Outcome
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "read upload"))
			return
		}
		name := part.FileName()
		if name == "" {
			part.Close()
			continue
		}
		name = path.Base(name)
		if err := errs.ValidateUploadFilename(name); err != nil {
			skipped = append(skipped, ingest.Outcome{Name: name, Status: ingest.StatusFailed, Error: errs.UserMessage(err)})
			part.Close()
			continue
		}
		if _, ok := ingest.Route(name); !ok {
			skipped = append(skipped, ingest.Outcome{Name: name, Status: ingest.StatusIgnored})
			part.Close()
			continue
		}
		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "read %s", name))
			return
		}
		files = append(files, ingest.File{Name: name, Data: data})
	}
	if len(files) == 0 && len(skipped) == 0 {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "upload contains no files"))
		return
	}

	res := ingest.Ingest(files)
	res.Files = append(res.Files, skipped...)
	s.state.SetDatasets(res.Datasets)
	s.logger.Info("ingested upload",
		"accepted", res.Count(ingest.StatusAccepted),
		"ignored", res.Count(ingest.StatusIgnored),
		"failed", res.Count(ingest.StatusFailed))

	s.writeJSON(w, http.StatusOK, uploadResponse{
		Files:    res.Files,
		Accepted: res.Count(ingest.StatusAccepted),
		Ignored:  res.Count(ingest.StatusIgnored),
		Failed:   res.Count(ingest.StatusFailed),
	})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
