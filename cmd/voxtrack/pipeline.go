package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/voxtrack/internal/config"
	"github.com/chazu/voxtrack/pkg/engine"
	"github.com/chazu/voxtrack/pkg/graph"
	"github.com/chazu/voxtrack/pkg/kernel"
	"github.com/chazu/voxtrack/pkg/kernel/sdfx"
	"github.com/chazu/voxtrack/pkg/kspace"
	"github.com/chazu/voxtrack/pkg/predicate"
	"github.com/chazu/voxtrack/pkg/tessellate"
	"github.com/chazu/voxtrack/pkg/topology"
	"github.com/chazu/voxtrack/pkg/volume"
	"go.uber.org/zap"
)

// Pipeline loads a region, finds a seed surfel, and walks the boundary
// component containing it.
type Pipeline struct {
	cfg    *config.Config
	kernel kernel.Kernel
	engine *engine.Engine
	log    *zap.Logger
}

// Report summarises one traversal.
type Report struct {
	Input   string
	Space   *kspace.Space
	Seed    kspace.SCell
	Surfels int
	Layers  []int // surfels per BFS distance
	Mesh    *kernel.Mesh
}

// NewPipeline creates a pipeline with the sdfx kernel behind the script engine.
func NewPipeline(cfg *config.Config, log *zap.Logger) *Pipeline {
	k := sdfx.New()
	return &Pipeline{
		cfg:    cfg,
		kernel: k,
		engine: engine.NewEngine(k, engine.WithTimeout(cfg.Input.Timeout)),
		log:    log,
	}
}

// region is a shape together with the space it lives in.
type region struct {
	space *kspace.Space
	pred  predicate.Predicate
	scale float64
}

// Run executes the pipeline.
func (p *Pipeline) Run() (*Report, error) {
	in := p.cfg.Input.Path
	r, err := p.load(in)
	if err != nil {
		return nil, err
	}
	p.log.Info("space ready", zap.String("input", in), zap.Stringer("space", r.space))

	adj, err := topology.ParseAdjacency(r.space.Dimension(), p.cfg.Surface.Adjacency)
	if err != nil {
		return nil, err
	}
	seed, err := topology.FindABel(r.space, r.pred, p.cfg.Surface.MaxSteps,
		topology.WithSeed(p.cfg.Surface.Seed))
	if err != nil {
		return nil, &exitError{code: exitNoBel, err: fmt.Errorf("no boundary element found: %w", err)}
	}
	p.log.Debug("seed surfel", zap.Stringer("bel", seed))

	tracker, err := topology.NewTracker(r.space, r.pred, adj)
	if err != nil {
		return nil, err
	}
	surface := topology.NewDigitalSurface(tracker)

	report := &Report{Input: in, Space: r.space, Seed: seed}
	exporting := p.cfg.Output.Path != ""
	var nodes []graph.Node[kspace.SCell]
	for n, err := range graph.NewBreadthFirstVisitor[kspace.SCell](surface, seed).All() {
		if err != nil {
			return nil, fmt.Errorf("traversing boundary: %w", err)
		}
		report.Surfels++
		for int(n.Distance) >= len(report.Layers) {
			report.Layers = append(report.Layers, 0)
		}
		report.Layers[n.Distance]++
		if exporting {
			nodes = append(nodes, n)
		}
	}
	p.log.Info("boundary traversed",
		zap.Int("surfels", report.Surfels),
		zap.Int("layers", len(report.Layers)))

	if exporting {
		if report.Mesh, err = p.export(r, nodes); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// load builds the region described by the input file's extension.
func (p *Pipeline) load(path string) (*region, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vol":
		return p.loadVol(path)
	case ".zy":
		return p.loadScript(path)
	}
	return nil, fmt.Errorf("unsupported input %q: expected .vol or .zy", path)
}

func (p *Pipeline) loadVol(path string) (*region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := volume.ReadVol(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	lower, upper := img.Domain()
	space, err := p.newSpace(lower, upper)
	if err != nil {
		return nil, err
	}
	pred := predicate.Threshold(img, p.cfg.Input.MinThreshold, p.cfg.Input.MaxThreshold)
	return &region{space: space, pred: pred, scale: 1}, nil
}

func (p *Pipeline) loadScript(path string) (*region, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	solid, evalErrs, err := p.engine.Evaluate(string(src))
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			p.log.Error("script error", zap.String("file", path), zap.Int("line", e.Line), zap.String("msg", e.Message))
		}
		return nil, fmt.Errorf("evaluating %s: %w", path, evalErrs[0])
	}

	scale := p.cfg.Input.Scale
	lower, upper := predicate.SolidDomain(solid, scale, p.cfg.Input.Margin)
	space, err := p.newSpace(lower, upper)
	if err != nil {
		return nil, err
	}
	return &region{space: space, pred: predicate.FromSolid(solid, scale), scale: scale}, nil
}

func (p *Pipeline) newSpace(lower, upper []int) (*kspace.Space, error) {
	space, err := kspace.New(lower, upper, p.cfg.Surface.Closed)
	if err != nil {
		return nil, &exitError{code: exitSpace, err: fmt.Errorf("building space: %w", err)}
	}
	return space, nil
}

func (p *Pipeline) export(r *region, nodes []graph.Node[kspace.SCell]) (*kernel.Mesh, error) {
	mesh, err := tessellate.Tessellate(r.space, nodes, r.scale)
	if err != nil {
		return nil, err
	}
	out := p.cfg.Output.Path
	mesh.Name = strings.TrimSuffix(filepath.Base(p.cfg.Input.Path), filepath.Ext(p.cfg.Input.Path))

	f, err := os.Create(out)
	if err != nil {
		return nil, err
	}
	if err := tessellate.Write(f, mesh, tessellate.Format(p.cfg.Output.Format)); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	p.log.Info("mesh written", zap.String("path", out), zap.Int("triangles", mesh.TriangleCount()))
	return mesh, nil
}

// Print writes the surfel count and the BFS layer histogram.
func (r *Report) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "input: %s\nspace: %v\nseed: %v\nsurfels: %d\n",
		r.Input, r.Space, r.Seed, r.Surfels); err != nil {
		return err
	}
	for d, n := range r.Layers {
		if _, err := fmt.Fprintf(w, "distance %d: %d\n", d, n); err != nil {
			return err
		}
	}
	return nil
}
