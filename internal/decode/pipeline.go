package decode

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/gapartel/starfish/internal/config"
	"github.com/gapartel/starfish/internal/graph"
	"github.com/gapartel/starfish/internal/monitoring"
	"github.com/gapartel/starfish/internal/spots"
)

// Decoder runs the graph-based decoding pipeline for one imaging volume:
// intra-round merge, candidate graph construction, connectivity repair, and
// per-component minimum-cost maximum-flow sequence selection.
type Decoder struct {
	cfg *config.DecodeConfig
}

// NewDecoder validates the configuration eagerly and returns a Decoder.
func NewDecoder(cfg *config.DecodeConfig) (*Decoder, error) {
	if cfg == nil {
		return nil, fmt.Errorf("decode: %w: nil config", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Decoder{cfg: cfg}, nil
}

// Run decodes one volume's raw candidate spots. Graph construction is
// sequential (it must see the full spot set to compute connectivity); the
// per-component decode fans out over a bounded worker pool and results are
// merged by concatenation in component order, so output is deterministic for
// a given input spot set and configuration.
//
// Empty input is not an error: it yields a Result with zero sequences.
func (d *Decoder) Run(ctx context.Context, raw []spots.RawSpot) (*Result, error) {
	merged, err := spots.Merge(raw, d.cfg.GetMergeRadius())
	if err != nil {
		return nil, fmt.Errorf("decode: merge failed: %w", err)
	}

	g := graph.Build(merged, d.cfg.GetSearchRadius())
	comps := graph.Components(g)

	repaired := 0
	if d.cfg.GetSearchRadiusMax() > d.cfg.GetSearchRadius() {
		repaired = graph.Repair(g, comps, d.cfg.GetSearchRadiusMax())
	}
	monitoring.Logf("decode: %d raw -> %d spots, %d edges (%d repaired), %d components",
		len(raw), len(merged), len(g.Edges), repaired, len(comps))

	perComp, err := d.decodeComponents(ctx, g, comps)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID: uuid.NewString(),
		Stats: RunStats{
			RawSpots:    len(raw),
			MergedSpots: len(merged),
			Edges:       len(g.Edges),
			RepairEdges: repaired,
			Components:  len(comps),
		},
	}

	var qualities []float64
	for ci, seqs := range perComp {
		for _, sp := range seqs {
			seq := DecodedSequence{Component: ci, Cost: sp.cost}
			for _, n := range sp.nodes {
				s := merged[g.Nodes[n].Spot]
				seq.Spots = append(seq.Spots, SelectedSpot{
					Round:       s.Round,
					Pos:         s.Pos,
					Intensities: s.Intensities,
					Quality:     s.Quality,
				})
				qualities = append(qualities, s.Quality)
			}
			result.Sequences = append(result.Sequences, seq)
		}
	}
	result.Stats.Sequences = len(result.Sequences)
	if len(qualities) > 0 {
		result.Stats.MeanQuality = stat.Mean(qualities, nil)
	}

	monitoring.Logf("decode: run %s decoded %d sequences from %d components",
		result.RunID, len(result.Sequences), len(comps))
	return result, nil
}

// decodeComponents fans the component list out over the worker pool. Each
// worker reads the shared graph without mutating it, so no locking is
// needed; results land in a per-component slot indexed by component.
func (d *Decoder) decodeComponents(ctx context.Context, g *graph.Graph, comps [][]int32) ([][]sequencePath, error) {
	perComp := make([][]sequencePath, len(comps))
	if len(comps) == 0 {
		return perComp, nil
	}

	workers := d.cfg.GetWorkers()
	if workers > len(comps) {
		workers = len(comps)
	}
	lambda := d.cfg.GetLambda()

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ci := range jobs {
				if ctx.Err() != nil {
					continue // drain
				}
				perComp[ci] = selectSequences(g, comps[ci], lambda)
			}
		}()
	}
	for ci := range comps {
		jobs <- ci
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("decode: cancelled: %w", err)
	}
	return perComp, nil
}
