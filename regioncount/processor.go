package regioncount

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TrackedDetection is a detection resolved to its stable identity, as exposed
// to presentation collaborators.
type TrackedDetection struct {
	Detection
	// Identity is the stable identity resolved for the detection.
	Identity ID
	// Region is the identity's assigned region index, or 0 when unassigned.
	Region int
}

// Counts aggregates frozen assignments per region.
type Counts struct {
	ByRegion map[int]int
	Total    int
}

// FrameReport is the per-frame output for the presentation layer.
type FrameReport struct {
	Frame      int
	Detections []TrackedDetection
	Counts     Counts
}

// Summary is the end-of-run report.
type Summary struct {
	RunID uuid.UUID
	// Frames is the number of frames consumed, malformed ones included.
	Frames int
	Counts Counts
	// Identities is the number of distinct stable identities issued.
	Identities  int
	Assignments map[ID]int
	ClassCounts map[int]int
}

// Processor consumes per-frame tracker output, stabilizes identities and
// commits one-shot region assignments. It owns its registry and ledger
// exclusively; frames must be processed one at a time in arrival order,
// since "first assignment" is defined by that order.
type Processor struct {
	runID       uuid.UUID
	regions     *RegionSet
	registry    *Registry
	ledger      *Ledger
	targetClass int
	frames      int
	classCounts map[int]int
	log         zerolog.Logger
}

// NewProcessor creates a processor counting objects of targetClass against
// the given region set.
func NewProcessor(regions *RegionSet, targetClass int, log zerolog.Logger) *Processor {
	runID := uuid.New()
	return &Processor{
		runID:       runID,
		regions:     regions,
		registry:    NewRegistry(),
		ledger:      NewLedger(),
		targetClass: targetClass,
		classCounts: make(map[int]int),
		log:         log.With().Stringer("run_id", runID).Logger(),
	}
}

// RunID returns the run identifier stamped on the processor's logs.
func (p *Processor) RunID() uuid.UUID {
	return p.runID
}

// ProcessFrame consumes one frame of tracker output. Failures are confined
// to the frame: malformed input degrades to zero detections and a panic
// while interpreting a frame is caught and logged, with all accumulated
// state preserved.
func (p *Processor) ProcessFrame(input FrameInput) (report FrameReport) {
	p.frames++
	report.Frame = p.frames
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Int("frame", p.frames).Interface("panic", r).
				Msg("frame processing aborted, continuing with next frame")
		}
		report.Counts = p.counts()
	}()

	switch input.Kind {
	case FrameMalformed:
		p.log.Warn().Int("frame", p.frames).Err(input.Err).
			Msg("malformed tracker output, treating frame as zero detections")
		return report
	case FrameEmpty:
		if p.frames%10 == 0 {
			p.log.Debug().Int("frame", p.frames).Msg("no detections in this frame")
		}
		return report
	}

	for _, det := range input.Detections {
		p.classCounts[det.Class]++
	}
	if p.frames <= 10 {
		p.log.Debug().Int("frame", p.frames).
			Interface("class_counts", p.classCounts).
			Msg("detected classes")
	}

	for _, det := range input.Detections {
		if !det.HasTrackID {
			continue
		}
		if det.Class != p.targetClass {
			continue
		}
		identity := p.registry.Resolve(det.TrackID)
		region, assigned := p.ledger.RegionOf(identity)
		if !assigned {
			// No verdict yet: probe the six sample points, regions in
			// priority order per point, stop on the first hit. Identities
			// that match nothing stay unassigned and retry next frame.
			if verdict := p.probe(det.Box); verdict != 0 {
				if err := p.ledger.Assign(identity, verdict); err != nil {
					p.log.Error().Err(err).Int64("identity", int64(identity)).
						Msg("invariant violation: refusing to overwrite frozen assignment")
				} else {
					region = verdict
					p.log.Info().Int64("identity", int64(identity)).
						Int("region", verdict).Int("frame", p.frames).
						Msg("identity assigned to region")
				}
			}
		}
		report.Detections = append(report.Detections, TrackedDetection{
			Detection: det,
			Identity:  identity,
			Region:    region,
		})
	}
	return report
}

// probe tests the six candidate points against the regions. The first
// (point, region) hit wins: a later point is never consulted even if it
// would land in a higher-priority region.
func (p *Processor) probe(box Rect) int {
	for _, pt := range box.SamplePoints() {
		if index := p.regions.Locate(pt); index != 0 {
			return index
		}
	}
	return 0
}

func (p *Processor) counts() Counts {
	return Counts{
		ByRegion: p.ledger.CountsByRegion(),
		Total:    p.ledger.Total(),
	}
}

// Summary reports the final aggregate counts and the full set of frozen
// assignments, suitable for logging or export at end of run.
func (p *Processor) Summary() Summary {
	classCounts := make(map[int]int, len(p.classCounts))
	for class, count := range p.classCounts {
		classCounts[class] = count
	}
	return Summary{
		RunID:       p.runID,
		Frames:      p.frames,
		Counts:      p.counts(),
		Identities:  p.registry.Seen(),
		Assignments: p.ledger.Assignments(),
		ClassCounts: classCounts,
	}
}
