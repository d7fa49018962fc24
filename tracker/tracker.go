// Package tracker turns raw per-frame detections into detections carrying
// persistent integer frame-local track ids. It is one pluggable provider of
// the external-tracker collaborator the counting core consumes; the core
// makes no assumption about which tracker produced its input.
package tracker

import (
	"sort"

	"github.com/arthurkushman/go-hungarian"

	"github.com/flowcv/regioncount-go/regioncount"
)

// MatchingAlgorithm selects how detections are associated to tracks.
type MatchingAlgorithm uint16

const (
	// MatchingAlgorithmHungarian uses the Hungarian algorithm (Kuhn-Munkres)
	// for optimal assignment.
	MatchingAlgorithmHungarian MatchingAlgorithm = iota
	// MatchingAlgorithmGreedy uses greedy best-first assignment.
	MatchingAlgorithmGreedy
)

// Detection is a raw detector observation without a track id.
type Detection struct {
	Box   regioncount.Rect
	Class int
	Score float64
}

// Tracker matches per-frame detections to Kalman-predicted tracks by IoU and
// issues integer track ids starting at 1. A track unmatched for more than
// maxMisses frames is dropped; its id is never reused, but a dropped object
// re-detected later receives a fresh id (the counting core documents the
// consequences).
type Tracker struct {
	maxMisses int
	minIoU    float64
	algorithm MatchingAlgorithm
	dt        float64
	nextID    int
	tracks    map[int]*track
}

// NewDefault creates a tracker with maxMisses=30, minIoU=0.3 and Hungarian
// matching.
func NewDefault() *Tracker {
	return New(30, 0.3, MatchingAlgorithmHungarian)
}

// New creates a tracker with the given expiry, IoU threshold and matching
// algorithm.
func New(maxMisses int, minIoU float64, algorithm MatchingAlgorithm) *Tracker {
	return &Tracker{
		maxMisses: maxMisses,
		minIoU:    minIoU,
		algorithm: algorithm,
		dt:        1.0,
		tracks:    make(map[int]*track),
	}
}

// Track consumes one frame's detections and returns them annotated with
// frame-local track ids, preserving input order.
func (t *Tracker) Track(detections []Detection) ([]regioncount.Detection, error) {
	for _, tr := range t.tracks {
		tr.predict()
	}

	// Deterministic track order for matrix rows
	trackIDs := make([]int, 0, len(t.tracks))
	for id := range t.tracks {
		trackIDs = append(trackIDs, id)
	}
	sort.Ints(trackIDs)

	matchedTracks := make(map[int]struct{}, len(trackIDs))
	assignedID := make([]int, len(detections))

	if len(trackIDs) > 0 && len(detections) > 0 {
		iouMatrix := t.buildIoUMatrix(trackIDs, detections)
		for _, match := range t.match(iouMatrix, len(trackIDs), len(detections)) {
			trackID := trackIDs[match[0]]
			detIdx := match[1]
			if iouMatrix[match[0]][detIdx] < t.minIoU {
				continue
			}
			if err := t.tracks[trackID].update(detections[detIdx]); err != nil {
				return nil, err
			}
			matchedTracks[trackID] = struct{}{}
			assignedID[detIdx] = trackID
		}
	}

	// Unmatched detections start new tracks
	for i := range detections {
		if assignedID[i] != 0 {
			continue
		}
		t.nextID++
		t.tracks[t.nextID] = newTrack(t.nextID, detections[i], t.dt)
		assignedID[i] = t.nextID
	}

	// Age out tracks that stayed unmatched for too long
	for id, tr := range t.tracks {
		if _, ok := matchedTracks[id]; ok {
			continue
		}
		tr.misses++
		if tr.misses > t.maxMisses {
			delete(t.tracks, id)
		}
	}

	out := make([]regioncount.Detection, len(detections))
	for i, det := range detections {
		out[i] = regioncount.Detection{
			Box:        det.Box,
			Class:      det.Class,
			TrackID:    assignedID[i],
			HasTrackID: true,
		}
	}
	return out, nil
}

// ActiveTracks returns the number of tracks currently alive.
func (t *Tracker) ActiveTracks() int {
	return len(t.tracks)
}

func (t *Tracker) buildIoUMatrix(trackIDs []int, detections []Detection) [][]float64 {
	matrix := make([][]float64, len(trackIDs))
	for i, trackID := range trackIDs {
		row := make([]float64, len(detections))
		predicted := t.tracks[trackID].predicted
		for j, det := range detections {
			row[j] = iou(predicted, det.Box)
		}
		matrix[i] = row
	}
	return matrix
}

// match returns (trackRow, detectionColumn) pairs.
func (t *Tracker) match(iouMatrix [][]float64, numTracks, numDetections int) [][2]int {
	if t.algorithm == MatchingAlgorithmGreedy {
		return t.matchGreedy(iouMatrix, numTracks, numDetections)
	}
	return t.matchHungarian(iouMatrix, numTracks, numDetections)
}

func (t *Tracker) matchHungarian(iouMatrix [][]float64, numTracks, numDetections int) [][2]int {
	// The solver needs a square matrix; pad with zero IoU
	size := maxInt(numTracks, numDetections)
	padded := iouMatrix
	if numTracks != numDetections {
		padded = make([][]float64, size)
		for i := 0; i < size; i++ {
			padded[i] = make([]float64, size)
		}
		for i := 0; i < numTracks; i++ {
			copy(padded[i], iouMatrix[i])
		}
	}
	assignments := hungarian.SolveMax(padded)
	matches := make([][2]int, 0, len(assignments))
	for row, cols := range assignments {
		for col := range cols {
			if row < numTracks && col < numDetections {
				matches = append(matches, [2]int{row, col})
			}
			break
		}
	}
	return matches
}

func (t *Tracker) matchGreedy(iouMatrix [][]float64, numTracks, numDetections int) [][2]int {
	matches := make([][2]int, 0, minInt(numTracks, numDetections))
	taken := make(map[int]struct{}, numDetections)
	for i := 0; i < numTracks; i++ {
		bestIoU := -1.0
		bestCol := -1
		for j := 0; j < numDetections; j++ {
			if _, ok := taken[j]; ok {
				continue
			}
			if iouMatrix[i][j] > bestIoU && iouMatrix[i][j] >= t.minIoU {
				bestIoU = iouMatrix[i][j]
				bestCol = j
			}
		}
		if bestCol != -1 {
			matches = append(matches, [2]int{i, bestCol})
			taken[bestCol] = struct{}{}
		}
	}
	return matches
}
