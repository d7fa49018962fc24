package tracker

import (
	"testing"

	"github.com/flowcv/regioncount-go/regioncount"
)

func det(x1, y1, x2, y2 int) Detection {
	return Detection{
		Box:   regioncount.NewRect(x1, y1, x2, y2),
		Class: 28,
		Score: 0.9,
	}
}

func TestTrackIDPersistsAcrossFrames(t *testing.T) {
	// One object drifting right a few pixels per frame
	frames := [][]Detection{
		{det(100, 100, 200, 200)},
		{det(104, 101, 204, 201)},
		{det(109, 102, 209, 202)},
		{det(113, 102, 213, 202)},
		{det(118, 103, 218, 203)},
	}

	tracker := NewDefault()
	for i, frame := range frames {
		tracked, err := tracker.Track(frame)
		if err != nil {
			t.Fatal(err)
		}
		if len(tracked) != 1 {
			t.Fatalf("frame %d: expected 1 tracked detection, got %d", i+1, len(tracked))
		}
		if !tracked[0].HasTrackID || tracked[0].TrackID != 1 {
			t.Errorf("frame %d: expected track id 1, got %d", i+1, tracked[0].TrackID)
		}
	}
	if tracker.ActiveTracks() != 1 {
		t.Errorf("expected 1 active track, got %d", tracker.ActiveTracks())
	}
}

func TestSeparateObjectsGetSeparateIDs(t *testing.T) {
	frames := [][]Detection{
		{det(100, 100, 200, 200), det(500, 100, 600, 200)},
		{det(103, 102, 203, 202), det(497, 102, 597, 202)},
		{det(107, 104, 207, 204), det(493, 104, 593, 204)},
	}

	tracker := New(5, 0.3, MatchingAlgorithmHungarian)
	var lastLeft, lastRight int
	for i, frame := range frames {
		tracked, err := tracker.Track(frame)
		if err != nil {
			t.Fatal(err)
		}
		if len(tracked) != 2 {
			t.Fatalf("frame %d: expected 2 tracked detections, got %d", i+1, len(tracked))
		}
		if tracked[0].TrackID == tracked[1].TrackID {
			t.Fatalf("frame %d: both objects share track id %d", i+1, tracked[0].TrackID)
		}
		if i > 0 && (tracked[0].TrackID != lastLeft || tracked[1].TrackID != lastRight) {
			t.Errorf("frame %d: ids flipped, got (%d, %d) after (%d, %d)",
				i+1, tracked[0].TrackID, tracked[1].TrackID, lastLeft, lastRight)
		}
		lastLeft, lastRight = tracked[0].TrackID, tracked[1].TrackID
	}
}

func TestExpiredTrackMeansFreshID(t *testing.T) {
	tracker := New(2, 0.3, MatchingAlgorithmGreedy)

	tracked, err := tracker.Track([]Detection{det(100, 100, 200, 200)})
	if err != nil {
		t.Fatal(err)
	}
	firstID := tracked[0].TrackID

	// Object missing beyond maxMisses
	for i := 0; i < 3; i++ {
		if _, err := tracker.Track(nil); err != nil {
			t.Fatal(err)
		}
	}
	if tracker.ActiveTracks() != 0 {
		t.Fatalf("expected track to expire, %d still active", tracker.ActiveTracks())
	}

	// Same position again: the track is gone, so this is a new id. The
	// counting core treats that as a new object on purpose.
	tracked, err = tracker.Track([]Detection{det(100, 100, 200, 200)})
	if err != nil {
		t.Fatal(err)
	}
	if tracked[0].TrackID == firstID {
		t.Errorf("expired track id %d was reused", firstID)
	}
}

func TestDistantDetectionStartsNewTrack(t *testing.T) {
	tracker := New(5, 0.3, MatchingAlgorithmGreedy)

	if _, err := tracker.Track([]Detection{det(100, 100, 200, 200)}); err != nil {
		t.Fatal(err)
	}
	tracked, err := tracker.Track([]Detection{
		det(102, 101, 202, 201),
		det(800, 800, 900, 900),
	})
	if err != nil {
		t.Fatal(err)
	}
	if tracked[0].TrackID != 1 {
		t.Errorf("overlapping detection lost its track: got id %d", tracked[0].TrackID)
	}
	if tracked[1].TrackID != 2 {
		t.Errorf("distant detection should start track 2, got %d", tracked[1].TrackID)
	}
	if tracker.ActiveTracks() != 2 {
		t.Errorf("expected 2 active tracks, got %d", tracker.ActiveTracks())
	}
}

func TestIoU(t *testing.T) {
	a := regioncount.NewRect(0, 0, 100, 100)
	if got := iou(a, a); got != 1.0 {
		t.Errorf("identical boxes: expected IoU 1.0, got %f", got)
	}
	if got := iou(a, regioncount.NewRect(200, 200, 300, 300)); got != 0.0 {
		t.Errorf("disjoint boxes: expected IoU 0.0, got %f", got)
	}
	// half overlap: inter 50x100, union 150x100
	got := iou(a, regioncount.NewRect(50, 0, 150, 100))
	if got < 0.333 || got > 0.334 {
		t.Errorf("expected IoU ~1/3, got %f", got)
	}
}
