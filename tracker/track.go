package tracker

import (
	"math"

	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/pkg/errors"

	"github.com/flowcv/regioncount-go/regioncount"
)

// track is a single tracked object with an 8-D bounding box Kalman filter.
// State vector: [cx, cy, w, h, vx, vy, vw, vh].
type track struct {
	id        int
	class     int
	box       regioncount.Rect
	predicted regioncount.Rect
	misses    int
	filter    *kalman_filter.KalmanBBox
}

func newTrack(id int, det Detection, dt float64) *track {
	cx := float64(det.Box.X1+det.Box.X2) / 2.0
	cy := float64(det.Box.Y1+det.Box.Y2) / 2.0
	w := float64(det.Box.Width())
	h := float64(det.Box.Height())

	// Kalman filter props
	uCx := 1.0
	uCy := 1.0
	uW := 0.0
	uH := 0.0
	stdDevA := 2.0
	stdDevMCx := 0.1
	stdDevMCy := 0.1
	stdDevMW := 0.1
	stdDevMH := 0.1
	kf := kalman_filter.NewKalmanBBox(
		dt, uCx, uCy, uW, uH,
		stdDevA, stdDevMCx, stdDevMCy, stdDevMW, stdDevMH,
		kalman_filter.WithStateBBox(cx, cy, w, h),
	)

	return &track{
		id:        id,
		class:     det.Class,
		box:       det.Box,
		predicted: det.Box,
		filter:    kf,
	}
}

// predict advances the Kalman filter one step and refreshes the predicted box.
func (t *track) predict() {
	t.filter.Predict()
	cx, cy, w, h := t.filter.GetState()
	t.predicted = rectFromCenter(cx, cy, w, h)
}

// update feeds a matched measurement into the Kalman filter and refreshes the
// smoothed box.
func (t *track) update(det Detection) error {
	cx := float64(det.Box.X1+det.Box.X2) / 2.0
	cy := float64(det.Box.Y1+det.Box.Y2) / 2.0
	err := t.filter.Update(cx, cy, float64(det.Box.Width()), float64(det.Box.Height()))
	if err != nil {
		return errors.Wrapf(err, "can't update track %d", t.id)
	}
	sCx, sCy, sW, sH := t.filter.GetState()
	t.box = rectFromCenter(sCx, sCy, sW, sH)
	t.class = det.Class
	t.misses = 0
	return nil
}

func rectFromCenter(cx, cy, w, h float64) regioncount.Rect {
	return regioncount.Rect{
		X1: int(math.Round(cx - w/2.0)),
		Y1: int(math.Round(cy - h/2.0)),
		X2: int(math.Round(cx + w/2.0)),
		Y2: int(math.Round(cy + h/2.0)),
	}
}

// iou is Intersection over Union between two boxes.
func iou(a, b regioncount.Rect) float64 {
	xA := maxInt(a.X1, b.X1)
	yA := maxInt(a.Y1, b.Y1)
	xB := minInt(a.X2, b.X2)
	yB := minInt(a.Y2, b.Y2)

	interArea := float64(maxInt(0, xB-xA)) * float64(maxInt(0, yB-yA))
	if interArea == 0 {
		return 0.0
	}

	aArea := float64(a.Width()) * float64(a.Height())
	bArea := float64(b.Width()) * float64(b.Height())
	return interArea / (aArea + bArea - interArea)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
