package regioncount

// Detection is a single per-frame observation from the external tracker.
// It is not persisted beyond the frame that produced it.
type Detection struct {
	// Box is the bounding box in frame pixel coordinates.
	Box Rect

	// Class is the detector's class label.
	Class int

	// TrackID is the frame-local track identifier supplied by the tracker.
	// Only meaningful when HasTrackID is true; detections without a track id
	// cannot be resolved to a stable identity and are skipped.
	TrackID int

	// HasTrackID reports whether the tracker produced a track id for this
	// detection on this frame.
	HasTrackID bool
}

// FrameKind tags a frame's tracker output, checked once at the boundary.
type FrameKind uint8

const (
	// FrameDetections carries one or more detections.
	FrameDetections FrameKind = iota
	// FrameEmpty carries no detections.
	FrameEmpty
	// FrameMalformed marks tracker output that could not be interpreted.
	// It is consumed as zero detections; the stream continues.
	FrameMalformed
)

// FrameInput is one frame's worth of tracker output.
type FrameInput struct {
	Kind       FrameKind
	Detections []Detection
	// Err describes what went wrong when Kind is FrameMalformed.
	Err error
}

// DetectionsFrame wraps a detection list. An empty or nil list is an empty
// frame.
func DetectionsFrame(detections []Detection) FrameInput {
	if len(detections) == 0 {
		return EmptyFrame()
	}
	return FrameInput{
		Kind:       FrameDetections,
		Detections: detections,
	}
}

// EmptyFrame is a frame with zero detections.
func EmptyFrame() FrameInput {
	return FrameInput{Kind: FrameEmpty}
}

// MalformedFrame marks a frame whose tracker output could not be interpreted.
func MalformedFrame(err error) FrameInput {
	return FrameInput{
		Kind: FrameMalformed,
		Err:  err,
	}
}
