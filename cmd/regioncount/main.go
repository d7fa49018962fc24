// Command regioncount runs the region-persistent counter over tracker output
// supplied as JSON lines, one frame per line:
//
//	[{"box":[100,100,200,200],"class":28,"track_id":7}, ...]
//
// An empty line is a frame with zero detections. With --track the track_id
// fields are ignored and the built-in tracker issues ids instead.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/flowcv/regioncount-go/config"
	"github.com/flowcv/regioncount-go/regioncount"
	"github.com/flowcv/regioncount-go/tracker"
)

type options struct {
	configPath string
	inputPath  string
	track      bool
	debug      bool
}

func main() {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "regioncount",
		Short:         "Count objects entering regions, crediting each object exactly once",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	rootCmd.Flags().StringVarP(&opts.configPath, "config", "c", "regioncount.yaml", "path to YAML configuration")
	rootCmd.Flags().StringVarP(&opts.inputPath, "input", "i", "-", "tracker output as JSON lines, - for stdin")
	rootCmd.Flags().BoolVar(&opts.track, "track", false, "run the built-in tracker instead of using supplied track ids")
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		logger := zerolog.New(os.Stderr)
		logger.Error().Err(err).Msg("regioncount failed")
		os.Exit(1)
	}
}

func run(opts *options) error {
	level := zerolog.InfoLevel
	if opts.debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	regions, err := cfg.BuildRegions()
	if err != nil {
		return err
	}

	processor := regioncount.NewProcessor(regions, cfg.TargetClass, log)
	var trk *tracker.Tracker
	if opts.track {
		trk = tracker.New(cfg.Tracker.MaxMisses, cfg.Tracker.MinIoU, tracker.MatchingAlgorithmHungarian)
	}

	input, err := openInput(opts.inputPath)
	if err != nil {
		return err
	}
	defer input.Close()

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		report := processor.ProcessFrame(readFrame(scanner.Bytes(), trk))
		log.Debug().Int("frame", report.Frame).
			Int("detections", len(report.Detections)).
			Interface("counts", report.Counts.ByRegion).
			Int("total", report.Counts.Total).
			Msg("frame processed")
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "can't read tracker output")
	}

	summary := processor.Summary()
	event := log.Info().Int("frames", summary.Frames).Int("total", summary.Counts.Total)
	for region, count := range summary.Counts.ByRegion {
		event = event.Int(regionKey(region), count)
	}
	event.Msg("processing complete")
	log.Info().Interface("assignments", summary.Assignments).Msg("final assignments")
	if len(summary.ClassCounts) > 0 {
		log.Info().Interface("class_counts", summary.ClassCounts).Msg("class detection statistics")
	}
	return nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open input file %s", path)
	}
	return file, nil
}

type jsonDetection struct {
	Box     [4]int  `json:"box"`
	Class   int     `json:"class"`
	TrackID *int    `json:"track_id"`
	Score   float64 `json:"score"`
}

// readFrame interprets one line of tracker output. Parse failures degrade to
// a malformed frame; they never abort the stream.
func readFrame(line []byte, trk *tracker.Tracker) regioncount.FrameInput {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return regioncount.EmptyFrame()
	}
	var raw []jsonDetection
	if err := json.Unmarshal(line, &raw); err != nil {
		return regioncount.MalformedFrame(errors.Wrap(err, "can't parse frame line"))
	}
	if trk != nil {
		observations := make([]tracker.Detection, len(raw))
		for i, det := range raw {
			observations[i] = tracker.Detection{
				Box:   regioncount.NewRect(det.Box[0], det.Box[1], det.Box[2], det.Box[3]),
				Class: det.Class,
				Score: det.Score,
			}
		}
		tracked, err := trk.Track(observations)
		if err != nil {
			return regioncount.MalformedFrame(errors.Wrap(err, "built-in tracker failed"))
		}
		return regioncount.DetectionsFrame(tracked)
	}
	detections := make([]regioncount.Detection, len(raw))
	for i, det := range raw {
		detections[i] = regioncount.Detection{
			Box:   regioncount.NewRect(det.Box[0], det.Box[1], det.Box[2], det.Box[3]),
			Class: det.Class,
		}
		if det.TrackID != nil {
			detections[i].TrackID = *det.TrackID
			detections[i].HasTrackID = true
		}
	}
	return regioncount.DetectionsFrame(detections)
}

func regionKey(region int) string {
	return "region_" + strconv.Itoa(region)
}
