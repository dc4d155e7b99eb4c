package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/observability"
	"github.com/yungbote/listing-reel-backend/internal/platform/apierr"
	"github.com/yungbote/listing-reel-backend/internal/platform/gcp"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

const defaultAnalyzerTimeout = 2 * time.Minute

// analyzerRunner executes the analyzer against a local audio file and returns its stdout.
type analyzerRunner func(ctx context.Context, audioPath string) ([]byte, error)

type BeatAnalysisService interface {
	Analyze(ctx context.Context, musicKey string) (*types.PercussionAnalysis, error)
}

type beatAnalysisService struct {
	log     *logger.Logger
	bucket  gcp.BucketService
	run     analyzerRunner
	timeout time.Duration
}

// NewBeatAnalysisService runs command (split on whitespace, audio path appended) for each
// track. An empty command disables analysis.
func NewBeatAnalysisService(baseLog *logger.Logger, bucket gcp.BucketService, command string, timeout time.Duration) BeatAnalysisService {
	if timeout <= 0 {
		timeout = defaultAnalyzerTimeout
	}
	s := &beatAnalysisService{
		log:     baseLog.With("service", "BeatAnalysisService"),
		bucket:  bucket,
		timeout: timeout,
	}
	if argv := strings.Fields(command); len(argv) > 0 {
		s.run = commandRunner(argv)
	}
	return s
}

func commandRunner(argv []string) analyzerRunner {
	return func(ctx context.Context, audioPath string) ([]byte, error) {
		args := append(append([]string{}, argv[1:]...), audioPath)
		cmd := exec.CommandContext(ctx, argv[0], args...)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			// The analyzer reports failures as JSON on stdout; keep it for ParseAnalysis.
			if stdout.Len() > 0 {
				return stdout.Bytes(), nil
			}
			return nil, fmt.Errorf("beat analyzer: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return stdout.Bytes(), nil
	}
}

func (s *beatAnalysisService) Analyze(ctx context.Context, musicKey string) (*types.PercussionAnalysis, error) {
	if s.run == nil {
		return nil, apierr.Unavailable("beat_analysis_unavailable", nil)
	}
	if s.bucket == nil {
		return nil, apierr.Unavailable("storage_unavailable", nil)
	}
	musicKey = strings.TrimLeft(strings.TrimSpace(musicKey), "/")
	if musicKey == "" {
		return nil, apierr.BadRequest("missing_music_key", apierr.ErrInvalidArgument)
	}

	ctx, span := observability.StartSpan(ctx, "beats.analyze", attribute.String("music.key", musicKey))
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	path, cleanup, err := s.download(ctx, musicKey)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	defer cleanup()

	start := time.Now()
	out, err := s.run(ctx, path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	analysis, err := ParseAnalysis(out)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.log.Info("Beat analysis finished",
		"music_key", musicKey,
		"snare_hits", len(analysis.SnareHits),
		"bass_hits", len(analysis.BassHits),
		"beats", len(analysis.Beats),
		"duration", analysis.Duration,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return analysis, nil
}

func (s *beatAnalysisService) download(ctx context.Context, key string) (string, func(), error) {
	rc, err := s.bucket.DownloadFile(ctx, gcp.BucketCategoryMusic, key)
	if err != nil {
		if errors.Is(err, gcp.ErrObjectNotFound) {
			return "", nil, apierr.NotFound("music_not_found", err)
		}
		return "", nil, fmt.Errorf("download music: %w", err)
	}
	defer rc.Close()

	f, err := os.CreateTemp("", "track-*"+filepath.Ext(key))
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() { _ = os.Remove(f.Name()) }
	if _, err := io.Copy(f, rc); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), cleanup, nil
}

type analyzerOutput struct {
	SnareHits []float64 `json:"snare_hits"`
	BassHits  []float64 `json:"bass_hits"`
	AllBeats  []float64 `json:"all_beats"`

	SnareHitsCamel []float64 `json:"snareHits"`
	BassHitsCamel  []float64 `json:"bassHits"`
	Beats          []float64 `json:"beats"`

	BPM      *float64 `json:"bpm"`
	Duration float64  `json:"duration"`
	Error    string   `json:"error"`
}

// ParseAnalysis accepts the analyzer's snake_case output as well as the camelCase record
// stored alongside a track. An "error" field is returned as an error.
func ParseAnalysis(raw []byte) (*types.PercussionAnalysis, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("beat analyzer returned no output")
	}
	var out analyzerOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse beat analysis: %w", err)
	}
	if msg := strings.TrimSpace(out.Error); msg != "" {
		return nil, fmt.Errorf("beat analyzer: %s", msg)
	}
	return &types.PercussionAnalysis{
		SnareHits: firstNonEmpty(out.SnareHits, out.SnareHitsCamel),
		BassHits:  firstNonEmpty(out.BassHits, out.BassHitsCamel),
		Beats:     firstNonEmpty(out.AllBeats, out.Beats),
		BPM:       out.BPM,
		Duration:  out.Duration,
	}, nil
}

func firstNonEmpty(a, b []float64) []float64 {
	if len(a) > 0 {
		return a
	}
	if len(b) > 0 {
		return b
	}
	return []float64{}
}
