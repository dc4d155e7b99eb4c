package gcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

// Label is one Vision label annotation.
type Label struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

type Vision interface {
	// LabelImage annotates either a remote image (uri) or raw bytes (content).
	LabelImage(ctx context.Context, uri string, content []byte) ([]Label, error)
	Close() error
}

type visionService struct {
	log       *logger.Logger
	client    *vision.ImageAnnotatorClient
	maxLabels int32
}

func NewVision(log *logger.Logger) (Vision, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	client, err := vision.NewImageAnnotatorClient(context.Background(), ClientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return &visionService{log: log.With("service", "gcp.Vision"), client: client, maxLabels: 15}, nil
}

func (s *visionService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *visionService) LabelImage(ctx context.Context, uri string, content []byte) ([]Label, error) {
	img := &visionpb.Image{}
	switch {
	case len(content) > 0:
		img.Content = content
	case strings.TrimSpace(uri) != "":
		img.Source = &visionpb.ImageSource{ImageUri: strings.TrimSpace(uri)}
	default:
		return nil, fmt.Errorf("vision: image uri or content required")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	resp, err := s.client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:    img,
			Features: []*visionpb.Feature{{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: s.maxLabels}},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return []Label{}, nil
	}
	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return nil, fmt.Errorf("vision annotate error: %s", r0.Error.Message)
	}
	out := make([]Label, 0, len(r0.LabelAnnotations))
	for _, a := range r0.LabelAnnotations {
		if a == nil || strings.TrimSpace(a.Description) == "" {
			continue
		}
		out = append(out, Label{Description: a.Description, Score: float64(a.Score)})
	}
	s.log.Debug("Image labeled", "uri", uri, "labels", len(out))
	return out, nil
}
