package services

import (
	"context"
	"net/url"
	"path"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/observability"
	"github.com/yungbote/listing-reel-backend/internal/platform/apierr"
	"github.com/yungbote/listing-reel-backend/internal/platform/gcp"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

const (
	defaultClassifyConcurrency = 4
	labelMinScore              = 0.5
	featureMinScore            = 0.6
	maxFeatures                = 5
)

// ClassifyInput identifies one photo. Content wins over URL when both are set.
type ClassifyInput struct {
	URL      string
	Filename string
	Content  []byte
}

type ClassifierService interface {
	Enabled() bool
	Classify(ctx context.Context, in ClassifyInput) (types.Classification, error)
	// ClassifyBatch never fails as a whole; a photo that cannot be labeled comes back as "other".
	ClassifyBatch(ctx context.Context, in []ClassifyInput) []types.Classification
}

type classifierService struct {
	log         *logger.Logger
	vision      gcp.Vision
	concurrency int
}

func NewClassifierService(baseLog *logger.Logger, vision gcp.Vision, concurrency int) ClassifierService {
	if concurrency <= 0 {
		concurrency = defaultClassifyConcurrency
	}
	return &classifierService{
		log:         baseLog.With("service", "ClassifierService"),
		vision:      vision,
		concurrency: concurrency,
	}
}

func (s *classifierService) Enabled() bool { return s.vision != nil }

func (s *classifierService) Classify(ctx context.Context, in ClassifyInput) (types.Classification, error) {
	if s.vision == nil {
		return types.Classification{}, apierr.Unavailable("vision_unavailable", nil)
	}
	if strings.TrimSpace(in.URL) == "" && len(in.Content) == 0 {
		return types.Classification{}, apierr.BadRequest("missing_image", apierr.ErrInvalidArgument)
	}
	labels, err := s.vision.LabelImage(ctx, in.URL, in.Content)
	if err != nil {
		return types.Classification{}, err
	}
	return ClassificationFromLabels(in.URL, filenameFor(in), labels), nil
}

func (s *classifierService) ClassifyBatch(ctx context.Context, in []ClassifyInput) []types.Classification {
	ctx, span := observability.StartSpan(ctx, "classifier.batch", attribute.Int("photos", len(in)))
	defer span.End()

	out := make([]types.Classification, len(in))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range in {
		i := i
		g.Go(func() error {
			c, err := s.Classify(ctx, in[i])
			if err != nil {
				s.log.Warn("classification failed, using other", "url", in[i].URL, "error", err)
				c = types.Classification{
					URL:      in[i].URL,
					Filename: filenameFor(in[i]),
					RoomType: types.RoomOther,
					Features: []string{},
				}
			}
			out[i] = c
			return nil
		})
	}
	_ = g.Wait()
	return out
}

type roomRule struct {
	room     types.RoomType
	keywords []string
}

// Rules are checked in order; the first rule any confident label matches decides the room.
var roomRules = []roomRule{
	{types.RoomMasterBedroom, []string{"master bedroom", "primary bedroom", "master suite"}},
	{types.RoomBathroom, []string{"bathroom", "bathtub", "shower", "toilet", "vanity"}},
	{types.RoomKitchen, []string{"kitchen", "countertop", "cabinetry", "kitchen appliance", "stove", "cooktop", "refrigerator", "oven", "range hood"}},
	{types.RoomDining, []string{"dining room", "dining table"}},
	{types.RoomLaundry, []string{"laundry", "laundry room", "washing machine", "clothes dryer"}},
	{types.RoomHomeOffice, []string{"home office", "office", "study", "desk", "bookcase"}},
	{types.RoomGarage, []string{"garage", "garage door", "workshop"}},
	{types.RoomBedroom, []string{"bedroom", "bed", "bed frame", "bedding", "nursery"}},
	{types.RoomLiving, []string{"living room", "family room", "couch", "sofa", "studio couch", "fireplace", "hearth", "coffee table"}},
	{types.RoomEntry, []string{"foyer", "hallway", "entryway", "staircase", "stairs", "lobby"}},
	{types.RoomAmenity, []string{"gym", "exercise equipment", "fitness", "clubhouse", "tennis", "playground", "sauna", "theater"}},
	{types.RoomOutdoor, []string{"swimming pool", "pool", "patio", "backyard", "garden", "deck", "yard", "lawn", "porch", "pergola", "outdoor furniture"}},
	{types.RoomExterior, []string{"house", "facade", "roof", "siding", "cottage", "villa", "mansion", "driveway", "suburb"}},
}

var genericLabels = map[string]bool{
	"property":        true,
	"room":            true,
	"interior design": true,
	"building":        true,
	"real estate":     true,
	"home":            true,
	"house":           true,
	"floor":           true,
	"flooring":        true,
	"wall":            true,
	"ceiling":         true,
	"furniture":       true,
	"wood":            true,
	"window":          true,
}

// RoomTypeFromLabels maps Vision labels to a room type. Labels under labelMinScore are
// ignored; nothing matching yields RoomOther.
func RoomTypeFromLabels(labels []gcp.Label) types.RoomType {
	confident := make([]string, 0, len(labels))
	for _, l := range labels {
		if l.Score < labelMinScore {
			continue
		}
		confident = append(confident, " "+normalizeLabel(l.Description)+" ")
	}
	for _, rule := range roomRules {
		for _, kw := range rule.keywords {
			needle := " " + kw + " "
			for _, l := range confident {
				if strings.Contains(l, needle) {
					return rule.room
				}
			}
		}
	}
	return types.RoomOther
}

// ClassificationFromLabels builds the full classification record for one photo.
func ClassificationFromLabels(rawURL, filename string, labels []gcp.Label) types.Classification {
	sorted := make([]gcp.Label, len(labels))
	copy(sorted, labels)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Description < sorted[j].Description
	})

	c := types.Classification{
		URL:      rawURL,
		Filename: filename,
		RoomType: RoomTypeFromLabels(sorted),
		Features: []string{},
	}
	if len(sorted) > 0 {
		c.Label = sorted[0].Description
	}
	seen := map[string]bool{}
	for _, l := range sorted {
		if len(c.Features) >= maxFeatures || l.Score < featureMinScore {
			break
		}
		f := normalizeLabel(l.Description)
		if f == "" || genericLabels[f] || seen[f] {
			continue
		}
		seen[f] = true
		c.Features = append(c.Features, f)
	}
	return c
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func filenameFor(in ClassifyInput) string {
	if name := strings.TrimSpace(in.Filename); name != "" {
		return name
	}
	u, err := url.Parse(strings.TrimSpace(in.URL))
	if err != nil || u.Path == "" {
		return ""
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
