package payload

import (
	"strings"

	types "github.com/yungbote/listing-reel-backend/internal/domain"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/beatsync"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/mapper"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/sections"
	"github.com/yungbote/listing-reel-backend/internal/modules/reel/tuning"
)

type Input struct {
	VideoID   string
	ListingID string
	Images    []types.Image
	Sections  []types.Section
	// Mapping overrides Section.ImageIDs when set.
	Mapping  map[string][]string
	Music    types.MusicTrack
	Property types.Property
	Style    types.Style
	Branding types.Branding
	Tuning   tuning.Config
}

// Assemble builds the render workflow document. It performs no I/O.
func Assemble(in Input) types.WorkflowPayload {
	cfg := in.Tuning.Normalize()
	imgs := mapper.SortImages(in.Images)

	urls := make([]string, len(imgs))
	index := make(map[string]int, len(imgs))
	for i, img := range imgs {
		urls[i] = img.ResolvedURL()
		if _, dup := index[img.ID]; !dup {
			index[img.ID] = i
		}
	}

	ordered := sections.PlaybackOrder(in.Sections)
	contents := make([]string, len(ordered))
	mapping := make([]types.SectionImageMapping, len(ordered))
	spoken := make([]string, 0, len(ordered))
	totalWords := 0
	for i, s := range ordered {
		text := strings.TrimSpace(s.Content)
		contents[i] = text
		if text != "" {
			spoken = append(spoken, text)
		}
		words := types.WordCount(text)
		totalWords += words

		ids := s.ImageIDs
		if in.Mapping != nil {
			ids = in.Mapping[s.ID]
		}
		indices := make([]int, 0, len(ids))
		for _, id := range ids {
			if idx, ok := index[id]; ok {
				indices = append(indices, idx)
			}
		}
		mapping[i] = types.SectionImageMapping{
			SectionIndex: i,
			SectionType:  s.Type.String(),
			ImageIndices: indices,
			WordCount:    words,
		}
	}

	out := types.WorkflowPayload{
		VideoID:                    in.VideoID,
		ListingID:                  in.ListingID,
		Images:                     urls,
		Script:                     strings.Join(spoken, "\n\n"),
		ScriptSections:             contents,
		MusicEnabled:               in.Music.Enabled,
		EstimatedNarrationDuration: cfg.NarrationSeconds(totalWords),
		SectionImageMapping:        mapping,

		Address:      in.Property.Address,
		City:         in.Property.City,
		State:        in.Property.State,
		Zip:          in.Property.Zip,
		Price:        in.Property.Price,
		Bedrooms:     in.Property.Bedrooms,
		Bathrooms:    in.Property.Bathrooms,
		SquareFeet:   in.Property.SquareFeet,
		PropertyType: in.Property.PropertyType,
		Description:  in.Property.Description,

		VideoStyle:      in.Style.VideoStyle,
		TransitionStyle: in.Style.TransitionStyle,
		VoiceID:         in.Style.VoiceID,
		MusicVolume:     in.Style.MusicVolume,
		AspectRatio:     in.Style.AspectRatio,

		AgentName:   in.Branding.AgentName,
		AgentPhone:  in.Branding.AgentPhone,
		AgentEmail:  in.Branding.AgentEmail,
		Brokerage:   in.Branding.Brokerage,
		LogoURL:     in.Branding.LogoURL,
		HeadshotURL: in.Branding.HeadshotURL,
		BrandColor:  in.Branding.BrandColor,
	}

	if in.Music.Enabled {
		out.MusicURL = in.Music.URL
		if a := in.Music.Analysis; a != nil {
			out.MusicBpm = a.BPM
			out.MusicBeats = a.Beats
			out.MusicSnareHits = a.SnareHits
			out.MusicBassHits = a.BassHits
			out.ImageTiming = Timings(urls, a, cfg)
		}
	}
	return out
}

// Timings is nil unless the analysis carries percussion events and a track length.
func Timings(urls []string, a *types.PercussionAnalysis, cfg tuning.Config) []types.ImageTiming {
	if !a.HasEvents() || a.Duration <= 0 || len(urls) == 0 {
		return nil
	}
	events, _ := beatsync.PickEvents(a)
	slots := beatsync.CalculateTimings(events, len(urls), a.Duration, beatsync.OptionsFrom(cfg))
	out := make([]types.ImageTiming, len(slots))
	for i, s := range slots {
		out[i] = types.ImageTiming{
			ImageURL: urls[i],
			Start:    s.Start,
			Duration: s.Duration,
			FadeIn:   s.FadeIn,
			FadeOut:  s.FadeOut,
		}
	}
	return out
}
