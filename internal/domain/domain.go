package domain

import (
	"github.com/yungbote/listing-reel-backend/internal/domain/listing"
	"github.com/yungbote/listing-reel-backend/internal/domain/music"
	"github.com/yungbote/listing-reel-backend/internal/domain/script"
	"github.com/yungbote/listing-reel-backend/internal/domain/videos"
)

type (
	RoomType       = listing.RoomType
	Image          = listing.Image
	Classification = listing.Classification
	Property       = listing.Property
	Style          = listing.Style
	Branding       = listing.Branding

	SectionType       = script.SectionType
	Section           = script.Section
	SectionWordBudget = script.SectionWordBudget

	PercussionAnalysis = music.PercussionAnalysis
	MusicTrack         = music.Track

	Video               = videos.Video
	VideoStatus         = videos.VideoStatus
	WorkflowPayload     = videos.WorkflowPayload
	ImageTiming         = videos.ImageTiming
	SectionImageMapping = videos.SectionImageMapping
)

const (
	RoomExterior      = listing.RoomExterior
	RoomEntry         = listing.RoomEntry
	RoomLiving        = listing.RoomLiving
	RoomKitchen       = listing.RoomKitchen
	RoomDining        = listing.RoomDining
	RoomMasterBedroom = listing.RoomMasterBedroom
	RoomBedroom       = listing.RoomBedroom
	RoomBathroom      = listing.RoomBathroom
	RoomOutdoor       = listing.RoomOutdoor
	RoomHomeOffice    = listing.RoomHomeOffice
	RoomGarage        = listing.RoomGarage
	RoomLaundry       = listing.RoomLaundry
	RoomAmenity       = listing.RoomAmenity
	RoomOther         = listing.RoomOther

	SectionOpening   = script.SectionOpening
	SectionOutdoor   = script.SectionOutdoor
	SectionLiving    = script.SectionLiving
	SectionPrivate   = script.SectionPrivate
	SectionAmenities = script.SectionAmenities
	SectionClosing   = script.SectionClosing

	VideoStatusPending    = videos.VideoStatusPending
	VideoStatusDispatched = videos.VideoStatusDispatched
	VideoStatusFailed     = videos.VideoStatusFailed
)

var (
	ParseRoomType = listing.ParseRoomType
	AllRoomTypes  = listing.AllRoomTypes
	WordCount     = script.WordCount
)
