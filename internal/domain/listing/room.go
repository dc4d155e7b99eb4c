package listing

import "strings"

// RoomType is the closed set of classifications a listing photo can carry.
type RoomType string

const (
	RoomExterior      RoomType = "exterior"
	RoomEntry         RoomType = "entry"
	RoomLiving        RoomType = "living"
	RoomKitchen       RoomType = "kitchen"
	RoomDining        RoomType = "dining"
	RoomMasterBedroom RoomType = "master_bedroom"
	RoomBedroom       RoomType = "bedroom"
	RoomBathroom      RoomType = "bathroom"
	RoomOutdoor       RoomType = "outdoor"
	RoomHomeOffice    RoomType = "home_office"
	RoomGarage        RoomType = "garage"
	RoomLaundry       RoomType = "laundry"
	RoomAmenity       RoomType = "amenity"
	RoomOther         RoomType = "other"
)

var allRoomTypes = []RoomType{
	RoomExterior,
	RoomEntry,
	RoomLiving,
	RoomKitchen,
	RoomDining,
	RoomMasterBedroom,
	RoomBedroom,
	RoomBathroom,
	RoomOutdoor,
	RoomHomeOffice,
	RoomGarage,
	RoomLaundry,
	RoomAmenity,
	RoomOther,
}

// AllRoomTypes returns a copy of every known room type in declaration order.
func AllRoomTypes() []RoomType {
	out := make([]RoomType, len(allRoomTypes))
	copy(out, allRoomTypes)
	return out
}

func (r RoomType) Valid() bool {
	switch r {
	case RoomExterior, RoomEntry, RoomLiving, RoomKitchen, RoomDining,
		RoomMasterBedroom, RoomBedroom, RoomBathroom, RoomOutdoor,
		RoomHomeOffice, RoomGarage, RoomLaundry, RoomAmenity, RoomOther:
		return true
	default:
		return false
	}
}

func (r RoomType) String() string { return string(r) }

// ParseRoomType normalizes free-form classifier output. Anything unknown maps to RoomOther.
func ParseRoomType(raw string) RoomType {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	switch s {
	case "living_room", "family_room", "great_room":
		return RoomLiving
	case "primary_bedroom", "main_bedroom", "master":
		return RoomMasterBedroom
	case "office", "study":
		return RoomHomeOffice
	case "foyer", "entryway", "hallway":
		return RoomEntry
	case "bath", "powder_room":
		return RoomBathroom
	case "backyard", "patio", "pool", "yard", "garden", "deck":
		return RoomOutdoor
	case "front", "facade", "curb":
		return RoomExterior
	}
	if rt := RoomType(s); rt.Valid() {
		return rt
	}
	return RoomOther
}
