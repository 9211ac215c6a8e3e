package models

// Violation areas. Each area has its own fixed item vocabulary.
const (
	AreaIndoor  = "indoor"
	AreaOutdoor = "outdoor"
	AreaOther   = "other"
)

var itemsByArea = map[string][]string{
	AreaIndoor: {
		"floor",
		"blackboard",
		"desks",
		"trash bin",
		"cleaning corner",
		"windows",
	},
	AreaOutdoor: {
		"corridor",
		"stairwell",
		"assigned zone",
		"planter beds",
	},
	AreaOther: {
		"restroom",
		"recycling station",
		"equipment room",
	},
}

var conditions = []string{
	"not cleaned",
	"partially cleaned",
	"litter present",
	"equipment misplaced",
	"stains or marks",
	"other (see remark)",
}

// ValidArea reports whether the area is one of the known values.
func ValidArea(area string) bool {
	_, ok := itemsByArea[area]
	return ok
}

// ItemsForArea returns the fixed item vocabulary for an area.
func ItemsForArea(area string) []string {
	items, ok := itemsByArea[area]
	if !ok {
		return []string{}
	}
	return append([]string(nil), items...)
}

// ValidItem reports whether the item belongs to the area's vocabulary.
func ValidItem(area, item string) bool {
	for _, candidate := range itemsByArea[area] {
		if candidate == item {
			return true
		}
	}
	return false
}

// Conditions returns the shared condition vocabulary.
func Conditions() []string {
	return append([]string(nil), conditions...)
}

// ValidCondition reports whether the condition is part of the vocabulary.
func ValidCondition(condition string) bool {
	for _, candidate := range conditions {
		if candidate == condition {
			return true
		}
	}
	return false
}
