package resource

// Category is one of the independent asset groups the index serves.
// Each category is loaded from its own source file and reloaded on its
// own; refreshing one never touches the others.
type Category string

const (
	CategoryMaps    Category = "maps"
	CategoryWeapons Category = "weapons"
	CategoryArc     Category = "arc"
)

// Categories returns every known category in a stable order.
func Categories() []Category {
	return []Category{CategoryMaps, CategoryWeapons, CategoryArc}
}

// Resource is a read-only view of one index entry. FilePath and Exists
// are derived when the view is built, with a fresh filesystem check, so
// a file dropped into place after load is picked up without a reload.
type Resource struct {
	Key         string
	Category    Category
	Name        string
	Aliases     []string
	Filename    string
	FilePath    string
	Exists      bool
	Description string
	Type        string
	HasLevels   bool
}

// LevelFile points at the image for one specific weapon level.
type LevelFile struct {
	Level    int
	Filename string
	FilePath string
	Exists   bool
}

// LeveledResolution is the outcome of a weapon lookup. When the weapon
// has graduated levels and none was chosen yet (or the chosen one does
// not exist), NeedsSelection is set and LevelsAvailable lists the valid
// choices; InvalidLevel carries a rejected request so callers can echo
// it back. File is set only when a concrete level was resolved.
type LeveledResolution struct {
	Weapon          Resource
	HasLevels       bool
	NeedsSelection  bool
	InvalidLevel    *int
	LevelsAvailable []int
	File            *LevelFile
}
