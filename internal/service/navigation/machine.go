package navigation

import "fmt"

// Level names the menu depth a resolved transition lands on.
type Level int

const (
	LevelSections Level = iota
	LevelDistricts
	LevelProducts
	LevelMovements
)

// Step is the destination of a transition: which menu to render next
// and with what filter values.
type Step struct {
	Level Level
	Path  FilterPath
}

// SelectSection resolves the section chosen from the reply keyboard.
// Receipts skip the district menu; issues and reports go through it.
func SelectSection(warehouseID int, section Section) Step {
	path := FilterPath{WarehouseID: warehouseID, Section: section}
	if section == SectionIn {
		return Step{Level: LevelProducts, Path: path}
	}
	return Step{Level: LevelDistricts, Path: path}
}

// Resolve maps a decoded token to its destination. It is a pure
// function of the token: back transitions reuse the filter values the
// token carries, so the prior selection survives a "back" press.
// Export tokens do not resolve here; they never change the path.
func Resolve(tok Token) (Step, error) {
	switch tok.Action {
	case ActionSelectDistrict, ActionBackToProducts:
		return Step{Level: LevelProducts, Path: tok.Path}, nil
	case ActionSelectProduct:
		path := tok.Path
		path.Page = 1
		return Step{Level: LevelMovements, Path: path}, nil
	case ActionMovementsPage:
		return Step{Level: LevelMovements, Path: tok.Path}, nil
	case ActionBackToDistricts:
		return Step{Level: LevelDistricts, Path: tok.Path}, nil
	case ActionBackToSections:
		return Step{Level: LevelSections, Path: tok.Path}, nil
	default:
		return Step{}, fmt.Errorf("%w: action %q has no navigation step", ErrMalformedToken, tok.Action)
	}
}

// Paginate moves the path by delta pages, never below page 1. Callers
// check hasNext before issuing +1, so past-the-end pages are their
// mistake to avoid and an empty page to receive.
func Paginate(path FilterPath, delta int) FilterPath {
	path.Page += delta
	if path.Page < 1 {
		path.Page = 1
	}
	return path
}
