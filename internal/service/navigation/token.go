package navigation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedToken indicates a callback token that fails to decode.
// Such tokens are dropped by the caller, never partially applied.
var ErrMalformedToken = errors.New("malformed navigation token")

// Section is the warehouse movement dimension being browsed.
type Section string

const (
	SectionIn     Section = "in"
	SectionOut    Section = "out"
	SectionReport Section = "report"
)

// ParseSection validates a wire section value.
func ParseSection(value string) (Section, error) {
	switch Section(value) {
	case SectionIn, SectionOut, SectionReport:
		return Section(value), nil
	default:
		return "", fmt.Errorf("%w: unknown section %q", ErrMalformedToken, value)
	}
}

// FilterPath is the full addressable navigation state: which warehouse,
// section, district, product and page the user is positioned at.
// DistrictID 0 means "all districts".
type FilterPath struct {
	WarehouseID int
	Section     Section
	DistrictID  int
	ProductID   int
	Page        int
}

// Action discriminates the navigation token kinds.
type Action string

const (
	// Warehouse drill-down flow.
	ActionSelectDistrict  Action = "wh_district"
	ActionSelectProduct   Action = "wh_product"
	ActionMovementsPage   Action = "wh_page"
	ActionExport          Action = "wh_export"
	ActionBackToSections  Action = "wh_back_sections"
	ActionBackToDistricts Action = "wh_back_districts"
	ActionBackToProducts  Action = "wh_back_products"

	// Farmer balance and contracts listings. These address their
	// district filter by index into the sorted distinct district list
	// (0 = all), carried in Token.Filter.
	ActionFarmersPage      Action = "fb_page"
	ActionFarmersExport    Action = "fb_export"
	ActionFarmersBack      Action = "fb_back"
	ActionContractsPage    Action = "ct_page"
	ActionContractsExport  Action = "ct_export"
	ActionContractsBack    Action = "ct_back"
)

// Token is a decoded navigation token: an action plus the FilterPath
// context that action needs. Encode and Decode form the only codec for
// the colon-delimited wire format; every action has a fixed field
// layout, so a round trip reproduces the input byte for byte.
type Token struct {
	Action Action
	Path   FilterPath
	Filter int
}

// Encode serializes the token into its wire form.
func (t Token) Encode() (string, error) {
	switch t.Action {
	case ActionSelectDistrict:
		return fmt.Sprintf("%s:%d:%s:%d", t.Action, t.Path.WarehouseID, t.Path.Section, t.Path.DistrictID), nil
	case ActionSelectProduct, ActionExport:
		return fmt.Sprintf("%s:%d:%s:%d:%d", t.Action, t.Path.WarehouseID, t.Path.Section, t.Path.DistrictID, t.Path.ProductID), nil
	case ActionMovementsPage:
		return fmt.Sprintf("%s:%d:%s:%d:%d:%d", t.Action, t.Path.WarehouseID, t.Path.Section, t.Path.DistrictID, t.Path.ProductID, t.Path.Page), nil
	case ActionBackToSections:
		return fmt.Sprintf("%s:%d", t.Action, t.Path.WarehouseID), nil
	case ActionBackToDistricts:
		return fmt.Sprintf("%s:%d:%s", t.Action, t.Path.WarehouseID, t.Path.Section), nil
	case ActionBackToProducts:
		return fmt.Sprintf("%s:%d:%s:%d", t.Action, t.Path.WarehouseID, t.Path.Section, t.Path.DistrictID), nil
	case ActionFarmersPage, ActionContractsPage:
		return fmt.Sprintf("%s:%d:%d", t.Action, t.Filter, t.Path.Page), nil
	case ActionFarmersExport, ActionContractsExport:
		return fmt.Sprintf("%s:%d", t.Action, t.Filter), nil
	case ActionFarmersBack, ActionContractsBack:
		return string(t.Action), nil
	default:
		return "", fmt.Errorf("%w: unknown action %q", ErrMalformedToken, t.Action)
	}
}

// Decode parses a wire token. Field counts are fixed per action; any
// mismatch, unknown action or unparsable field rejects the whole token.
func Decode(data string) (Token, error) {
	fields := strings.Split(data, ":")
	action := Action(fields[0])
	args := fields[1:]

	switch action {
	case ActionSelectDistrict, ActionBackToProducts:
		if len(args) != 3 {
			return Token{}, fieldCountError(action, 3, len(args))
		}
		path, err := decodePath(args[0], string(args[1]), args[2], "", "")
		if err != nil {
			return Token{}, err
		}
		return Token{Action: action, Path: path}, nil

	case ActionSelectProduct, ActionExport:
		if len(args) != 4 {
			return Token{}, fieldCountError(action, 4, len(args))
		}
		path, err := decodePath(args[0], args[1], args[2], args[3], "")
		if err != nil {
			return Token{}, err
		}
		return Token{Action: action, Path: path}, nil

	case ActionMovementsPage:
		if len(args) != 5 {
			return Token{}, fieldCountError(action, 5, len(args))
		}
		path, err := decodePath(args[0], args[1], args[2], args[3], args[4])
		if err != nil {
			return Token{}, err
		}
		return Token{Action: action, Path: path}, nil

	case ActionBackToSections:
		if len(args) != 1 {
			return Token{}, fieldCountError(action, 1, len(args))
		}
		warehouseID, err := decodeInt(args[0])
		if err != nil {
			return Token{}, err
		}
		return Token{Action: action, Path: FilterPath{WarehouseID: warehouseID}}, nil

	case ActionBackToDistricts:
		if len(args) != 2 {
			return Token{}, fieldCountError(action, 2, len(args))
		}
		warehouseID, err := decodeInt(args[0])
		if err != nil {
			return Token{}, err
		}
		section, err := ParseSection(args[1])
		if err != nil {
			return Token{}, err
		}
		return Token{Action: action, Path: FilterPath{WarehouseID: warehouseID, Section: section}}, nil

	case ActionFarmersPage, ActionContractsPage:
		if len(args) != 2 {
			return Token{}, fieldCountError(action, 2, len(args))
		}
		filter, err := decodeInt(args[0])
		if err != nil {
			return Token{}, err
		}
		page, err := decodePage(args[1])
		if err != nil {
			return Token{}, err
		}
		return Token{Action: action, Filter: filter, Path: FilterPath{Page: page}}, nil

	case ActionFarmersExport, ActionContractsExport:
		if len(args) != 1 {
			return Token{}, fieldCountError(action, 1, len(args))
		}
		filter, err := decodeInt(args[0])
		if err != nil {
			return Token{}, err
		}
		return Token{Action: action, Filter: filter}, nil

	case ActionFarmersBack, ActionContractsBack:
		if len(args) != 0 {
			return Token{}, fieldCountError(action, 0, len(args))
		}
		return Token{Action: action}, nil

	default:
		return Token{}, fmt.Errorf("%w: unknown action %q", ErrMalformedToken, action)
	}
}

func decodePath(warehouse, section, district, product, page string) (FilterPath, error) {
	path := FilterPath{}

	var err error
	if path.WarehouseID, err = decodeInt(warehouse); err != nil {
		return FilterPath{}, err
	}
	if path.Section, err = ParseSection(section); err != nil {
		return FilterPath{}, err
	}
	if path.DistrictID, err = decodeInt(district); err != nil {
		return FilterPath{}, err
	}
	if product != "" {
		if path.ProductID, err = decodeInt(product); err != nil {
			return FilterPath{}, err
		}
	}
	if page != "" {
		if path.Page, err = decodePage(page); err != nil {
			return FilterPath{}, err
		}
	}
	return path, nil
}

func decodeInt(value string) (int, error) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("%w: invalid numeric field %q", ErrMalformedToken, value)
	}
	return parsed, nil
}

func decodePage(value string) (int, error) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return 0, fmt.Errorf("%w: invalid page field %q", ErrMalformedToken, value)
	}
	return parsed, nil
}

func fieldCountError(action Action, want, got int) error {
	return fmt.Errorf("%w: %s expects %d fields, got %d", ErrMalformedToken, action, want, got)
}
