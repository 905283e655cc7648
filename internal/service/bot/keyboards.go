package bot

import (
	"go.uber.org/zap"

	"github.com/uzagro/omborbot/internal/domain/models"
	"github.com/uzagro/omborbot/internal/service/navigation"
)

// Keyboard builders. Every inline button carries an encoded navigation
// token; reply keyboards carry the fixed menu texts the dispatcher
// matches on.

func mainMenu() models.ReplyKeyboardMarkup {
	return models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: textFarmersSection}},
			{{Text: textWarehouse}},
		},
		ResizeKeyboard: true,
	}
}

func farmersMenu() models.ReplyKeyboardMarkup {
	return models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: textFarmerBalance}},
			{{Text: textContracts}},
			{{Text: textMainMenu}},
		},
		ResizeKeyboard: true,
	}
}

func warehouseNamesMenu(names []string) models.ReplyKeyboardMarkup {
	rows := make([][]models.KeyboardButton, 0, len(names)+1)
	for _, name := range names {
		if name == "" {
			continue
		}
		rows = append(rows, []models.KeyboardButton{{Text: name}})
	}
	rows = append(rows, []models.KeyboardButton{{Text: textMainMenu}})
	return models.ReplyKeyboardMarkup{Keyboard: rows, ResizeKeyboard: true}
}

func warehouseSectionsMenu() models.ReplyKeyboardMarkup {
	return models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: textReceipts}, {Text: textReport}, {Text: textIssues}},
			{{Text: textWarehouseList}},
			{{Text: textMainMenu}},
		},
		ResizeKeyboard: true,
	}
}

// districtsKeyboard lists the district filters for issues/report mode,
// with "Умумий" standing for district 0 (all districts).
func districtsKeyboard(warehouseID int, section navigation.Section, districts []models.District) models.InlineKeyboardMarkup {
	buttons := [][]models.InlineKeyboardButton{
		{button("📊 Умумий", navigation.Token{
			Action: navigation.ActionSelectDistrict,
			Path:   navigation.FilterPath{WarehouseID: warehouseID, Section: section},
		})},
	}

	for _, district := range districts {
		if district.ID == 0 || district.Name == "" {
			continue
		}
		buttons = append(buttons, []models.InlineKeyboardButton{
			button(district.Name, navigation.Token{
				Action: navigation.ActionSelectDistrict,
				Path:   navigation.FilterPath{WarehouseID: warehouseID, Section: section, DistrictID: district.ID},
			}),
		})
	}

	buttons = append(buttons, []models.InlineKeyboardButton{
		button("⬅️ Орқага", navigation.Token{
			Action: navigation.ActionBackToSections,
			Path:   navigation.FilterPath{WarehouseID: warehouseID},
		}),
	})
	return models.InlineKeyboardMarkup{InlineKeyboard: buttons}
}

func productsKeyboard(path navigation.FilterPath, products []models.Product, back navigation.Token) models.InlineKeyboardMarkup {
	buttons := make([][]models.InlineKeyboardButton, 0, len(products)+1)
	for _, product := range products {
		if product.ID == 0 || product.Name == "" {
			continue
		}
		selected := path
		selected.ProductID = product.ID
		buttons = append(buttons, []models.InlineKeyboardButton{
			button(product.Name, navigation.Token{Action: navigation.ActionSelectProduct, Path: selected}),
		})
	}

	// Section-wide export: product 0 keeps the movement filter open so
	// the workbook covers every product of the current section.
	sectionWide := path
	sectionWide.ProductID = 0
	buttons = append(buttons,
		[]models.InlineKeyboardButton{button("📥 Excel", navigation.Token{Action: navigation.ActionExport, Path: sectionWide})},
		[]models.InlineKeyboardButton{button("⬅️ Орқага", back)},
	)
	return models.InlineKeyboardMarkup{InlineKeyboard: buttons}
}

// movementsKeyboard is the pagination row under a movements page. The
// next button only appears when a further page exists, so pressing it
// is never a past-the-end request.
func movementsKeyboard(path navigation.FilterPath, hasNext bool) models.InlineKeyboardMarkup {
	row := []models.InlineKeyboardButton{}
	if path.Page > 1 {
		row = append(row, button("⬅️", navigation.Token{
			Action: navigation.ActionMovementsPage,
			Path:   navigation.Paginate(path, -1),
		}))
	}
	row = append(row, button("📥 Excel", navigation.Token{Action: navigation.ActionExport, Path: path}))
	if hasNext {
		row = append(row, button("➡️", navigation.Token{
			Action: navigation.ActionMovementsPage,
			Path:   navigation.Paginate(path, +1),
		}))
	}

	back := navigation.Token{Action: navigation.ActionBackToProducts, Path: path}
	return models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		row,
		{button("⬅️ Орқага", back)},
	}}
}

// listFilterKeyboard is the district chooser for the farmer balance and
// contracts listings; filters are addressed by index, 0 = all.
func listFilterKeyboard(action navigation.Action, districts []string) models.InlineKeyboardMarkup {
	buttons := [][]models.InlineKeyboardButton{
		{button("📊 Умумий", navigation.Token{Action: action, Filter: 0, Path: navigation.FilterPath{Page: 1}})},
	}
	for index, district := range districts {
		buttons = append(buttons, []models.InlineKeyboardButton{
			button(district, navigation.Token{Action: action, Filter: index + 1, Path: navigation.FilterPath{Page: 1}}),
		})
	}
	return models.InlineKeyboardMarkup{InlineKeyboard: buttons}
}

func listPaginationKeyboard(pageAction, exportAction, backAction navigation.Action, filter, page int, hasNext bool) models.InlineKeyboardMarkup {
	row := []models.InlineKeyboardButton{}
	if page > 1 {
		row = append(row, button("⬅️", navigation.Token{Action: pageAction, Filter: filter, Path: navigation.FilterPath{Page: page - 1}}))
	}
	row = append(row, button("📥 Excel", navigation.Token{Action: exportAction, Filter: filter}))
	if hasNext {
		row = append(row, button("➡️", navigation.Token{Action: pageAction, Filter: filter, Path: navigation.FilterPath{Page: page + 1}}))
	}

	return models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		row,
		{button("⬅️ Туманлар рўйхати", navigation.Token{Action: backAction})},
	}}
}

func button(text string, tok navigation.Token) models.InlineKeyboardButton {
	data, err := tok.Encode()
	if err != nil {
		// Builders only construct known actions, so this can only fire
		// on a programming error.
		zap.L().DPanic("unencodable keyboard token", zap.String("action", string(tok.Action)), zap.Error(err))
	}
	return models.InlineKeyboardButton{Text: text, CallbackData: data}
}
