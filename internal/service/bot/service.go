package bot

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/uzagro/omborbot/internal/domain/models"
	"github.com/uzagro/omborbot/internal/repository/agroapi"
	"github.com/uzagro/omborbot/internal/service/export"
	"github.com/uzagro/omborbot/internal/service/navigation"
	"github.com/uzagro/omborbot/internal/service/report"
	telegramclient "github.com/uzagro/omborbot/pkg/clients/telegram"
)

// Reply menu texts and their aliases. Display strings ship as-is; the
// alias sets absorb the latin spellings operators actually type.
const (
	textMainMenu       = "🏠 Асосий меню"
	textFarmersSection = "📋 Фермерлар"
	textFarmerBalance  = "📋 Фермер Баланс"
	textContracts      = "📑 Шартномалар"
	textWarehouse      = "🏬 Омбор"
	textMineral        = "🌾 Минерал ўғит"
	textWarehouseList  = "⬅️ Омборлар рўйхати"
	textReceipts       = "📥 Кирим"
	textIssues         = "📤 Чиқим"
	textReport         = "📊 Свод"

	msgAccessDenied    = "⛔️ Сизга рухсат берилмаган."
	alertAccessDenied  = "⛔️ Рухсат йўқ"
	msgNoData          = "Маълумот топилмади."
	alertNoData        = "Маълумот йўқ"
	msgChooseWarehouse = "Аввал омборни танланг"

	sendTimeout = 10 * time.Second
)

var sectionAliases = map[string]navigation.Section{
	"📥 кирим": navigation.SectionIn,
	"kirim":    navigation.SectionIn,
	"krim":     navigation.SectionIn,
	"кирим":    navigation.SectionIn,
	"📤 чиқим": navigation.SectionOut,
	"chiqim":   navigation.SectionOut,
	"чиқим":    navigation.SectionOut,
	"📊 свод":  navigation.SectionReport,
	"svod":     navigation.SectionReport,
	"свод":     navigation.SectionReport,
}

// Service describes the update handling the HTTP layer can perform.
type Service interface {
	HandleUpdate(ctx context.Context, update models.Update) error
	SendText(ctx context.Context, chatID int64, text string) error
}

// BotService routes Telegram updates through the access gate, the
// navigation state machine and the fetch/aggregate/render pipeline.
type BotService struct {
	api      agroapi.Client
	telegram telegramclient.Client
	sessions *navigation.SessionStore
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new dispatcher instance.
func NewService(api agroapi.Client, tg telegramclient.Client, sessions *navigation.SessionStore, location *time.Location, logger *zap.Logger) *BotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &BotService{
		api:      api,
		telegram: tg,
		sessions: sessions,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

// HandleUpdate processes one inbound webhook update. Failures never
// cross the update that caused them.
func (s *BotService) HandleUpdate(ctx context.Context, update models.Update) error {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return s.handleMessage(ctx, *update.Message)
	case update.CallbackQuery != nil:
		return s.handleCallback(ctx, *update.CallbackQuery)
	default:
		return nil
	}
}

// SendText lets the scheduler push plain notifications to a chat.
func (s *BotService) SendText(ctx context.Context, chatID int64, text string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	_, err := s.telegram.SendMessage(ctx, telegramclient.SendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	return err
}

func (s *BotService) handleMessage(ctx context.Context, msg models.Message) error {
	user := *msg.From
	if !s.allowed(ctx, user) {
		return s.reply(ctx, msg.Chat.ID, msgAccessDenied, nil)
	}

	text := strings.TrimSpace(msg.Text)
	switch text {
	case "/start", textMainMenu:
		return s.reply(ctx, msg.Chat.ID, "Асосий меню 👇", mainMenu())
	case textFarmersSection:
		return s.reply(ctx, msg.Chat.ID, "Фермерлар бўлими 👇", farmersMenu())
	case textFarmerBalance:
		return s.sendListFilters(ctx, msg.Chat.ID, navigation.ActionFarmersPage)
	case textContracts:
		return s.sendListFilters(ctx, msg.Chat.ID, navigation.ActionContractsPage)
	case textWarehouse, textMineral, textWarehouseList:
		return s.sendWarehouseList(ctx, msg.Chat.ID)
	}

	if section, ok := sectionAliases[strings.ToLower(text)]; ok {
		return s.handleSection(ctx, msg.Chat.ID, user.ID, section)
	}

	return s.maybeSelectWarehouse(ctx, msg.Chat.ID, user.ID, text)
}

// handleSection resolves a section chosen from the reply keyboard via
// the state machine: receipts go straight to products, issues and
// reports go through the district menu.
func (s *BotService) handleSection(ctx context.Context, chatID, userID int64, section navigation.Section) error {
	warehouseID, err := s.sessions.Warehouse(userID)
	if errors.Is(err, navigation.ErrNoWarehouseSelected) {
		names, nameErr := s.warehouseNames(ctx)
		if nameErr != nil {
			return s.reply(ctx, chatID, msgNoData, nil)
		}
		return s.reply(ctx, chatID, msgChooseWarehouse, warehouseNamesMenu(names))
	}

	step := navigation.SelectSection(warehouseID, section)
	switch step.Level {
	case navigation.LevelDistricts:
		return s.sendDistrictsMenu(ctx, chatID, 0, step.Path)
	default:
		return s.sendProductsMenu(ctx, chatID, 0, step.Path)
	}
}

func (s *BotService) maybeSelectWarehouse(ctx context.Context, chatID, userID int64, text string) error {
	warehouses, err := s.api.Warehouses(ctx)
	if err != nil {
		s.logger.Warn("warehouse list unavailable", zap.Error(err))
		return nil
	}

	for _, warehouse := range warehouses {
		if strings.TrimSpace(warehouse.Name) == text && warehouse.ID != 0 {
			s.sessions.SetWarehouse(userID, warehouse.ID)
			return s.reply(ctx, chatID, "🏬 "+text+"\nКеракли бўлимни танланг:", warehouseSectionsMenu())
		}
	}

	// Unrecognized free text is not ours to answer.
	return nil
}

func (s *BotService) handleCallback(ctx context.Context, cb models.CallbackQuery) error {
	if !s.allowed(ctx, cb.From) {
		return s.answerCallback(ctx, cb.ID, alertAccessDenied, true)
	}
	if cb.Message == nil {
		return s.answerCallback(ctx, cb.ID, "", false)
	}

	tok, err := navigation.Decode(cb.Data)
	if err != nil {
		// Malformed tokens are dropped, not partially applied.
		s.logger.Debug("dropping malformed token", zap.String("data", cb.Data), zap.Error(err))
		return s.answerCallback(ctx, cb.ID, "", false)
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	switch tok.Action {
	case navigation.ActionExport:
		return s.exportMovements(ctx, cb.ID, chatID, tok.Path)
	case navigation.ActionFarmersPage:
		err = s.sendFarmersPage(ctx, chatID, messageID, tok.Filter, tok.Path.Page)
	case navigation.ActionFarmersExport:
		return s.exportFarmers(ctx, cb.ID, chatID, tok.Filter)
	case navigation.ActionFarmersBack:
		err = s.editListFilters(ctx, chatID, messageID, navigation.ActionFarmersPage)
	case navigation.ActionContractsPage:
		err = s.sendContractsPage(ctx, chatID, messageID, tok.Filter, tok.Path.Page)
	case navigation.ActionContractsExport:
		return s.exportContracts(ctx, cb.ID, chatID, tok.Filter)
	case navigation.ActionContractsBack:
		err = s.editListFilters(ctx, chatID, messageID, navigation.ActionContractsPage)
	default:
		err = s.followStep(ctx, chatID, messageID, tok)
	}
	if err != nil {
		return err
	}
	return s.answerCallback(ctx, cb.ID, "", false)
}

func (s *BotService) followStep(ctx context.Context, chatID, messageID int64, tok navigation.Token) error {
	step, err := navigation.Resolve(tok)
	if err != nil {
		s.logger.Debug("dropping unresolvable token", zap.String("action", string(tok.Action)), zap.Error(err))
		return nil
	}

	switch step.Level {
	case navigation.LevelSections:
		return s.sendSectionsMenu(ctx, chatID, messageID, step.Path)
	case navigation.LevelDistricts:
		return s.sendDistrictsMenu(ctx, chatID, messageID, step.Path)
	case navigation.LevelProducts:
		return s.sendProductsMenu(ctx, chatID, messageID, step.Path)
	default:
		return s.sendMovementsPage(ctx, chatID, messageID, step.Path)
	}
}

func (s *BotService) sendSectionsMenu(ctx context.Context, chatID, messageID int64, path navigation.FilterPath) error {
	name := s.warehouseName(ctx, path.WarehouseID)
	text := "🏬 " + name + "\nКеракли бўлимни танланг:\n\n📌 Кирим/Чиқимни пастдаги клавиатурадан танланг."
	if err := s.edit(ctx, chatID, messageID, text, nil); err != nil {
		return err
	}
	return s.reply(ctx, chatID, "Танланг 👇", warehouseSectionsMenu())
}

func (s *BotService) sendDistrictsMenu(ctx context.Context, chatID, messageID int64, path navigation.FilterPath) error {
	name := s.warehouseName(ctx, path.WarehouseID)

	districts, err := s.api.ExpenseDistricts(ctx, path.WarehouseID)
	if err != nil {
		s.logger.Warn("districts unavailable", zap.Int("warehouse_id", path.WarehouseID), zap.Error(err))
		return s.send(ctx, chatID, messageID, "🏬 "+name+"\n\n"+msgNoData, nil)
	}
	if len(districts) == 0 {
		return s.send(ctx, chatID, messageID, "🏬 "+name+"\n\nЧиқим бўйича туманлар топилмади.", nil)
	}

	title := "📤 Чиқим учун туманни танланг:"
	if path.Section == navigation.SectionReport {
		title = "📊 Свод учун туманни танланг:"
	}
	markup := districtsKeyboard(path.WarehouseID, path.Section, districts)
	return s.send(ctx, chatID, messageID, "🏬 "+name+"\n"+title, &markup)
}

func (s *BotService) sendProductsMenu(ctx context.Context, chatID, messageID int64, path navigation.FilterPath) error {
	name := s.warehouseName(ctx, path.WarehouseID)

	products, err := s.api.Products(ctx, path.WarehouseID, productsMovement(path.Section), path.DistrictID)
	if err != nil {
		s.logger.Warn("products unavailable", zap.Int("warehouse_id", path.WarehouseID), zap.Error(err))
		return s.send(ctx, chatID, messageID, "🏬 "+name+"\n\n"+msgNoData, nil)
	}
	if len(products) == 0 {
		return s.send(ctx, chatID, messageID, "🏬 "+name+"\n\n"+sectionEmoji(path.Section)+" бўйича маълумот топилмади.", nil)
	}

	back := navigation.Token{Action: navigation.ActionBackToSections, Path: navigation.FilterPath{WarehouseID: path.WarehouseID}}
	if path.Section != navigation.SectionIn {
		back = navigation.Token{Action: navigation.ActionBackToDistricts, Path: navigation.FilterPath{WarehouseID: path.WarehouseID, Section: path.Section}}
	}

	markup := productsKeyboard(path, products, back)
	return s.send(ctx, chatID, messageID, "🏬 "+name+"\n"+sectionEmoji(path.Section)+" учун маҳсулотни танланг:", &markup)
}

func (s *BotService) sendMovementsPage(ctx context.Context, chatID, messageID int64, path navigation.FilterPath) error {
	name := s.warehouseName(ctx, path.WarehouseID)

	totals, err := s.api.Totals(ctx, path.WarehouseID, path.ProductID, path.DistrictID)
	if err != nil {
		s.logger.Warn("totals unavailable", zap.Error(err))
		return s.send(ctx, chatID, messageID, "🏬 "+name+"\n\n"+msgNoData, nil)
	}
	movements, err := s.api.Movements(ctx, string(path.Section), path.WarehouseID, path.ProductID, path.DistrictID)
	if err != nil {
		s.logger.Warn("movements unavailable", zap.Error(err))
		return s.send(ctx, chatID, messageID, "🏬 "+name+"\n\n"+msgNoData, nil)
	}

	productName := s.productName(ctx, path)

	var text string
	var hasNext bool
	switch path.Section {
	case navigation.SectionIn:
		page := report.Paginate(movements, path.Page, report.PerPage)
		text = report.ReceiptsPage(name, productName, totals, page)
		hasNext = page.HasNext
	case navigation.SectionOut:
		rows := report.FarmerRows(movements)
		page := report.Paginate(rows, path.Page, report.PerPage)
		text = report.IssuesPage(name, productName, totals, page)
		hasNext = page.HasNext
	default:
		today := s.now().In(s.location)
		rows := report.DistrictRows(movements, today)
		page := report.Paginate(rows, path.Page, report.PerPage)
		text = report.ReportPage(name, productName, totals, page, rows, today)
		hasNext = page.HasNext
	}

	markup := movementsKeyboard(path, hasNext)
	return s.send(ctx, chatID, messageID, "<pre>"+text+"</pre>", &markup)
}

func (s *BotService) exportMovements(ctx context.Context, callbackID string, chatID int64, path navigation.FilterPath) error {
	movements, err := s.api.Movements(ctx, string(path.Section), path.WarehouseID, path.ProductID, path.DistrictID)
	if err != nil {
		s.logger.Warn("export fetch failed", zap.Error(err))
		return s.answerCallback(ctx, callbackID, alertNoData, true)
	}

	var buffer *bytes.Buffer
	var filename string
	switch path.Section {
	case navigation.SectionIn:
		buffer, err = export.Receipts(movements)
		filename = "warehouse_receipts.xlsx"
	case navigation.SectionOut:
		buffer, err = export.FarmerIssues(report.FarmerRows(movements))
		filename = "warehouse_expenses.xlsx"
	default:
		buffer, err = export.DistrictReport(report.DistrictRows(movements, s.now().In(s.location)), s.now().In(s.location))
		filename = "warehouse_report.xlsx"
	}
	if err != nil {
		s.logger.Error("export build failed", zap.Error(err))
		return s.answerCallback(ctx, callbackID, alertNoData, true)
	}

	return s.deliverDocument(ctx, callbackID, chatID, filename, buffer)
}

func (s *BotService) sendListFilters(ctx context.Context, chatID int64, action navigation.Action) error {
	districts, err := s.listDistricts(ctx, action)
	if err != nil {
		return s.reply(ctx, chatID, msgNoData, nil)
	}
	markup := listFilterKeyboard(action, districts)
	return s.reply(ctx, chatID, "Туманни танланг 👇", markup)
}

func (s *BotService) editListFilters(ctx context.Context, chatID, messageID int64, action navigation.Action) error {
	districts, err := s.listDistricts(ctx, action)
	if err != nil {
		return s.edit(ctx, chatID, messageID, msgNoData, nil)
	}
	markup := listFilterKeyboard(action, districts)
	return s.edit(ctx, chatID, messageID, "Туманни танланг 👇", &markup)
}

func (s *BotService) listDistricts(ctx context.Context, action navigation.Action) ([]string, error) {
	if action == navigation.ActionContractsPage {
		contracts, err := s.api.ContractsSummary(ctx)
		if err != nil {
			return nil, err
		}
		return distinctDistricts(len(contracts), func(i int) string { return contracts[i].District }), nil
	}

	farmers, err := s.api.Farmers(ctx)
	if err != nil {
		return nil, err
	}
	return distinctDistricts(len(farmers), func(i int) string { return farmers[i].District }), nil
}

func (s *BotService) sendFarmersPage(ctx context.Context, chatID, messageID int64, filter, pageNum int) error {
	farmers, err := s.api.Farmers(ctx)
	if err != nil {
		s.logger.Warn("farmers unavailable", zap.Error(err))
		return s.edit(ctx, chatID, messageID, msgNoData, nil)
	}

	districts := distinctDistricts(len(farmers), func(i int) string { return farmers[i].District })
	district := districtByIndex(districts, filter)
	filtered := filterFarmers(farmers, district)

	page := report.Paginate(filtered, pageNum, report.PerPage)
	text := report.FarmerBalancesPage(districtTitle(district), page)
	markup := listPaginationKeyboard(navigation.ActionFarmersPage, navigation.ActionFarmersExport, navigation.ActionFarmersBack, filter, pageNum, page.HasNext)
	return s.edit(ctx, chatID, messageID, "<pre>"+text+"</pre>", &markup)
}

func (s *BotService) sendContractsPage(ctx context.Context, chatID, messageID int64, filter, pageNum int) error {
	contracts, err := s.api.ContractsSummary(ctx)
	if err != nil {
		s.logger.Warn("contracts unavailable", zap.Error(err))
		return s.edit(ctx, chatID, messageID, msgNoData, nil)
	}

	districts := distinctDistricts(len(contracts), func(i int) string { return contracts[i].District })
	district := districtByIndex(districts, filter)
	filtered := filterContracts(contracts, district)

	page := report.Paginate(filtered, pageNum, report.PerPage)
	text := report.ContractsPage(districtTitle(district), page)
	markup := listPaginationKeyboard(navigation.ActionContractsPage, navigation.ActionContractsExport, navigation.ActionContractsBack, filter, pageNum, page.HasNext)
	return s.edit(ctx, chatID, messageID, "<pre>"+text+"</pre>", &markup)
}

func (s *BotService) exportFarmers(ctx context.Context, callbackID string, chatID int64, filter int) error {
	farmers, err := s.api.Farmers(ctx)
	if err != nil {
		return s.answerCallback(ctx, callbackID, alertNoData, true)
	}
	districts := distinctDistricts(len(farmers), func(i int) string { return farmers[i].District })
	filtered := filterFarmers(farmers, districtByIndex(districts, filter))

	buffer, err := export.FarmerBalances(filtered)
	if err != nil {
		s.logger.Error("farmers export failed", zap.Error(err))
		return s.answerCallback(ctx, callbackID, alertNoData, true)
	}
	return s.deliverDocument(ctx, callbackID, chatID, "farmers.xlsx", buffer)
}

func (s *BotService) exportContracts(ctx context.Context, callbackID string, chatID int64, filter int) error {
	contracts, err := s.api.ContractsSummary(ctx)
	if err != nil {
		return s.answerCallback(ctx, callbackID, alertNoData, true)
	}
	districts := distinctDistricts(len(contracts), func(i int) string { return contracts[i].District })
	filtered := filterContracts(contracts, districtByIndex(districts, filter))

	buffer, err := export.Contracts(filtered)
	if err != nil {
		s.logger.Error("contracts export failed", zap.Error(err))
		return s.answerCallback(ctx, callbackID, alertNoData, true)
	}
	return s.deliverDocument(ctx, callbackID, chatID, "contracts.xlsx", buffer)
}

func (s *BotService) deliverDocument(ctx context.Context, callbackID string, chatID int64, filename string, buffer *bytes.Buffer) error {
	if buffer == nil {
		return s.answerCallback(ctx, callbackID, alertNoData, true)
	}

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := s.telegram.SendDocument(sendCtx, telegramclient.SendDocumentRequest{
		ChatID:   chatID,
		Filename: filename,
		Data:     buffer.Bytes(),
	}); err != nil {
		s.logger.Error("document delivery failed", zap.String("filename", filename), zap.Error(err))
		return s.answerCallback(ctx, callbackID, alertNoData, true)
	}
	return s.answerCallback(ctx, callbackID, "", false)
}

// allowed consults the access gate; a gate failure denies.
func (s *BotService) allowed(ctx context.Context, user models.User) bool {
	ok, err := s.api.CheckAccess(ctx, user.ID, user.FullName())
	if err != nil {
		s.logger.Warn("access check failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return false
	}
	return ok
}

func (s *BotService) sendWarehouseList(ctx context.Context, chatID int64) error {
	names, err := s.warehouseNames(ctx)
	if err != nil || len(names) == 0 {
		return s.reply(ctx, chatID, "Омборлар топилмади. Қуйидаги тугмалардан фойдаланинг 👇", mainMenu())
	}
	return s.reply(ctx, chatID, "🏬 Омборлар рўйхати 👇", warehouseNamesMenu(names))
}

func (s *BotService) warehouseNames(ctx context.Context) ([]string, error) {
	warehouses, err := s.api.Warehouses(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(warehouses))
	for _, warehouse := range warehouses {
		if name := strings.TrimSpace(warehouse.Name); name != "" && warehouse.ID != 0 {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *BotService) warehouseName(ctx context.Context, warehouseID int) string {
	warehouses, err := s.api.Warehouses(ctx)
	if err != nil {
		s.logger.Debug("warehouse name lookup failed", zap.Error(err))
		return "Омбор"
	}
	for _, warehouse := range warehouses {
		if warehouse.ID == warehouseID {
			if name := strings.TrimSpace(warehouse.Name); name != "" {
				return name
			}
		}
	}
	return "Омбор"
}

func (s *BotService) productName(ctx context.Context, path navigation.FilterPath) string {
	products, err := s.api.Products(ctx, path.WarehouseID, productsMovement(path.Section), path.DistrictID)
	if err != nil {
		s.logger.Debug("product name lookup failed", zap.Error(err))
		return "Маҳсулот"
	}
	for _, product := range products {
		if product.ID == path.ProductID {
			return product.Name
		}
	}
	return "Маҳсулот"
}

func (s *BotService) reply(ctx context.Context, chatID int64, text string, markup any) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	_, err := s.telegram.SendMessage(ctx, telegramclient.SendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
	return err
}

func (s *BotService) edit(ctx context.Context, chatID, messageID int64, text string, markup *models.InlineKeyboardMarkup) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	return s.telegram.EditMessageText(ctx, telegramclient.EditMessageTextRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: markup,
	})
}

// send edits in place during callback flows and falls back to a fresh
// message for reply-keyboard flows, which have no message to edit.
func (s *BotService) send(ctx context.Context, chatID, messageID int64, text string, markup *models.InlineKeyboardMarkup) error {
	if messageID != 0 {
		return s.edit(ctx, chatID, messageID, text, markup)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	var replyMarkup any
	if markup != nil {
		replyMarkup = *markup
	}
	_, err := s.telegram.SendMessage(ctx, telegramclient.SendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: replyMarkup,
	})
	return err
}

func (s *BotService) answerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	return s.telegram.AnswerCallbackQuery(ctx, telegramclient.AnswerCallbackQueryRequest{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
}

// productsMovement maps the section to the movement filter the products
// endpoint understands; report mode reads the issue-side catalogue.
func productsMovement(section navigation.Section) string {
	if section == navigation.SectionReport {
		return string(navigation.SectionOut)
	}
	return string(section)
}

func sectionEmoji(section navigation.Section) string {
	switch section {
	case navigation.SectionIn:
		return textReceipts
	case navigation.SectionOut:
		return textIssues
	default:
		return textReport
	}
}

func distinctDistricts(n int, districtAt func(int) string) []string {
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		if district := districtAt(i); district != "" {
			seen[district] = struct{}{}
		}
	}
	districts := make([]string, 0, len(seen))
	for district := range seen {
		districts = append(districts, district)
	}
	sort.Strings(districts)
	return districts
}

// districtByIndex resolves an index-addressed district filter; index 0
// or anything out of range means "all".
func districtByIndex(districts []string, index int) string {
	if index <= 0 || index > len(districts) {
		return ""
	}
	return districts[index-1]
}

func districtTitle(district string) string {
	if district == "" {
		return "Умумий"
	}
	return district
}

func filterFarmers(farmers []models.FarmerBalance, district string) []models.FarmerBalance {
	if district == "" {
		return farmers
	}
	filtered := make([]models.FarmerBalance, 0, len(farmers))
	for _, farmer := range farmers {
		if farmer.District == district {
			filtered = append(filtered, farmer)
		}
	}
	return filtered
}

func filterContracts(contracts []models.ContractSummary, district string) []models.ContractSummary {
	if district == "" {
		return contracts
	}
	filtered := make([]models.ContractSummary, 0, len(contracts))
	for _, contract := range contracts {
		if contract.District == district {
			filtered = append(filtered, contract)
		}
	}
	return filtered
}
