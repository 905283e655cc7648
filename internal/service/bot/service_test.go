package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uzagro/omborbot/internal/domain/models"
	"github.com/uzagro/omborbot/internal/service/navigation"
	telegramclient "github.com/uzagro/omborbot/pkg/clients/telegram"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

type fakeAPI struct {
	allowed    bool
	warehouses []models.Warehouse
	districts  []models.District
	products   []models.Product
	movements  []models.MovementRecord
	totals     models.WarehouseTotals
	farmers    []models.FarmerBalance
	contracts  []models.ContractSummary
}

func (f *fakeAPI) CheckAccess(ctx context.Context, telegramID int64, fullName string) (bool, error) {
	return f.allowed, nil
}

func (f *fakeAPI) Warehouses(ctx context.Context) ([]models.Warehouse, error) {
	return f.warehouses, nil
}

func (f *fakeAPI) ExpenseDistricts(ctx context.Context, warehouseID int) ([]models.District, error) {
	return f.districts, nil
}

func (f *fakeAPI) Products(ctx context.Context, warehouseID int, movement string, districtID int) ([]models.Product, error) {
	return f.products, nil
}

func (f *fakeAPI) Movements(ctx context.Context, movement string, warehouseID, productID, districtID int) ([]models.MovementRecord, error) {
	return f.movements, nil
}

func (f *fakeAPI) Totals(ctx context.Context, warehouseID, productID, districtID int) (models.WarehouseTotals, error) {
	return f.totals, nil
}

func (f *fakeAPI) Farmers(ctx context.Context) ([]models.FarmerBalance, error) {
	return f.farmers, nil
}

func (f *fakeAPI) ContractsSummary(ctx context.Context) ([]models.ContractSummary, error) {
	return f.contracts, nil
}

type fakeTelegram struct {
	sent      []telegramclient.SendMessageRequest
	edited    []telegramclient.EditMessageTextRequest
	answered  []telegramclient.AnswerCallbackQueryRequest
	documents []telegramclient.SendDocumentRequest
}

func (f *fakeTelegram) SendMessage(ctx context.Context, req telegramclient.SendMessageRequest) (*models.Message, error) {
	f.sent = append(f.sent, req)
	return &models.Message{MessageID: int64(len(f.sent))}, nil
}

func (f *fakeTelegram) EditMessageText(ctx context.Context, req telegramclient.EditMessageTextRequest) error {
	f.edited = append(f.edited, req)
	return nil
}

func (f *fakeTelegram) AnswerCallbackQuery(ctx context.Context, req telegramclient.AnswerCallbackQueryRequest) error {
	f.answered = append(f.answered, req)
	return nil
}

func (f *fakeTelegram) SendDocument(ctx context.Context, req telegramclient.SendDocumentRequest) error {
	f.documents = append(f.documents, req)
	return nil
}

func newTestService(api *fakeAPI, tg *fakeTelegram) *BotService {
	return NewService(api, tg, navigation.NewSessionStore(), nil, nil)
}

func messageUpdate(userID int64, text string) models.Update {
	return models.Update{Message: &models.Message{
		MessageID: 10,
		From:      &models.User{ID: userID, FirstName: "Test"},
		Chat:      models.Chat{ID: userID},
		Text:      text,
	}}
}

func callbackUpdate(userID int64, data string) models.Update {
	return models.Update{CallbackQuery: &models.CallbackQuery{
		ID:   "cb1",
		From: models.User{ID: userID, FirstName: "Test"},
		Message: &models.Message{
			MessageID: 10,
			Chat:      models.Chat{ID: userID},
		},
		Data: data,
	}}
}

func TestAccessGate(t *testing.T) {
	t.Run("denied message gets refusal text", func(t *testing.T) {
		api := &fakeAPI{allowed: false}
		tg := &fakeTelegram{}
		svc := newTestService(api, tg)

		require.NoError(t, svc.HandleUpdate(context.Background(), messageUpdate(1, "/start")))
		require.Len(t, tg.sent, 1)
		assert.Equal(t, msgAccessDenied, tg.sent[0].Text)
	})

	t.Run("denied callback gets an alert", func(t *testing.T) {
		api := &fakeAPI{allowed: false}
		tg := &fakeTelegram{}
		svc := newTestService(api, tg)

		require.NoError(t, svc.HandleUpdate(context.Background(), callbackUpdate(1, "wh_back_sections:3")))
		require.Len(t, tg.answered, 1)
		assert.Equal(t, alertAccessDenied, tg.answered[0].Text)
		assert.True(t, tg.answered[0].ShowAlert)
		assert.Empty(t, tg.edited)
	})
}

func TestWarehouseSelection(t *testing.T) {
	api := &fakeAPI{
		allowed:    true,
		warehouses: []models.Warehouse{{ID: 3, Name: "Марказий омбор"}},
	}
	tg := &fakeTelegram{}
	svc := newTestService(api, tg)

	t.Run("section before warehouse re-prompts selection", func(t *testing.T) {
		require.NoError(t, svc.HandleUpdate(context.Background(), messageUpdate(1, "📥 Кирим")))
		require.Len(t, tg.sent, 1)
		assert.Equal(t, msgChooseWarehouse, tg.sent[0].Text)
	})

	t.Run("warehouse name pins the session", func(t *testing.T) {
		require.NoError(t, svc.HandleUpdate(context.Background(), messageUpdate(1, "Марказий омбор")))
		require.Len(t, tg.sent, 2)
		assert.Contains(t, tg.sent[1].Text, "Керакли бўлимни танланг")

		id, err := svc.sessions.Warehouse(1)
		require.NoError(t, err)
		assert.Equal(t, 3, id)
	})

	t.Run("section aliases work after selection", func(t *testing.T) {
		api.products = []models.Product{{ID: 12, Name: "Аммофос"}}

		require.NoError(t, svc.HandleUpdate(context.Background(), messageUpdate(1, "kirim")))
		require.Len(t, tg.sent, 3)
		assert.Contains(t, tg.sent[2].Text, "📥 Кирим учун маҳсулотни танланг")
	})
}

func TestCallbackRouting(t *testing.T) {
	t.Run("malformed token is answered and dropped", func(t *testing.T) {
		api := &fakeAPI{allowed: true}
		tg := &fakeTelegram{}
		svc := newTestService(api, tg)

		require.NoError(t, svc.HandleUpdate(context.Background(), callbackUpdate(1, "wh_district:oops")))
		require.Len(t, tg.answered, 1)
		assert.Empty(t, tg.answered[0].Text)
		assert.Empty(t, tg.edited)
		assert.Empty(t, tg.sent)
	})

	t.Run("district selection renders the product menu", func(t *testing.T) {
		api := &fakeAPI{
			allowed:    true,
			warehouses: []models.Warehouse{{ID: 3, Name: "Марказий омбор"}},
			products:   []models.Product{{ID: 12, Name: "Аммофос"}},
		}
		tg := &fakeTelegram{}
		svc := newTestService(api, tg)

		require.NoError(t, svc.HandleUpdate(context.Background(), callbackUpdate(1, "wh_district:3:out:7")))
		require.Len(t, tg.edited, 1)
		assert.Contains(t, tg.edited[0].Text, "📤 Чиқим учун маҳсулотни танланг")
		require.NotNil(t, tg.edited[0].ReplyMarkup)

		// The product button carries the district picked one level up.
		data := tg.edited[0].ReplyMarkup.InlineKeyboard[0][0].CallbackData
		assert.Equal(t, "wh_product:3:out:7:12", data)
	})

	t.Run("movements page renders preformatted text", func(t *testing.T) {
		api := &fakeAPI{
			allowed:    true,
			warehouses: []models.Warehouse{{ID: 3, Name: "Марказий омбор"}},
			products:   []models.Product{{ID: 12, Name: "Аммофос"}},
		}
		tg := &fakeTelegram{}
		svc := newTestService(api, tg)

		require.NoError(t, svc.HandleUpdate(context.Background(), callbackUpdate(1, "wh_product:3:in:0:12")))
		require.Len(t, tg.edited, 1)
		assert.True(t, strings.HasPrefix(tg.edited[0].Text, "<pre>"))
		assert.Equal(t, "HTML", tg.edited[0].ParseMode)
	})

	t.Run("export without data alerts instead of sending", func(t *testing.T) {
		api := &fakeAPI{allowed: true}
		tg := &fakeTelegram{}
		svc := newTestService(api, tg)

		require.NoError(t, svc.HandleUpdate(context.Background(), callbackUpdate(1, "wh_export:3:in:0:12")))
		require.Len(t, tg.answered, 1)
		assert.Equal(t, alertNoData, tg.answered[0].Text)
		assert.Empty(t, tg.documents)
	})

	t.Run("export with data sends a workbook", func(t *testing.T) {
		api := &fakeAPI{
			allowed: true,
			movements: []models.MovementRecord{
				{Date: "2024-05-17", InvoiceNumber: "A1", BagCount: 2, Quantity: dec(100)},
			},
		}
		tg := &fakeTelegram{}
		svc := newTestService(api, tg)

		require.NoError(t, svc.HandleUpdate(context.Background(), callbackUpdate(1, "wh_export:3:in:0:12")))
		require.Len(t, tg.documents, 1)
		assert.Equal(t, "warehouse_receipts.xlsx", tg.documents[0].Filename)
		assert.NotEmpty(t, tg.documents[0].Data)
	})
}

func TestFarmerListings(t *testing.T) {
	api := &fakeAPI{
		allowed: true,
		farmers: []models.FarmerBalance{
			{INN: "123", Name: "Барака", District: "Асака", Balance: dec(1_000_000)},
			{INN: "456", Name: "Яшил дала", District: "Балиқчи", Balance: dec(2_000_000)},
		},
	}
	tg := &fakeTelegram{}
	svc := newTestService(api, tg)

	t.Run("menu entry offers district filters", func(t *testing.T) {
		require.NoError(t, svc.HandleUpdate(context.Background(), messageUpdate(1, textFarmerBalance)))
		require.Len(t, tg.sent, 1)

		markup, ok := tg.sent[0].ReplyMarkup.(models.InlineKeyboardMarkup)
		require.True(t, ok)
		// "Умумий" plus one button per distinct district.
		require.Len(t, markup.InlineKeyboard, 3)
		assert.Equal(t, "fb_page:0:1", markup.InlineKeyboard[0][0].CallbackData)
	})

	t.Run("district filter narrows the page", func(t *testing.T) {
		require.NoError(t, svc.HandleUpdate(context.Background(), callbackUpdate(1, "fb_page:1:1")))
		require.Len(t, tg.edited, 1)
		assert.Contains(t, tg.edited[0].Text, "Асака")
		assert.Contains(t, tg.edited[0].Text, "Барака")
		assert.NotContains(t, tg.edited[0].Text, "Яшил дала")
	})
}
