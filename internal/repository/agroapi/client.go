package agroapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/uzagro/omborbot/internal/config"
	"github.com/uzagro/omborbot/internal/domain/models"
)

// Client defines the warehouse data API operations the bot consumes.
// All list calls return empty, non-nil slices when nothing matches.
type Client interface {
	CheckAccess(ctx context.Context, telegramID int64, fullName string) (bool, error)
	Warehouses(ctx context.Context) ([]models.Warehouse, error)
	ExpenseDistricts(ctx context.Context, warehouseID int) ([]models.District, error)
	Products(ctx context.Context, warehouseID int, movement string, districtID int) ([]models.Product, error)
	Movements(ctx context.Context, movement string, warehouseID, productID, districtID int) ([]models.MovementRecord, error)
	Totals(ctx context.Context, warehouseID, productID, districtID int) (models.WarehouseTotals, error)
	Farmers(ctx context.Context) ([]models.FarmerBalance, error)
	ContractsSummary(ctx context.Context) ([]models.ContractSummary, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a data API client using the provided configuration values.
func NewClient(cfg config.APIConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &APIClient{httpClient: restyClient}
}

type accessCheckRequest struct {
	TelegramID int64  `json:"telegram_id"`
	FullName   string `json:"full_name"`
}

type accessCheckResponse struct {
	Allowed bool `json:"allowed"`
}

// CheckAccess asks the backend whether the Telegram account may use the bot.
func (c *APIClient) CheckAccess(ctx context.Context, telegramID int64, fullName string) (bool, error) {
	fullName = strings.TrimSpace(fullName)
	if len(fullName) > 255 {
		fullName = fullName[:255]
	}

	result := new(accessCheckResponse)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(accessCheckRequest{TelegramID: telegramID, FullName: fullName}).
		SetResult(result).
		Post("/bot-user/check/")
	if err != nil {
		return false, fmt.Errorf("check access: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return false, nil
	}
	return result.Allowed, nil
}

// Warehouses lists the selectable warehouses.
func (c *APIClient) Warehouses(ctx context.Context) ([]models.Warehouse, error) {
	out := []models.Warehouse{}
	if err := c.getJSON(ctx, "/warehouse/list/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExpenseDistricts lists districts with issue movements for a warehouse.
func (c *APIClient) ExpenseDistricts(ctx context.Context, warehouseID int) ([]models.District, error) {
	out := []models.District{}
	params := optionalParams(map[string]int{"warehouse_id": warehouseID})
	if err := c.getJSON(ctx, "/warehouse/expense-districts/", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Products lists products with movements of the given kind.
func (c *APIClient) Products(ctx context.Context, warehouseID int, movement string, districtID int) ([]models.Product, error) {
	out := []models.Product{}
	params := optionalParams(map[string]int{"warehouse_id": warehouseID, "district_id": districtID})
	if movement != "" {
		params["movement"] = movement
	}
	if err := c.getJSON(ctx, "/warehouse/products/", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Movements fetches raw movement records for the filter combination.
func (c *APIClient) Movements(ctx context.Context, movement string, warehouseID, productID, districtID int) ([]models.MovementRecord, error) {
	out := []models.MovementRecord{}
	params := optionalParams(map[string]int{
		"warehouse_id": warehouseID,
		"product_id":   productID,
		"district_id":  districtID,
	})
	params["movement"] = movement
	if err := c.getJSON(ctx, "/warehouse/movements/", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Totals fetches the running in/out/balance figures for the filter combination.
func (c *APIClient) Totals(ctx context.Context, warehouseID, productID, districtID int) (models.WarehouseTotals, error) {
	out := models.WarehouseTotals{}
	params := optionalParams(map[string]int{
		"warehouse_id": warehouseID,
		"product_id":   productID,
		"district_id":  districtID,
	})
	if err := c.getJSON(ctx, "/warehouse/totals/", params, &out); err != nil {
		return models.WarehouseTotals{}, err
	}
	return out, nil
}

// Farmers lists farmer balances.
func (c *APIClient) Farmers(ctx context.Context) ([]models.FarmerBalance, error) {
	out := []models.FarmerBalance{}
	if err := c.getJSON(ctx, "/farmers/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ContractsSummary lists the per-farmer contract summary rows.
func (c *APIClient) ContractsSummary(ctx context.Context) ([]models.ContractSummary, error) {
	out := []models.ContractSummary{}
	if err := c.getJSON(ctx, "/farmers/summary/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) getJSON(ctx context.Context, path string, params map[string]string, result any) error {
	req := c.httpClient.R().SetContext(ctx).SetResult(result)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode())
	}
	return nil
}

// optionalParams drops zero-valued filters so "all" selections never
// reach the query string.
func optionalParams(values map[string]int) map[string]string {
	params := make(map[string]string, len(values))
	for key, value := range values {
		if value != 0 {
			params[key] = strconv.Itoa(value)
		}
	}
	return params
}
