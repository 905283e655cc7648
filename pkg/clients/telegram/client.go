package telegram

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/uzagro/omborbot/internal/config"
	"github.com/uzagro/omborbot/internal/domain/models"
)

// Client exposes the Telegram Bot API operations used by the application.
type Client interface {
	SendMessage(ctx context.Context, req SendMessageRequest) (*models.Message, error)
	EditMessageText(ctx context.Context, req EditMessageTextRequest) error
	AnswerCallbackQuery(ctx context.Context, req AnswerCallbackQueryRequest) error
	SendDocument(ctx context.Context, req SendDocumentRequest) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a Telegram API client using the provided configuration values.
func NewClient(cfg config.TelegramConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(fmt.Sprintf("%s/bot%s", base, cfg.Token)).
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// SendMessageRequest represents a sendMessage payload. ReplyMarkup may
// be a ReplyKeyboardMarkup or an InlineKeyboardMarkup.
type SendMessageRequest struct {
	ChatID      int64  `json:"chat_id"`
	Text        string `json:"text"`
	ParseMode   string `json:"parse_mode,omitempty"`
	ReplyMarkup any    `json:"reply_markup,omitempty"`
}

// EditMessageTextRequest represents an editMessageText payload.
type EditMessageTextRequest struct {
	ChatID      int64                        `json:"chat_id"`
	MessageID   int64                        `json:"message_id"`
	Text        string                       `json:"text"`
	ParseMode   string                       `json:"parse_mode,omitempty"`
	ReplyMarkup *models.InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// AnswerCallbackQueryRequest acknowledges a pressed inline button.
type AnswerCallbackQueryRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
	ShowAlert       bool   `json:"show_alert,omitempty"`
}

// SendDocumentRequest uploads a generated document to a chat.
type SendDocumentRequest struct {
	ChatID   int64
	Filename string
	Data     []byte
}

// apiResponse is the envelope every Bot API method returns.
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

type sendMessageResponse struct {
	apiResponse
	Result *models.Message `json:"result"`
}

func (c *APIClient) SendMessage(ctx context.Context, req SendMessageRequest) (*models.Message, error) {
	result := new(sendMessageResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		SetError(result).
		Post("/sendMessage")
	if err != nil {
		return nil, fmt.Errorf("send telegram message: %w", err)
	}

	if err := checkResponse(resp, &result.apiResponse); err != nil {
		return nil, err
	}
	return result.Result, nil
}

func (c *APIClient) EditMessageText(ctx context.Context, req EditMessageTextRequest) error {
	result := new(apiResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		SetError(result).
		Post("/editMessageText")
	if err != nil {
		return fmt.Errorf("edit telegram message: %w", err)
	}

	return checkResponse(resp, result)
}

func (c *APIClient) AnswerCallbackQuery(ctx context.Context, req AnswerCallbackQueryRequest) error {
	result := new(apiResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		SetError(result).
		Post("/answerCallbackQuery")
	if err != nil {
		return fmt.Errorf("answer callback query: %w", err)
	}

	return checkResponse(resp, result)
}

func (c *APIClient) SendDocument(ctx context.Context, req SendDocumentRequest) error {
	result := new(apiResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{"chat_id": fmt.Sprintf("%d", req.ChatID)}).
		SetFileReader("document", req.Filename, bytes.NewReader(req.Data)).
		SetResult(result).
		SetError(result).
		Post("/sendDocument")
	if err != nil {
		return fmt.Errorf("send telegram document: %w", err)
	}

	return checkResponse(resp, result)
}

func checkResponse(resp *resty.Response, api *apiResponse) error {
	if resp.StatusCode() >= http.StatusBadRequest || (api != nil && !api.OK) {
		code := resp.StatusCode()
		message := ""
		if api != nil {
			message = api.Description
			if api.ErrorCode != 0 {
				code = api.ErrorCode
			}
		}
		return fmt.Errorf("telegram api error: code=%d, message=%s", code, message)
	}
	return nil
}
