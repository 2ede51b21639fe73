package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
}

func NewClient(token string) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 90 * time.Second},
		baseURL:    fmt.Sprintf("https://api.telegram.org/bot%s", token),
	}
}

func (c *Client) call(method string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+"/"+method, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp.Body)
}

func decodeResponse(r io.Reader) (json.RawMessage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if !apiResp.OK {
		return nil, fmt.Errorf("telegram: %s", apiResp.Description)
	}
	return apiResp.Result, nil
}

func (c *Client) SendMessage(chatID int64, text, parseMode string, replyMarkup interface{}) (int64, error) {
	req := SendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	}

	if replyMarkup != nil {
		rm, err := json.Marshal(replyMarkup)
		if err != nil {
			return 0, err
		}
		req.ReplyMarkup = rm
	}

	result, err := c.call("sendMessage", req)
	if err != nil {
		return 0, err
	}

	var msg MessageResult
	json.Unmarshal(result, &msg)
	return msg.MessageID, nil
}

// sendFile uploads a local file through a multipart request. fileField is
// "document" or "photo".
func (c *Client) sendFile(method, fileField string, chatID int64, path, caption, parseMode string, replyMarkup interface{}) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("chat_id", strconv.FormatInt(chatID, 10))
	if caption != "" {
		w.WriteField("caption", caption)
	}
	if parseMode != "" {
		w.WriteField("parse_mode", parseMode)
	}
	if replyMarkup != nil {
		rm, err := json.Marshal(replyMarkup)
		if err != nil {
			return 0, err
		}
		w.WriteField("reply_markup", string(rm))
	}

	part, err := w.CreateFormFile(fileField, filepath.Base(path))
	if err != nil {
		return 0, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return 0, fmt.Errorf("copy file: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Post(c.baseURL+"/"+method, w.FormDataContentType(), &buf)
	if err != nil {
		return 0, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	result, err := decodeResponse(resp.Body)
	if err != nil {
		return 0, err
	}

	var msg MessageResult
	json.Unmarshal(result, &msg)
	return msg.MessageID, nil
}

func (c *Client) SendDocument(chatID int64, path, caption, parseMode string) (int64, error) {
	return c.sendFile("sendDocument", "document", chatID, path, caption, parseMode, nil)
}

func (c *Client) SendPhoto(chatID int64, path, caption string, replyMarkup interface{}) (int64, error) {
	return c.sendFile("sendPhoto", "photo", chatID, path, caption, "", replyMarkup)
}

func (c *Client) AnswerCallbackQuery(callbackID, text string, showAlert bool) error {
	req := AnswerCallbackQueryRequest{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       showAlert,
	}
	_, err := c.call("answerCallbackQuery", req)
	return err
}

func (c *Client) DeleteMessage(chatID, messageID int64) error {
	req := struct {
		ChatID    int64 `json:"chat_id"`
		MessageID int64 `json:"message_id"`
	}{ChatID: chatID, MessageID: messageID}
	_, err := c.call("deleteMessage", req)
	return err
}

func (c *Client) SetWebhook(url, secretToken string) error {
	req := SetWebhookRequest{URL: url, SecretToken: secretToken}
	_, err := c.call("setWebhook", req)
	return err
}

func (c *Client) DeleteWebhook() error {
	_, err := c.call("deleteWebhook", struct{}{})
	return err
}

// GetUpdates long-polls for updates starting after offset.
func (c *Client) GetUpdates(offset int64, timeout int) ([]Update, error) {
	result, err := c.call("getUpdates", GetUpdatesRequest{Offset: offset, Timeout: timeout})
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, fmt.Errorf("unmarshal updates: %w", err)
	}
	return updates, nil
}
