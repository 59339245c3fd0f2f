package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"
)

// maxErrorBody - сколько байт тела ответа сохранять в BadStatusCodeError
const maxErrorBody = 512

// Client делает запросы к API статусов домашних работ
type Client struct {
	endpoint string
	token    string
	client   *http.Client
	logger   *slog.Logger
}

// NewClient создаёт клиента API
func NewClient(endpoint, token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// GetAPIAnswer запрашивает изменения статусов начиная с timestamp и
// возвращает разобранное тело ответа. При любой ошибке значение равно nil.
func (c *Client) GetAPIAnswer(ctx context.Context, timestamp int64) (interface{}, error) {
	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("некорректный адрес API %q: %w", c.endpoint, err)
	}
	query := reqURL.Query()
	query.Set("from_date", strconv.FormatInt(timestamp, 10))
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	c.logger.Info("запрос к API", slog.String("url", c.endpoint), slog.Int64("from_date", timestamp))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: чтение ответа: %w", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &BadStatusCodeError{StatusCode: resp.StatusCode, Body: truncateBody(body, maxErrorBody)}
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var response interface{}
	if err := decoder.Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: лишние данные после JSON", ErrInvalidJSON)
	}

	c.logger.Debug("ответ от API получен")
	return response, nil
}

// truncateBody обрезает тело ответа до limit байт, не разрезая UTF-8 символы
func truncateBody(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut])
}
