package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// EchoResponse — echo из API.
type EchoResponse struct {
	ID               string  `json:"id"`
	Message          string  `json:"message"`
	Category         *string `json:"category"`
	ProcessedMessage string  `json:"processed_message"`
	IsProtected      bool    `json:"is_protected"`
	Length           int     `json:"length"`
	ProcessedLength  int     `json:"processed_length"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// ProcessResponse — результат обработки сообщения.
type ProcessResponse struct {
	Original        string `json:"original"`
	Processed       string `json:"processed"`
	Length          int    `json:"length"`
	ProcessedLength int    `json:"processed_length"`
}

// ContactResponse — контакт из API.
type ContactResponse struct {
	ID        string `json:"id"`
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// HealthResponse — состояние сервиса.
type HealthResponse struct {
	Status   string  `json:"status"`
	Service  string  `json:"service"`
	Version  string  `json:"version"`
	Database string  `json:"database"`
	Storage  string  `json:"storage"`
	Uptime   float64 `json:"uptime"`
}

// Page — страница списка.
type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Pages    int `json:"pages"`
}

// --- Request types ---

// CreateEchoRequest — создание echo.
type CreateEchoRequest struct {
	Message  string  `json:"message"`
	Category *string `json:"category,omitempty"`
}

// CreateContactRequest — создание контакта.
type CreateContactRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// ListOpts — параметры страницы. Нулевые значения не передаются.
type ListOpts struct {
	Page     int
	PageSize int
}

func (o ListOpts) values() url.Values {
	params := url.Values{}
	if o.Page > 0 {
		params.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(o.PageSize))
	}
	return params
}

// --- API envelope ---

type dataEnvelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type errorEnvelope struct {
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	ErrorCode int            `json:"error_code"`
	Details   map[string]any `json:"details"`
}

// APIError — конверт ошибки от API.
type APIError struct {
	Code    int
	Message string
	Details map[string]any
}

// Error возвращает "<message> (code <n>)".
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// --- Client ---

// Client — HTTP-клиент для Modulo API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient создаёт клиент для API. token нужен только для защищённых операций.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Echo ---

// ListEchoes возвращает страницу echo.
func (c *Client) ListEchoes(ctx context.Context, opts ListOpts) (*Page[EchoResponse], error) {
	var page Page[EchoResponse]
	err := c.list(ctx, "/api/echo", opts.values(), &page)
	return &page, err
}

// GetEcho возвращает echo по ID.
func (c *Client) GetEcho(ctx context.Context, id string) (*EchoResponse, error) {
	var echo EchoResponse
	err := c.get(ctx, "/api/echo/"+url.PathEscape(id), &echo)
	return &echo, err
}

// CreateEcho создаёт echo. protected=true использует защищённый endpoint.
func (c *Client) CreateEcho(ctx context.Context, req CreateEchoRequest, protected bool) (*EchoResponse, error) {
	path := "/api/echo"
	if protected {
		path += "/protected"
	}

	var echo EchoResponse
	err := c.post(ctx, path, req, &echo)
	return &echo, err
}

// ProcessEcho обрабатывает сообщение без сохранения.
func (c *Client) ProcessEcho(ctx context.Context, message string) (*ProcessResponse, error) {
	var res ProcessResponse
	err := c.post(ctx, "/api/echo/process", map[string]string{"message": message}, &res)
	return &res, err
}

// DeleteEcho мягко удаляет echo.
func (c *Client) DeleteEcho(ctx context.Context, id string) error {
	return c.doData(ctx, http.MethodDelete, "/api/echo/"+url.PathEscape(id), nil, nil)
}

// --- Contacts ---

// ListContacts возвращает страницу контактов.
func (c *Client) ListContacts(ctx context.Context, opts ListOpts) (*Page[ContactResponse], error) {
	var page Page[ContactResponse]
	err := c.list(ctx, "/api/progas/contacts", opts.values(), &page)
	return &page, err
}

// GetContact возвращает контакт по ID.
func (c *Client) GetContact(ctx context.Context, id string) (*ContactResponse, error) {
	var contact ContactResponse
	err := c.get(ctx, "/api/progas/contacts/"+url.PathEscape(id), &contact)
	return &contact, err
}

// CreateContact создаёт контакт.
func (c *Client) CreateContact(ctx context.Context, req CreateContactRequest) (*ContactResponse, error) {
	var contact ContactResponse
	err := c.post(ctx, "/api/progas/contacts", req, &contact)
	return &contact, err
}

// DeleteContact мягко удаляет контакт.
func (c *Client) DeleteContact(ctx context.Context, id string) error {
	return c.doData(ctx, http.MethodDelete, "/api/progas/contacts/"+url.PathEscape(id), nil, nil)
}

// --- Service ---

// Health возвращает состояние сервиса.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	err := c.get(ctx, "/health", &health)
	return &health, err
}

// --- HTTP helpers ---

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.doData(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	return c.doData(ctx, http.MethodPost, path, body, result)
}

func (c *Client) list(ctx context.Context, path string, params url.Values, result any) error {
	if len(params) > 0 {
		path = path + "?" + params.Encode()
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) doData(ctx context.Context, method, path string, body any, result any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var env dataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(env.Data, result)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.httpClient.Do(req)
}

// checkError превращает конверт ошибки в *APIError.
func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var env errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || env.Message == "" {
		return &APIError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	code := env.ErrorCode
	if code == 0 {
		code = resp.StatusCode
	}
	return &APIError{Code: code, Message: env.Message, Details: env.Details}
}
