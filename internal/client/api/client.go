package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/platesync/pkg/api"
)

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", "", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// CreateMeal создает новую запись на сервере
func (c *Client) CreateMeal(ctx context.Context, accessToken string, req api.MutateMealRequest) (*api.MealResponse, error) {
	var resp api.MealResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/meals", accessToken, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateMeal обновляет существующую запись на сервере
func (c *Client) UpdateMeal(ctx context.Context, accessToken, mealID string, req api.MutateMealRequest) (*api.MealResponse, error) {
	var resp api.MealResponse
	path := "/api/v1/meals/" + url.PathEscape(mealID)
	if err := c.doRequest(ctx, http.MethodPut, path, accessToken, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteMeal удаляет запись на сервере
func (c *Client) DeleteMeal(ctx context.Context, accessToken, mealID string, req api.DeleteMealRequest) (*api.MealResponse, error) {
	var resp api.MealResponse
	path := "/api/v1/meals/" + url.PathEscape(mealID)
	if err := c.doRequest(ctx, http.MethodDelete, path, accessToken, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListMeals возвращает все записи пользователя с сервера
func (c *Client) ListMeals(ctx context.Context, accessToken string) ([]api.Meal, error) {
	var resp struct {
		Meals []api.Meal `json:"meals"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/meals", accessToken, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Meals, nil
}

// doRequest выполняет HTTP запрос.
// Не-2xx статусы транслируются в типизированные ошибки:
// 409 -> *ConflictError с серверной версией записи в теле,
// все остальные -> *TransportError (retryable).
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result interface{}) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	// Распознанный сигнал конфликта: тело содержит серверную версию записи
	if resp.StatusCode == http.StatusConflict {
		var conflictResp api.MealResponse
		if err := json.Unmarshal(respBody, &conflictResp); err != nil {
			return &TransportError{
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("failed to decode conflict body: %w", err),
			}
		}
		return &ConflictError{ServerMeal: conflictResp.Meal}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return &TransportError{
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("server error: %s", errResp.Error),
			}
		}
		return &TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("request failed: %s", string(respBody)),
		}
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
