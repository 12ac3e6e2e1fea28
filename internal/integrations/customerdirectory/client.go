package customerdirectory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент для работы со справочником клиентов (CustomerDirectory)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочника клиентов
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCustomer получает клиента по ID
func (c *Client) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	endpoint := fmt.Sprintf("%s/internal/customers/%s", c.baseURL, url.PathEscape(customerID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid customer ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrCustomerNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var customer Customer
	if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &customer, nil
}

// GetCustomerWithGracefulDegradation получает клиента с graceful degradation
// При недоступности справочника возвращает ErrServiceDegraded, что позволяет
// создать бронирование без денормализованного имени клиента
func (c *Client) GetCustomerWithGracefulDegradation(ctx context.Context, customerID string) (*Customer, error) {
	c.log.Info("Fetching customer customer_id=%s", customerID)

	customer, err := c.GetCustomer(ctx, customerID)
	if err != nil {
		// Если это критичная бизнес-ошибка (клиент не существует),
		// пробрасываем её дальше
		if errors.Is(err, ErrCustomerNotFound) {
			c.log.Info("Customer not found customer_id=%s", customerID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation - возвращаем ErrServiceDegraded с контекстом
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("CustomerDirectory unavailable, applying graceful degradation for customer_id=%s: %v", customerID, err)
		return nil, fmt.Errorf("%w: customer_id=%s, error=%v", ErrServiceDegraded, customerID, err)
	}

	c.log.Info("Successfully fetched customer customer_id=%s", customerID)
	return customer, nil
}
