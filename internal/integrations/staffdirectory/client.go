package staffdirectory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Client клиент для работы со справочником персонала (StaffDirectory)
// Справочник владеет сотрудниками, их расписаниями и каталогом услуг
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        Logger

	redis    *redis.Client
	cacheTTL time.Duration
}

// NewClient создает новый экземпляр клиента справочника персонала.
// rps ограничивает частоту исходящих запросов, чтобы массовые расчёты
// общей доступности не перегружали справочник.
func NewClient(baseURL string, timeout time.Duration, rps float64, log Logger) *Client {
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		log:     log,
	}
}

// UseRedisCache включает кеширование ответов справочника в Redis.
// Расписания и услуги меняются редко, а читаются на каждый расчёт доступности.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// GetStaff получает сотрудника с недельным расписанием по ID
func (c *Client) GetStaff(ctx context.Context, staffID string) (*Staff, error) {
	cacheKey := fmt.Sprintf("staffdirectory:staff:%s", staffID)

	var staff Staff
	if c.readCache(ctx, cacheKey, &staff) {
		return &staff, nil
	}

	endpoint := fmt.Sprintf("%s/internal/staff/%s", c.baseURL, url.PathEscape(staffID))
	if err := c.doGet(ctx, endpoint, &staff, ErrStaffNotFound); err != nil {
		return nil, err
	}

	c.writeCache(ctx, cacheKey, staff)
	return &staff, nil
}

// ListStaff получает список всех активных сотрудников
// Используется как fallback "любой сотрудник", когда у услуги нет списка исполнителей
func (c *Client) ListStaff(ctx context.Context) ([]*Staff, error) {
	cacheKey := "staffdirectory:staff:list"

	var wrap struct {
		Staff []*Staff `json:"staff"`
	}
	if c.readCache(ctx, cacheKey, &wrap) {
		return wrap.Staff, nil
	}

	endpoint := fmt.Sprintf("%s/internal/staff", c.baseURL)
	if err := c.doGet(ctx, endpoint, &wrap, nil); err != nil {
		return nil, err
	}

	c.writeCache(ctx, cacheKey, wrap)
	return wrap.Staff, nil
}

// GetService получает услугу по ID
func (c *Client) GetService(ctx context.Context, serviceID string) (*Service, error) {
	cacheKey := fmt.Sprintf("staffdirectory:service:%s", serviceID)

	var service Service
	if c.readCache(ctx, cacheKey, &service) {
		return &service, nil
	}

	endpoint := fmt.Sprintf("%s/internal/services/%s", c.baseURL, url.PathEscape(serviceID))
	if err := c.doGet(ctx, endpoint, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	c.writeCache(ctx, cacheKey, service)
	return &service, nil
}

// doGet выполняет GET запрос с ограничением частоты и обработкой статус-кодов.
// notFound подставляется при ответе 404; nil означает, что 404 не ожидается.
// Сетевые ошибки и ответы 5xx превращаются в ErrServiceDegraded: без
// справочника рассчитать доступность нельзя, и вызывающий код должен отвечать
// временной недоступностью.
func (c *Client) doGet(ctx context.Context, endpoint string, out interface{}, notFound error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("StaffDirectory unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: invalid request format", ErrInvalidResponse)
	case resp.StatusCode == http.StatusNotFound && notFound != nil:
		return notFound
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("StaffDirectory returned %d: %s", resp.StatusCode, string(body))
		return fmt.Errorf("%w: status code %d", ErrServiceDegraded, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func (c *Client) readCache(ctx context.Context, key string, out interface{}) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, val interface{}) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}
