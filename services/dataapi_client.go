package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"backend_maquinaria/config"
)

// DataAPIClient es el cliente del backend de datos alojado (una API REST
// con forma de PostgREST: un endpoint por tabla, filtros select/order/eq
// por query string). Se usa para importar las filas heredadas; el servidor
// nunca depende de él para operar.
type DataAPIClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Logger     *log.Logger
	tokens     *TokenCache
	maxRetries int
}

// RetryConfig configura los reintentos con backoff exponencial
type RetryConfig struct {
	MaxRetries      int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffFactor   float64
	RetryableErrors []int // Códigos HTTP que ameritan reintento
}

// GetDefaultRetryConfig devuelve la configuración estándar de reintentos
func GetDefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		InitialDelay:  1 * time.Second,
		MaxDelay:      30 * time.Second,
		BackoffFactor: 2.0,
		RetryableErrors: []int{
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
			http.StatusTooManyRequests,
		},
	}
}

// sessionResponse es la respuesta de autenticación del backend alojado
type sessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Error     string    `json:"error,omitempty"`
}

// TokenExpiryMargin es el margen con el que se renueva el token de sesión
// antes de su expiración real
const TokenExpiryMargin = 2 * time.Minute

// NewDataAPIClient crea el cliente del backend de datos remoto.
// Devuelve nil si la API no está configurada.
func NewDataAPIClient(cfg config.DataAPIConfig, tokens *TokenCache, logger *log.Logger) *DataAPIClient {
	if cfg.BaseURL == "" || cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if tokens == nil {
		tokens = NewTokenCache(TokenExpiryMargin)
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &DataAPIClient{
		BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:     cfg.APIKey,
		HTTPClient: client,
		Logger:     logger,
		tokens:     tokens,
		maxRetries: cfg.MaxRetries,
	}
}

// Authenticate obtiene un token de sesión del backend alojado y lo deja
// en el cache de tokens
func (c *DataAPIClient) Authenticate(ctx context.Context) (SessionToken, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/auth/session", nil)
	if err != nil {
		return SessionToken{}, fmt.Errorf("error creando la petición de sesión: %w", err)
	}
	req.Header.Set("apikey", c.APIKey)
	req.Header.Set("User-Agent", "MaquinariaPro/1.0")

	resp, err := c.CallWithRetry(req, c.retryConfig())
	if err != nil {
		return SessionToken{}, fmt.Errorf("error ejecutando la petición de sesión: %w", err)
	}
	defer resp.Body.Close()

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return SessionToken{}, fmt.Errorf("error decodificando la respuesta de sesión: %w", err)
	}

	if session.Error != "" {
		return SessionToken{}, fmt.Errorf("error de autenticación: %s", session.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return SessionToken{}, fmt.Errorf("autenticación fallida, estado: %d", resp.StatusCode)
	}

	token := SessionToken{Token: session.Token, ExpiresAt: session.ExpiresAt}
	c.tokens.Put(token)
	c.Logger.Printf("Sesión del backend de datos renovada, expira: %v", token.ExpiresAt)
	return token, nil
}

// sessionToken devuelve un token vigente, autenticándose solo si el cache
// no tiene uno usable
func (c *DataAPIClient) sessionToken(ctx context.Context) (SessionToken, error) {
	if token, ok := c.tokens.Get(); ok {
		return token, nil
	}
	return c.Authenticate(ctx)
}

// QueryOptions son los parámetros de consulta estilo PostgREST
type QueryOptions struct {
	Select string
	Order  string
	Eq     map[string]string
	In     map[string][]string
	Limit  int
}

// FetchRows trae las filas de una tabla del backend alojado
func (c *DataAPIClient) FetchRows(ctx context.Context, table string, opts QueryOptions) ([]map[string]interface{}, error) {
	token, err := c.sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	if opts.Select != "" {
		query.Set("select", opts.Select)
	}
	if opts.Order != "" {
		query.Set("order", opts.Order)
	}
	for column, value := range opts.Eq {
		query.Set(column, "eq."+value)
	}
	for column, values := range opts.In {
		query.Set(column, "in.("+strings.Join(values, ",")+")")
	}
	if opts.Limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", opts.Limit))
	}

	endpoint := c.BaseURL + "/" + table
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creando la petición: %w", err)
	}
	req.Header.Set("apikey", c.APIKey)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "MaquinariaPro/1.0")

	resp, err := c.CallWithRetry(req, c.retryConfig())
	if err != nil {
		return nil, fmt.Errorf("error consultando la tabla %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Sesión caducada entre el chequeo y la llamada: se descarta y el
		// siguiente intento vuelve a autenticarse
		c.tokens.Clear()
		return nil, fmt.Errorf("sesión rechazada por el backend de datos (tabla %s)", table)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("consulta fallida a %s, estado %d: %s", table, resp.StatusCode, string(body))
	}

	var rows []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("error decodificando las filas de %s: %w", table, err)
	}

	return rows, nil
}

func (c *DataAPIClient) retryConfig() RetryConfig {
	cfg := GetDefaultRetryConfig()
	if c.maxRetries > 0 {
		cfg.MaxRetries = c.maxRetries
	}
	return cfg
}

// CallWithRetry ejecuta la petición con reintentos y backoff exponencial
func (c *DataAPIClient) CallWithRetry(req *http.Request, config RetryConfig) (*http.Response, error) {
	var lastErr error
	var resp *http.Response

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		// Clonamos la petición para poder reutilizarla
		reqClone := req.Clone(req.Context())

		if req.Body != nil && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("error restaurando el cuerpo de la petición: %w", err)
			}
			reqClone.Body = body
		}

		resp, lastErr = c.HTTPClient.Do(reqClone)

		// Petición exitosa o error no reintentable
		if lastErr == nil && !c.shouldRetry(resp.StatusCode, config.RetryableErrors) {
			return resp, nil
		}

		if resp != nil {
			resp.Body.Close()
		}

		if attempt == config.MaxRetries {
			break
		}

		delay := c.calculateDelay(attempt, config)

		c.Logger.Printf("Reintentando %s en %v (intento %d/%d), causa: %v",
			req.URL.String(), delay, attempt+1, config.MaxRetries+1, lastErr)

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(delay):
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("se agotaron los reintentos, último error: %w", lastErr)
	}

	return resp, nil
}

// shouldRetry decide si el código de estado amerita reintento
func (c *DataAPIClient) shouldRetry(statusCode int, retryableErrors []int) bool {
	for _, code := range retryableErrors {
		if statusCode == code {
			return true
		}
	}
	return false
}

// calculateDelay calcula el backoff exponencial acotado
func (c *DataAPIClient) calculateDelay(attempt int, config RetryConfig) time.Duration {
	delay := time.Duration(float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(attempt)))
	if delay > config.MaxDelay {
		delay = config.MaxDelay
	}
	return delay
}
