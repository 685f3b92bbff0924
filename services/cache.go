package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"backend_maquinaria/database"

	"github.com/go-redis/redis/v8"
)

// CacheService cachea los tableros y agregados del panel
type CacheService struct {
	redis  *redis.Client
	logger *log.Logger
}

// NewCacheService crea un nuevo CacheService
func NewCacheService(redisClient *redis.Client, logger *log.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// TTLs del cache
const (
	CacheTTLShort  = 5 * time.Minute  // Agregados que cambian seguido (stock de combustible)
	CacheTTLMedium = 15 * time.Minute // Tableros de alertas
	CacheTTLLong   = 1 * time.Hour    // Catálogos
)

// Get obtiene un valor del cache
func (cs *CacheService) Get(ctx context.Context, key string) (string, error) {
	if cs.redis == nil {
		return "", fmt.Errorf("Redis no está conectado")
	}

	val, err := cs.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("clave no encontrada")
	}
	return val, err
}

// Set guarda un valor en el cache
func (cs *CacheService) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if cs.redis == nil {
		if cs.logger != nil {
			cs.logger.Printf("Redis no está conectado, se omite el cacheo de: %s", key)
		}
		return nil // Sin Redis simplemente no se cachea
	}

	return cs.redis.Set(ctx, key, value, ttl).Err()
}

// Del elimina un valor del cache
func (cs *CacheService) Del(ctx context.Context, key string) error {
	if cs.redis == nil {
		return nil
	}

	return cs.redis.Del(ctx, key).Err()
}

// CacheDashboard cachea el resumen del panel
func (cs *CacheService) CacheDashboard(data interface{}) error {
	key := database.GenerateCacheKey("dashboard", "summary")
	return database.CacheSetJSON(key, data, CacheTTLShort)
}

// GetCachedDashboard obtiene el resumen del panel desde el cache
func (cs *CacheService) GetCachedDashboard(dest interface{}) error {
	key := database.GenerateCacheKey("dashboard", "summary")
	return database.CacheGetJSON(key, dest)
}

// InvalidateDashboard invalida el resumen del panel
func (cs *CacheService) InvalidateDashboard() error {
	key := database.GenerateCacheKey("dashboard", "summary")
	return database.CacheDel(key)
}

// SessionToken es el token de sesión del backend de datos remoto con su
// fecha de expiración. Siempre viaja como objeto explícito, nunca como
// variable de módulo: así se puede inyectar y probar.
type SessionToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid indica si el token sigue siendo usable con el margen de seguridad
// dado (se renueva antes de que expire de verdad)
func (st SessionToken) Valid(margin time.Duration) bool {
	return st.Token != "" && time.Now().Add(margin).Before(st.ExpiresAt)
}

// TokenCache guarda el token de sesión del backend remoto. Usa Redis si está
// disponible para compartirlo entre instancias y cae a memoria local si no.
type TokenCache struct {
	mu     sync.RWMutex
	local  SessionToken
	margin time.Duration
}

// NewTokenCache crea un cache de token con el margen de expiración indicado
func NewTokenCache(margin time.Duration) *TokenCache {
	return &TokenCache{margin: margin}
}

const tokenCacheKey = "maquinaria:dataapi:session"

// Get devuelve el token vigente o false si hay que autenticarse de nuevo
func (tc *TokenCache) Get() (SessionToken, bool) {
	// Primero Redis, para compartir la sesión entre procesos
	var cached SessionToken
	if err := database.CacheGetJSON(tokenCacheKey, &cached); err == nil && cached.Valid(tc.margin) {
		return cached, true
	}

	tc.mu.RLock()
	defer tc.mu.RUnlock()
	if tc.local.Valid(tc.margin) {
		return tc.local, true
	}
	return SessionToken{}, false
}

// Put guarda un token recién emitido
func (tc *TokenCache) Put(token SessionToken) {
	tc.mu.Lock()
	tc.local = token
	tc.mu.Unlock()

	ttl := time.Until(token.ExpiresAt)
	if ttl > 0 {
		_ = database.CacheSetJSON(tokenCacheKey, token, ttl)
	}
}

// Clear descarta el token (por ejemplo tras un 401 del backend remoto)
func (tc *TokenCache) Clear() {
	tc.mu.Lock()
	tc.local = SessionToken{}
	tc.mu.Unlock()

	_ = database.CacheDel(tokenCacheKey)
}
