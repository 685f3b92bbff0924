package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

var Redis *redis.Client
var Ctx = context.Background()

// InitRedis inicializa la conexión a Redis. Redis es opcional: si no está
// configurado, el cacheo y el rate limiting se saltan sin error.
func InitRedis() error {
	host := getEnv("REDIS_HOST", "localhost")
	port := getEnv("REDIS_PORT", "6379")
	password := getEnv("REDIS_PASSWORD", "")
	dbStr := getEnv("REDIS_DB", "0")

	db, err := strconv.Atoi(dbStr)
	if err != nil {
		db = 0
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
		IdleTimeout:  300 * time.Second,
	})

	if err := Redis.Ping(Ctx).Err(); err != nil {
		Redis = nil
		return fmt.Errorf("no se pudo conectar a Redis: %w", err)
	}

	log.Println("✅ Conectado a Redis")
	return nil
}

// GetRedis devuelve el cliente Redis (nil si no está conectado)
func GetRedis() *redis.Client {
	return Redis
}

// CacheSet guarda un valor en el cache con TTL
func CacheSet(key string, value interface{}, ttl time.Duration) error {
	if Redis == nil {
		return nil
	}
	return Redis.Set(Ctx, key, value, ttl).Err()
}

// CacheGet obtiene un valor del cache
func CacheGet(key string) (string, error) {
	if Redis == nil {
		return "", redis.Nil
	}
	return Redis.Get(Ctx, key).Result()
}

// CacheDel elimina un valor del cache
func CacheDel(key string) error {
	if Redis == nil {
		return nil
	}
	return Redis.Del(Ctx, key).Err()
}

// CacheExists verifica si la clave existe en el cache
func CacheExists(key string) (bool, error) {
	if Redis == nil {
		return false, nil
	}
	count, err := Redis.Exists(Ctx, key).Result()
	return count > 0, err
}

// CacheSetJSON serializa y guarda un objeto JSON en el cache
func CacheSetJSON(key string, value interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error de serialización JSON: %w", err)
	}
	return CacheSet(key, string(jsonData), ttl)
}

// CacheGetJSON obtiene y deserializa un objeto JSON del cache
func CacheGetJSON(key string, dest interface{}) error {
	jsonData, err := CacheGet(key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(jsonData), dest); err != nil {
		return fmt.Errorf("error de deserialización JSON: %w", err)
	}

	return nil
}

// CacheIncr incrementa un contador
func CacheIncr(key string) (int64, error) {
	if Redis == nil {
		return 0, redis.Nil
	}
	return Redis.Incr(Ctx, key).Result()
}

// CacheExpire fija el TTL de una clave
func CacheExpire(key string, ttl time.Duration) error {
	if Redis == nil {
		return nil
	}
	return Redis.Expire(Ctx, key, ttl).Err()
}

// CacheFlushDB limpia la base Redis actual (para tests)
func CacheFlushDB() error {
	if Redis == nil {
		return nil
	}
	return Redis.FlushDB(Ctx).Err()
}

// GenerateCacheKey genera una clave de cache con el prefijo del recurso
func GenerateCacheKey(prefix string, suffix string) string {
	return fmt.Sprintf("maquinaria:%s:%s", prefix, suffix)
}

// RateLimitCheck verifica el rate limit para una clave de cliente
func RateLimitCheck(clientKey string, action string, limit int64, window time.Duration) (bool, error) {
	if Redis == nil {
		return true, nil
	}

	key := fmt.Sprintf("ratelimit:%s:%s", clientKey, action)

	pipe := Redis.Pipeline()
	incr := pipe.Incr(Ctx, key)
	pipe.Expire(Ctx, key, window)
	_, err := pipe.Exec(Ctx)

	if err != nil {
		return false, err
	}

	count, err := incr.Result()
	if err != nil {
		return false, err
	}

	return count <= limit, nil
}

// SessionStore guarda los datos de una sesión
func SessionStore(sessionID string, data interface{}, ttl time.Duration) error {
	key := fmt.Sprintf("session:%s", sessionID)
	return CacheSetJSON(key, data, ttl)
}

// SessionGet obtiene los datos de una sesión
func SessionGet(sessionID string, dest interface{}) error {
	key := fmt.Sprintf("session:%s", sessionID)
	return CacheGetJSON(key, dest)
}

// SessionDelete elimina una sesión
func SessionDelete(sessionID string) error {
	key := fmt.Sprintf("session:%s", sessionID)
	return CacheDel(key)
}
