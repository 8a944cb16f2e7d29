// db/redis.go
package db

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/fleetgate/gatekeeper/logging"
	"github.com/fleetgate/gatekeeper/model"
)

var (
	RedisClient   *redis.Client
	encryptionKey []byte
)

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	encryptionKey = []byte(viper.GetString("redis.encryptionKey"))
	if len(encryptionKey) != 32 {
		return fmt.Errorf("invalid encryption key length: must be 32 bytes")
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// CacheProfile stores a user's permission profile snapshot. Profiles carry
// compliance and performance data, so they are encrypted at rest like the
// rest of the sensitive cache entries.
func CacheProfile(ctx context.Context, profile *model.UserPermissionProfile) error {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	encryptedProfile, err := encrypt(profileJSON)
	if err != nil {
		return fmt.Errorf("failed to encrypt profile: %w", err)
	}

	key := fmt.Sprintf("profile:%s", profile.UserID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, base64.StdEncoding.EncodeToString(encryptedProfile), defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache profile: %w", err)
	}

	logger.Debug("Profile cached successfully", zap.String("userID", profile.UserID))
	return nil
}

func GetCachedProfile(ctx context.Context, userID string) (*model.UserPermissionProfile, error) {
	key := fmt.Sprintf("profile:%s", userID)
	encryptedProfileStr, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Profile not found in cache", zap.String("userID", userID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get profile from cache: %w", err)
	}

	encryptedProfile, err := base64.StdEncoding.DecodeString(encryptedProfileStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	profileJSON, err := decrypt(encryptedProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt profile: %w", err)
	}

	var profile model.UserPermissionProfile
	err = json.Unmarshal(profileJSON, &profile)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	logger.Debug("Profile retrieved from cache", zap.String("userID", userID))
	return &profile, nil
}

func DeleteCachedProfile(ctx context.Context, userID string) error {
	key := fmt.Sprintf("profile:%s", userID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete profile from cache: %w", err)
	}
	logger.Debug("Profile deleted from cache", zap.String("userID", userID))
	return nil
}

// decisionKey includes the profile's LastUpdated stamp so a refreshed profile
// naturally misses stale verdicts.
func decisionKey(request model.AccessRequest, lastUpdated time.Time) string {
	return fmt.Sprintf("decision:%s:%s:%s:%s:%d",
		request.UserID, request.Page, request.Section, request.Role, lastUpdated.UnixNano())
}

func CacheDecision(ctx context.Context, request model.AccessRequest, lastUpdated time.Time, result model.AccessResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal decision: %w", err)
	}

	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, decisionKey(request, lastUpdated), resultJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache decision: %w", err)
	}

	logger.Debug("Decision cached successfully",
		zap.String("userID", request.UserID),
		zap.String("page", request.Page),
		zap.String("section", request.Section))
	return nil
}

func GetCachedDecision(ctx context.Context, request model.AccessRequest, lastUpdated time.Time) (*model.AccessResult, error) {
	resultJSON, err := RedisClient.Get(ctx, decisionKey(request, lastUpdated)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get decision from cache: %w", err)
	}

	var result model.AccessResult
	err = json.Unmarshal([]byte(resultJSON), &result)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal decision: %w", err)
	}

	return &result, nil
}

func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}
