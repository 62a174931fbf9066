package session_ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/sanma/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix        = "session:"
	channelSessionKeyPrefix = "channel_session:"
	sessionRecordsKeyPrefix = "session_records:"
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("session not found")

// Config holds configuration for the Redis session ledger repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session ledger repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveSession persists a session to Redis
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	session := input.Session
	if session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	if session.ChannelID == "" {
		return errors.New("channel ID cannot be empty")
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	channelKey := channelSessionKeyPrefix + session.ChannelID
	currentID, err := r.client.Get(ctx, channelKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to get current session ID: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+session.ID, sessionJSON, 0)

	switch {
	case session.Active:
		if currentID != "" && currentID != session.ID {
			if err := r.deactivate(ctx, pipe, currentID); err != nil {
				return err
			}
		}
		pipe.Set(ctx, channelKey, session.ID, 0)
	case currentID == session.ID:
		pipe.Del(ctx, channelKey)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// deactivate queues the replaced session's update on the pipeline
func (r *redisRepository) deactivate(ctx context.Context, pipe redis.Pipeliner, sessionID string) error {
	previous, err := r.GetSession(ctx, &GetSessionInput{SessionID: sessionID})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	previous.Active = false
	previousJSON, err := json.Marshal(previous)
	if err != nil {
		return fmt.Errorf("failed to marshal previous session: %w", err)
	}

	pipe.Set(ctx, sessionKeyPrefix+previous.ID, previousJSON, 0)
	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionJSON, err := r.client.Get(ctx, sessionKeyPrefix+input.SessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// GetCurrentSession retrieves the current active session for a channel
func (r *redisRepository) GetCurrentSession(ctx context.Context, input *GetCurrentSessionInput) (*GetCurrentSessionOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("input and channel ID cannot be empty")
	}

	channelKey := channelSessionKeyPrefix + input.ChannelID
	sessionID, err := r.client.Get(ctx, channelKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &GetCurrentSessionOutput{Session: nil}, nil
		}
		return nil, fmt.Errorf("failed to get current session ID: %w", err)
	}

	session, err := r.GetSession(ctx, &GetSessionInput{SessionID: sessionID})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			// Session doesn't exist anymore, clear the channel pointer
			r.client.Del(ctx, channelKey)
			return &GetCurrentSessionOutput{Session: nil}, nil
		}
		return nil, err
	}

	return &GetCurrentSessionOutput{Session: session}, nil
}

// AddRecord appends a round record to its session's list
func (r *redisRepository) AddRecord(ctx context.Context, input *AddRecordInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	record := input.Record
	if record.ID == "" {
		return errors.New("record ID cannot be empty")
	}

	if record.SessionID == "" {
		return errors.New("record session ID cannot be empty")
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := r.client.RPush(ctx, sessionRecordsKeyPrefix+record.SessionID, recordJSON).Err(); err != nil {
		return fmt.Errorf("failed to add record: %w", err)
	}

	return nil
}

// GetRecords retrieves a session's records in order
func (r *redisRepository) GetRecords(ctx context.Context, input *GetRecordsInput) (*GetRecordsOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	values, err := r.client.LRange(ctx, sessionRecordsKeyPrefix+input.SessionID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}

	records := make([]*models.SessionRecord, 0, len(values))
	for i, value := range values {
		var record models.SessionRecord
		if err := json.Unmarshal([]byte(value), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record %d: %w", i, err)
		}
		records = append(records, &record)
	}

	return &GetRecordsOutput{
		Records: records,
	}, nil
}

// DeleteRecords removes a session's records
func (r *redisRepository) DeleteRecords(ctx context.Context, input *DeleteRecordsInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	if err := r.client.Del(ctx, sessionRecordsKeyPrefix+input.SessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete records: %w", err)
	}

	return nil
}
