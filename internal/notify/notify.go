// Package notify emits notification intents when a complaint's status
// changes. The intent names the submitter, the complaint and the new status;
// actual delivery (email, push) is an external collaborator that consumes
// the Redis channel. Emission is fire-and-forget: a publish failure never
// rolls back the transition that triggered it.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"campuscare/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Intent is the payload handed to the external notifier.
type Intent struct {
	UserID      string        `json:"userId"`
	ComplaintID string        `json:"complaintId"`
	NewStatus   models.Status `json:"newStatus"`
	Note        string        `json:"note,omitempty"`
	Channels    []string      `json:"channels,omitempty"`
	EmittedAt   time.Time     `json:"emittedAt"`
}

type Notifier interface {
	StatusChanged(intent Intent) error
}

// channelFor is the per-user Redis Pub/Sub channel. The websocket feed and
// any external delivery worker subscribe to it.
func channelFor(userID string) string {
	return "notify:" + userID
}

// RedisNotifier publishes intents to Redis Pub/Sub.
type RedisNotifier struct {
	Redis *redis.Client
	Ctx   context.Context
	Log   *zap.Logger
}

func NewRedisNotifier(rdb *redis.Client, log *zap.Logger) *RedisNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisNotifier{Redis: rdb, Ctx: context.Background(), Log: log}
}

func (n *RedisNotifier) StatusChanged(intent Intent) error {
	if intent.EmittedAt.IsZero() {
		intent.EmittedAt = time.Now()
	}
	payload, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	if err := n.Redis.Publish(n.Ctx, channelFor(intent.UserID), payload).Err(); err != nil {
		return err
	}
	n.Log.Debug("notification intent published",
		zap.String("user_id", intent.UserID),
		zap.String("complaint_id", intent.ComplaintID),
		zap.String("new_status", string(intent.NewStatus)),
	)
	return nil
}

// Subscribe opens a Pub/Sub subscription for one user's intents. The caller
// owns the returned subscription and must close it.
func (n *RedisNotifier) Subscribe(userID string) *redis.PubSub {
	return n.Redis.Subscribe(n.Ctx, channelFor(userID))
}
