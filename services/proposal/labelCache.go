package proposal

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"meetsync/models"
	"meetsync/services/mail"
	"meetsync/utils"
)

const labelCacheTTL = 12 * time.Hour

// LabelCache caches label handles in Redis so the saga does not hit the
// labels API on every run. A handle is always re-derivable from its name, so
// cache failures just fall through to the transport.
type LabelCache struct {
	Client *redis.Client
	Mail   mail.MailTransport
}

// Ensure returns the handle for the named label, consulting the cache first.
func (c *LabelCache) Ensure(ctx context.Context, name string) (models.LabelHandle, error) {
	logger := utils.GetLogger()
	key := "gmail:label:" + name

	if c.Client != nil {
		id, err := c.Client.Get(ctx, key).Result()
		if err == nil && id != "" {
			return models.LabelHandle{Name: name, ID: id}, nil
		}
		if err != nil && err != redis.Nil {
			logger.Debug("Label cache read failed", zap.String("label", name), zap.Error(err))
		}
	}

	handle, err := c.Mail.EnsureLabel(ctx, name)
	if err != nil {
		return models.LabelHandle{}, err
	}

	if c.Client != nil {
		if err := c.Client.Set(ctx, key, handle.ID, labelCacheTTL).Err(); err != nil {
			logger.Debug("Label cache write failed", zap.String("label", name), zap.Error(err))
		}
	}
	return handle, nil
}
