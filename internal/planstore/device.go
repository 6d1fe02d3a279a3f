package planstore

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitcoach/pkg"
)

// NewDeviceID mints an opaque per-device user id: user_<unix millis>_<9 base36 chars>.
func NewDeviceID(now time.Time) (string, error) {
	suffix, err := pkg.RandomBase36(9)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("user_%d_%s", now.UnixMilli(), suffix), nil
}

// LoadOrCreateDeviceID returns the device id cached in kv, minting and
// caching a new one on first use.
func LoadOrCreateDeviceID(ctx context.Context, kv KV, now time.Time) (string, error) {
	id, found, err := kv.Get(ctx, KeyUserID)
	if err != nil {
		return "", fmt.Errorf("read device id: %w", err)
	}
	if found && id != "" {
		return id, nil
	}

	id, err = NewDeviceID(now)
	if err != nil {
		return "", fmt.Errorf("new device id: %w", err)
	}
	if err := kv.Set(ctx, KeyUserID, id); err != nil {
		return "", fmt.Errorf("store device id: %w", err)
	}
	return id, nil
}

func newHistoryID(now time.Time) (string, error) {
	suffix, err := pkg.RandomBase36(9)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix), nil
}
