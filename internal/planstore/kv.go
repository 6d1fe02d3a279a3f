package planstore

import "context"

const (
	KeyCurrentPlan = "currentPlan"
	KeyPlanHistory = "planHistory"
	KeyUserID      = "fitness_user_id"
)

// KV is the local key/value tier. A missing key is reported as found=false
// with a nil error.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
