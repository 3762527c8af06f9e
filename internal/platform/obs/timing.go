package obs

import (
	"context"
	"log"
	"strconv"
	"sync/atomic"
	"time"
)

type ctxKey string

const EvalIDKey ctxKey = "eval_id"

var evalSeq atomic.Uint64

// NewEvalID returns an id unique within the process: the start time in
// base 36 followed by a sequence number.
func NewEvalID() string {
	return strconv.FormatInt(time.Now().Unix(), 36) + "-" + strconv.FormatUint(evalSeq.Add(1), 10)
}

// WithEvalID tags ctx so that timings logged under it can be correlated.
func WithEvalID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, EvalIDKey, id)
}

// EvalID returns the id stored by WithEvalID, or "-" when there is none.
func EvalID(ctx context.Context) string {
	if id, ok := ctx.Value(EvalIDKey).(string); ok && id != "" {
		return id
	}
	return "-"
}

// Time logs the duration of an operation and its error, if any.
// Use as: defer obs.Time(ctx, "op")(&err).
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	evalID := EvalID(ctx)

	return func(errp *error) {
		dur := time.Since(start).Milliseconds()

		if errp != nil && *errp != nil {
			log.Printf("eval_id=%s op=%s dur=%dms err=%v", evalID, name, dur, *errp)
			return
		}
		log.Printf("eval_id=%s op=%s dur=%dms", evalID, name, dur)
	}
}
