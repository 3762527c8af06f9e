package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
)

func TestTimeLogsEvalIDAndError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	ctx := WithEvalID(context.Background(), "abc123")

	err := errors.New("boom")
	Time(ctx, "solar.lookup")(&err)

	out := buf.String()
	for _, want := range []string{"eval_id=abc123", "op=solar.lookup", "err=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}

	buf.Reset()
	var ok error
	Time(context.Background(), "noop")(&ok)
	if strings.Contains(buf.String(), "err=") {
		t.Errorf("unexpected error field in %q", buf.String())
	}
	if !strings.Contains(buf.String(), "eval_id=- ") {
		t.Errorf("missing placeholder eval id in %q", buf.String())
	}
}

func TestNewEvalIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewEvalID()
		if seen[id] {
			t.Fatalf("duplicate eval id %q", id)
		}
		seen[id] = true
	}

	ctx := WithEvalID(context.Background(), "abc")
	if got := EvalID(ctx); got != "abc" {
		t.Errorf("EvalID = %q, want abc", got)
	}
}
