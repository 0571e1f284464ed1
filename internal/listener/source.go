package listener

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jolucode/fin-guard/internal/common"
	"github.com/jolucode/fin-guard/internal/model"
)

// maxEventSize bounds one JSON-lines event.
const maxEventSize = 64 * 1024

// StreamSource reads raw captures as JSON lines from a reader (stdin, a file,
// or a FIFO bridged from the device). Malformed lines are logged and skipped.
type StreamSource struct {
	r io.Reader
}

// NewStreamSource creates a source over the given reader.
func NewStreamSource(r io.Reader) *StreamSource {
	return &StreamSource{r: r}
}

// Run delivers each event to handler until the stream ends or ctx is
// canceled. handler is expected not to block.
func (s *StreamSource) Run(ctx context.Context, handler func(model.RawCapture)) error {
	scanner := bufio.NewScanner(s.r)
	scanner.Buffer(make([]byte, 0, 4096), maxEventSize)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var capture model.RawCapture
		if err := json.Unmarshal(line, &capture); err != nil {
			common.LogDebug("skipping malformed event line", common.Fields{"error": err.Error()})
			continue
		}
		handler(capture)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("event stream failed: %w", err)
	}
	return nil
}
