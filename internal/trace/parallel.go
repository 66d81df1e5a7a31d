package trace

import (
	"sync"

	"github.com/anzel/fieldtrace/internal/geom"
)

// TraceBatch traces one field line per start point, fanning out across
// goroutines. Lines share nothing but the read-only evaluator, so the traces
// are independent; results keep the order of the start points. The first
// construction error is returned alongside whatever lines succeeded.
func TraceBatch(ev Evaluator, starts []geom.Point, opts Options) ([]*FieldLine, error) {
	lines := make([]*FieldLine, len(starts))
	errs := make([]error, len(starts))

	var wg sync.WaitGroup
	for i, start := range starts {
		wg.Add(1)
		go func(idx int, p geom.Point) {
			defer wg.Done()
			lines[idx], errs[idx] = Trace(ev, p, opts)
		}(i, start)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return lines, err
		}
	}
	return lines, nil
}
