package observability

import (
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/jonboulle/clockwork"
)

// progressStep is how many bytes pass between progress log lines when the
// transfer size is unknown.
const progressStep = 8 << 20

// Progress reports transfer progress at coarse intervals: every tenth of
// the total when the size is known in advance, every progressStep bytes
// otherwise. Cosmetic only; correctness never depends on it.
type Progress struct {
	clock   clockwork.Clock
	logger  *slog.Logger
	label   string
	total   int64 // <= 0 when unknown
	started time.Time
	read    int64
	nextAt  int64
}

// NewProgress creates a reporter for one transfer. total is the expected
// byte count, or a non-positive value when no size header was sent.
func NewProgress(clock clockwork.Clock, logger *slog.Logger, label string, total int64) *Progress {
	p := &Progress{
		clock:   clock,
		logger:  logger,
		label:   label,
		total:   total,
		started: clock.Now(),
	}
	p.nextAt = p.step()
	return p
}

func (p *Progress) step() int64 {
	if p.total > 0 {
		return p.read + p.total/10
	}
	return p.read + progressStep
}

// Reader wraps r so that bytes flowing through it feed the reporter.
func (p *Progress) Reader(r io.Reader) io.Reader {
	return &progressReader{r: r, p: p}
}

// Add records n transferred bytes, logging when an interval is crossed.
func (p *Progress) Add(n int64) {
	p.read += n
	if p.read < p.nextAt {
		return
	}
	p.nextAt = p.step()

	if p.total > 0 {
		p.logger.Info(p.label+" progress",
			"percent", int(float64(p.read)/float64(p.total)*100),
			"bytes", p.read,
		)
		return
	}
	p.logger.Info(p.label+" progress", "bytes", p.read)
}

// Done logs the finished transfer with its effective rate.
func (p *Progress) Done() {
	elapsed := p.clock.Since(p.started)
	var rate float64
	if elapsed > 0 {
		rate = float64(p.read) / elapsed.Seconds() / (1 << 20)
	}
	p.logger.Info(p.label+" complete",
		"bytes", p.read,
		"elapsed", elapsed.Round(time.Millisecond).String(),
		"mib_per_sec", math.Round(rate*10)/10,
	)
}

type progressReader struct {
	r io.Reader
	p *Progress
}

func (r *progressReader) Read(b []byte) (int, error) {
	n, err := r.r.Read(b)
	if n > 0 {
		r.p.Add(int64(n))
	}
	return n, err
}
