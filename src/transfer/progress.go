package transfer

import (
	"io"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressWriter wraps a writer with a progress bar backed by an mpb container.
type ProgressWriter struct {
	bar    *mpb.Bar
	writer io.Writer
}

// NewProgressWriter adds a new progress bar to the given mpb container and returns
// a ProgressWriter that updates it as data is written. A total of -1 or 0
// means the size is unknown.
func NewProgressWriter(container *mpb.Progress, total int64, description string) *ProgressWriter {
	if total < 0 {
		total = 0
	}

	bar := container.AddBar(total,
		mpb.PrependDecorators(
			decor.Name(description, decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CountersKibiByte("% .2f / % .2f"),
			decor.Name(" "),
			decor.EwmaSpeed(decor.SizeB1024(0), "% .2f", 30),
		),
	)

	return &ProgressWriter{
		bar:    bar,
		writer: io.Discard,
	}
}

// Write implements io.Writer and updates the progress bar with accurate timing for speed calculation.
func (progressWriter *ProgressWriter) Write(data []byte) (int, error) {
	start := time.Now()

	n, err := progressWriter.writer.Write(data)

	progressWriter.bar.EwmaIncrBy(n, time.Since(start))

	return n, err
}

// Finish marks the bar as complete.
func (progressWriter *ProgressWriter) Finish() {
	progressWriter.bar.SetTotal(-1, true)
}

// Abort removes the bar of a failed transfer so the container can shut down.
func (progressWriter *ProgressWriter) Abort() {
	progressWriter.bar.Abort(true)
}
