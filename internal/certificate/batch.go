package certificate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"test-checker-backend/internal/ranking"
)

// ErrMergeFailed means no merged PDF could be produced; any per-entry
// failures are still reported through BatchResult.
var ErrMergeFailed = errors.New("could not assemble certificate PDF")

type taskStatus int

const (
	statusPending taskStatus = iota
	statusRendering
	statusRendered
	statusFailed
)

// Failure records one entry's render error without failing the batch.
type Failure struct {
	UserID int64
	Name   string
	Err    error
}

// BatchResult summarizes one finished batch: the merged document plus the
// per-entry failures that were isolated along the way.
type BatchResult struct {
	PDFPath  string
	Rendered int
	Failures []Failure
}

// Batch renders one certificate per ranked entry concurrently and merges the
// successful pages, in rank order, into a single PDF.
type Batch struct {
	pool     Pool
	renderer Renderer
	workers  int
	timeout  time.Duration
	tempRoot string
}

func NewBatch(pool Pool, renderer Renderer, workers int, timeout time.Duration, tempRoot string) *Batch {
	if workers < 1 {
		workers = 1
	}
	return &Batch{pool: pool, renderer: renderer, workers: workers, timeout: timeout, tempRoot: tempRoot}
}

type task struct {
	entry  ranking.Entry
	status taskStatus
	path   string
	err    error
}

// Run executes the batch for the given template and entries. The entries must
// already be in the desired page order. A missing template aborts the whole
// job; a single entry's render failure is recorded and the others continue.
// All per-entry images and the working directory are removed before Run
// returns; only the merged PDF survives, and the caller owns deleting it.
func (b *Batch) Run(ctx context.Context, templateID int, subject, teacherName string, entries []ranking.Entry) (*BatchResult, error) {
	tpl, err := b.pool.Get(templateID)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(b.tempRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create temp root: %w", err)
	}
	workDir, err := os.MkdirTemp(b.tempRoot, "certs-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	tasks := make([]*task, len(entries))
	for i, e := range entries {
		tasks[i] = &task{entry: e, status: statusPending}
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			// Entries past the batch timeout are recorded as failures,
			// never retried.
			if err := ctx.Err(); err != nil {
				t.status, t.err = statusFailed, err
				return nil
			}
			t.status = statusRendering
			out := filepath.Join(workDir, fmt.Sprintf("cert_%d_%s.jpg", t.entry.Rank, uuid.NewString()[:5]))
			in := RenderInput{
				FullName:    t.entry.FullName(),
				Subject:     subject,
				Percent:     int(math.Round(t.entry.Percent())),
				Rank:        t.entry.Rank,
				TeacherName: teacherName,
			}
			if err := b.renderer.Render(tpl, in, out); err != nil {
				t.status, t.err = statusFailed, err
				log.Printf("certificate: render failed for user %d: %v", t.entry.UserID, err)
				return nil
			}
			t.status, t.path = statusRendered, out
			return nil
		})
	}
	g.Wait()

	res := &BatchResult{}
	var pages []string
	// tasks keeps the caller's entry order, so pages come out in rank order
	// no matter when each render finished.
	for _, t := range tasks {
		if t.status == statusRendered {
			res.Rendered++
			pages = append(pages, t.path)
			continue
		}
		res.Failures = append(res.Failures, Failure{UserID: t.entry.UserID, Name: t.entry.FullName(), Err: t.err})
	}

	pdfPath := filepath.Join(b.tempRoot, fmt.Sprintf("sertifikatlar_%s.pdf", uuid.NewString()[:8]))
	if err := mergePDF(pages, pdfPath); err != nil {
		os.Remove(pdfPath)
		return res, fmt.Errorf("%w: %v", ErrMergeFailed, err)
	}
	res.PDFPath = pdfPath
	return res, nil
}
