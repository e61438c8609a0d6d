// Package batch computes salary structures for many input tables at once.
package batch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/paygrade/internal/engine"
	"github.com/fr4nk3nst1ner/paygrade/internal/tableio"
)

const (
	defaultWorkers = 5
	resultSuffix   = "_structure"
)

// Job is one input table and where its result goes
type Job struct {
	Input  string
	Output string
}

// Result records the outcome of one job
type Result struct {
	Job    Job
	Grades int
	Err    error
}

// Runner computes jobs under a single scenario with bounded concurrency
type Runner struct {
	Scenario engine.Scenario
	Params   engine.Params
	Format   tableio.Format
	Workers  int
	Client   *http.Client
	Bar      *pb.ProgressBar
	Logger   *pterm.Logger
}

// Discover lists the input tables in dir and assigns each a distinct output
// path in outDir (dir when empty). Files that are themselves results are
// skipped.
func Discover(dir, outDir string, format tableio.Format) ([]Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	if outDir == "" {
		outDir = dir
	}

	var names []string
	bases := make(map[string]int)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if _, err := tableio.FormatFromPath(name); err != nil {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if strings.HasSuffix(base, resultSuffix) || strings.HasPrefix(name, "~$") {
			continue
		}
		names = append(names, name)
		bases[base]++
	}

	// inputs sharing a base name keep their extension so outputs stay distinct
	var jobs []Job
	seen := make(map[string]string)
	for _, name := range names {
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		if bases[base] > 1 {
			base += "_" + strings.ToLower(strings.TrimPrefix(ext, "."))
		}
		job := Job{
			Input:  filepath.Join(dir, name),
			Output: filepath.Join(outDir, base+resultSuffix+format.Extension()),
		}
		if prev, ok := seen[job.Output]; ok {
			return nil, fmt.Errorf("%s and %s would both write %s", prev, job.Input, job.Output)
		}
		seen[job.Output] = job.Input
		jobs = append(jobs, job)
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Input < jobs[j].Input })
	return jobs, nil
}

// NewProgressBar returns an unstarted bar for total jobs drawn to w
func NewProgressBar(total int, w io.Writer) *pb.ProgressBar {
	bar := pb.New(total)
	bar.SetWriter(w)
	return bar
}

// Run processes every job and returns results in job order. A failing job
// does not stop the others.
func (r *Runner) Run(jobs []Job) []Result {
	workers := r.Workers
	if workers < 1 {
		workers = defaultWorkers
	}
	logger := r.Logger
	if logger == nil {
		logger = pterm.DefaultLogger.WithWriter(io.Discard)
	}

	results := make([]Result, len(jobs))
	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range jobs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			semaphore <- struct{}{} // Acquire semaphore
			defer func() {
				<-semaphore // Release semaphore
				if r.Bar != nil {
					r.Bar.Increment()
				}
			}()

			results[i] = r.runOne(jobs[i])
			if err := results[i].Err; err != nil {
				logger.Warn("job failed", logger.Args("input", jobs[i].Input, "error", err))
				return
			}
			logger.Debug("job done", logger.Args("input", jobs[i].Input, "output", jobs[i].Output, "grades", results[i].Grades))
		}(i)
	}

	wg.Wait()
	return results
}

func (r *Runner) runOne(job Job) Result {
	res := Result{Job: job}

	in, err := tableio.Load(job.Input, r.Client)
	if err != nil {
		res.Err = err
		return res
	}

	out, err := engine.Compute(r.Scenario, in, r.Params)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", job.Input, err)
		return res
	}

	opts := tableio.SaveOptions{
		Meta:  tableio.Meta{Scenario: r.Scenario, Params: r.Params},
		Input: &in,
	}
	if err := tableio.Save(job.Output, r.Format, out, opts); err != nil {
		res.Err = err
		return res
	}

	res.Grades = out.Len()
	return res
}

// Failed counts the results that carry an error
func Failed(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
