package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Report aggregates the outcome of a run
type Report struct {
	RunID   string        `yaml:"runId"`
	Project string        `yaml:"project,omitempty"`
	Started time.Time     `yaml:"started"`
	Elapsed time.Duration `yaml:"elapsed"`
	Passes  []*PassStats  `yaml:"passes"`
	Skipped []*Issue      `yaml:"skipped,omitempty"`
	Flagged []*Issue      `yaml:"flagged,omitempty"`
	Written []string      `yaml:"written,omitempty"`
	Deleted []string      `yaml:"deleted,omitempty"`
	// Errors lists host failures (flush, rebuild notification) that did not stop the run
	Errors []string `yaml:"errors,omitempty"`
}

// PassStats counts edits made by one pass
type PassStats struct {
	Name      string        `yaml:"name"`
	Units     int           `yaml:"units"`
	Renamed   int           `yaml:"renamed"`
	Removed   int           `yaml:"removed"`
	Rewritten int           `yaml:"rewritten"`
	Added     int           `yaml:"added"`
	Elapsed   time.Duration `yaml:"elapsed"`
}

// Issue describes a skipped or flagged unit
type Issue struct {
	Pass   string `yaml:"pass"`
	Unit   string `yaml:"unit"`
	Reason string `yaml:"reason"`
	Severe bool   `yaml:"severe,omitempty"`
}

// NewReport creates a report with a fresh run id
func NewReport() *Report {
	return &Report{RunID: uuid.New().String(), Started: time.Now()}
}

func (r *Report) pass(name string) *PassStats {
	for _, candidate := range r.Passes {
		if candidate.Name == name {
			return candidate
		}
	}
	stats := &PassStats{Name: name}
	r.Passes = append(r.Passes, stats)
	return stats
}

// Totals sums counters across passes
func (r *Report) Totals() *PassStats {
	total := &PassStats{Name: "total"}
	for _, stats := range r.Passes {
		total.Units += stats.Units
		total.Renamed += stats.Renamed
		total.Removed += stats.Removed
		total.Rewritten += stats.Rewritten
		total.Added += stats.Added
		total.Elapsed += stats.Elapsed
	}
	return total
}

func (r *Report) finish() {
	r.Elapsed = time.Since(r.Started)
	sortIssues(r.Skipped)
	sortIssues(r.Flagged)
}

func sortIssues(issues []*Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pass != issues[j].Pass {
			return issues[i].Pass < issues[j].Pass
		}
		return issues[i].Unit < issues[j].Unit
	})
}

// String returns the end-of-run summary
func (r *Report) String() string {
	builder := &strings.Builder{}
	fmt.Fprintf(builder, "run %s", r.RunID)
	if r.Project != "" {
		fmt.Fprintf(builder, " (%s)", r.Project)
	}
	fmt.Fprintf(builder, " completed in %v\n", r.Elapsed.Round(time.Millisecond))
	for _, stats := range append(append([]*PassStats{}, r.Passes...), r.Totals()) {
		fmt.Fprintf(builder, "  %-22s units=%d renamed=%d removed=%d rewritten=%d added=%d\n",
			stats.Name, stats.Units, stats.Renamed, stats.Removed, stats.Rewritten, stats.Added)
	}
	if len(r.Written) > 0 || len(r.Deleted) > 0 {
		fmt.Fprintf(builder, "  written=%d deleted=%d\n", len(r.Written), len(r.Deleted))
	}
	if len(r.Skipped) > 0 {
		fmt.Fprintf(builder, "skipped units (%d):\n", len(r.Skipped))
		for _, issue := range r.Skipped {
			severity := ""
			if issue.Severe {
				severity = " [severe]"
			}
			fmt.Fprintf(builder, "  %s %s: %s%s\n", issue.Pass, issue.Unit, issue.Reason, severity)
		}
	}
	if len(r.Flagged) > 0 {
		fmt.Fprintf(builder, "flagged units (%d):\n", len(r.Flagged))
		for _, issue := range r.Flagged {
			fmt.Fprintf(builder, "  %s %s: %s\n", issue.Pass, issue.Unit, issue.Reason)
		}
	}
	for _, message := range r.Errors {
		fmt.Fprintf(builder, "error: %s\n", message)
	}
	return builder.String()
}

// YAML encodes the report
func (r *Report) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}
