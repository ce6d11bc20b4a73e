// Package regression drives CSV fixture rows through the engines and reports
// how many produced the expected value.
package regression

import (
	"context"
	"embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	apperrors "calculators/internal/common/errors"
	"calculators/internal/common/logger"
	"calculators/internal/common/metrics"
	"calculators/pkg/registry"
)

// DefaultTolerance is the largest accepted difference between expected and actual.
const DefaultTolerance = 0.0001

// ExpectError marks a row whose engine call should fail. "ERROR:<text>" also
// requires the error message to contain text.
const ExpectError = "ERROR"

// Case statuses.
const (
	StatusPassed    = "PASSED"
	StatusFailed    = "FAILED"
	StatusMalformed = "MALFORMED"
)

//go:embed fixtures/*.csv
var fixtures embed.FS

// CaseResult is the outcome of one fixture row.
type CaseResult struct {
	Line        int    `json:"line"`
	Description string `json:"description"`
	Expected    string `json:"expected"`
	Actual      string `json:"actual"`
	Status      string `json:"status"`
}

// Report summarises a suite run. Total counts every data row.
type Report struct {
	Suite     string       `json:"suite"`
	Total     int          `json:"total"`
	Passed    int          `json:"passed"`
	Failed    int          `json:"failed"`
	Malformed int          `json:"malformed"`
	Cases     []CaseResult `json:"cases"`
}

// OK reports whether every row passed.
func (r *Report) OK() bool {
	return r.Total > 0 && r.Passed == r.Total
}

func (r *Report) add(c CaseResult) {
	r.Total++
	switch c.Status {
	case StatusPassed:
		r.Passed++
	case StatusFailed:
		r.Failed++
	default:
		r.Malformed++
	}
	r.Cases = append(r.Cases, c)
	metrics.ObserveRegressionCase(r.Suite, c.Status)
}

type RunnerDependencies struct {
	Logger   logger.Logger
	Registry *registry.EngineRegistry
	Engines  Engines
}

type Runner struct {
	logger    logger.Logger
	registry  *registry.EngineRegistry
	engines   Engines
	tolerance float64
}

// NewRunner falls back to the embedded registry when none is given.
func NewRunner(deps RunnerDependencies) (*Runner, error) {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	reg := deps.Registry
	if reg == nil {
		var err error
		if reg, err = registry.Default(); err != nil {
			return nil, err
		}
	}
	return &Runner{
		logger:    log.WithFields(map[string]interface{}{"component": "regression"}),
		registry:  reg,
		engines:   deps.Engines,
		tolerance: DefaultTolerance,
	}, nil
}

// WithTolerance overrides DefaultTolerance.
func (r *Runner) WithTolerance(tolerance float64) *Runner {
	r.tolerance = tolerance
	return r
}

// RunBuiltin runs the fixture file shipped for the named suite.
func (r *Runner) RunBuiltin(ctx context.Context, name string) (*Report, error) {
	f, err := fixtures.Open("fixtures/" + name + ".csv")
	if err != nil {
		return nil, fmt.Errorf("no built-in fixtures for suite %q", name)
	}
	defer f.Close()
	return r.Run(ctx, name, f)
}

// RunFile runs a fixture file from disk.
func (r *Runner) RunFile(ctx context.Context, name, path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return r.Run(ctx, name, f)
}

// Run reads fixture rows from src. Lines starting with '#' and blank lines are
// skipped; the first remaining row is the header. Rows that cannot be read or
// that fail the engine's input schema are counted as malformed and the run
// continues.
func (r *Runner) Run(ctx context.Context, name string, src io.Reader) (*Report, error) {
	s, ok := suites[name]
	if !ok {
		return nil, fmt.Errorf("unknown suite %q", name)
	}

	reader := csv.NewReader(src)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.NewMalformedFixtureError(name, 0, "missing header row")
		}
		return nil, apperrors.NewMalformedFixtureError(name, 0, err.Error())
	}
	if err := checkHeader(s, header); err != nil {
		line, _ := reader.FieldPos(0)
		return nil, apperrors.NewMalformedFixtureError(name, line, err.Error())
	}

	report := &Report{Suite: name}
	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line, _ := reader.FieldPos(0)
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
			}
			report.add(CaseResult{Line: line, Status: StatusMalformed, Actual: err.Error()})
			continue
		}

		report.add(r.runCase(ctx, s, line, record))
	}

	r.logger.Info("Regression suite finished", map[string]interface{}{
		"suite":     name,
		"total":     report.Total,
		"passed":    report.Passed,
		"failed":    report.Failed,
		"malformed": report.Malformed,
	})
	return report, nil
}

func (r *Runner) runCase(ctx context.Context, s suite, line int, record []string) CaseResult {
	result := CaseResult{Line: line}
	if len(record) != len(s.columns)+2 {
		result.Status = StatusMalformed
		result.Actual = fmt.Sprintf("expected %d fields, got %d", len(s.columns)+2, len(record))
		return result
	}
	result.Description = strings.TrimSpace(record[0])
	result.Expected = strings.TrimSpace(record[len(record)-1])

	doc := make(map[string]interface{}, len(s.columns))
	for i, col := range s.columns {
		doc[col.name] = convert(col.kind, strings.TrimSpace(record[i+1]))
	}

	if err := r.registry.ValidateInput(s.engineID, doc); err != nil {
		result.Status = StatusMalformed
		result.Actual = err.Error()
		return result
	}

	wantErr, substr := parseExpectation(result.Expected)
	var want float64
	if !wantErr {
		v, err := strconv.ParseFloat(result.Expected, 64)
		if err != nil {
			result.Status = StatusMalformed
			result.Actual = fmt.Sprintf("expected value %q is not a number", result.Expected)
			return result
		}
		want = v
	}

	got, err := s.run(ctx, r.engines, doc)
	switch {
	case err != nil:
		result.Actual = ExpectError + ": " + err.Error()
		if wantErr && (substr == "" || strings.Contains(strings.ToLower(err.Error()), strings.ToLower(substr))) {
			result.Status = StatusPassed
		} else {
			result.Status = StatusFailed
		}
	case wantErr:
		result.Actual = strconv.FormatFloat(got, 'f', -1, 64)
		result.Status = StatusFailed
	default:
		result.Actual = strconv.FormatFloat(got, 'f', -1, 64)
		if math.Abs(want-got) <= r.tolerance {
			result.Status = StatusPassed
		} else {
			result.Status = StatusFailed
		}
	}

	if result.Status == StatusFailed {
		r.logger.Warn("Regression case failed", map[string]interface{}{
			"line":     line,
			"expected": result.Expected,
			"actual":   result.Actual,
		})
	}
	return result
}

func checkHeader(s suite, header []string) error {
	want := make([]string, 0, len(s.columns)+2)
	want = append(want, "description")
	for _, c := range s.columns {
		want = append(want, c.name)
	}
	want = append(want, "expected")

	if len(header) != len(want) {
		return fmt.Errorf("header has %d columns, want %s", len(header), strings.Join(want, ","))
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(h), want[i]) {
			return fmt.Errorf("column %d is %q, want %q", i+1, h, want[i])
		}
	}
	return nil
}

// convert leaves cells that do not parse as strings so the schema reports them.
func convert(k kind, cell string) interface{} {
	switch k {
	case kindInteger:
		if v, err := strconv.Atoi(cell); err == nil {
			return v
		}
	case kindNumber:
		if v, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	}
	return cell
}

func parseExpectation(expected string) (bool, string) {
	if !strings.HasPrefix(strings.ToUpper(expected), ExpectError) {
		return false, ""
	}
	rest := expected[len(ExpectError):]
	if rest == "" {
		return true, ""
	}
	if !strings.HasPrefix(rest, ":") {
		return false, ""
	}
	return true, strings.TrimSpace(rest[1:])
}

func decodeInput(doc map[string]interface{}, target interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}
