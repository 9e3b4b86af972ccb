// Package scan parses and resolves every generic signature of a set of
// classes and reports the members that fail.
package scan

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"github.com/dhamidi/jsig/internal/metrics"
	"github.com/dhamidi/jsig/internal/telemetry"
	"github.com/dhamidi/jsig/java"
	"github.com/dhamidi/jsig/signature"
	"github.com/google/uuid"
	"github.com/tliron/commonlog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("jsig.scan")

const (
	ReasonFormat     = "format"
	ReasonNotPresent = "not_present"
	ReasonMalformed  = "malformed"
	ReasonLoad       = "load"
)

// Failure is a class or member whose signature could not be parsed or
// resolved. Member is empty when the class declaration itself failed.
type Failure struct {
	Class  string `json:"class"`
	Member string `json:"member,omitempty"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

type Report struct {
	RunID      string        `json:"runId"`
	Classes    int           `json:"classes"`
	Members    int           `json:"members"`
	Signatures int           `json:"signatures"`
	Failures   []Failure     `json:"failures,omitempty"`
	Duration   time.Duration `json:"duration"`
}

type Scanner struct {
	loader  java.ClassLoader
	workers int
}

// New returns a scanner that loads classes through loader. workers
// bounds the number of classes scanned at once; values below one mean
// GOMAXPROCS.
func New(loader java.ClassLoader, workers int) *Scanner {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Scanner{loader: loader, workers: workers}
}

// Run scans the named classes. Failures of individual classes end up in
// the report; only cancellation of ctx makes Run fail.
func (s *Scanner) Run(ctx context.Context, names []string) (*Report, error) {
	runID := uuid.NewString()
	ctx, span := telemetry.Tracer().Start(ctx, "scan.Run",
		trace.WithAttributes(
			attribute.String("scan.run_id", runID),
			attribute.Int("scan.classes", len(names)),
			attribute.Int("scan.workers", s.workers),
		),
	)
	defer span.End()

	start := time.Now()
	log.Infof("scan %s: %d classes with %d workers", runID, len(names), s.workers)

	results := make([]classResult, len(names))
	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.scanClass(gctx, name)
			if n := done.Add(1); n%1000 == 0 {
				log.Debugf("scan %s: %d/%d classes", runID, n, len(names))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scan canceled")
		return nil, fmt.Errorf("scan %s: %w", runID, err)
	}

	report := &Report{RunID: runID, Classes: len(names)}
	for _, r := range results {
		report.Members += r.members
		report.Signatures += r.signatures
		report.Failures = append(report.Failures, r.failures...)
	}
	slices.SortFunc(report.Failures, func(a, b Failure) int {
		return cmp.Or(cmp.Compare(a.Class, b.Class), cmp.Compare(a.Member, b.Member))
	})
	report.Duration = time.Since(start)

	span.SetAttributes(
		attribute.Int("scan.members", report.Members),
		attribute.Int("scan.failures", len(report.Failures)),
	)
	span.SetStatus(codes.Ok, "")
	log.Infof("scan %s: %d members, %d failures in %s", runID, report.Members, len(report.Failures), report.Duration)
	return report, nil
}

type classResult struct {
	members    int
	signatures int
	failures   []Failure
}

func (r *classResult) fail(class, member string, err error) {
	reason := Reason(err)
	metrics.ScanFailures.WithLabelValues(reason).Inc()
	log.Debugf("%s %s: %s", class, member, err)
	r.failures = append(r.failures, Failure{Class: class, Member: member, Reason: reason, Error: err.Error()})
}

func (s *Scanner) scanClass(ctx context.Context, name string) (result classResult) {
	_, span := telemetry.Tracer().Start(ctx, "scan.Class",
		trace.WithAttributes(attribute.String("class", name)),
	)
	start := time.Now()
	defer func() {
		metrics.ScanDuration.Observe(time.Since(start).Seconds())
		span.SetAttributes(attribute.Int("scan.failures", len(result.failures)))
		if len(result.failures) > 0 {
			span.SetStatus(codes.Error, result.failures[0].Error)
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	c, err := s.loader.LoadClass(name)
	if err != nil {
		span.RecordError(err)
		result.fail(name, "", err)
		return result
	}

	if c.HasSignature() {
		result.signatures++
	}
	if err := checkClass(c); err != nil {
		result.fail(name, "", err)
	}

	for _, f := range c.Fields() {
		result.members++
		if f.HasSignature() {
			result.signatures++
		}
		if _, err := f.GenericType(); err != nil {
			result.fail(name, f.Name(), err)
		}
	}
	for _, ctor := range c.Constructors() {
		result.members++
		if ctor.HasSignature() {
			result.signatures++
		}
		if err := checkConstructor(ctor); err != nil {
			result.fail(name, ctor.Name()+ctor.Descriptor(), err)
		}
	}
	for _, m := range c.Methods() {
		result.members++
		if m.HasSignature() {
			result.signatures++
		}
		if err := checkMethod(m); err != nil {
			result.fail(name, m.Name()+m.Descriptor(), err)
		}
	}
	return result
}

func checkClass(c *java.Class) error {
	if err := checkTypeParameters(c.TypeParameters()); err != nil {
		return err
	}
	if _, err := c.GenericSuperclass(); err != nil {
		return err
	}
	_, err := c.GenericInterfaces()
	return err
}

func checkConstructor(c *java.Constructor) error {
	if err := checkTypeParameters(c.TypeParameters()); err != nil {
		return err
	}
	if _, err := c.GenericParameterTypes(); err != nil {
		return err
	}
	_, err := c.GenericExceptionTypes()
	return err
}

func checkMethod(m *java.Method) error {
	if err := checkTypeParameters(m.TypeParameters()); err != nil {
		return err
	}
	if _, err := m.GenericParameterTypes(); err != nil {
		return err
	}
	if _, err := m.GenericReturnType(); err != nil {
		return err
	}
	_, err := m.GenericExceptionTypes()
	return err
}

func checkTypeParameters(vars []*java.TypeVariable, err error) error {
	if err != nil {
		return err
	}
	for _, v := range vars {
		if _, err := v.Bounds(); err != nil {
			return err
		}
	}
	return nil
}

// Reason classifies a scan error for reports and metrics.
func Reason(err error) string {
	var format *signature.FormatError
	var malformed *java.MalformedParameterizedTypeError
	var notPresent *java.TypeNotPresentError
	switch {
	case errors.As(err, &format):
		return ReasonFormat
	case errors.As(err, &malformed):
		return ReasonMalformed
	case errors.As(err, &notPresent):
		return ReasonNotPresent
	}
	return ReasonLoad
}
