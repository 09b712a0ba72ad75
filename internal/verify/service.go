// SPDX-License-Identifier: Apache-2.0

// Package verify identifies uploaded documents and decides whether they
// belong to the same person.
package verify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/idmatch/idmatch-mcp/internal/compare"
	"github.com/idmatch/idmatch-mcp/internal/identity"
	"github.com/idmatch/idmatch-mcp/internal/metrics"
	"github.com/idmatch/idmatch-mcp/internal/sources"
	"github.com/idmatch/idmatch-mcp/internal/sources/readers"
)

// ErrNoRecords is returned when a verification is requested without sources.
var ErrNoRecords = errors.New("at least one document is required")

// Status describes how far a document got through identification.
type Status string

const (
	StatusIdentified Status = "identified"
	StatusUnknown    Status = "unknown"
	StatusUnreadable Status = "unreadable"
)

// Checks are the per-document verification checklist.
type Checks struct {
	TypeVerified  bool `json:"type_verified" yaml:"type_verified"`
	FieldsPresent bool `json:"fields_present" yaml:"fields_present"`
	// NoBlankFields holds when every canonical field was extracted.
	NoBlankFields bool             `json:"no_blank_fields" yaml:"no_blank_fields"`
	MissingFields []identity.Field `json:"missing_fields,omitempty" yaml:"missing_fields,omitempty"`
}

// DocumentResult is the outcome for one candidate document.
type DocumentResult struct {
	ID     string `json:"id" yaml:"id"`
	Status Status `json:"status" yaml:"status"`
	Reader string `json:"reader,omitempty" yaml:"reader,omitempty"`
	// Record is nil for unreadable documents.
	Record *identity.Record               `json:"record,omitempty" yaml:"record,omitempty"`
	Scores map[identity.DocumentType]int `json:"scores,omitempty" yaml:"scores,omitempty"`
	Checks Checks                         `json:"checks" yaml:"checks"`
	Error  string                         `json:"error,omitempty" yaml:"error,omitempty"`
}

// Submission is everything read from one source.
type Submission struct {
	ID        string           `json:"id" yaml:"id"`
	Reader    string           `json:"reader" yaml:"reader"`
	Documents []DocumentResult `json:"documents" yaml:"documents"`
}

// PairResult is the comparison of two documents of a report.
type PairResult struct {
	First   string              `json:"first" yaml:"first"`
	Second  string              `json:"second" yaml:"second"`
	Label   compare.Verdict     `json:"label" yaml:"label"`
	Verdict compare.PairVerdict `json:"verdict" yaml:"verdict"`
}

// Report is the result of verifying a set of sources.
type Report struct {
	ID        string           `json:"id" yaml:"id"`
	Policy    string           `json:"policy" yaml:"policy"`
	Documents []DocumentResult `json:"documents" yaml:"documents"`
	Pairs     []PairResult     `json:"pairs" yaml:"pairs"`
	// Compared is false when fewer than two documents could be read; Verdict
	// is empty in that case.
	Compared bool            `json:"compared" yaml:"compared"`
	Verdict  compare.Verdict `json:"verdict,omitempty" yaml:"verdict,omitempty"`
}

// Service reads, identifies and compares documents.
type Service struct {
	pipeline    *sources.Pipeline
	registry    *identity.Registry
	policy      compare.Policy
	concurrency int
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

type Option func(*Service)

func WithPipeline(p *sources.Pipeline) Option {
	return func(s *Service) { s.pipeline = p }
}

func WithRegistry(r *identity.Registry) Option {
	return func(s *Service) { s.registry = r }
}

func WithPolicy(p compare.Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithConcurrency bounds how many sources Verify reads at once. Values below
// one are ignored.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// DefaultPipeline builds a Pipeline with all readers registered.
// Reader order matters: structured payloads are tried before plain text,
// which accepts any UTF-8 content.
func DefaultPipeline() *sources.Pipeline {
	return sources.NewPipeline(
		readers.NewOCRJSONReader(),
		readers.NewBatchReader(),
		readers.NewTextReader(),
	)
}

// New creates a Service. Without options it uses the default pipeline and
// registry, the lenient policy and a no-op logger.
func New(opts ...Option) *Service {
	s := &Service{
		pipeline:    DefaultPipeline(),
		registry:    identity.DefaultRegistry(),
		policy:      compare.LenientPolicy,
		concurrency: 4,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the policy Verify applies.
func (s *Service) Policy() compare.Policy {
	return s.policy
}

// Identify reads src and identifies every page in it. A source without an ID
// gets a random one. When a source holds several pages, their documents are
// numbered "<id>#1", "<id>#2" and so on. Read failures are returned as errors.
func (s *Service) Identify(ctx context.Context, src sources.Source) (Submission, error) {
	if src.ID == "" {
		src.ID = uuid.NewString()
	}
	sub := Submission{ID: src.ID, Documents: []DocumentResult{}}
	if err := ctx.Err(); err != nil {
		return sub, err
	}

	start := time.Now()
	result, err := s.pipeline.ReadWithMeta(ctx, src)
	if err == nil && len(result.Pages) == 0 {
		err = sources.ErrNoText
	}
	if err != nil {
		s.metrics.IncrementDocument(string(identity.Unknown), string(StatusUnreadable))
		s.logger.Warn("source unreadable", zap.String("source", src.ID), zap.String("format", src.Format), zap.Error(err))
		return sub, fmt.Errorf("reading source %q: %w", src.ID, err)
	}

	sub.Reader = result.ReaderUsed
	for _, page := range result.Pages {
		sub.Documents = append(sub.Documents, s.identifyPage(src.ID, page, len(result.Pages), result.ReaderUsed))
	}
	s.metrics.ObserveIdentifyLatency(result.ReaderUsed, time.Since(start))
	s.logger.Debug("source identified",
		zap.String("source", src.ID),
		zap.String("reader", result.ReaderUsed),
		zap.Int("documents", len(sub.Documents)))
	return sub, nil
}

func (s *Service) identifyPage(sourceID string, page sources.Page, pageCount int, reader string) DocumentResult {
	id := page.SourceID
	if pageCount > 1 && id == sourceID {
		id = fmt.Sprintf("%s#%d", sourceID, page.Index+1)
	}

	if page.Err != nil {
		s.metrics.IncrementDocument(string(identity.Unknown), string(StatusUnreadable))
		s.logger.Warn("document unreadable", zap.String("source", sourceID), zap.String("document", id), zap.Error(page.Err))
		return DocumentResult{
			ID:     id,
			Status: StatusUnreadable,
			Reader: reader,
			Error:  page.Err.Error(),
		}
	}

	record, c := s.registry.Analyze(page.Text)
	status := StatusIdentified
	if record.Type == identity.Unknown {
		status = StatusUnknown
	}
	s.metrics.IncrementDocument(string(record.Type), string(status))

	return DocumentResult{
		ID:     id,
		Status: status,
		Reader: reader,
		Record: &record,
		Scores: c.Scores,
		Checks: checksFor(record),
	}
}

func checksFor(r identity.Record) Checks {
	c := Checks{
		TypeVerified:  r.Type.Known(),
		FieldsPresent: len(r.Fields) > 0,
	}
	for _, f := range identity.CanonicalFields() {
		if _, ok := r.Fields.Get(f); !ok {
			c.MissingFields = append(c.MissingFields, f)
		}
	}
	c.NoBlankFields = c.FieldsPresent && len(c.MissingFields) == 0
	return c
}

// Verify identifies all sources with the service's policy.
func (s *Service) Verify(ctx context.Context, srcs []sources.Source) (Report, error) {
	return s.VerifyWithPolicy(ctx, srcs, s.policy)
}

// VerifyWithPolicy identifies all sources concurrently, compares every pair
// of readable documents and labels the result under p. Documents keep the
// order of srcs. A source that cannot be read becomes an unreadable document
// instead of failing the verification.
func (s *Service) VerifyWithPolicy(ctx context.Context, srcs []sources.Source, p compare.Policy) (Report, error) {
	if len(srcs) == 0 {
		return Report{}, ErrNoRecords
	}

	submissions := make([]Submission, len(srcs))
	readErrs := make([]error, len(srcs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, src := range srcs {
		g.Go(func() error {
			sub, err := s.Identify(gctx, src)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			submissions[i], readErrs[i] = sub, err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{
		ID:        uuid.NewString(),
		Policy:    p.Name(),
		Documents: []DocumentResult{},
		Pairs:     []PairResult{},
	}
	var records []identity.Record
	var ids []string
	for i, sub := range submissions {
		if readErrs[i] != nil {
			report.Documents = append(report.Documents, DocumentResult{
				ID:     sub.ID,
				Status: StatusUnreadable,
				Error:  readErrs[i].Error(),
			})
			continue
		}
		for _, doc := range sub.Documents {
			report.Documents = append(report.Documents, doc)
			if doc.Record == nil {
				continue
			}
			records = append(records, *doc.Record)
			ids = append(ids, doc.ID)
		}
	}

	pairs := compare.ComparePairs(records)
	verdicts := make([]compare.PairVerdict, 0, len(pairs))
	for _, pair := range pairs {
		verdicts = append(verdicts, pair.Verdict)
		report.Pairs = append(report.Pairs, PairResult{
			First:   ids[pair.First],
			Second:  ids[pair.Second],
			Label:   p.Label(pair.Verdict),
			Verdict: pair.Verdict,
		})
	}
	if len(records) >= 2 {
		report.Compared = true
		report.Verdict = compare.AggregateVerdicts(verdicts, p)
		s.metrics.IncrementVerdict(p.Name(), string(report.Verdict))
	}

	s.logger.Info("verification complete",
		zap.String("report", report.ID),
		zap.String("policy", report.Policy),
		zap.Int("documents", len(report.Documents)),
		zap.Int("compared", len(records)),
		zap.String("verdict", string(report.Verdict)))
	return report, nil
}
