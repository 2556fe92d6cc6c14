// Package designer is the application service behind every transport.
// The HTTP API, the stdio tool server and the CLI all call through one
// Service instance, so sign creation rules and compliance behaviour can
// never drift between entry points.
package designer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/WispAyr/signage-designer/pkg/compliance"
	"github.com/WispAyr/signage-designer/pkg/sign"
	"github.com/WispAyr/signage-designer/pkg/store"
	"github.com/WispAyr/signage-designer/pkg/telemetry/metrics"
	"github.com/WispAyr/signage-designer/pkg/template"
)

// Service wires the template catalog, the sign store and the compliance
// engine into the operations the transports expose.
type Service struct {
	store   store.Store
	catalog *template.Catalog
	engine  compliance.Engine
	metrics *metrics.Collector
	logger  *slog.Logger
}

// NewService creates the application service. metrics may be nil.
func NewService(st store.Store, catalog *template.Catalog, engine compliance.Engine, collector *metrics.Collector, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   st,
		catalog: catalog,
		engine:  engine,
		metrics: collector,
		logger:  logger.With("component", "designer"),
	}
}

// CreateSignRequest describes a sign creation.
type CreateSignRequest struct {
	// Site is the operator's short site code, e.g. "KRS".
	Site string `json:"site"`

	// TemplateID selects the template. When empty, the first template
	// for Type is used.
	TemplateID string `json:"templateId,omitempty"`

	// Type is the sign type; required when TemplateID is empty.
	Type sign.Type `json:"type,omitempty"`

	// Metadata is substituted into the template placeholders.
	Metadata sign.Metadata `json:"metadata"`
}

// CreateSign instantiates a template into a stored v1 sign. Charge
// limits are enforced here as hard validation, independent of the
// compliance rulebook: a request over the limit is rejected outright
// rather than stored non-compliant.
func (s *Service) CreateSign(ctx context.Context, req CreateSignRequest) (*sign.Sign, error) {
	if req.Site == "" {
		return nil, NewValidationError("site", "site code is required")
	}
	if err := validateMetadata(req.Metadata); err != nil {
		return nil, err
	}

	tpl, err := s.resolveTemplate(req)
	if err != nil {
		return nil, err
	}

	seq, err := s.store.NextSequence(ctx, req.Site, tpl.SignType)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate sequence: %w", err)
	}

	reference := sign.MakeReference(req.Site, tpl.SignType, seq, 1)
	sg := template.Instantiate(tpl, req.Metadata, req.Site, reference)

	if err := s.store.Save(ctx, sg); err != nil {
		return nil, fmt.Errorf("failed to save sign: %w", err)
	}

	s.metrics.ObserveSignCreated(tpl.SignType.String())
	s.logger.Info("sign created",
		"reference", reference,
		"template", tpl.ID,
		"sign_type", tpl.SignType.String(),
	)
	return sg, nil
}

func (s *Service) resolveTemplate(req CreateSignRequest) (template.Template, error) {
	if req.TemplateID != "" {
		tpl, err := s.catalog.Get(req.TemplateID)
		if err != nil {
			return template.Template{}, NewValidationError("templateId", "unknown template %q", req.TemplateID)
		}
		return tpl, nil
	}
	if !req.Type.IsValid() {
		return template.Template{}, NewValidationError("type", "unknown sign type %q", req.Type)
	}
	candidates := s.catalog.ForType(req.Type)
	if len(candidates) == 0 {
		return template.Template{}, NewValidationError("type", "no template available for sign type %q", req.Type)
	}
	return candidates[0], nil
}

// validateMetadata enforces the hard BPA limits on creation requests.
func validateMetadata(meta sign.Metadata) error {
	if meta.ParkingCharge != nil {
		if *meta.ParkingCharge < 0 {
			return NewValidationError("parkingCharge", "charge must not be negative")
		}
		if *meta.ParkingCharge > compliance.MaxParkingCharge {
			return NewValidationError("parkingCharge", "charge exceeds the £%d BPA limit", compliance.MaxParkingCharge)
		}
	}
	if meta.ReducedCharge != nil {
		if *meta.ReducedCharge < 0 {
			return NewValidationError("reducedCharge", "charge must not be negative")
		}
		if *meta.ReducedCharge > compliance.MaxReducedCharge {
			return NewValidationError("reducedCharge", "charge exceeds the £%d BPA limit", compliance.MaxReducedCharge)
		}
	}
	return nil
}

// ReviseSign re-instantiates a stored sign's template with new metadata
// and stores the result under the next version of the same lineage. The
// previous version is left in place.
func (s *Service) ReviseSign(ctx context.Context, reference string, meta sign.Metadata) (*sign.Sign, error) {
	if err := validateMetadata(meta); err != nil {
		return nil, err
	}

	current, err := s.store.Get(ctx, reference)
	if err != nil {
		return nil, err
	}
	parsed, err := sign.ParseReference(current.Reference)
	if err != nil {
		return nil, err
	}
	tpl, err := s.catalog.Get(current.TemplateID)
	if err != nil {
		return nil, NewValidationError("templateId", "sign %q has no known template", reference)
	}

	next := sign.MakeReference(parsed.Site, tpl.SignType, parsed.Sequence, parsed.Version+1)
	revised := template.Instantiate(tpl, meta, current.Site, next)

	if err := s.store.Save(ctx, revised); err != nil {
		return nil, fmt.Errorf("failed to save revision: %w", err)
	}

	s.logger.Info("sign revised",
		"reference", next,
		"previous", reference,
	)
	return revised, nil
}

// GetSign returns a stored sign by reference.
func (s *Service) GetSign(ctx context.Context, reference string) (*sign.Sign, error) {
	return s.store.Get(ctx, reference)
}

// ListSigns returns every stored sign.
func (s *Service) ListSigns(ctx context.Context) ([]*sign.Sign, error) {
	return s.store.List(ctx)
}

// DeleteSign removes a stored sign.
func (s *Service) DeleteSign(ctx context.Context, reference string) error {
	return s.store.Delete(ctx, reference)
}

// Templates returns the current template catalog.
func (s *Service) Templates() []template.Template {
	return s.catalog.List()
}

// CheckSign evaluates an inline sign document against the rulebook.
func (s *Service) CheckSign(sg *sign.Sign) *compliance.Report {
	start := time.Now()
	report := s.engine.Evaluate(sg)
	elapsed := time.Since(start)

	s.metrics.ObserveEvaluation(sg.Type.String(), report.Compliant, report.Score, elapsed)
	for _, r := range report.Results {
		s.metrics.ObserveRuleOutcome(r.RuleID, r.Passed)
	}

	s.logger.Debug("sign evaluated",
		"reference", sg.Reference,
		"compliant", report.Compliant,
		"score", report.Score,
	)
	return report
}

// CheckCompliance loads a stored sign and evaluates it.
func (s *Service) CheckCompliance(ctx context.Context, reference string) (*compliance.Report, error) {
	sg, err := s.store.Get(ctx, reference)
	if err != nil {
		return nil, err
	}
	return s.CheckSign(sg), nil
}
