package services

import (
	"context"
	"log"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/internal/domain/ports"
	"github.com/panelops/backend/pkg/constants"
	"github.com/panelops/backend/pkg/errors"
	"github.com/panelops/backend/pkg/shortcode"
)

// aiConfidence is reported for AI-sourced resolutions; deterministic
// strategies report 1.0
const aiConfidence = 0.75

// ResolutionService runs the notation resolution pipeline: alias lookup,
// exact library code, category parsing, library matching, then the
// optional AI fallback. The
// Resolve step is pure with respect to storage; it returns LearnEvents
// describing the dialect mutations that resolution suggests, and
// ResolveAndLearn is the single writer that applies them.
type ResolutionService struct {
	library     *LibraryService
	dialect     *DialectService
	matcher     *Matcher
	validation  *ValidationService
	interpreter ports.Interpreter // nil when AI fallback is not configured
}

// NewResolutionService creates a new ResolutionService
func NewResolutionService(library *LibraryService, dialect *DialectService, matcher *Matcher, validation *ValidationService, interpreter ports.Interpreter) *ResolutionService {
	return &ResolutionService{
		library:     library,
		dialect:     dialect,
		matcher:     matcher,
		validation:  validation,
		interpreter: interpreter,
	}
}

// BatchResult is one item of a batch resolution
type BatchResult struct {
	Notation   string             `json:"notation"`
	Resolution *models.Resolution `json:"resolution,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Resolve maps one raw notation to a canonical operation. An unresolved
// outcome is a normal result; the returned error is reserved for invalid
// input, failed validation rules and infrastructure failures.
func (s *ResolutionService) Resolve(ctx context.Context, organizationID string, category constants.OperationCategory, rawNotation string) (*models.Resolution, []models.LearnEvent, error) {
	if !constants.IsValidCategory(string(category)) {
		return nil, nil, errors.NewValidationError("category", "unknown category '"+string(category)+"'")
	}
	notation := models.NormalizeNotation(rawNotation)
	if notation == "" {
		return nil, nil, errors.NewValidationError("notation", "is required")
	}

	config, err := s.dialect.GetConfig(ctx, organizationID)
	if err != nil {
		return nil, nil, err
	}

	// 1. Alias lookup. A hit rewrites the notation to its canonical code
	// and the rest of the pipeline runs against that.
	target := notation
	source := ""
	if canonical, ok := config.Lookup(category, notation); ok {
		target = models.NormalizeNotation(canonical)
		source = constants.SourceAlias
	}

	resolution, events, err := s.resolveCanonical(ctx, organizationID, category, config, notation, target, source)
	if err != nil {
		return nil, nil, err
	}
	if resolution.Resolved() {
		if err := s.validation.Validate(ctx, organizationID, resolution.Operation); err != nil {
			return nil, nil, err
		}
	}
	return resolution, events, nil
}

func (s *ResolutionService) resolveCanonical(ctx context.Context, organizationID string, category constants.OperationCategory, config *models.DialectConfig, rawNotation, notation, source string) (*models.Resolution, []models.LearnEvent, error) {
	aliased := source == constants.SourceAlias

	// 2. Edge banding is fully described by its code; no library needed.
	if category == constants.CategoryEdgeBand {
		if edges, ok := shortcode.ParseEdges(notation); ok {
			if !aliased {
				source = constants.SourceParser
			}
			op := &models.Operation{
				Category: category,
				EdgeBand: &models.EdgeBandOperation{
					Code:  shortcode.EdgesToCode(edges),
					Name:  "Edge banding " + shortcode.EdgesToCode(edges),
					Edges: edges,
				},
			}
			return resolved(category, rawNotation, source, op, nil), nil, nil
		}
		return models.Unresolved(category, rawNotation), nil, nil
	}

	entries, err := s.library.List(ctx, organizationID, category)
	if err != nil {
		return nil, nil, err
	}

	// 3. Exact code lookup, so an aliased canonical code resolves to its
	// library definition ahead of any parsing.
	if entry := matchExactCode(entries, notation); entry != nil {
		res, events := entryResolution(config, organizationID, category, rawNotation, source, aliased, entry)
		return res, events, nil
	}

	// 4. Category parser. A fully specified result resolves directly as
	// an ad-hoc operation; a partial result carries a kind and borrows
	// its geometry from a library pattern of that kind.
	switch category {
	case constants.CategoryDrilling:
		if hp, ok := shortcode.ParseHole(notation); ok {
			if entry := s.matcher.MatchKind(entries, hp.Kind); entry != nil {
				res, events := entryResolution(config, organizationID, category, rawNotation, source, aliased, entry)
				return res, events, nil
			}
		}
	case constants.CategoryCNC:
		if cp, ok := shortcode.ParseCNC(notation); ok {
			if !aliased {
				source = constants.SourceParser
			}
			op := &models.Operation{
				Category: category,
				CNC:      cncOperation(notation, cp),
			}
			return resolved(category, rawNotation, source, op, nil), nil, nil
		}
	}

	// 5. Library matching: name containment, keyword inference, numeric
	// tolerance.
	if entry := s.matcher.Match(entries, category, notation); entry != nil {
		res, events := entryResolution(config, organizationID, category, rawNotation, source, aliased, entry)
		return res, events, nil
	}

	// 6. AI fallback, when the organization opted in. Interpreter errors
	// degrade to "no candidate"; the fallback must never break resolution.
	if config.UseAIFallback && s.interpreter != nil {
		op, err := s.interpreter.Interpret(ctx, category, notation)
		if err != nil {
			log.Printf("⚠️ AI interpretation failed for %q: %v", notation, err)
		} else if op != nil {
			var events []models.LearnEvent
			if config.AutoLearn && op.Code() != "" {
				events = append(events, models.LearnEvent{
					OrganizationID: organizationID,
					Category:       category,
					External:       rawNotation,
					Canonical:      models.NormalizeNotation(op.Code()),
				})
			}
			res := resolved(category, rawNotation, constants.SourceAI, op, nil)
			res.Confidence = aiConfidence
			return res, events, nil
		}
	}

	// 7. Terminal: unresolved, for the caller to surface.
	return models.Unresolved(category, rawNotation), nil, nil
}

// entryResolution builds the resolution for a library-backed hit plus the
// learn event it suggests. The event carries the entry id so the learn
// writer can count usage alongside the alias write.
func entryResolution(config *models.DialectConfig, organizationID string, category constants.OperationCategory, rawNotation, source string, aliased bool, entry *models.LibraryEntry) (*models.Resolution, []models.LearnEvent) {
	if !aliased {
		source = constants.SourceLibrary
	}
	var events []models.LearnEvent
	if !aliased && config.AutoLearn && rawNotation != models.NormalizeNotation(entry.Code) {
		events = append(events, models.LearnEvent{
			OrganizationID: organizationID,
			Category:       category,
			External:       rawNotation,
			Canonical:      models.NormalizeNotation(entry.Code),
			EntryID:        entry.ID,
		})
	}
	return resolved(category, rawNotation, source, entry.ToOperation(), entry), events
}

// ResolveAndLearn resolves a notation and applies the suggested learning:
// the alias write plus a usage count for the entry the event names. Both
// ride the learn path, so neither fires when auto-learn is off.
// Side-effect failures are logged, never surfaced; the resolution stands.
func (s *ResolutionService) ResolveAndLearn(ctx context.Context, organizationID string, category constants.OperationCategory, rawNotation string) (*models.Resolution, error) {
	resolution, events, err := s.Resolve(ctx, organizationID, category, rawNotation)
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		if event.EntryID != "" {
			if err := s.library.IncrementUsage(ctx, event.EntryID); err != nil {
				log.Printf("⚠️ Failed to count usage for entry %s: %v", event.EntryID, err)
			}
		}
		if err := s.dialect.AddAlias(ctx, event.OrganizationID, event.Category, event.External, event.Canonical); err != nil {
			log.Printf("⚠️ Failed to learn alias %q → %q: %v", event.External, event.Canonical, err)
		}
	}
	return resolution, nil
}

// ResolveBatch resolves a list of notations independently, with learning
// applied per item. Item failures are reported in place and do not stop
// the batch.
func (s *ResolutionService) ResolveBatch(ctx context.Context, organizationID string, category constants.OperationCategory, notations []string) []BatchResult {
	results := make([]BatchResult, 0, len(notations))
	for _, notation := range notations {
		resolution, err := s.ResolveAndLearn(ctx, organizationID, category, notation)
		if err != nil {
			results = append(results, BatchResult{Notation: notation, Error: err.Error()})
			continue
		}
		results = append(results, BatchResult{Notation: notation, Resolution: resolution})
	}
	return results
}

func resolved(category constants.OperationCategory, rawNotation, source string, op *models.Operation, entry *models.LibraryEntry) *models.Resolution {
	return &models.Resolution{
		Status:      models.StatusResolved,
		Source:      source,
		Category:    category,
		RawNotation: rawNotation,
		Operation:   op,
		Entry:       entry,
		Confidence:  1.0,
	}
}

// cncOperation builds the canonical routing record from a parsed code
func cncOperation(code string, cp *shortcode.CNCParse) *models.CNCOperation {
	params := make(map[string]interface{})
	if cp.Purpose != "" {
		params["purpose"] = cp.Purpose
	}
	if cp.ValueMm > 0 {
		params["radius_mm"] = cp.ValueMm
	}
	if len(params) == 0 {
		params = nil
	}
	return &models.CNCOperation{
		Code:   code,
		Name:   "Routing " + code,
		OpType: cp.OpType,
		Params: params,
	}
}
