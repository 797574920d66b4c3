package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"design_ai_server/internal/ai"
	"design_ai_server/internal/ai/prompts"
	"design_ai_server/internal/colors"
	"design_ai_server/internal/design"
	"design_ai_server/internal/dump"
	"design_ai_server/internal/notify"
	"design_ai_server/internal/project"
)

// Document sources reported back to the plugin so it can tell a real
// generation from the deterministic fallback.
const (
	SourcePrimary  = "primary"
	SourceFallback = "fallback"
	SourceDefault  = "default"
)

// Service orchestrates one generation step: build the prompt, call the
// model, repair the output, escalate to the fallback model, and finally
// substitute the default document. It is the single consumer of the repair
// pipeline's success/failure result.
type Service struct {
	generator *ai.Generator
	manager   *project.Manager
	dumper    *dump.Dumper
	notifier  *notify.Client
}

func NewService(generator *ai.Generator, manager *project.Manager, dumper *dump.Dumper, notifier *notify.Client) *Service {
	return &Service{
		generator: generator,
		manager:   manager,
		dumper:    dumper,
		notifier:  notifier,
	}
}

// GenerateDocument handles a one-shot generation outside any project
// session. Never returns an error for bad model output — the default
// document absorbs that case; only upstream/context failures propagate
// as a default with SourceDefault.
func (s *Service) GenerateDocument(ctx context.Context, requestID, prompt, pageType string) (*design.Document, string) {
	scheme := colors.ForDescription(prompt)
	pagePrompt := prompts.GetPageGenerationPrompt(pageType, prompt, scheme)
	return s.generateWithFallback(ctx, requestID, pagePrompt, pageType, scheme)
}

// ProjectPageResult is one step of a multi-page project run.
type ProjectPageResult struct {
	Done       bool
	PageType   string
	Document   *design.Document
	Source     string
	PagesBuilt int
	Pending    int
}

// GenerateProjectPage advances a session by one page: derive the next page
// type, generate it with the session's established palette, and fold the
// result back into the session. Done=true signals the terminal state; the
// completion webhook fires once, on the call that reaches it.
func (s *Service) GenerateProjectPage(ctx context.Context, requestID, sessionID string) (*ProjectPageResult, error) {
	snap, err := s.manager.Status(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	next, err := s.manager.NextPageType(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if next == "" {
		// Fire the completion webhook only on the call that performed the
		// active -> completed transition, not on later polls.
		if snap.Status == project.StatusActive {
			s.notifyCompleted(ctx, sessionID)
		}
		return &ProjectPageResult{Done: true}, nil
	}

	// The first page establishes the palette; later pages inherit it by
	// overlaying the session's design system onto the keyword scheme.
	scheme := colors.ForDescription(snap.Description)
	if snap.DesignSystem.PrimaryColor != "" {
		scheme.Primary = snap.DesignSystem.PrimaryColor
	}
	if snap.DesignSystem.BackgroundColor != "" {
		scheme.Background = snap.DesignSystem.BackgroundColor
	}

	pagePrompt := prompts.GetPageGenerationPrompt(next, snap.Description, scheme)
	doc, source := s.generateWithFallback(ctx, requestID, pagePrompt, next, scheme)

	sess, err := s.manager.RecordPage(ctx, sessionID, next, doc)
	if err != nil {
		return nil, err
	}

	return &ProjectPageResult{
		PageType:   next,
		Document:   doc,
		Source:     source,
		PagesBuilt: sess.PagesBuilt,
		Pending:    len(sess.PendingPages),
	}, nil
}

// RefineDocument applies a free-text instruction to an existing document.
// Unlike generation there is no sensible default to substitute, so repair
// failure surfaces as an error and the plugin keeps its current document.
func (s *Service) RefineDocument(ctx context.Context, requestID, instruction string, doc *design.Document) (*design.Document, error) {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document for refine: %w", err)
	}

	raw, err := s.generator.RefineDesign(ctx, instruction, string(docJSON))
	if err != nil {
		return nil, err
	}
	s.dumper.Save(requestID, "refine_raw.txt", raw)

	parsed, err := design.Repair(raw)
	if err != nil {
		return nil, fmt.Errorf("refine output unusable: %w", err)
	}
	refined, err := design.DecodeDocument(parsed)
	if err != nil {
		return nil, fmt.Errorf("refine output unusable: %w", err)
	}
	return refined, nil
}

// generateWithFallback runs the model escalation: primary model, then the
// fallback model when the primary's output cannot be repaired into a
// document, then the deterministic default. Each raw output is dumped for
// diagnostics before repair touches it.
func (s *Service) generateWithFallback(ctx context.Context, requestID, pagePrompt, pageType string, scheme colors.Scheme) (*design.Document, string) {
	type attempt struct {
		model  string
		source string
	}
	attempts := []attempt{{s.generator.Model(), SourcePrimary}}
	if fb := s.generator.FallbackModel(); fb != "" {
		attempts = append(attempts, attempt{fb, SourceFallback})
	}

	for i, att := range attempts {
		raw, err := s.generator.GeneratePage(ctx, att.model, pagePrompt)
		if err != nil {
			log.Printf("WARN: generation attempt %d (model %s) failed: %v", i+1, att.model, err)
			continue
		}
		s.dumper.Save(requestID, fmt.Sprintf("raw_attempt_%d.txt", i+1), raw)

		parsed, err := design.Repair(raw)
		if err != nil {
			if errors.Is(err, design.ErrUnrecoverable) {
				log.Printf("Info: attempt %d (model %s) output unrecoverable, escalating", i+1, att.model)
			}
			continue
		}
		doc, err := design.DecodeDocument(parsed)
		if err != nil {
			log.Printf("Info: attempt %d (model %s) parsed but had no usable frames", i+1, att.model)
			continue
		}
		return doc, att.source
	}

	log.Printf("All generation attempts failed for request %s, substituting default %s document", requestID, pageType)
	return design.DefaultDocument(pageType, scheme), SourceDefault
}

// notifyCompleted posts the completion webhook, best effort.
func (s *Service) notifyCompleted(ctx context.Context, sessionID string) {
	snap, err := s.manager.Status(ctx, sessionID)
	if err != nil {
		return
	}
	if snap.Status != project.StatusCompleted {
		return
	}
	if err := s.notifier.PostEvent(ctx, "project.completed", sessionID, snap); err != nil {
		log.Printf("WARN: failed to post completion event for session %s: %v", sessionID, err)
	}
}
