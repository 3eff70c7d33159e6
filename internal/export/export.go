// Package export assembles a single portable JSON document per user,
// aggregating profile, session history, insights and statistics.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aminmotiwala/atic/internal/insight"
	"github.com/aminmotiwala/atic/internal/store"
	"github.com/aminmotiwala/atic/internal/types"
)

const (
	exportVersion = "1.0"

	// historyLimit bounds the session history included in an export.
	historyLimit = 100
)

// Metadata identifies an export document.
type Metadata struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"export_timestamp"`
	Version   string    `json:"export_version"`
}

// Document is the complete portable record of one user's data.
type Document struct {
	Metadata   Metadata               `json:"export_metadata"`
	Profile    *types.UserProfile     `json:"user_profile"`
	History    []*types.Session       `json:"performance_history"`
	Insights   *types.LearningInsight `json:"learning_insights"`
	Statistics *types.Statistics      `json:"user_statistics"`
}

// Exporter builds export documents from the store.
type Exporter struct {
	store  *store.Store
	engine *insight.Engine
}

// New creates an Exporter over the store and insight engine.
func New(st *store.Store, engine *insight.Engine) *Exporter {
	return &Exporter{store: st, engine: engine}
}

// Build gathers all of a user's data concurrently and assembles the export
// document. A missing profile yields a document with a nil profile rather
// than an error, so partial histories remain exportable.
func (e *Exporter) Build(ctx context.Context, userID string) (*Document, error) {
	doc := &Document{
		Metadata: Metadata{
			UserID:    userID,
			Timestamp: time.Now().UTC(),
			Version:   exportVersion,
		},
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := e.store.GetProfile(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			return err
		}
		doc.Profile = profile
		return nil
	})
	g.Go(func() error {
		history, err := e.store.GetHistory(ctx, userID, historyLimit)
		if err != nil {
			return err
		}
		doc.History = history
		return nil
	})
	g.Go(func() error {
		insights, err := e.engine.ForUser(ctx, userID)
		if err != nil {
			return err
		}
		doc.Insights = insights
		return nil
	})
	g.Go(func() error {
		stats, err := e.store.GetStatistics(ctx, userID)
		if err != nil {
			return err
		}
		doc.Statistics = stats
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to assemble export for %s: %w", userID, err)
	}
	return doc, nil
}

// Write builds the document and writes it as indented JSON.
func (e *Exporter) Write(ctx context.Context, userID string, w io.Writer) error {
	doc, err := e.Build(ctx, userID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode export for %s: %w", userID, err)
	}
	return nil
}
