package engine

import (
	"errors"
	"fmt"
	"log/slog"
)

// ============================================================================
// EXECUTOR — Dispatcher from a view Request to a render-ready Result
// ============================================================================
// Entry point: Execute(req, view, opts...)
//
// Pipeline:
//   1. Apply the species filter → SubView (only when req.Filtered)
//   2. Dispatch to builder (table / grid / histogram / scatter / violin)
//   3. Attach the "N of M" summary for filtered views
//
// Every call re-runs the filter; nothing is cached between views.
// ============================================================================

// Request kinds.
const (
	KindTable     = "table"
	KindGrid      = "grid"
	KindHistogram = "histogram"
	KindScatter   = "scatter"
	KindViolin    = "violin"
)

// ErrUnknownKind is returned for a Request.Kind no builder handles.
var ErrUnknownKind = errors.New("unknown view kind")

// Request is everything one view needs from the selection state.
type Request struct {
	View      string   // view id, echoed into the Result
	Kind      string   // one of the Kind* constants
	Title     string   // optional title override
	Attribute string   // measure for histogram and violin
	Bins      int      // histogram bin count, passed through unclamped
	Filtered  bool     // apply the species filter first
	Species   []string // allowed species when Filtered
}

// Execute runs one view request against the full dataset view.
func Execute(req Request, view RecordView, opts ...Option) (*Result, error) {
	if req.Title != "" {
		opts = append(opts, WithTitle(req.Title))
	}

	data := view
	var summary *TextData
	if req.Filtered {
		data = FilterSpecies(view, req.Species)
		summary = BuildSummary(data, view.Len())
		slog.Debug("species filter applied",
			"view", req.View, "rows", view.Len(), "filtered", data.Len(), "species", req.Species)
	}

	result := &Result{
		Success: true,
		View:    req.View,
		Data:    summary,
	}
	if summary != nil {
		result.Summary = summary.Value
	}

	switch req.Kind {
	case KindTable:
		result.Type = "table"
		result.TableData = BuildTable(data, opts...)
		result.Title = result.TableData.Title

	case KindGrid:
		result.Type = "table"
		result.TableData = BuildGrid(data, opts...)
		result.Title = result.TableData.Title

	case KindHistogram:
		chart, err := BuildHistogram(data, req.Attribute, req.Bins, opts...)
		if err != nil {
			return nil, fmt.Errorf("view %s: %w", req.View, err)
		}
		result.Type = "chart"
		result.ChartConfig = chart
		result.Title = chart.Title

	case KindScatter:
		result.Type = "chart"
		result.ChartConfig = BuildScatter(data, opts...)
		result.Title = result.ChartConfig.Title

	case KindViolin:
		chart, err := BuildViolin(data, req.Attribute, opts...)
		if err != nil {
			return nil, fmt.Errorf("view %s: %w", req.View, err)
		}
		result.Type = "chart"
		result.ChartConfig = chart
		result.Title = chart.Title

	default:
		return nil, fmt.Errorf("view %s: %w: %q", req.View, ErrUnknownKind, req.Kind)
	}

	return result, nil
}
