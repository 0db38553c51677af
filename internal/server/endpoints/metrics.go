package endpoints

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/sommelier/internal/api"
	"github.com/jackzampolin/sommelier/internal/metrics"
	"github.com/jackzampolin/sommelier/internal/svcctx"
)

// defaultMetricsLimit caps GET /api/metrics when no limit is given.
const defaultMetricsLimit = 100

// metricsFilter reads filter query parameters shared by the metrics endpoints.
func metricsFilter(r *http.Request) metrics.Filter {
	q := r.URL.Query()
	f := metrics.Filter{
		SessionID: q.Get("session_id"),
		Persona:   q.Get("persona"),
		Operation: q.Get("operation"),
		Backend:   q.Get("backend"),
		Model:     q.Get("model"),
	}
	if s := q.Get("success"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			f.Success = &b
		}
	}
	return f
}

// metricsQuery renders CLI filter flags as a query string.
func metricsQuery(params map[string]string) string {
	v := url.Values{}
	for k, val := range params {
		if val != "" {
			v.Set(k, val)
		}
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ListMetricsResponse is the response for listing metrics.
type ListMetricsResponse struct {
	Metrics []metrics.Metric `json:"metrics"`
	Count   int              `json:"count"`
}

// ListMetricsEndpoint handles GET /api/metrics.
type ListMetricsEndpoint struct{}

func (e *ListMetricsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/metrics", e.handler
}

func (e *ListMetricsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List metrics
//	@Description	List recent chat backend calls, newest first
//	@Tags			metrics
//	@Produce		json
//	@Param			session_id	query		string	false	"Filter by session ID"
//	@Param			persona		query		string	false	"Filter by persona"
//	@Param			operation	query		string	false	"Filter by operation (recommend, compare)"
//	@Param			backend		query		string	false	"Filter by backend"
//	@Param			model		query		string	false	"Filter by model"
//	@Param			success		query		bool	false	"Only live (true) or degraded (false) calls"
//	@Param			limit		query		int		false	"Maximum results (default 100)"
//	@Success		200			{object}	ListMetricsResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/api/metrics [get]
func (e *ListMetricsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	recorder := svcctx.MetricsFrom(r.Context())
	if recorder == nil {
		writeError(w, http.StatusServiceUnavailable, "metrics not initialized")
		return
	}

	limit := defaultMetricsLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	result := recorder.List(metricsFilter(r), limit)
	if result == nil {
		result = []metrics.Metric{}
	}
	writeJSON(w, http.StatusOK, ListMetricsResponse{
		Metrics: result,
		Count:   len(result),
	})
}

func (e *ListMetricsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var sessionID, persona, operation string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent backend calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			params := map[string]string{
				"session_id": sessionID,
				"persona":    persona,
				"operation":  operation,
			}
			if limit > 0 {
				params["limit"] = strconv.Itoa(limit)
			}
			var resp ListMetricsResponse
			if err := client.Get(cmd.Context(), "/api/metrics"+metricsQuery(params), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "Filter by session ID")
	cmd.Flags().StringVar(&persona, "persona", "", "Filter by persona")
	cmd.Flags().StringVar(&operation, "operation", "", "Filter by operation (recommend, compare)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum results")
	return cmd
}

// MetricsSummaryResponse is the response for summary queries.
type MetricsSummaryResponse struct {
	Count            int                        `json:"count"`
	TotalTokens      int                        `json:"total_tokens"`
	TotalTimeSeconds float64                    `json:"total_time_seconds"`
	SuccessCount     int                        `json:"success_count"`
	DegradedCount    int                        `json:"degraded_count"`
	AvgTokens        float64                    `json:"avg_tokens"`
	AvgTimeSeconds   float64                    `json:"avg_time_seconds"`
	AvgAttempts      float64                    `json:"avg_attempts"`
	P50Seconds       float64                    `json:"p50_seconds"`
	P95Seconds       float64                    `json:"p95_seconds"`
	P99Seconds       float64                    `json:"p99_seconds"`
	ByPersona        map[string]metrics.Summary `json:"by_persona,omitempty"`
	ByBackend        map[string]metrics.Summary `json:"by_backend,omitempty"`

	// Dropped counts calls evicted from memory, regardless of filter.
	Dropped int `json:"dropped"`
}

func (r MetricsSummaryResponse) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Metrics Summary\n")
	fmt.Fprintf(&b, "===============\n")
	fmt.Fprintf(&b, "  Calls:       %d\n", r.Count)
	fmt.Fprintf(&b, "  Live:        %d\n", r.SuccessCount)
	fmt.Fprintf(&b, "  Degraded:    %d\n", r.DegradedCount)
	if r.Dropped > 0 {
		fmt.Fprintf(&b, "  Dropped:     %d (oldest calls evicted)\n", r.Dropped)
	}
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "  Total Tokens: %d\n", r.TotalTokens)
	fmt.Fprintf(&b, "  Avg Tokens:   %.1f\n", r.AvgTokens)
	fmt.Fprintf(&b, "  Avg Attempts: %.2f\n", r.AvgAttempts)
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "  Total Time:   %s\n", time.Duration(r.TotalTimeSeconds*float64(time.Second)).Round(time.Millisecond))
	fmt.Fprintf(&b, "  Avg Time:     %.2fs\n", r.AvgTimeSeconds)
	fmt.Fprintf(&b, "  p50/p95/p99:  %.2fs / %.2fs / %.2fs\n", r.P50Seconds, r.P95Seconds, r.P99Seconds)

	if len(r.ByPersona) > 0 {
		fmt.Fprintf(&b, "\nBy persona:\n")
		keys := make([]string, 0, len(r.ByPersona))
		for k := range r.ByPersona {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s := r.ByPersona[k]
			fmt.Fprintf(&b, "  %-16s %4d calls  %4d degraded  %.2fs avg\n", k, s.Count, s.DegradedCount, s.AvgTimeSeconds)
		}
	}
	return b.String()
}

// MetricsSummaryEndpoint handles GET /api/metrics/summary.
type MetricsSummaryEndpoint struct{}

func (e *MetricsSummaryEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/metrics/summary", e.handler
}

func (e *MetricsSummaryEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Metrics summary
//	@Description	Aggregate chat backend calls: counts, tokens, latency, and per-persona breakdown.
//	@Description	dropped counts calls evicted from the in-memory window and ignores filters.
//	@Tags			metrics
//	@Produce		json
//	@Param			session_id	query		string	false	"Filter by session ID"
//	@Param			persona		query		string	false	"Filter by persona"
//	@Param			operation	query		string	false	"Filter by operation (recommend, compare)"
//	@Param			backend		query		string	false	"Filter by backend"
//	@Param			model		query		string	false	"Filter by model"
//	@Success		200			{object}	MetricsSummaryResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/api/metrics/summary [get]
func (e *MetricsSummaryEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	recorder := svcctx.MetricsFrom(r.Context())
	if recorder == nil {
		writeError(w, http.StatusServiceUnavailable, "metrics not initialized")
		return
	}

	f := metricsFilter(r)
	summary := recorder.GetSummary(f)
	p50, p95, p99 := recorder.Percentiles(f)

	writeJSON(w, http.StatusOK, MetricsSummaryResponse{
		Count:            summary.Count,
		TotalTokens:      summary.TotalTokens,
		TotalTimeSeconds: summary.TotalTime.Seconds(),
		SuccessCount:     summary.SuccessCount,
		DegradedCount:    summary.DegradedCount,
		AvgTokens:        summary.AvgTokens,
		AvgTimeSeconds:   summary.AvgTimeSeconds,
		AvgAttempts:      summary.AvgAttempts,
		P50Seconds:       p50,
		P95Seconds:       p95,
		P99Seconds:       p99,
		ByPersona:        recorder.SummaryByPersona(f),
		ByBackend:        recorder.SummaryByBackend(f),
		Dropped:          recorder.Dropped(),
	})
}

func (e *MetricsSummaryEndpoint) Command(getServerURL func() string) *cobra.Command {
	var sessionID, persona, operation, backend string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize backend calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := "/api/metrics/summary" + metricsQuery(map[string]string{
				"session_id": sessionID,
				"persona":    persona,
				"operation":  operation,
				"backend":    backend,
			})
			var resp MetricsSummaryResponse
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "Filter by session ID")
	cmd.Flags().StringVar(&persona, "persona", "", "Filter by persona")
	cmd.Flags().StringVar(&operation, "operation", "", "Filter by operation (recommend, compare)")
	cmd.Flags().StringVar(&backend, "backend", "", "Filter by backend")
	return cmd
}
