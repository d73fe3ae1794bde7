package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"census/internal/chart"
	"census/internal/models"
	"census/internal/render"
	"census/internal/session"
	"census/web"

	"github.com/gorilla/websocket"
)

const (
	defaultWidth  = 960
	defaultHeight = 600
	// maxSnapshotDim caps either side of a snapshot, in pixels
	maxSnapshotDim = 4096
)

var pageTemplate = template.Must(template.ParseFS(web.Files, "index.html"))

type ChartHandler struct {
	records  []models.Record
	cfg      session.Config
	upgrader websocket.Upgrader
}

// NewChartHandler serves charts over records. records is nil when the
// dataset failed to load; the page is still served but stays empty.
func NewChartHandler(records []models.Record, cfg session.Config) *ChartHandler {
	if cfg.Chart.Clock == nil {
		cfg.Chart.Clock = chart.SystemClock
	}
	return &ChartHandler{
		records: records,
		cfg:     cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1 << 16,
		},
	}
}

// Register adds the chart routes to mux
func (h *ChartHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/{$}", h.HandlePage)
	mux.HandleFunc("/ws", h.HandleWebSocket)
	mux.HandleFunc("/chart.svg", h.HandleSnapshotSVG)
	mux.HandleFunc("/chart.png", h.HandleSnapshotPNG)
	mux.HandleFunc("/api/records", h.HandleGetRecords)
}

func (h *ChartHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := struct {
		Title       string
		ContainerID string
	}{
		Title:       "Census Risk Factors",
		ContainerID: strings.TrimPrefix(h.cfg.Selector, "#"),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Printf("Error rendering page: %v", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *ChartHandler) HandleGetRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.records == nil {
		http.Error(w, "Dataset not loaded", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total":   len(h.records),
		"records": h.records,
	})
}

func (h *ChartHandler) HandleSnapshotSVG(w http.ResponseWriter, r *http.Request) {
	ch, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.SVG(&buf, ch, h.cfg.Chart.Clock.Now()); err != nil {
		log.Printf("Error rendering SVG snapshot: %v", err)
		http.Error(w, "Error rendering chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

func (h *ChartHandler) HandleSnapshotPNG(w http.ResponseWriter, r *http.Request) {
	ch, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, ch); err != nil {
		log.Printf("Error rendering PNG snapshot: %v", err)
		http.Error(w, "Error rendering chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// snapshot builds a settled chart from the query parameters width, height,
// x and y. On failure it writes the error response and returns false.
func (h *ChartHandler) snapshot(w http.ResponseWriter, r *http.Request) (*chart.Chart, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	if h.records == nil {
		http.Error(w, "Dataset not loaded", http.StatusServiceUnavailable)
		return nil, false
	}

	q := r.URL.Query()
	var (
		size chart.Size
		err  error
	)
	if size.Width, err = floatParam(q.Get("width"), defaultWidth); err != nil {
		http.Error(w, fmt.Sprintf("Invalid width: %v", err), http.StatusBadRequest)
		return nil, false
	}
	if size.Height, err = floatParam(q.Get("height"), defaultHeight); err != nil {
		http.Error(w, fmt.Sprintf("Invalid height: %v", err), http.StatusBadRequest)
		return nil, false
	}
	if size.Width > maxSnapshotDim || size.Height > maxSnapshotDim {
		http.Error(w, fmt.Sprintf("Snapshot larger than %dx%d", maxSnapshotDim, maxSnapshotDim), http.StatusBadRequest)
		return nil, false
	}

	opts := h.cfg.Chart
	opts.TransitionDuration = 0
	renderer := chart.NewRenderer(opts)
	container := chart.NewContainer(h.cfg.Selector)
	if err := renderer.Mount(container, size); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return nil, false
	}
	if err := renderer.BindData(h.records); err != nil {
		log.Printf("Error binding snapshot data: %v", err)
		http.Error(w, "Error building chart", http.StatusInternalServerError)
		return nil, false
	}

	for _, axis := range []models.Axis{models.AxisX, models.AxisY} {
		name := q.Get(axis.String())
		if name == "" {
			continue
		}
		metric, err := models.ParseMetric(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}
		if _, err := renderer.OnLabelClick(axis, metric); err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return nil, false
		}
	}
	return container.Chart(), true
}

func floatParam(s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, chart.ErrInvalidOption), errors.Is(err, chart.ErrInvalidViewport):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
