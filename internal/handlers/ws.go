package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"census/internal/chart"
	"census/internal/models"
	"census/internal/session"

	"github.com/gorilla/websocket"
)

// clientMessage is an event sent by the page
type clientMessage struct {
	Type   string  `json:"type"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Axis   string  `json:"axis,omitempty"`
	Metric string  `json:"metric,omitempty"`
	Abbr   string  `json:"abbr,omitempty"`
}

// serverMessage carries one frame back to the page
type serverMessage struct {
	SVG   string `json:"svg,omitempty"`
	Error string `json:"error,omitempty"`
}

func (m clientMessage) event() (session.Event, error) {
	switch m.Type {
	case "resize":
		return session.Resize{Size: chart.Size{Width: m.Width, Height: m.Height}}, nil
	case "select":
		axis, err := models.ParseAxis(m.Axis)
		if err != nil {
			return nil, err
		}
		metric, err := models.ParseMetric(m.Metric)
		if err != nil {
			return nil, err
		}
		return session.Select{Axis: axis, Metric: metric}, nil
	case "hover":
		return session.Hover{Abbr: m.Abbr}, nil
	case "leave":
		return session.Leave{Abbr: m.Abbr}, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", m.Type)
	}
}

// HandleWebSocket runs one chart session for the lifetime of the connection
func (h *ChartHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading websocket: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := session.New(h.records, h.cfg)
	go s.Run(ctx)
	log.Printf("Session opened for %s", r.RemoteAddr)

	done := make(chan struct{})
	go func() {
		defer close(done)
		writeFrames(conn, s.Frames())
	}()

	readEvents(ctx, conn, s)
	cancel()
	<-done
	log.Printf("Session closed for %s", r.RemoteAddr)
}

// readEvents forwards client messages to s until the connection fails
func readEvents(ctx context.Context, conn *websocket.Conn, s *session.Session) {
	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Error reading websocket: %v", err)
			}
			return
		}

		ev, err := msg.event()
		if err != nil {
			log.Printf("Ignoring client message: %v", err)
			continue
		}
		if err := s.Post(ctx, ev); err != nil {
			return
		}
	}
}

// writeFrames is the only writer on conn. It returns when frames closes or
// a write fails; a failed write closes conn so the reader stops too.
func writeFrames(conn *websocket.Conn, frames <-chan session.Frame) {
	for f := range frames {
		msg := serverMessage{SVG: string(f.SVG)}
		if f.Err != nil {
			msg = serverMessage{Error: f.Err.Error()}
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("Error writing websocket: %v", err)
			conn.Close()
			return
		}
	}
}
