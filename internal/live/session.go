package live

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"grapher/pkg/api"
	"grapher/pkg/expression"
	"grapher/pkg/plot"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Event is an input message from the browser. X and Y are canvas pixels.
type Event struct {
	Type   string  `json:"type"`
	Expr   string  `json:"expr,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
}

// Notice is a JSON message to the browser: "view" after every frame,
// "error" for compile and input errors.
type Notice struct {
	Type    string  `json:"type"`
	Message string  `json:"message,omitempty"`
	Window  *Window `json:"window,omitempty"`
	Trace   string  `json:"trace,omitempty"`
}

// Window is the world rectangle shown in a frame.
type Window struct {
	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
	YMin float64 `json:"ymin"`
	YMax float64 `json:"ymax"`
}

type outgoing struct {
	kind int
	data []byte
}

// Session owns one plot and the connection it is shown on. All plot calls
// happen on the reader goroutine.
type Session struct {
	conn *websocket.Conn
	plot *api.Plot

	send      chan outgoing
	closeChan chan struct{}
	closeOnce sync.Once
}

func newSession(conn *websocket.Conn, p *api.Plot) *Session {
	s := &Session{
		conn:      conn,
		plot:      p,
		send:      make(chan outgoing, 16),
		closeChan: make(chan struct{}),
	}
	p.Controller().Notify = func(err error) {
		s.notify(Notice{Type: "error", Message: err.Error()})
	}
	return s
}

func (s *Session) run() {
	defer s.close()
	defer s.plot.Close()

	go s.writer()

	_, err := s.plot.Redraw()
	s.frame(err)

	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				plot.Logger().Debug("live session closed", "err", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			s.notify(Notice{Type: "error", Message: fmt.Sprintf("bad event: %v", err)})
			continue
		}
		s.handle(ev)
	}
}

// handle applies one event and sends a frame if the plot was redrawn.
func (s *Session) handle(ev Event) {
	c := s.plot.Controller()
	before := c.LastTrace()

	var err error
	switch ev.Type {
	case "expr":
		_, err = s.plot.Render(ev.Expr)
	case "wheel":
		err = c.Wheel(plot.WheelEvent{X: ev.X, Y: ev.Y, DeltaY: ev.DeltaY})
	case "down":
		c.PointerDown(ev.X, ev.Y)
	case "move":
		err = c.PointerMove(ev.X, ev.Y)
	case "up":
		c.PointerUp()
	case "leave":
		c.PointerLeave()
	case "resize":
		err = s.plot.Resize(ev.Width, ev.Height)
	case "zoomIn":
		err = c.ZoomIn()
	case "zoomOut":
		err = c.ZoomOut()
	case "reset":
		err = c.Reset()
	default:
		err = fmt.Errorf("unknown event %q", ev.Type)
	}

	var ce *expression.CompileError
	if err != nil && !errors.As(err, &ce) {
		s.notify(Notice{Type: "error", Message: err.Error()})
	}
	if c.LastTrace() != before {
		s.frame(nil)
	}
}

// frame sends the current image followed by a view notice.
func (s *Session) frame(renderErr error) {
	if renderErr != nil {
		return
	}
	var buf bytes.Buffer
	if err := s.plot.Export(&buf); err != nil {
		s.notify(Notice{Type: "error", Message: err.Error()})
		return
	}
	s.enqueue(outgoing{kind: websocket.BinaryMessage, data: buf.Bytes()})

	v := s.plot.Viewport()
	n := Notice{Type: "view", Window: &Window{XMin: v.XMin, XMax: v.XMax, YMin: v.YMin, YMax: v.YMax}}
	if t := s.plot.Controller().LastTrace(); t != nil {
		n.Trace = t.String()
	}
	s.notify(n)
}

func (s *Session) notify(n Notice) {
	data, err := json.Marshal(n)
	if err != nil {
		return
	}
	s.enqueue(outgoing{kind: websocket.TextMessage, data: data})
}

func (s *Session) enqueue(m outgoing) {
	select {
	case s.send <- m:
	case <-s.closeChan:
	}
}

// writer handles writing messages to the websocket
func (s *Session) writer() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case m := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(m.kind, m.data); err != nil {
				plot.Logger().Debug("live write failed", "err", err)
				s.close()
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.close()
				return
			}

		case <-s.closeChan:
			return
		}
	}
}

func (s *Session) close() {
	s.closeOnce.Do(func() {
		close(s.closeChan)
		s.conn.Close()
	})
}
