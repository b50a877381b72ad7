// Package monitor serves a read-only telemetry stream of the control
// session: every dispatched command and rover response is broadcast to
// browser clients over WebSocket. Clients observe only; they cannot inject
// commands into the serial link.
package monitor

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// upgrader upgrades HTTP requests to WebSockets. CheckOrigin allows all
// origins; the monitor binds to an operator-chosen local address.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server is the HTTP side of the monitor: an index page and the /ws stream.
type Server struct {
	hub *Hub
	mux *http.ServeMux
}

// NewServer constructs a monitor server around a hub.
func NewServer(hub *Hub) *Server {
	s := &Server{hub: hub, mux: http.NewServeMux()}
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/ws", s.handleWS)
	return s
}

// Handler returns the monitor's HTTP handler.
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe serves the monitor on addr. Intended to run in its own
// goroutine; errors surface to the caller.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux}
	return srv.ListenAndServe()
}

// handleWS is the "upgrade + register + read-loop" endpoint. Incoming
// messages are discarded on purpose; the read-loop exists to detect client
// disconnects and trigger cleanup.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := s.hub.Add(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.hub.Remove(client)
			return
		}
	}
}

// handleIndex serves the inline monitor page: connects to /ws and appends
// each event to a log list.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

const indexHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>roverctl monitor</title>
<style>
body { font-family: monospace; background: #111; color: #ddd; margin: 1em; }
h1 { color: #8f8; font-size: 1.2em; }
li.command { color: #8cf; }
li.response { color: #fc8; }
li.status { color: #8f8; }
</style></head>
<body>
<h1>roverctl monitor</h1>
<ul id="log"></ul>
<script>
const log = document.getElementById("log");
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = (msg) => {
  const ev = JSON.parse(msg.data);
  const li = document.createElement("li");
  li.className = ev.kind;
  li.textContent = ev.timestamp + " " + ev.kind + " " +
    (ev.command || "") + (ev.text ? " :: " + ev.text : "");
  log.prepend(li);
};
ws.onclose = () => {
  const li = document.createElement("li");
  li.textContent = "stream closed";
  log.prepend(li);
};
</script>
</body>
</html>
`
