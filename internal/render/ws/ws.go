// Released under an MIT license. See LICENSE.

// Package ws streams presented frames to websocket clients as JSON.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/michaelmacinnis/sketch/internal/engine/scene"
)

const (
	backlog  = 32
	firehose = 1024
	wait     = 5 * time.Second
)

// T (ws) is a render sink that broadcasts every snapshot to all
// connected clients. Slow clients miss frames rather than stall the
// driver.
type T struct {
	conns    sync.Map
	firehose chan []byte
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// New creates a websocket sink. Run must be called to start broadcasting.
func New(logger *slog.Logger) *T {
	if logger == nil {
		logger = slog.Default()
	}

	return &T{
		firehose: make(chan []byte, firehose),
		logger:   logger,
	}
}

// Handler returns the HTTP handler that upgrades clients.
func (s *T) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/frames", s.serve)
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	})

	return mux
}

// ListenAndServe accepts clients on addr until ctx is cancelled.
func (s *T) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, l)
}

// Serve accepts clients on l until ctx is cancelled.
func (s *T) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: wait,
	}

	go s.Run(ctx)

	go func() {
		<-ctx.Done()

		shutdown, cancel := context.WithTimeout(context.Background(), wait)
		defer cancel()

		_ = srv.Shutdown(shutdown)
	}()

	s.logger.Info("websocket sink listening", "addr", l.Addr().String())

	err := srv.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// Present queues the snapshot for every connected client.
func (s *T) Present(ctx context.Context, snap scene.Snapshot) error {
	js, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	select {
	case s.firehose <- js:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run fans queued snapshots out to clients until ctx is cancelled.
func (s *T) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case js := <-s.firehose:
			s.conns.Range(func(k, v interface{}) bool {
				c := v.(chan []byte)
				select {
				case c <- js:
				default:
					s.logger.Warn("client blocked, dropping frame", "client", k)
				}

				return true
			})
		}
	}
}

func (s *T) serve(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "error", err)
		return
	}
	defer c.Close()

	queue := make(chan []byte, backlog)

	id := c.RemoteAddr().String()
	s.conns.Store(id, queue)
	defer s.conns.Delete(id)

	s.logger.Debug("client connected", "client", id)

	done := make(chan struct{})

	go func() {
		defer close(done)

		// Clients never send anything meaningful. Reading detects close.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			s.logger.Debug("client disconnected", "client", id)
			return
		case <-r.Context().Done():
			return
		case js := <-queue:
			_ = c.SetWriteDeadline(time.Now().Add(wait))
			if err := c.WriteMessage(websocket.TextMessage, js); err != nil {
				s.logger.Warn("write failed", "client", id, "error", err)
				return
			}
		}
	}
}

const page = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>sketch</title>
<script>
window.addEventListener("load", function() {
    var canvas = document.getElementById("canvas");
    var ctx = canvas.getContext("2d");
    var ws = new WebSocket("ws://" + location.host + "/frames");

    var scalar = function(s, total) {
        return s.unit === "relative" ? s.value * total : s.value;
    };

    ws.onmessage = function(evt) {
        var f = JSON.parse(evt.data);
        canvas.width = f.width;
        canvas.height = f.height;
        ctx.clearRect(0, 0, f.width, f.height);
        if (f.background) {
            ctx.fillStyle = f.background;
            ctx.fillRect(0, 0, f.width, f.height);
        }
        (f.shapes || []).forEach(function(s) {
            if (!s.visible) {
                return;
            }
            var w = scalar(s.width, f.width), h = scalar(s.height, f.height);
            var x = scalar(s.position.x, f.width), y = scalar(s.position.y, f.height);
            ctx.save();
            ctx.translate(x + w / 2, y + h / 2);
            ctx.rotate(s.rotation * Math.PI / 180);
            ctx.beginPath();
            if (s.kind === "ellipse") {
                ctx.ellipse(0, 0, w / 2, h / 2, 0, 0, 2 * Math.PI);
            } else {
                ctx.rect(-w / 2, -h / 2, w, h);
            }
            if (s.fillEnabled && s.fillColor) {
                ctx.fillStyle = s.fillColor;
                ctx.fill();
            }
            if (s.strokeColor) {
                ctx.lineWidth = s.lineWidth;
                ctx.strokeStyle = s.strokeColor;
                ctx.stroke();
            }
            ctx.restore();
        });
    };
});
</script>
</head>
<body style="margin: 0">
<canvas id="canvas"></canvas>
</body>
</html>
`
