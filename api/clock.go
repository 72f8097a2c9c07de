package api

import (
	"context"
	"log"
	"time"

	"github.com/wricardo/mcp-training/ecomerge/transport/websocket"
)

// RunClock ticks every wall-clock session once per interval and pushes the
// new countdown to WebSocket clients. It returns nil when ctx is cancelled.
func (s *Server) RunClock(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.tickAll(ctx)
		}
	}
}

func (s *Server) tickAll(ctx context.Context) {
	results, err := s.service.TickAll(ctx)
	if err != nil && ctx.Err() == nil {
		log.Printf("[TICK] tick failed: %v", err)
	}

	for _, result := range results {
		if s.hub != nil {
			s.hub.BroadcastEvent(hubKey(result.SessionID), websocket.EventTick, map[string]int{
				"time_remaining": result.TimeRemaining,
			})
		}
		if result.Ended {
			s.publish(result.SessionID, result.GameState, result.Events)
		}
	}
}
