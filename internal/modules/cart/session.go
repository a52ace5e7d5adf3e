package cart

import (
	"context"
	"log/slog"
)

// Session implements Actions against a Store for a single request.
// OnCreate receives the id of a newly created cart so the caller can
// remember it (e.g. in a cookie).
type Session struct {
	Store    Store
	CartID   string
	OnCreate func(cartID string)
	Logger   *slog.Logger
}

func (s *Session) State() State {
	return State{ID: s.CartID, Actions: s}
}

func (s *Session) LinesAdd(ctx context.Context, lines []LineInput) error {
	if err := s.Store.AddLines(ctx, s.CartID, lines); err != nil {
		return err
	}
	s.log(ctx, "cart_lines_added", slog.String("cart_id", s.CartID), slog.Int("lines", len(lines)))
	return nil
}

func (s *Session) CartCreate(ctx context.Context, in CreateInput) error {
	c, err := s.Store.Create(ctx, in.Lines)
	if err != nil {
		return err
	}
	s.CartID = c.ID
	s.log(ctx, "cart_created", slog.String("cart_id", c.ID), slog.Int("lines", len(in.Lines)))
	if s.OnCreate != nil {
		s.OnCreate(c.ID)
	}
	return nil
}

func (s *Session) log(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.Logger == nil {
		return
	}
	s.Logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}
