package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Ak3mix/ventas-pro/internal/dto"
	"github.com/Ak3mix/ventas-pro/internal/model"
	"github.com/Ak3mix/ventas-pro/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionService owns the session lifecycle. The aggregate state is
// always "exactly one open session + zero or more closed ones": Current
// lazily creates the first session, and Close atomically replaces the
// open one so an observer never sees zero open sessions.
type SessionService interface {
	Current(ctx context.Context) (*dto.SessionResponse, error)
	Close(ctx context.Context) (*dto.CloseSessionResponse, error)
	ListClosed(ctx context.Context) ([]dto.SessionResponse, error)
	Report(ctx context.Context, sessionID uuid.UUID) (*dto.SessionReportResponse, error)

	// CurrentTx resolves (or creates) the open session inside a caller's
	// transaction, so the session a movement or sale is stamped with
	// commits together with it.
	CurrentTx(tx *gorm.DB) (*model.Session, error)
}

type sessionService struct {
	repo      repository.SessionRepository
	sales     repository.SaleRepository
	movements repository.MovementRepository
	mu        *sync.Mutex
}

func NewSessionService(
	repo repository.SessionRepository,
	sales repository.SaleRepository,
	movements repository.MovementRepository,
	mu *sync.Mutex,
) SessionService {
	return &sessionService{repo: repo, sales: sales, movements: movements, mu: mu}
}

// ── Current ───────────────────────────────────────────────────────────────────

func (s *sessionService) Current(ctx context.Context) (*dto.SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cur *model.Session
	err := runTx(ctx, s.repo.DB(), "resolve current session", func(tx *gorm.DB) error {
		var err error
		cur, err = s.CurrentTx(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sessionToResponse(cur), nil
}

func (s *sessionService) CurrentTx(tx *gorm.DB) (*model.Session, error) {
	cur, err := s.repo.FindOpenTx(tx)
	if err == nil {
		return cur, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &StorageError{Op: "find open session", Err: err}
	}
	cur = &model.Session{OpenedAt: time.Now()}
	if err := s.repo.CreateTx(tx, cur); err != nil {
		return nil, &StorageError{Op: "create session", Err: err}
	}
	return cur, nil
}

// ── Close ─────────────────────────────────────────────────────────────────────
// Closes the current session and opens its replacement in one transaction.

func (s *sessionService) Close(ctx context.Context) (*dto.CloseSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var closed, opened *model.Session
	err := runTx(ctx, s.repo.DB(), "close session", func(tx *gorm.DB) error {
		cur, err := s.CurrentTx(tx)
		if err != nil {
			return err
		}
		now := time.Now()
		if err := s.repo.CloseTx(tx, cur.ID, now); err != nil {
			return &StorageError{Op: "close session", Err: err}
		}
		next := &model.Session{OpenedAt: now}
		if err := s.repo.CreateTx(tx, next); err != nil {
			return &StorageError{Op: "open replacement session", Err: err}
		}
		closed, opened = cur, next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.CloseSessionResponse{
		ClosedID: closed.ID.String(),
		NewID:    opened.ID.String(),
	}, nil
}

// ── ListClosed ────────────────────────────────────────────────────────────────

func (s *sessionService) ListClosed(ctx context.Context) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.ListClosed(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list closed sessions", Err: err}
	}
	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, *sessionToResponse(&sessions[i]))
	}
	return out, nil
}

// ── Report ────────────────────────────────────────────────────────────────────
// Pure read: all sales and movements recorded against one session, in
// insertion order, with product names joined.

func (s *sessionService) Report(ctx context.Context, sessionID uuid.UUID) (*dto.SessionReportResponse, error) {
	sess, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "session", ID: sessionID}
		}
		return nil, &StorageError{Op: "find session", Err: err}
	}

	sales, err := s.sales.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, &StorageError{Op: "list session sales", Err: err}
	}
	movements, err := s.movements.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, &StorageError{Op: "list session movements", Err: err}
	}
	totals, err := s.sales.TotalsByMethod(ctx, sessionID)
	if err != nil {
		return nil, &StorageError{Op: "sum session totals", Err: err}
	}

	report := &dto.SessionReportResponse{
		Session:        *sessionToResponse(sess),
		Sales:          make([]dto.SaleResponse, 0, len(sales)),
		Movements:      make([]dto.MovementResponse, 0, len(movements)),
		TotalsByMethod: totals,
	}
	for i := range sales {
		report.Sales = append(report.Sales, *saleToResponse(&sales[i], nil))
	}
	for i := range movements {
		report.Movements = append(report.Movements, *movementToResponse(&movements[i]))
	}
	for _, t := range totals {
		report.Total = report.Total.Add(t)
	}
	return report, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func sessionToResponse(s *model.Session) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:       s.ID.String(),
		OpenedAt: s.OpenedAt.Format(time.RFC3339),
		Closed:   s.Closed,
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	return resp
}
