package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"sellx/internal/dto"
	"sellx/internal/model"
	"sellx/internal/repository"
)

type RegisterService interface {
	Open(ctx context.Context, operatorID uuid.UUID, req dto.OpenRegisterRequest) (*dto.RegisterSessionResponse, error)
	Close(ctx context.Context, sessionID uuid.UUID) error
	Current(ctx context.Context, registerID int) (*dto.RegisterSessionResponse, error)
}

type registerService struct {
	repo repository.RegisterRepository
}

func NewRegisterService(repo repository.RegisterRepository) RegisterService {
	return &registerService{repo: repo}
}

func (s *registerService) Open(ctx context.Context, operatorID uuid.UUID, req dto.OpenRegisterRequest) (*dto.RegisterSessionResponse, error) {
	// Guard: exactly one open session per register
	if existing, err := s.repo.FindOpenByRegister(ctx, req.RegisterID); err == nil && existing != nil {
		return nil, errors.New("a register session is already open at this register")
	}

	session := &model.RegisterSession{
		RegisterID:   req.RegisterID,
		OperatorID:   operatorID,
		OpeningFloat: req.OpeningFloat,
		Status:       "open",
		OpenedAt:     time.Now(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return registerSessionToResponse(session), nil
}

func (s *registerService) Close(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return errors.New("register session not found")
	}
	if session.Status != "open" {
		return errors.New("register session is already closed")
	}
	return s.repo.CloseSession(ctx, sessionID)
}

func (s *registerService) Current(ctx context.Context, registerID int) (*dto.RegisterSessionResponse, error) {
	session, err := s.repo.FindOpenByRegister(ctx, registerID)
	if err != nil {
		return nil, errors.New("no open register session")
	}
	return registerSessionToResponse(session), nil
}

func registerSessionToResponse(s *model.RegisterSession) *dto.RegisterSessionResponse {
	resp := &dto.RegisterSessionResponse{
		ID:           s.ID.String(),
		RegisterID:   s.RegisterID,
		OperatorID:   s.OperatorID.String(),
		OpeningFloat: s.OpeningFloat,
		Status:       s.Status,
		OpenedAt:     s.OpenedAt.Format(time.RFC3339),
	}
	if s.ClosedAt != nil {
		c := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &c
	}
	return resp
}
