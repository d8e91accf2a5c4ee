package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"kalaha/internal/domain/game"
	errs "kalaha/internal/errors"
	botRPC "kalaha/microservices/proto"
)

type PitPicker interface {
	PickPit(ctx context.Context, side game.Side, cfg game.BoardConfig) (int, error)
}

type BotUseCase struct {
	picker PitPicker
	log    *zap.SugaredLogger
}

func NewBotUseCase(picker PitPicker, log *zap.SugaredLogger) *BotUseCase {
	return &BotUseCase{
		picker: picker,
		log:    log,
	}
}

func (b *BotUseCase) PickPit(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	side, cfg, err := botRPC.DecodePickRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err = cfg.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	pit, err := b.picker.PickPit(ctx, side, cfg)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidInput) || errors.Is(err, errs.ErrInvalidMove) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		b.log.Errorf("failed to pick pit: %v", err)
		return nil, status.Error(codes.Internal, err.Error())
	}

	b.log.Debugf("picked pit %d for side %v", pit, side)
	return botRPC.EncodePickResponse(pit), nil
}
