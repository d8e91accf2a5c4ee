package proto

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"kalaha/internal/domain/game"
	errs "kalaha/internal/errors"
)

// RemotePicker picks pits by calling the bot service.
type RemotePicker struct {
	client BotServiceClient
}

func NewRemotePicker(cc grpc.ClientConnInterface) *RemotePicker {
	return &RemotePicker{client: NewBotServiceClient(cc)}
}

func (p *RemotePicker) PickPit(ctx context.Context, side game.Side, cfg game.BoardConfig) (int, error) {
	req, err := EncodePickRequest(side, cfg)
	if err != nil {
		return 0, err
	}

	resp, err := p.client.PickPit(ctx, req)
	if err != nil {
		if status.Code(err) == codes.InvalidArgument {
			return 0, fmt.Errorf("%w: %s", errs.ErrInvalidMove, status.Convert(err).Message())
		}
		return 0, fmt.Errorf("%w: bot service: %w", errs.ErrActionFailed, err)
	}

	pit, err := DecodePickResponse(resp)
	if err != nil {
		return 0, fmt.Errorf("%w: bot service: %w", errs.ErrActionFailed, err)
	}
	return pit, nil
}
