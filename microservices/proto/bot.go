// Package proto declares the bot gRPC service. Messages are
// google.protobuf.Struct values so no generated code is needed:
//
//	PickPit({side: [int], numberOfPits, storeIndex, startingStonesPerPit}) -> {selectedPitIndex}
package proto

import (
	"context"
	"fmt"
	"math"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"kalaha/internal/domain/game"
	errs "kalaha/internal/errors"
)

const (
	ServiceName       = "kalaha.bot.BotService"
	PickPitFullMethod = "/" + ServiceName + "/PickPit"
)

type BotServiceServer interface {
	PickPit(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type BotServiceClient interface {
	PickPit(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

var BotService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BotServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PickPit",
			Handler:    _BotService_PickPit_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bot.proto",
}

func RegisterBotServiceServer(s grpc.ServiceRegistrar, srv BotServiceServer) {
	s.RegisterService(&BotService_ServiceDesc, srv)
}

func _BotService_PickPit_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BotServiceServer).PickPit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PickPitFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BotServiceServer).PickPit(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type botServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBotServiceClient(cc grpc.ClientConnInterface) BotServiceClient {
	return &botServiceClient{cc}
}

func (c *botServiceClient) PickPit(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PickPitFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func EncodePickRequest(side game.Side, cfg game.BoardConfig) (*structpb.Struct, error) {
	stones := make([]any, len(side))
	for i, n := range side {
		stones[i] = n
	}
	return structpb.NewStruct(map[string]any{
		"side":                 stones,
		"numberOfPits":         cfg.NumberOfPits,
		"storeIndex":           cfg.StoreIndex,
		"startingStonesPerPit": cfg.StartingStonesPerPit,
	})
}

func DecodePickRequest(in *structpb.Struct) (game.Side, game.BoardConfig, error) {
	var cfg game.BoardConfig
	var err error

	fields := in.GetFields()
	if cfg.NumberOfPits, err = intField(fields, "numberOfPits"); err != nil {
		return nil, cfg, err
	}
	if cfg.StoreIndex, err = intField(fields, "storeIndex"); err != nil {
		return nil, cfg, err
	}
	if cfg.StartingStonesPerPit, err = intField(fields, "startingStonesPerPit"); err != nil {
		return nil, cfg, err
	}

	values := fields["side"].GetListValue().GetValues()
	side := make(game.Side, len(values))
	for i, v := range values {
		if side[i], err = toInt(v); err != nil {
			return nil, cfg, fmt.Errorf("side[%d]: %w", i, err)
		}
	}
	return side, cfg, nil
}

func EncodePickResponse(selectedPitIndex int) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"selectedPitIndex": structpb.NewNumberValue(float64(selectedPitIndex)),
	}}
}

func DecodePickResponse(out *structpb.Struct) (int, error) {
	return intField(out.GetFields(), "selectedPitIndex")
}

func intField(fields map[string]*structpb.Value, name string) (int, error) {
	v, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing field %s", errs.ErrInvalidInput, name)
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func toInt(v *structpb.Value) (int, error) {
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || math.IsNaN(num.NumberValue) || math.Abs(num.NumberValue) > math.MaxInt32 ||
		num.NumberValue != math.Trunc(num.NumberValue) {
		return 0, fmt.Errorf("%w: expected an integer", errs.ErrInvalidInput)
	}
	return int(num.NumberValue), nil
}
