package api

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/pcg32-backend/internal/logger"
	"github.com/xtding233/pcg32-backend/internal/pcg"
)

// The generator service exchanges google.protobuf.Struct messages:
//
//	Seed      {phrase?}        -> {state}
//	Next      {state, count?}  -> {values, state}
//	NextFloat {state, count?}  -> {values, state}
const generatorService = "pcg.Generator"

type generatorServer interface {
	Seed(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Next(context.Context, *structpb.Struct) (*structpb.Struct, error)
	NextFloat(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var generatorServiceDesc = grpc.ServiceDesc{
	ServiceName: generatorService,
	HandlerType: (*generatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Seed", Handler: unaryHandler("Seed", generatorServer.Seed)},
		{MethodName: "Next", Handler: unaryHandler("Next", generatorServer.Next)},
		{MethodName: "NextFloat", Handler: unaryHandler("NextFloat", generatorServer.NextFloat)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pcg/generator.proto",
}

type structMethod func(generatorServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, m structMethod) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return m(srv.(generatorServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + generatorService + "/" + name,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return m(srv.(generatorServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// NewGRPCServer builds a gRPC server with the generator service registered.
func NewGRPCServer(e *Engine, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(logUnary))
	srv := grpc.NewServer(opts...)
	srv.RegisterService(&generatorServiceDesc, &grpcGenerator{e: e})
	return srv
}

func logUnary(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	ev := logger.Debug()
	if err != nil {
		ev = ev.Err(err)
	}
	logger.Since(ev, start).Str("method", info.FullMethod).Msg("grpc request")
	return resp, err
}

type grpcGenerator struct {
	e *Engine
}

func grpcErr(err error) error {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, pcg.ErrEntropyUnavailable):
		logger.Error(err).Msg("seed failed")
		return status.Error(codes.Unavailable, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

func stringField(in *structpb.Struct, key string) string {
	return in.GetFields()[key].GetStringValue()
}

func (g *grpcGenerator) request(in *structpb.Struct) (pcg.State, int, error) {
	s, err := g.e.ParseState(stringField(in, "state"))
	if err != nil {
		return pcg.State{}, 0, err
	}
	return s, int(in.GetFields()["count"].GetNumberValue()), nil
}

func reply(values []*structpb.Value, s pcg.State) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"values": structpb.NewListValue(&structpb.ListValue{Values: values}),
		"state":  structpb.NewStringValue(s.String()),
	}}
}

func (g *grpcGenerator) Seed(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	s, err := g.e.Seed(stringField(in, "phrase"))
	if err != nil {
		return nil, grpcErr(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"state": structpb.NewStringValue(s.String()),
	}}, nil
}

func (g *grpcGenerator) Next(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	s, n, err := g.request(in)
	if err != nil {
		return nil, grpcErr(err)
	}
	vals, next, err := g.e.Next(s, n)
	if err != nil {
		return nil, grpcErr(err)
	}
	out := make([]*structpb.Value, len(vals))
	for i, v := range vals {
		out[i] = structpb.NewNumberValue(float64(v))
	}
	return reply(out, next), nil
}

func (g *grpcGenerator) NextFloat(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	s, n, err := g.request(in)
	if err != nil {
		return nil, grpcErr(err)
	}
	vals, next, err := g.e.NextFloat(s, n)
	if err != nil {
		return nil, grpcErr(err)
	}
	out := make([]*structpb.Value, len(vals))
	for i, v := range vals {
		out[i] = structpb.NewNumberValue(float64(v))
	}
	return reply(out, next), nil
}

// GeneratorClient calls the generator service over cc.
type GeneratorClient struct {
	cc grpc.ClientConnInterface
}

func NewGeneratorClient(cc grpc.ClientConnInterface) *GeneratorClient {
	return &GeneratorClient{cc: cc}
}

func (c *GeneratorClient) invoke(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+generatorService+"/"+method, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GeneratorClient) Seed(ctx context.Context, phrase string) (pcg.State, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{}}
	if phrase != "" {
		in.Fields["phrase"] = structpb.NewStringValue(phrase)
	}
	out, err := c.invoke(ctx, "Seed", in)
	if err != nil {
		return pcg.State{}, err
	}
	return pcg.ParseState(stringField(out, "state"))
}

func (c *GeneratorClient) call(ctx context.Context, method string, s pcg.State, count int) ([]*structpb.Value, pcg.State, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		"state": structpb.NewStringValue(s.String()),
		"count": structpb.NewNumberValue(float64(count)),
	}}
	out, err := c.invoke(ctx, method, in)
	if err != nil {
		return nil, pcg.State{}, err
	}
	next, err := pcg.ParseState(stringField(out, "state"))
	if err != nil {
		return nil, pcg.State{}, err
	}
	return out.GetFields()["values"].GetListValue().GetValues(), next, nil
}

func (c *GeneratorClient) Next(ctx context.Context, s pcg.State, count int) ([]uint32, pcg.State, error) {
	vals, next, err := c.call(ctx, "Next", s, count)
	if err != nil {
		return nil, pcg.State{}, err
	}
	out := make([]uint32, len(vals))
	for i, v := range vals {
		out[i] = uint32(v.GetNumberValue())
	}
	return out, next, nil
}

func (c *GeneratorClient) NextFloat(ctx context.Context, s pcg.State, count int) ([]float32, pcg.State, error) {
	vals, next, err := c.call(ctx, "NextFloat", s, count)
	if err != nil {
		return nil, pcg.State{}, err
	}
	out := make([]float32, len(vals))
	for i, v := range vals {
		out[i] = float32(v.GetNumberValue())
	}
	return out, next, nil
}
