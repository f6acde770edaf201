package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey   = "generator"
	serviceName    = "paninis.backend.v1.GenerationBackend"
	jsonCodecName  = "json"
	methodGenerate = "/" + serviceName + "/Generate"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "PANINI_PLUGIN",
	MagicCookieValue: "paninis-eye",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Rule struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Description string `json:"description"`
}

type GenerateRequest struct {
	MaskedText  string  `json:"masked_text"`
	KGContext   []Rule  `json:"kg_context"`
	Strategy    string  `json:"strategy"`
	Temperature float64 `json:"temperature"`
	Count       int     `json:"count"`
}

type Candidate struct {
	Text            string  `json:"text"`
	LMScore         float64 `json:"lm_score"`
	ModelConfidence float64 `json:"model_confidence"`
	Epistemic       float64 `json:"epistemic_uncertainty"`
	Aleatoric       float64 `json:"aleatoric_uncertainty"`
}

type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type GenerationBackendServer interface {
	Generate(ctx context.Context, in *GenerateRequest) (*GenerateResponse, error)
}

type GenerationBackendClient interface {
	Generate(ctx context.Context, in *GenerateRequest) (*GenerateResponse, error)
}

type generationBackendClient struct {
	conn *grpc.ClientConn
}

func NewGenerationBackendClient(conn *grpc.ClientConn) GenerationBackendClient {
	return &generationBackendClient{conn: conn}
}

func (c *generationBackendClient) Generate(ctx context.Context, in *GenerateRequest) (*GenerateResponse, error) {
	out := &GenerateResponse{}
	if err := c.conn.Invoke(ctx, methodGenerate, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterGenerationBackendServer(server grpc.ServiceRegistrar, impl GenerationBackendServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*GenerationBackendServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "Generate",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &GenerateRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Generate(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGenerate}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*GenerateRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Generate(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/backend-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl GenerationBackendServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterGenerationBackendServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewGenerationBackendClient(conn), nil
}

func PluginMap(impl GenerationBackendServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
