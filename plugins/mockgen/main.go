package main

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/hashicorp/go-plugin"

	backendrpc "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/adapter/out/rpc"
)

// vocabulary is the present-tense verb pool the mock generator draws from.
var vocabulary = []string{"गच्छति", "तिष्ठति", "रक्षति", "भवति", "पठति", "वदति"}

type server struct{}

func (s *server) Generate(_ context.Context, in *backendrpc.GenerateRequest) (*backendrpc.GenerateResponse, error) {
	if in.MaskedText == "" {
		return nil, fmt.Errorf("masked_text required")
	}
	count := in.Count
	if count < 1 {
		count = 1
	}
	// Deterministic for a given masked text and strategy so runs replay
	// exactly.
	seed := fnv.New32a()
	seed.Write([]byte(in.MaskedText))
	seed.Write([]byte(in.Strategy))
	// Index arithmetic stays in uint32; the full hash range is in play and
	// a signed conversion can go negative on 32-bit platforms.
	base := seed.Sum32()

	response := &backendrpc.GenerateResponse{}
	for i := uint32(0); i < uint32(count); i++ {
		word := vocabulary[(base+i)%uint32(len(vocabulary))]
		confidence := 0.9 - 0.25*in.Temperature/1.2
		response.Candidates = append(response.Candidates, backendrpc.Candidate{
			Text:            word,
			LMScore:         0.7 + 0.2*float64((base+i)%3)/2,
			ModelConfidence: confidence,
			Epistemic:       0.2 + 0.1*in.Temperature,
			Aleatoric:       0.15 + 0.1*in.Temperature,
		})
	}
	return response, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: backendrpc.HandshakeConfig,
		Plugins:         backendrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
