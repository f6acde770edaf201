package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	backendrpc "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/adapter/out/rpc"
	reconstructout "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/port/out"
	apperrors "github.com/pauljayakar30/Paninis-eye/internal/platform/errors"
)

const (
	pluginStartTimeout = 3 * time.Second
	pluginCallTimeout  = 30 * time.Second
)

// PluginBackend drives an out-of-process generation model over the plugin
// protocol. Each call spawns, queries and kills the plugin binary, so a
// crashed model never takes the host down.
type PluginBackend struct {
	binary string
}

func NewPluginBackend(binary string) *PluginBackend {
	return &PluginBackend{binary: binary}
}

var _ reconstructout.GenerationBackend = (*PluginBackend)(nil)

func (b *PluginBackend) Generate(ctx context.Context, req reconstructout.GenerationRequest) ([]reconstructout.RawCandidate, error) {
	client, closeFn, err := b.connect()
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrBackendUnavailable)
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, pluginCallTimeout)
	defer cancel()

	rules := make([]backendrpc.Rule, 0, len(req.KGContext))
	for _, rule := range req.KGContext {
		rules = append(rules, backendrpc.Rule{ID: rule.ID, Text: rule.Text, Description: rule.Description})
	}
	response, err := client.Generate(callCtx, &backendrpc.GenerateRequest{
		MaskedText:  req.MaskedText,
		KGContext:   rules,
		Strategy:    string(req.Strategy),
		Temperature: req.Temperature,
		Count:       req.Count,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("plugin generate timed out: %w", apperrors.ErrBackendUnavailable)
		}
		return nil, fmt.Errorf("plugin generate: %v: %w", err, apperrors.ErrBackendError)
	}
	if len(response.Candidates) == 0 {
		return nil, fmt.Errorf("plugin returned no candidates: %w", apperrors.ErrBackendError)
	}
	raws := make([]reconstructout.RawCandidate, 0, len(response.Candidates))
	for _, candidate := range response.Candidates {
		raws = append(raws, reconstructout.RawCandidate{
			Text:            candidate.Text,
			LMScore:         candidate.LMScore,
			ModelConfidence: candidate.ModelConfidence,
			Epistemic:       candidate.Epistemic,
			Aleatoric:       candidate.Aleatoric,
		})
	}
	return raws, nil
}

func (b *PluginBackend) connect() (backendrpc.GenerationBackendClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  backendrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          backendrpc.PluginMap(nil),
		Cmd:              exec.Command(b.binary),
		Managed:          true,
		StartTimeout:     pluginStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(backendrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(backendrpc.GenerationBackendClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
