// Package mock provides an in-memory [asr.Provider] test double.
package mock

import (
	"context"
	"sync"

	"github.com/Kitan-Dara06/n-atlas-scenapps/pkg/provider/asr"
)

// Ensure Provider implements the asr.Provider interface.
var _ asr.Provider = (*Provider)(nil)

// Provider is a configurable asr.Provider double. The zero value returns an
// empty result for every call. All fields must be set before first use;
// call recording is synchronised and safe for concurrent use.
type Provider struct {
	// Result is returned from Transcribe when Err is nil.
	Result asr.Result

	// Err, when non-nil, is returned from every Transcribe call.
	Err error

	mu    sync.Mutex
	calls []string
}

// Transcribe records the audio path and returns the configured result.
func (p *Provider) Transcribe(ctx context.Context, audioPath string) (*asr.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.calls = append(p.calls, audioPath)
	p.mu.Unlock()

	if p.Err != nil {
		return nil, p.Err
	}
	res := p.Result
	return &res, nil
}

// Calls returns the audio paths passed to Transcribe, in order.
func (p *Provider) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}
