package system

import (
	"context"
	"io"
)

// fakeRunner records the invocation and plays back canned output.
type fakeRunner struct {
	output  []byte
	err     error
	gotName string
	gotArgs []string
	gotEnv  []string
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.gotName = name
	f.gotArgs = args
	return f.output, f.err
}

func (f *fakeRunner) Stream(ctx context.Context, w io.Writer, env []string, name string, args ...string) error {
	f.gotName = name
	f.gotArgs = args
	f.gotEnv = env
	if len(f.output) > 0 {
		_, _ = w.Write(f.output)
	}
	return f.err
}
