package internal

import "context"

type Configurer interface {
	Configure(envs map[string]string) error
}

type Opener interface {
	Open(ctx context.Context) error
	Closer
}

type Closer interface {
	Close(ctx context.Context) error
}

// Clearer is implemented by anything holding state that can be dropped
// wholesale, e.g. the stub backend's stores.
type Clearer interface {
	Clear(ctx context.Context) error
}
