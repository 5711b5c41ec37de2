package buffer

import (
	"errors"

	"github.com/arloliu/payloadbuf/pack"
	"github.com/arloliu/payloadbuf/pattern"
)

// Option configures a Buffer at construction time.
type Option interface {
	apply(*Buffer) error
}

type optionFunc func(*Buffer) error

func (f optionFunc) apply(b *Buffer) error { return f(b) }

func applyOptions(b *Buffer, opts []Option) error {
	for _, opt := range opts {
		if err := opt.apply(b); err != nil {
			return err
		}
	}

	return nil
}

// WithFiller injects the filler producing bytes for unoccupied regions.
// The default is the cyclic pattern.
func WithFiller(filler Filler) Option {
	return optionFunc(func(b *Buffer) error {
		if filler == nil {
			return errors.New("nil filler")
		}
		b.filler = filler

		return nil
	})
}

// WithRandomFiller fills unoccupied regions with random bytes instead of the
// cyclic pattern, avoiding false valid-pointer collisions while fuzzing.
func WithRandomFiller() Option {
	return optionFunc(func(b *Buffer) error {
		b.filler = pattern.RandomFiller()

		return nil
	})
}

// WithZeroFiller fills unoccupied regions with zero bytes.
func WithZeroFiller() Option {
	return optionFunc(func(b *Buffer) error {
		b.filler = pattern.ZeroFiller()

		return nil
	})
}

// WithPacker injects the packer converting payload values into raw bytes.
// The default is pack.Default.Pack.
func WithPacker(packer Packer) Option {
	return optionFunc(func(b *Buffer) error {
		if packer == nil {
			return errors.New("nil packer")
		}
		b.packer = packer

		return nil
	})
}

// WithContext packs values with the given architecture context instead of
// pack.Default.
func WithContext(ctx *pack.Context) Option {
	return optionFunc(func(b *Buffer) error {
		if ctx == nil {
			return errors.New("nil pack context")
		}
		b.packer = ctx.Pack

		return nil
	})
}

// AddOption configures the fragments produced by a single Add or Append
// call from a Raw value. Composite specs (OffsetMap, Seq, nested buffers)
// carry names and tags per element and ignore these options.
type AddOption func(*addConfig)

type addConfig struct {
	name string
	tags []string
}

// WithName sets the display label of the added fragment.
func WithName(name string) AddOption {
	return func(cfg *addConfig) { cfg.name = name }
}

// WithTags sets the ordered tag list of the added fragment. The first tag
// becomes the main tag. Without this option the fragment gets the single
// DefaultTag.
func WithTags(tags ...string) AddOption {
	return func(cfg *addConfig) { cfg.tags = tags }
}
