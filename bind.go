package config

import (
	"errors"
	"fmt"

	modellib "github.com/ygrebnov/model"
	"gopkg.in/yaml.v3"
)

// ErrBind reports configuration values that cannot be decoded into the target struct.
var ErrBind = errors.New("cannot bind config")

// ModelInit is a constructor hook that binds a model.Model[T] to the *T that
// Bind fills. Return the constructed model.Model[T] or an error.
type ModelInit[T any] func(*T) (*modellib.Model[T], error)

type bindOptions[T any] struct {
	modelInit ModelInit[T]
}

// BindOption configures Bind.
type BindOption[T any] func(*bindOptions[T])

// WithModel enables integration with github.com/ygrebnov/model. Struct
// defaults (`default` tags) fill the fields the configuration leaves zero, and
// `validate` tags are checked on the result. Panics if init is nil.
func WithModel[T any](init ModelInit[T]) BindOption[T] {
	return func(o *bindOptions[T]) {
		if init == nil {
			panic("config: WithModel: init cannot be nil")
		}
		o.modelInit = init
	}
}

// Bind decodes the values of c into a new T through their YAML form, so T uses
// `yaml` struct tags. Symbols decode as strings. Keys without a matching field
// are ignored.
//
// Bind runs in the following steps:
//  1. If WithModel is set, build the model around a zero T and call SetDefaults().
//  2. Overlay the configuration values.
//  3. If WithModel is set, Validate() the result.
func Bind[T any](c *Config, opts ...BindOption[T]) (*T, error) {
	var o bindOptions[T]
	for _, opt := range opts {
		opt(&o)
	}

	out := new(T)
	var mdl *modellib.Model[T]
	if o.modelInit != nil {
		var err error
		if mdl, err = o.modelInit(out); err != nil {
			return nil, err
		}
		if err := mdl.SetDefaults(); err != nil {
			return nil, err
		}
	}

	data, err := yaml.Marshal(plain(c.values.Map()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBind, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBind, err)
	}

	if mdl != nil {
		if err := mdl.Validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
