package config

import "github.com/tauraamui/graydaemon/pkg/configdef"

func DefaultResolver() configdef.Resolver {
	return defaultResolver{}
}

type defaultResolver struct{}

func (d defaultResolver) Resolve() (configdef.Values, error) {
	return load()
}

func DefaultCreator() configdef.Creator {
	return defaultCreator{}
}

type defaultCreator struct{}

func (d defaultCreator) Create() error {
	return create()
}

func DefaultCreateResolver() configdef.CreateResolver {
	return defaultCreateResolver{}
}

type defaultCreateResolver struct {
	defaultCreator
	defaultResolver
}

func DefaultDestroyer() configdef.Destroyer {
	return defaultDestroyer{}
}

type defaultDestroyer struct{}

func (d defaultDestroyer) Destroy() error {
	return destroy()
}
