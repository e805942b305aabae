package config

import (
	"github.com/tauraamui/graydaemon/internal/config"
	"github.com/tauraamui/graydaemon/pkg/configdef"
)

type Resolver interface {
	configdef.Resolver
}

func DefaultResolver() Resolver {
	return config.DefaultResolver()
}

type Creator interface {
	configdef.Creator
}

func DefaultCreator() Creator {
	return config.DefaultCreator()
}

type Destroyer interface {
	configdef.Destroyer
}

func DefaultDestroyer() Destroyer {
	return config.DefaultDestroyer()
}
