// Package di provides dependency injection type definitions.
package di

import (
	"github.com/huikaichung/knowyourself/internal/config"
	"github.com/huikaichung/knowyourself/internal/modules/charts"
	"github.com/huikaichung/knowyourself/internal/modules/western"
	"github.com/huikaichung/knowyourself/internal/modules/ziwei"
)

// Container holds all dependencies for the application.
//
// It is created by Wire() and handed to the command layer. Every service is
// stateless apart from the chart caches inside Charts, so one container can
// serve any number of concurrent requests.
type Container struct {
	Config *config.Config

	// Pipelines
	WesternService *western.Service // Tropical natal charts
	ZiweiService   *ziwei.Service   // Zi Wei Dou Shu charts

	// Facade with input parsing and memoization
	ChartsService *charts.Service
}
