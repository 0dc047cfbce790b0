package main

import (
	"github.com/kelseyhightower/envconfig"
)

// Display drives how results are printed, it never changes what is stored
type Display struct {
	// CHATCTL_COLOURS enables colorized headers
	Colours    bool   `envconfig:"CHATCTL_COLOURS" default:"true"`
	TimeFormat string `envconfig:"CHATCTL_TIME_FORMAT" default:"2006-01-02 15:04:05"`
}

func LoadDisplay() (Display, error) {
	var display Display
	err := envconfig.Process("", &display)
	return display, err
}
