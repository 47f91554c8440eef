package config

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidConfig = goerr.New("invalid configuration")
	ErrMissingOption = goerr.New("required option is missing")
)

const ConfigPathKey = "config_path"
