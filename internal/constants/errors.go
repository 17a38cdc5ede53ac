package constants

import "errors"

// Configuration errors.
var (
	ErrNoBaseURL     = errors.New("no panel URL configured, use 'ptero config set url <url>' or --url")
	ErrNoToken       = errors.New("no API token configured, use 'ptero login' or --token")
	ErrInvalidFormat = errors.New("invalid output format (use table, json or yaml)")
)
