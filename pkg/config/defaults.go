package config

const (
	DefaultPageSize    = 10
	MaxPaginationLimit = 100
)
