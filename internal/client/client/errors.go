package client

import (
	"errors"

	"github.com/dmitrijs2005/gophtasks/internal/api"
)

var (
	ErrUnavailable  = api.ErrUnavailable
	ErrUnauthorized = errors.New("unauthorized")
)
