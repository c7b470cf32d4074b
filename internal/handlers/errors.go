package handlers

import "errors"

var errInvalidBody = errors.New("invalid request body")
