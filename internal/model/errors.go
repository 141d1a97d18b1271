package model

import "errors"

var ErrNoRecord = errors.New("no record")
var ErrAlreadyExists = errors.New("entity already exists")
var ErrForbidden = errors.New("action is forbidden")
var ErrEventFull = errors.New("event is full")
var ErrBlocked = errors.New("user is blocked")
