package selfplay

import "errors"

var ErrIllegalMove = errors.New("engine played an illegal move")
