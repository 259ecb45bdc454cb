package panel

import "errors"

var ErrUnknownAction = errors.New("panel: unknown action")
