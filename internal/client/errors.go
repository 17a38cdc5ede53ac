package client

import "errors"

// Static errors for err113 compliance.
var (
	// errStopPaging ends a page walk early once the wanted item is found.
	errStopPaging = errors.New("stop paging")
)
