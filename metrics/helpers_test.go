package metrics_test

import "time"

const (
	waitFor = time.Second
	pollAt  = 2 * time.Millisecond
)
