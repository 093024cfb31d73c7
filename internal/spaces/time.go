package spaces

import "time"

// timeNow is a package-level variable for testability.
var timeNow = time.Now

func now() string {
	return timeNow().UTC().Format(time.RFC3339)
}
