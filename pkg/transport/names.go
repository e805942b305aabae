package transport

import (
	"strings"

	"github.com/google/uuid"
)

// nodeName returns the name to register with, anonymous nodes get a unique
// suffix so several instances can run against the same master.
func nodeName(opts Options) string {
	if !opts.Anonymous {
		return opts.NodeName
	}
	return opts.NodeName + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
