package async

import "context"

// Worker is a long-running background unit started from main. Run blocks
// until the context is cancelled and calls done exactly once on exit.
type Worker interface {
	Run(context.Context, func())
	Shutdown()
}
