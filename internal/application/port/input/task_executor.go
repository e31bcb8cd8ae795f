package input

import "context"

type ExecuteResult struct {
	FinalAnswer string
	Iterations  int
}

type TaskExecutor interface {
	// Execute runs one user turn on the conversation identified by threadID.
	// Earlier turns of the same thread are restored from the checkpoint store.
	Execute(ctx context.Context, threadID, task string) (*ExecuteResult, error)
}
