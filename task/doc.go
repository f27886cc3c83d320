// Package task runs named goroutines as a structured group.
//
// Every task receives the group's context. That context is the task's
// liveness handle: conduit operations started by a task give up when it is
// cancelled, and blocked rendezvous parties of a cancelled task are skipped
// by their peers. Cancelling a group therefore aborts every suspended send
// and receive its tasks are blocked in.
//
//	err := task.Run(ctx, func(g *task.Group) {
//	    g.Go("producer", func(ctx context.Context) error {
//	        defer tx.Close()
//	        return tx.Send(ctx, 42)
//	    })
//	    g.Go("consumer", func(ctx context.Context) error {
//	        _, err := rx.Receive(ctx)
//	        return err
//	    })
//	})
//
// # Error Policies
//
//   - [FailFast] (default): the first error cancels every sibling task and
//     is returned by [Group.Wait].
//   - [Collect]: every error is kept and [Group.Wait] returns them joined
//     via [errors.Join].
//
// Task errors are wrapped in [*TaskError]. A panicking task is recovered and
// reported as a [*PanicError] carrying the stack trace.
package task
