// Package async runs a function in its own goroutine and hands back a Future
// for its result.
//
// Async starts the work and Await blocks for the result. Then registers a
// callback that runs once the result is ready, which is how remote field
// checks report back without blocking further input:
//
//	future := async.Async(ctx, value, check)
//	async.Then(future, func(res form.Result, err error) {
//	    apply(res, err)
//	})
//
// A Future completes with the callback's error, the context error when ctx is
// done first, or ErrPanic when the callback panicked.
package async
