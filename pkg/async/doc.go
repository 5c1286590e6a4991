// Package async runs functions in goroutines and hands back generic futures.
//
//	futures := make([]*async.Future[bool], len(keys))
//	for i, key := range keys {
//	    futures[i] = async.Async(ctx, key, client.KeyExists)
//	}
//	for i, r := range async.Settle(futures...) { ... }
//
// WaitAll stops at the first error or when its context is done; Settle
// collects every outcome.
package async
