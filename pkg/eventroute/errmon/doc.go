// Package errmon forwards uncaught application errors to the event router.
//
// A Monitor classifies each error, drops expected ones (aborted navigation
// and errors already reported by a data-access adapter), normalizes the rest
// into a Report and sends it with Service.Error under the "error" tag:
//
//	mon := errmon.New(svc)
//	defer mon.Recover(ctx)
//
//	mon.Go(ctx, worker)           // background work
//	mon.Install(ctx)              // accept mon.Submit(err) from anywhere
//	defer mon.Close()
//
// Consumers receive metadata {"error": Report, "error_id": uuid}. Outside the
// production environment every reported error is also logged at error level
// and Recover re-raises the panic so failures are never silent in
// development.
package errmon
