// Package riverlog bridges River job rows into jobtrace lifecycle events.
//
// River exposes job state through rivertype.JobRow; this package converts
// rows and insert results into jobtrace snapshots and publishes the matching
// events on a notify bus, so River-backed applications get the same log lines
// as any other adapter.
//
//	results, err := client.InsertMany(ctx, params)
//	riverlog.PublishInserted(bus, "river", results)
//	// => Enqueued 3 jobs to river (2 SendWelcome, 1 SyncAccount)
package riverlog
