// Package dashboard implements the xmdash telemetry pipeline independently of
// any concrete UI.
//
// A Session polls a proxy summary endpoint on a repeating timer, sanitizes the
// payload into a Snapshot, appends a sample to the bounded HistoryStore and
// drives a Surface and a ChartBackend with the result. The first successful
// poll rebuilds the whole layout; later polls patch only the fields whose
// value changed.
//
// Everything that touches session state runs on the single event thread
// exposed by Loop. Network requests run through Loop.Go and hand a closure
// back to that thread, so no locking is needed inside the package.
package dashboard
