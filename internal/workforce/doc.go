// Package workforce holds the scheduling and time-tracking rules: the permission gate,
// clock-in admission control, the weekly resource-allocation aggregator and the
// burnout-risk estimator.
//
// Every function here is pure. Callers pass the current time and already-fetched
// snapshots; persistence lives in the services and repository packages.
package workforce
