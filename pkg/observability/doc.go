/*
Package observability provides Prometheus metrics for the turn loop.

Metrics are recorded through lifecycle hooks and gathered by a private
registry, which can be written to a node_exporter textfile at the end of a
session. No network listener is started.
*/
package observability
