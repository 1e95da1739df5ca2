// Package scheduler implements the smart time-blocking pipeline: a
// multi-factor priority scorer, a free-window generator, and a greedy
// allocator that places the highest-ranked activities into the day's free
// windows while inserting recovery breaks.
//
// Every function in this package is a pure computation over its inputs.
// Nothing here performs I/O or holds process-wide state, so the pipeline is
// safe to invoke concurrently for different users or days. Serializing runs
// for the same user and day (to avoid double-booking windows) is the
// caller's responsibility.
package scheduler
