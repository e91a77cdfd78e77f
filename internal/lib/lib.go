// Package lib acts as a library for modules that do not fit strictly
// into other layers.
//
// It contains the scheduled background jobs, currently the cron-driven
// user directory synchronization.
package lib
