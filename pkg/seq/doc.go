// Package seq runs ordered lists of asynchronous steps one at a time.
//
// Steps never overlap: step i+1 is not invoked before step i has returned,
// so later steps may safely depend on earlier results (each step receives
// the previous step's value). The first failing step aborts the whole run
// and its error is returned unchanged; steps after it never execute.
package seq
