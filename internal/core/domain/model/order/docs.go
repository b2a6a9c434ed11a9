// Package order contains the Order aggregate root and its status state machine.
//
// An order is the customer-facing purchase spanning one or more shops. Its
// status is a monotonic function of its sub-orders' progress: the completion
// policy in the services package moves it to Completed only when every
// sub-order has reached a terminal success state, and final states are never
// left again regardless of what events are replayed afterwards.
package order
