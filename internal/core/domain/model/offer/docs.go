// Package offer contains the Offer aggregate: a carrier's quote for a
// transport request, reached through exactly one invitation. The aggregate
// owns the price breakdown with its derived total, the evaluation parameters
// staff attach while comparing quotes, and the tracking timeline recorded
// after confirmation.
package offer
