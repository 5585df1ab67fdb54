// Package news implements the content item state machine.
//
// An item moves Created → Edited → Approved/Denied → Published. Review may be
// repeated and may flip an item between Approved and Denied; only an Approved
// item can be published, and a Published item is final.
package news
