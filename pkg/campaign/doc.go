// Package campaign implements the advertising campaign state machine.
//
// Campaigns follow the same Created → Edited → Approved/Denied shape as news
// items, but every campaign is pre-funded with a fixed escrow at creation and
// a review decision settles that escrow exactly once.
package campaign
