// Package model defines the database models for newsdesk.
//
// Each model maps one table of the PostgreSQL schema in db/migrations and
// converts to and from the domain types the engine works with.
//
// # Database Schema
//
//   - registries: one row per registry owner
//   - reporters: ordered (principal, role) entries of a registry
//   - pools: the platform pool balance
//   - vaults: content and campaign vault balances
//   - news: content items
//   - campaigns: advertising campaigns
//   - accounts: balances held by the transfer host
package model
