// Package firewall prepares the filtering engine objects of the VPN client
// and hands them to an engine registrar.
//
// # Overview
//
//	wfp.BuildCatalog → Validate → ledger drift check → wfp.Register → ledger.Record
//
// The [Manager] adds logging, metrics and the identity ledger around the pure
// descriptor model in package wfp. Engine sessions and transactions live in
// the registrar passed to [Manager.Apply].
//
// # Identity drift
//
// If a compiled key differs from the one recorded in the ledger, Apply
// refuses to register: installing the new object would orphan the old one
// in the engine. Pass AcceptDrift only for a deliberate migration.
package firewall
