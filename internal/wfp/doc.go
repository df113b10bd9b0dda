// Package wfp describes the objects the VPN client registers with the
// Windows Filtering Platform before it installs any filters.
//
// # Overview
//
// Two kinds of registration objects exist:
//
//   - [Provider]: a namespace owning policy. Persistent providers survive
//     service restarts and reboots.
//   - [Sublayer]: an ordered bucket of filters inside a provider. Sibling
//     sublayers are ordered by [Weight].
//
// Descriptors are immutable values produced by a single validating Build
// step on [ProviderConfig] and [SublayerConfig]. Missing required fields fail
// with a [*ConfigError] before anything is handed to the engine.
//
// # Flavors
//
// The integration registers exactly five objects, enumerated by [Flavor]:
//
//	provider             non-persistent  owns baseline + dns
//	provider_persistent  persistent      owns persistent
//	sublayer_baseline    weight 0xFFFF
//	sublayer_dns         weight 0xFFFE
//	sublayer_persistent  weight 0xFFFF
//
// [BuildCatalog] builds all of them and [Catalog.Validate] checks the
// ownership, persistence and weight invariants across the set.
//
// # Registration
//
// This package never talks to the engine. [Register] walks
// [Catalog.RegistrationOrder] and hands each descriptor to a [Registrar]; transactions,
// retries and teardown belong to the registrar.
package wfp
