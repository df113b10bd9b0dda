// Package config handles the HCL configuration of the firewall integration
// tooling.
//
// The configuration never influences descriptor identity: keys, weights and
// persistence flags are compiled in. It only controls logging, where the
// identity ledger lives and where metrics are written.
//
// Example:
//
//	schema_version = "1.0"
//
//	log {
//	    level = "debug"
//	    json  = false
//	}
//
//	ledger {
//	    path = "C:\\ProgramData\\Rostam VPN\\state\\rostam-winfw-ledger.db"
//	}
//
//	metrics {
//	    textfile = "C:\\ProgramData\\Rostam VPN\\winfw.prom"
//	}
package config
