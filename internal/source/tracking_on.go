//go:build sigildev

package source

// Tracking reports whether spans are recorded on expressions. Diagnostics
// builds enable it with the sigildev build tag; consensus builds leave it
// off so expression identity never depends on layout.
const Tracking = true
