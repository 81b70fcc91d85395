package env

// Prefix is the env var prefix for all command flags, ex. KYCREPORT_OUTPUT
const Prefix = "KYCREPORT"
