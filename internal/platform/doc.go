package platform

// Package platform contains OS integration glue: opening files with their
// default application and revealing them in the system file manager.
