package server

// Version is the relay server version.
const Version = "0.1.0-alpha.1"
